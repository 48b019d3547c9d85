// Package client implements the console.Client interface on top of the
// internal HTTP dispatcher.
package client

import (
	"context"
	"slices"
	"time"

	"github.com/fivetwenty-io/console-client/internal/auth"
	"github.com/fivetwenty-io/console-client/internal/cache"
	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// Client implements the console.Client interface.
type Client struct {
	httpClient    *http.Client
	billingClient *http.Client
	session       *auth.SessionProvider
	logger        console.Logger

	// Resource clients
	status   *StatusClient
	apps     *AppsClient
	tables   *TablesClient
	cache    *CacheClient
	counters *CountersClient
	billing  *BillingClient
	sessions *SessionClient
}

// New creates a console API client. ConsoleURL must already be a full base
// URL; endpoint normalization happens in the consoleclient package.
func New(ctx context.Context, config *console.Config) (*Client, error) {
	if config == nil {
		return nil, console.ErrConfigRequired
	}

	if config.ConsoleURL == "" {
		return nil, console.ErrConsoleURLRequired
	}

	session := auth.NewSessionProvider(config.AuthKey, config.SessionPersister)

	httpOpts := createHTTPClientOptions(config)

	client := &Client{
		httpClient: http.NewClient(config.ConsoleURL, append(slices.Clip(httpOpts), http.WithAuth(session))...),
		session:    session,
		logger:     config.Logger,
	}

	if config.BillingURL != "" {
		billingAuth := auth.NewBasicProvider(config.BillingToken)
		client.billingClient = http.NewClient(config.BillingURL, append(slices.Clip(httpOpts), http.WithAuth(billingAuth))...)
	}

	client.initializeResourceClients(config)

	// Warm the status cache if requested
	if config.FetchStatusOnInit {
		_, err := client.status.Get(ctx, false)
		if err != nil && config.Logger != nil {
			config.Logger.Warn("prefetching console status failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return client, nil
}

// createHTTPClientOptions builds the dispatcher options shared by the console
// and billing clients.
func createHTTPClientOptions(config *console.Config) []http.Option {
	var httpOpts []http.Option

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients(config *console.Config) {
	c.status = NewStatusClient(c.httpClient, cache.SlotConfig{
		Mirror: boundedMirror(config.StatusMirror),
		Logger: config.Logger,
	})
	c.apps = NewAppsClient(c.httpClient)
	c.tables = NewTablesClient(c.httpClient)
	c.cache = NewCacheClient(c.httpClient)
	c.counters = NewCountersClient(c.httpClient)
	c.billing = NewBillingClient(c.billingClient)
	c.sessions = NewSessionClient(c.httpClient, c.session)
}

// Status implements console.Client.Status.
func (c *Client) Status() console.StatusClient {
	return c.status
}

// Apps implements console.Client.Apps.
func (c *Client) Apps() console.AppsClient {
	return c.apps
}

// Tables implements console.Client.Tables.
func (c *Client) Tables() console.TablesClient {
	return c.tables
}

// Cache implements console.Client.Cache.
func (c *Client) Cache() console.CacheClient {
	return c.cache
}

// Counters implements console.Client.Counters.
func (c *Client) Counters() console.CountersClient {
	return c.counters
}

// Billing implements console.Client.Billing.
func (c *Client) Billing() console.BillingClient {
	return c.billing
}

// Session implements console.Client.Session.
func (c *Client) Session() console.SessionClient {
	return c.sessions
}

// loggerAdapter adapts console.Logger to http.Logger.
type loggerAdapter struct {
	logger console.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

// timeoutMirror bounds every mirror call so a slow mirror never holds up a
// status read for long.
type timeoutMirror struct {
	mirror  console.StatusMirror
	timeout time.Duration
}

func boundedMirror(mirror console.StatusMirror) console.StatusMirror {
	if mirror == nil {
		return nil
	}

	return &timeoutMirror{mirror: mirror, timeout: constants.DefaultMirrorTimeout}
}

func (m *timeoutMirror) Get(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.mirror.Get(ctx)
}

func (m *timeoutMirror) Put(ctx context.Context, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.mirror.Put(ctx, payload)
}

func (m *timeoutMirror) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.mirror.Delete(ctx)
}
