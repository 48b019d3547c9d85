package console

import (
	"context"
	"net/http"
	"time"
)

// StatusClient reads the console system status.
type StatusClient interface {
	// Get returns the cached status, fetching it on first use or when
	// forceReload is set.
	Get(ctx context.Context, forceReload bool) (*SystemStatus, error)
	// Invalidate drops the cached status.
	Invalidate(ctx context.Context) error
}

// AppsClient manages applications.
type AppsClient interface {
	List(ctx context.Context) ([]App, error)
	Get(ctx context.Context, appID string) (*App, error)
	Create(ctx context.Context, request *AppCreateRequest) (*App, error)
	Delete(ctx context.Context, appID string) error
}

// TablesClient manages data tables.
type TablesClient interface {
	List(ctx context.Context, appID string) ([]Table, error)
	Create(ctx context.Context, appID string, request *TableCreateRequest) (*Table, error)
	Delete(ctx context.Context, appID, tableName string) error
}

// CacheClient manages cache entries.
type CacheClient interface {
	List(ctx context.Context, appID string, params *QueryParams) (*CacheList, error)
	Put(ctx context.Context, appID, key string, request *CachePutRequest) error
	Delete(ctx context.Context, appID, key string) error
}

// CountersClient manages atomic counters.
type CountersClient interface {
	List(ctx context.Context, appID string, params *QueryParams) ([]Counter, error)
	Create(ctx context.Context, appID, name string, value int64) (*Counter, error)
	Set(ctx context.Context, appID, name string, value int64) error
	Reset(ctx context.Context, appID, name string) error
	Delete(ctx context.Context, appID, name string) error
}

// BillingClient talks to the separate billing API.
type BillingClient interface {
	GetPlan(ctx context.Context, appID string) (*BillingPlan, error)
	ListInvoices(ctx context.Context, appID string) ([]Invoice, error)
}

// SessionClient manages the console session.
type SessionClient interface {
	Login(ctx context.Context, login, password string) (*Developer, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
}

// Client is the console management API client.
type Client interface {
	Status() StatusClient
	Apps() AppsClient
	Tables() TablesClient
	Cache() CacheClient
	Counters() CountersClient
	Billing() BillingClient
	Session() SessionClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// StatusMirror is a shared second tier for the status cache. Get returns
// ErrStatusMirrorMiss when nothing is stored.
type StatusMirror interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
}

// SessionPersister stores console session keys so they survive restarts.
type SessionPersister interface {
	SaveAuthKey(authKey string) error
}

// Config represents client configuration.
//
// # Authentication
//
// Console endpoints carry the "auth-key" header once a session exists, either
// from AuthKey or from a successful Session().Login. Billing endpoints are
// served from BillingURL and carry "Authorization: Basic <BillingToken>".
// Requests without a matching credential are sent unauthenticated.
//
// # Timeouts and retries
//
// Timeout of 0 means no client-side timeout; per-call deadlines should be set
// on the context. Requests are not retried unless RetryMax is positive.
type Config struct {
	// ConsoleURL is the console API base, e.g. "https://develop.example.com".
	ConsoleURL string `mapstructure:"console_url" yaml:"console_url"`
	// BillingURL is the optional billing API base.
	BillingURL string `mapstructure:"billing_url" yaml:"billing_url,omitempty"`
	// BillingToken is the static billing credential.
	BillingToken string `mapstructure:"billing_token" yaml:"billing_token,omitempty"`
	// AuthKey is a console session key obtained earlier.
	AuthKey string `mapstructure:"auth_key" yaml:"auth_key,omitempty"`

	// Timeout bounds each HTTP exchange. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
	// RetryMax enables retries of transient failures when positive.
	RetryMax int `mapstructure:"retry_max" yaml:"retry_max,omitempty"`
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min" yaml:"retry_wait_min,omitempty"`
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max" yaml:"retry_wait_max,omitempty"`
	// Debug enables request/response logging when a Logger is set.
	Debug bool `mapstructure:"debug" yaml:"debug,omitempty"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	// FetchStatusOnInit loads the system status while the client is created.
	// A failure is logged and otherwise ignored.
	FetchStatusOnInit bool `mapstructure:"fetch_status_on_init" yaml:"fetch_status_on_init,omitempty"`

	Logger           Logger            `mapstructure:"-" yaml:"-"`
	StatusMirror     StatusMirror      `mapstructure:"-" yaml:"-"`
	SessionPersister SessionPersister  `mapstructure:"-" yaml:"-"`
	Interceptors     *InterceptorChain `mapstructure:"-" yaml:"-"`
	// HTTPClient replaces the pooled transport client, e.g. for custom TLS.
	// Timeout still applies to it when set.
	HTTPClient *http.Client `mapstructure:"-" yaml:"-"`
}
