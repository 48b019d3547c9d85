package consoleclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/console-client/internal/cache"
	"github.com/fivetwenty-io/console-client/internal/client"
	"github.com/fivetwenty-io/console-client/pkg/config"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// New creates a console API client. The console and billing URLs are
// normalized: a trailing "/" is dropped and "https://" is assumed when no
// scheme is given. cfg itself is not modified.
func New(ctx context.Context, cfg *console.Config) (console.Client, error) {
	if cfg == nil {
		return nil, console.ErrConfigRequired
	}

	if cfg.ConsoleURL == "" {
		return nil, console.ErrConsoleURLRequired
	}

	normalized := *cfg
	normalized.ConsoleURL = normalizeEndpoint(cfg.ConsoleURL)

	if cfg.BillingURL != "" {
		normalized.BillingURL = normalizeEndpoint(cfg.BillingURL)
	}

	cli, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// normalizeEndpoint trims a trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithEndpoint creates a new client with just a console URL (no session).
func NewWithEndpoint(ctx context.Context, endpoint string) (console.Client, error) {
	return New(ctx, &console.Config{
		ConsoleURL: endpoint,
	})
}

// NewWithAuthKey creates a new client with a console URL and an existing
// session key.
func NewWithAuthKey(ctx context.Context, endpoint, authKey string) (console.Client, error) {
	return New(ctx, &console.Config{
		ConsoleURL: endpoint,
		AuthKey:    authKey,
	})
}

// NewWithLogin creates a new client and logs in with the developer
// credentials.
func NewWithLogin(ctx context.Context, endpoint, login, password string) (console.Client, error) {
	cli, err := NewWithEndpoint(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	_, err = cli.Session().Login(ctx, login, password)
	if err != nil {
		return nil, err
	}

	return cli, nil
}

// NewFromConfigFile loads settings from a yml file and the CONSOLE_*
// environment. Session keys obtained by Session().Login are written back to
// the same file.
func NewFromConfigFile(ctx context.Context, path string) (console.Client, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.SessionPersister = config.NewFilePersister(path)

	return New(ctx, cfg)
}

// StatusMirror is a status cache mirror holding a connection of its own.
type StatusMirror interface {
	console.StatusMirror
	Close()
}

// ConnectStatusMirror connects to a NATS server and shares the cached system
// status through the JetStream key-value bucket, creating the bucket when
// needed. An empty bucket uses the default name.
func ConnectStatusMirror(url, bucket string, opts ...nats.Option) (StatusMirror, error) {
	mirror, err := cache.ConnectNATSMirror(url, bucket, opts...)
	if err != nil {
		return nil, err
	}

	return mirror, nil
}
