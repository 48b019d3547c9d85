package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/console-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/internal/normalize"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// CountersClient implements console.CountersClient. Counters are addressed
// by name.
type CountersClient struct {
	httpClient *internalhttp.Client
}

type counterCreateRequest struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// NewCountersClient creates a new counters client.
func NewCountersClient(httpClient *internalhttp.Client) *CountersClient {
	return &CountersClient{
		httpClient: httpClient,
	}
}

// List implements console.CountersClient.List.
func (c *CountersClient) List(ctx context.Context, appID string, params *console.QueryParams) ([]console.Counter, error) {
	if appID == "" {
		return nil, console.ErrAppIDRequired
	}

	var query *console.Query
	if params != nil {
		query = params.ToQuery()
	}

	resp, err := c.httpClient.Get(ctx, appPath(appID, constants.AppPathCounters), query)
	if err != nil {
		return nil, fmt.Errorf("listing counters: %w", err)
	}

	counters, err := normalize.Counters(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing counters list response: %w", err)
	}

	return counters, nil
}

// Create implements console.CountersClient.Create.
func (c *CountersClient) Create(ctx context.Context, appID, name string, value int64) (*console.Counter, error) {
	err := validateCounter(appID, name)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, appPath(appID, constants.AppPathCounters), console.JSON(&counterCreateRequest{
		Name:  name,
		Value: value,
	}))
	if err != nil {
		return nil, fmt.Errorf("creating counter: %w", err)
	}

	counter, err := normalize.CreatedCounter(resp.Body, name)
	if err != nil {
		return nil, fmt.Errorf("parsing counter response: %w", err)
	}

	return counter, nil
}

// Set implements console.CountersClient.Set. The value is sent as a bare
// JSON number.
func (c *CountersClient) Set(ctx context.Context, appID, name string, value int64) error {
	err := validateCounter(appID, name)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Put(ctx, appPath(appID, constants.AppPathCounters, name), console.JSON(value))
	if err != nil {
		return fmt.Errorf("setting counter: %w", err)
	}

	return nil
}

// Reset implements console.CountersClient.Reset.
func (c *CountersClient) Reset(ctx context.Context, appID, name string) error {
	err := validateCounter(appID, name)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPut,
		Path:   appPath(appID, constants.AppPathCounters, name, constants.PathReset),
		Body:   console.NoBody,
	})
	if err != nil {
		return fmt.Errorf("resetting counter: %w", err)
	}

	return nil
}

// Delete implements console.CountersClient.Delete.
func (c *CountersClient) Delete(ctx context.Context, appID, name string) error {
	err := validateCounter(appID, name)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, appPath(appID, constants.AppPathCounters, name))
	if err != nil {
		return fmt.Errorf("deleting counter: %w", err)
	}

	return nil
}

func validateCounter(appID, name string) error {
	if appID == "" {
		return console.ErrAppIDRequired
	}

	if name == "" {
		return console.ErrNameRequired
	}

	return nil
}
