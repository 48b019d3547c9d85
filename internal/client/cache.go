package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/internal/normalize"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// CacheClient implements console.CacheClient.
type CacheClient struct {
	httpClient *http.Client
}

// NewCacheClient creates a new cache client.
func NewCacheClient(httpClient *http.Client) *CacheClient {
	return &CacheClient{
		httpClient: httpClient,
	}
}

// List implements console.CacheClient.List. The page and the total count are
// separate endpoints, requested concurrently; either failure fails the call.
func (c *CacheClient) List(ctx context.Context, appID string, params *console.QueryParams) (*console.CacheList, error) {
	if appID == "" {
		return nil, console.ErrAppIDRequired
	}

	var query *console.Query
	if params != nil {
		query = params.ToQuery()
	}

	var (
		entries []console.CacheEntry
		total   int64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		resp, err := c.httpClient.Get(groupCtx, appPath(appID, constants.AppPathCache), query)
		if err != nil {
			return err
		}

		entries, err = normalize.CacheEntries(resp.Body)

		return err
	})

	group.Go(func() error {
		resp, err := c.httpClient.Get(groupCtx, appPath(appID, constants.AppPathCache, constants.PathCount), query)
		if err != nil {
			return err
		}

		total, err = normalize.Count(resp.Body)

		return err
	})

	err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}

	return normalize.CacheList(entries, total), nil
}

// Put implements console.CacheClient.Put.
func (c *CacheClient) Put(ctx context.Context, appID, key string, request *console.CachePutRequest) error {
	if appID == "" {
		return console.ErrAppIDRequired
	}

	if key == "" {
		return console.ErrNameRequired
	}

	if request == nil {
		request = &console.CachePutRequest{}
	}

	_, err := c.httpClient.Put(ctx, appPath(appID, constants.AppPathCache, key), console.JSON(request))
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return nil
}

// Delete implements console.CacheClient.Delete.
func (c *CacheClient) Delete(ctx context.Context, appID, key string) error {
	if appID == "" {
		return console.ErrAppIDRequired
	}

	if key == "" {
		return console.ErrNameRequired
	}

	_, err := c.httpClient.Delete(ctx, appPath(appID, constants.AppPathCache, key))
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}
