package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/console-client/internal/cache"
	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// StatusClient implements console.StatusClient. The status is fetched once
// and then served from the slot until a forced reload or Invalidate.
type StatusClient struct {
	httpClient *http.Client
	slot       *cache.Slot[*console.SystemStatus]
}

// NewStatusClient creates a new status client with an empty cache.
func NewStatusClient(httpClient *http.Client, config cache.SlotConfig) *StatusClient {
	client := &StatusClient{httpClient: httpClient}
	client.slot = cache.NewSlot(client.fetch, config)

	return client
}

// Get implements console.StatusClient.Get.
func (c *StatusClient) Get(ctx context.Context, forceReload bool) (*console.SystemStatus, error) {
	status, err := c.slot.Get(ctx, forceReload)
	if err != nil {
		return nil, fmt.Errorf("getting system status: %w", err)
	}

	return status, nil
}

// Invalidate implements console.StatusClient.Invalidate.
func (c *StatusClient) Invalidate(ctx context.Context) error {
	err := c.slot.Invalidate(ctx)
	if err != nil {
		return fmt.Errorf("invalidating system status: %w", err)
	}

	return nil
}

func (c *StatusClient) fetch(ctx context.Context) (*console.SystemStatus, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathStatus, nil)
	if err != nil {
		return nil, err
	}

	var status console.SystemStatus

	err = http.DecodeJSON(resp, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing status response: %w", err)
	}

	return &status, nil
}
