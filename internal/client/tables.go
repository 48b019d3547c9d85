package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/internal/normalize"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// TablesClient implements console.TablesClient.
type TablesClient struct {
	httpClient *http.Client
}

// NewTablesClient creates a new tables client.
func NewTablesClient(httpClient *http.Client) *TablesClient {
	return &TablesClient{
		httpClient: httpClient,
	}
}

// List implements console.TablesClient.List. Relations the server sent
// without a data type come back tagged DATA_REF or GEO_REF.
func (c *TablesClient) List(ctx context.Context, appID string) ([]console.Table, error) {
	if appID == "" {
		return nil, console.ErrAppIDRequired
	}

	resp, err := c.httpClient.Get(ctx, appPath(appID, constants.AppPathTables), nil)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	tables, err := normalize.Tables(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing tables list response: %w", err)
	}

	return tables, nil
}

// Create implements console.TablesClient.Create.
func (c *TablesClient) Create(ctx context.Context, appID string, request *console.TableCreateRequest) (*console.Table, error) {
	if appID == "" {
		return nil, console.ErrAppIDRequired
	}

	if request == nil || request.Name == "" {
		return nil, console.ErrNameRequired
	}

	resp, err := c.httpClient.Post(ctx, appPath(appID, constants.AppPathTables), console.JSON(request))
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	var table console.Table

	err = http.DecodeJSON(resp, &table)
	if err != nil {
		return nil, fmt.Errorf("parsing table response: %w", err)
	}

	return &table, nil
}

// Delete implements console.TablesClient.Delete.
func (c *TablesClient) Delete(ctx context.Context, appID, tableName string) error {
	if appID == "" {
		return console.ErrAppIDRequired
	}

	if tableName == "" {
		return console.ErrNameRequired
	}

	_, err := c.httpClient.Delete(ctx, appPath(appID, constants.AppPathTables, tableName))
	if err != nil {
		return fmt.Errorf("deleting table: %w", err)
	}

	return nil
}
