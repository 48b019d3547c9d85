package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// AppsClient implements console.AppsClient.
type AppsClient struct {
	httpClient *http.Client
}

// NewAppsClient creates a new apps client.
func NewAppsClient(httpClient *http.Client) *AppsClient {
	return &AppsClient{
		httpClient: httpClient,
	}
}

// List implements console.AppsClient.List.
func (c *AppsClient) List(ctx context.Context) ([]console.App, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathApplications, nil)
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}

	apps := []console.App{}

	err = http.DecodeJSON(resp, &apps)
	if err != nil {
		return nil, fmt.Errorf("parsing apps list response: %w", err)
	}

	if apps == nil {
		apps = []console.App{}
	}

	return apps, nil
}

// Get implements console.AppsClient.Get.
func (c *AppsClient) Get(ctx context.Context, appID string) (*console.App, error) {
	if appID == "" {
		return nil, console.ErrAppIDRequired
	}

	path := console.BuildPath(constants.APIPathApplications, appID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting app: %w", err)
	}

	var app console.App

	err = http.DecodeJSON(resp, &app)
	if err != nil {
		return nil, fmt.Errorf("parsing app response: %w", err)
	}

	return &app, nil
}

// Create implements console.AppsClient.Create.
func (c *AppsClient) Create(ctx context.Context, request *console.AppCreateRequest) (*console.App, error) {
	if request == nil || request.Name == "" {
		return nil, console.ErrNameRequired
	}

	resp, err := c.httpClient.Post(ctx, constants.APIPathApplications, console.JSON(request))
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	var app console.App

	err = http.DecodeJSON(resp, &app)
	if err != nil {
		return nil, fmt.Errorf("parsing app response: %w", err)
	}

	return &app, nil
}

// Delete implements console.AppsClient.Delete.
func (c *AppsClient) Delete(ctx context.Context, appID string) error {
	if appID == "" {
		return console.ErrAppIDRequired
	}

	_, err := c.httpClient.Delete(ctx, console.BuildPath(constants.APIPathApplications, appID))
	if err != nil {
		return fmt.Errorf("deleting app: %w", err)
	}

	return nil
}
