package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// BillingClient implements console.BillingClient against the billing API,
// which has its own base URL and credential.
type BillingClient struct {
	httpClient *http.Client
}

// NewBillingClient creates a new billing client. A nil httpClient means
// billing is not configured and every call fails with
// console.ErrBillingNotConfigured.
func NewBillingClient(httpClient *http.Client) *BillingClient {
	return &BillingClient{
		httpClient: httpClient,
	}
}

// GetPlan implements console.BillingClient.GetPlan.
func (c *BillingClient) GetPlan(ctx context.Context, appID string) (*console.BillingPlan, error) {
	err := c.ready(appID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, console.BuildPath(constants.APIPathBillingApps, appID, "plan"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting billing plan: %w", err)
	}

	var plan console.BillingPlan

	err = http.DecodeJSON(resp, &plan)
	if err != nil {
		return nil, fmt.Errorf("parsing billing plan response: %w", err)
	}

	return &plan, nil
}

// ListInvoices implements console.BillingClient.ListInvoices.
func (c *BillingClient) ListInvoices(ctx context.Context, appID string) ([]console.Invoice, error) {
	err := c.ready(appID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, console.BuildPath(constants.APIPathBillingApps, appID, "invoices"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	var invoices []console.Invoice

	err = http.DecodeJSON(resp, &invoices)
	if err != nil {
		return nil, fmt.Errorf("parsing invoices response: %w", err)
	}

	if invoices == nil {
		invoices = []console.Invoice{}
	}

	return invoices, nil
}

func (c *BillingClient) ready(appID string) error {
	if c.httpClient == nil {
		return console.ErrBillingNotConfigured
	}

	if appID == "" {
		return console.ErrAppIDRequired
	}

	return nil
}
