package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

func TestBillingClient(t *testing.T) {
	t.Parallel()

	client, rec := newTestClient(t, func(w http.ResponseWriter, req recordedRequest) {
		switch req.Path {
		case "/billing/apps/app/plan":
			writeJSON(w, http.StatusOK, console.BillingPlan{ID: "p1", Name: "Springboard", Price: 0})
		case "/billing/apps/app/invoices":
			writeJSON(w, http.StatusOK, []console.Invoice{{ID: "i1", Amount: 25, Status: "paid"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, func(config *console.Config) {
		config.BillingToken = "c2VjcmV0"
		config.AuthKey = "session-key"
	})

	ctx := context.Background()

	plan, err := client.Billing().GetPlan(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "Springboard", plan.Name)

	invoices, err := client.Billing().ListInvoices(ctx, "app")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "paid", invoices[0].Status)

	for _, req := range rec.all() {
		assert.Equal(t, "Basic c2VjcmV0", req.Auth)
		assert.Empty(t, req.AuthKey, "console session key must not reach the billing API")
	}
}

func TestBillingClient_NotConfigured(t *testing.T) {
	t.Parallel()

	client, err := New(context.Background(), &console.Config{ConsoleURL: "https://develop.example.com"})
	require.NoError(t, err)

	_, err = client.Billing().GetPlan(context.Background(), "app")
	require.ErrorIs(t, err, console.ErrBillingNotConfigured)

	_, err = client.Billing().ListInvoices(context.Background(), "app")
	require.ErrorIs(t, err, console.ErrBillingNotConfigured)
}
