package http_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	consolehttp "github.com/fivetwenty-io/console-client/internal/http"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

func TestNormalizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    int
		wantBody    interface{}
	}{
		{
			name:        "message field",
			status:      404,
			body:        `{"message":"Not found"}`,
			wantMessage: "Not found",
			wantBody:    map[string]interface{}{"message": "Not found"},
		},
		{
			name:        "message and code",
			status:      400,
			body:        `{"code":8002,"message":"Table not found"}`,
			wantMessage: "Table not found",
			wantCode:    8002,
			wantBody:    map[string]interface{}{"code": float64(8002), "message": "Table not found"},
		},
		{
			name:        "raw text",
			status:      500,
			body:        "Internal Server Error",
			wantMessage: "Internal Server Error",
			wantBody:    map[string]interface{}{"message": "Internal Server Error"},
		},
		{
			name:        "JSON without message",
			status:      409,
			body:        `["conflict"]`,
			wantMessage: `["conflict"]`,
			wantBody:    []interface{}{"conflict"},
		},
		{
			name:        "empty body",
			status:      401,
			body:        "",
			wantMessage: "",
			wantBody:    map[string]interface{}{"message": ""},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := consolehttp.NormalizeError(tt.status, []byte(tt.body))

			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantBody, apiErr.Body)
			assert.NoError(t, apiErr.Unwrap())
		})
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")

	apiErr := consolehttp.TransportError(cause)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, cause.Error(), apiErr.Message)
	require.ErrorIs(t, apiErr, cause)

	existing := &console.APIError{Status: 404, Message: "Not found"}
	assert.Same(t, existing, consolehttp.TransportError(fmt.Errorf("wrapped: %w", existing)))
}
