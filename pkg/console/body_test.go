package console_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

func TestBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		body            console.Body
		wantPayload     string
		wantContentType string
	}{
		{name: "no body", body: console.NoBody},
		{name: "raw", body: console.RawBody("a,b\n1,2"), wantPayload: "a,b\n1,2"},
		{name: "json object", body: console.JSON(map[string]int{"value": 1}), wantPayload: `{"value":1}`, wantContentType: "application/json"},
		{name: "json number", body: console.JSONBody{Value: 5}, wantPayload: "5", wantContentType: "application/json"},
		{name: "json string", body: console.JSON("x"), wantPayload: `"x"`, wantContentType: "application/json"},
		{name: "json null", body: console.JSON(nil), wantPayload: "null", wantContentType: "application/json"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, contentType, err := tt.body.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.wantPayload, string(payload))
			assert.Equal(t, tt.wantContentType, contentType)
		})
	}
}

func TestJSONBody_EncodeError(t *testing.T) {
	t.Parallel()

	_, _, err := console.JSON(make(chan int)).Encode()
	require.Error(t, err)
}
