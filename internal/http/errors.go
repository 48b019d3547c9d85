package http

import (
	"encoding/json"
	"errors"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

// NormalizeError builds the error for a non-2xx response. The body is parsed
// as JSON when possible and wrapped as {"message": <raw text>} otherwise.
func NormalizeError(status int, body []byte) *console.APIError {
	raw := string(body)

	var parsed interface{}

	err := json.Unmarshal(body, &parsed)
	if err != nil {
		return &console.APIError{
			Status:  status,
			Message: raw,
			Body:    map[string]interface{}{"message": raw},
		}
	}

	apiErr := &console.APIError{
		Status:  status,
		Message: raw,
		Body:    parsed,
	}

	if fields, ok := parsed.(map[string]interface{}); ok {
		if message, ok := fields["message"].(string); ok {
			apiErr.Message = message
		}

		if code, ok := fields["code"].(float64); ok {
			apiErr.Code = int(code)
		}
	}

	return apiErr
}

// TransportError wraps a failure that happened before a response arrived.
func TransportError(err error) *console.APIError {
	apiErr := &console.APIError{}
	if errors.As(err, &apiErr) {
		return apiErr
	}

	message := err.Error()

	return &console.APIError{
		Status:  0,
		Message: message,
		Body:    map[string]interface{}{"message": message},
		Err:     err,
	}
}
