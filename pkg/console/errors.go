package console

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the single error kind returned for failed console calls, both
// for non-2xx responses and for transport failures (Status 0).
type APIError struct {
	// Status is the HTTP status exactly as received, or 0 when no response arrived.
	Status int `json:"status" yaml:"status"`
	// Message is the body's "message" field, or the raw body text.
	Message string `json:"message" yaml:"message"`
	// Body is the parsed JSON body, or {"message": <raw text>} when it was not JSON.
	Body interface{} `json:"body" yaml:"body"`
	// Code is the body's numeric "code" field when present.
	Code int `json:"code,omitempty" yaml:"code,omitempty"`
	// Err is the transport failure, if any.
	Err error `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.Status)
	}

	if e.Status == 0 {
		return "request failed: " + message
	}

	if e.Code != 0 {
		return fmt.Sprintf("status %d: %s (code: %d)", e.Status, message, e.Code)
	}

	return fmt.Sprintf("status %d: %s", e.Status, message)
}

// Unwrap returns the transport failure, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrConsoleURLRequired   = errors.New("console URL is required")
	ErrBillingNotConfigured = errors.New("billing API is not configured")
	ErrNotLoggedIn          = errors.New("no console session")
	ErrAppIDRequired        = errors.New("application ID is required")
	ErrNameRequired         = errors.New("name is required")
	ErrUnexpectedResponse   = errors.New("unexpected response")
	ErrStatusMirrorMiss     = errors.New("status not found in mirror")
	ErrInvalidCacheEntry    = errors.New("invalid cache entry")
	ErrInvalidCountResponse = errors.New("invalid count response")
	ErrInterceptorFailed    = errors.New("interceptor failed")
)

// StatusOf returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusOf(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	return 0
}

// IsNotFound reports whether err is a 404 from the console.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the console.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 from the console.
func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}

// IsTransportError reports whether err is an APIError raised before any
// response was received.
func IsTransportError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.Status == 0
}
