package console

import (
	"encoding/json"
	"fmt"
)

// ContentTypeJSON is the media type sent with JSON bodies.
const ContentTypeJSON = "application/json"

// Body is a request body. Each variant decides its own encoding and whether a
// Content-Type header goes with it.
type Body interface {
	// Encode returns the payload and the Content-Type to send, which is empty
	// when no header should be injected.
	Encode() (payload []byte, contentType string, err error)
}

// noBody is the type of NoBody.
type noBody struct{}

// Encode implements Body.
func (noBody) Encode() ([]byte, string, error) {
	return nil, "", nil
}

// NoBody sends no payload and no Content-Type.
var NoBody Body = noBody{}

// RawBody is sent verbatim without a Content-Type header.
type RawBody string

// Encode implements Body.
func (b RawBody) Encode() ([]byte, string, error) {
	return []byte(b), "", nil
}

// JSONBody marshals Value to JSON and sends it as application/json. Bare
// primitives are allowed: JSONBody{Value: 5} sends "5".
type JSONBody struct {
	Value interface{}
}

// JSON wraps value in a JSONBody.
func JSON(value interface{}) JSONBody {
	return JSONBody{Value: value}
}

// Encode implements Body.
func (b JSONBody) Encode() ([]byte, string, error) {
	payload, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", fmt.Errorf("encoding JSON body: %w", err)
	}

	return payload, ContentTypeJSON, nil
}
