package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

// Test static errors.
var (
	ErrTestPersist = errors.New("disk full")
)

// recordedRequest is what the test server saw for one call.
type recordedRequest struct {
	Method      string
	Path        string
	Query       string
	Body        string
	ContentType string
	AuthKey     string
	Auth        string
	Header      http.Header
}

// recorder collects requests received by a test server.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *recorder) record(t *testing.T, req *http.Request) recordedRequest {
	t.Helper()

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	rec := recordedRequest{
		Method:      req.Method,
		Path:        req.URL.EscapedPath(),
		Query:       req.URL.RawQuery,
		Body:        string(body),
		ContentType: req.Header.Get("Content-Type"),
		AuthKey:     req.Header.Get("auth-key"),
		Auth:        req.Header.Get("Authorization"),
		Header:      req.Header.Clone(),
	}

	r.mu.Lock()
	r.requests = append(r.requests, rec)
	r.mu.Unlock()

	return rec
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]recordedRequest(nil), r.requests...)
}

// newTestClient starts a server answering with handler and returns a client
// pointed at it for both the console and the billing API.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, req recordedRequest), configure ...func(*console.Config)) (*Client, *recorder) {
	t.Helper()

	rec := &recorder{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, rec.record(t, r))
	}))
	t.Cleanup(server.Close)

	config := &console.Config{
		ConsoleURL: server.URL,
		BillingURL: server.URL,
	}

	for _, fn := range configure {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)

	return client, rec
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

type memoryPersister struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *memoryPersister) SaveAuthKey(authKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, authKey)

	return p.err
}

type memoryMirror struct {
	mu      sync.Mutex
	payload []byte
}

func (m *memoryMirror) Get(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.payload == nil {
		return nil, console.ErrStatusMirrorMiss
	}

	return m.payload, nil
}

func (m *memoryMirror) Put(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payload = payload

	return nil
}

func (m *memoryMirror) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payload = nil

	return nil
}
