// Package http dispatches console API requests: it builds URLs, encodes
// bodies, attaches credentials, and turns non-2xx responses into
// *console.APIError values.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/console-client/internal/constants"
	"github.com/fivetwenty-io/console-client/pkg/console"
)

// Logger is the logging surface used by the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// AuthProvider attaches credentials to outgoing requests.
type AuthProvider interface {
	Apply(ctx context.Context, header http.Header) error
}

// Request describes a single API call.
type Request struct {
	Method string
	// Path is appended to the base URL unless it is already absolute.
	Path    string
	Query   *console.Query
	Body    console.Body
	Headers map[string]string
	// SkipAuth sends the request without credentials.
	SkipAuth bool
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to one API base URL.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	auth         AuthProvider
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *console.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of transient failures (5xx, 429, connection errors).
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every HTTP exchange. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithAuth sets the credential provider.
func WithAuth(provider AuthProvider) Option {
	return func(c *Client) {
		c.auth = provider
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *console.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a client for baseURL. Without options it sends each
// request exactly once and never times out on its own.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = 0

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req. On a non-2xx status the response is returned together with a
// *console.APIError; on transport failure only the error is returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body := req.Body
	if body == nil {
		body = console.NoBody
	}

	payload, contentType, err := body.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	headers := make(http.Header)
	headers.Set("Accept", console.ContentTypeJSON)
	headers.Set("User-Agent", c.userAgent)

	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	if c.auth != nil && !req.SkipAuth {
		err = c.auth.Apply(ctx, headers)
		if err != nil {
			return nil, fmt.Errorf("applying credentials: %w", err)
		}
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	intercepted := &console.Request{
		Method:  req.Method,
		Path:    c.resolve(req.Path, req.Query),
		Headers: headers,
		Body:    payload,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, intercepted)
}

func (c *Client) send(ctx context.Context, req *console.Request) (*Response, error) {
	var rawBody interface{}
	if req.Body != nil {
		rawBody = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.Path, rawBody)
	if err != nil {
		return nil, TransportError(err)
	}

	httpReq.Header = req.Headers

	c.logRequest(req)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.fail(ctx, req, TransportError(err))
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.fail(ctx, req, TransportError(err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	var callErr error
	if !isSuccess(resp.StatusCode) {
		callErr = NormalizeError(resp.StatusCode, respBody)
	}

	c.logResponse(req, resp)

	err = c.interceptors.ExecuteResponseInterceptors(ctx, req, &console.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Error:      callErr,
	})
	if err != nil {
		return resp, err
	}

	if callErr != nil {
		return resp, callErr
	}

	return resp, nil
}

// fail runs the response interceptors for a request that got no response.
func (c *Client) fail(ctx context.Context, req *console.Request, apiErr *console.APIError) error {
	if c.debug && c.logger != nil {
		c.logger.Error("HTTP Request Failed", map[string]interface{}{
			"method": req.Method,
			"url":    req.Path,
			"error":  apiErr.Message,
		})
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, &console.Response{Error: apiErr})
	if err != nil {
		return err
	}

	return apiErr
}

// resolve returns the absolute URL for path with the query appended.
func (c *Client) resolve(path string, query *console.Query) string {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}

		target = c.baseURL + path
	}

	encoded := query.Encode()
	if encoded == "" {
		return target
	}

	if strings.Contains(target, "?") {
		return target + "&" + encoded
	}

	return target + "?" + encoded
}

func (c *Client) logRequest(req *console.Request) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.Path,
		"bytes":  len(req.Body),
	})
}

func (c *Client) logResponse(req *console.Request, resp *Response) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method": req.Method,
		"url":    req.Path,
		"status": resp.StatusCode,
		"bytes":  len(resp.Body),
	})
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query *console.Query) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body console.Body) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body console.Body) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body console.Body) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DecodeJSON unmarshals the response body into target. An empty body leaves
// target untouched.
func DecodeJSON(resp *Response, target interface{}) error {
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	err := json.Unmarshal(resp.Body, target)
	if err != nil {
		return fmt.Errorf("%w: %w", console.ErrUnexpectedResponse, err)
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
