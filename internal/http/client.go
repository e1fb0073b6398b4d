// Package http is the transport shared by the authenticator and the resource
// clients. It builds requests, performs one round trip (or more when retries are
// configured), runs interceptors and maps non-2xx statuses to qtest error kinds.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger is the logging surface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Decorator wraps the underlying round tripper, for example to attach credentials.
type Decorator func(base http.RoundTripper) http.RoundTripper

// Client is an HTTP client bound to one host.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *qtest.InterceptorChain
	decorators   []Decorator
}

// Request describes one API call. Path is relative to the base URL and may carry
// a query string; Query is merged into it. Form takes precedence over Body.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Form    url.Values
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Success reports whether the status is 2xx.
func (r *Response) Success() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
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

// WithRetryConfig enables retries on connection errors, 429 and 5xx.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithTransportDecorator wraps the round tripper. Decorators apply in the order given,
// the last one being outermost.
func WithTransportDecorator(decorator Decorator) Option {
	return func(c *Client) {
		c.decorators = append(c.decorators, decorator)
	}
}

// WithInterceptors sets the interceptor chain run around every call.
func WithInterceptors(chain *qtest.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	// Hand the final response back instead of an opaque "giving up" error so the
	// status can be mapped to an error kind.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		interceptors: qtest.NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	for _, decorate := range client.decorators {
		retryClient.HTTPClient.Transport = decorate(retryClient.HTTPClient.Transport)
	}

	if client.logger != nil && client.debug && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the host the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs the request and maps a non-2xx status to an error: 404 to
// *qtest.NotFoundError, other statuses on POST, PUT and PATCH to
// *qtest.ValidationError, and the rest to *qtest.StatusError. The response is
// returned alongside the error whenever one was received.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return resp, err
	}

	if resp.Success() {
		return resp, nil
	}

	return resp, statusError(req, resp)
}

// Send performs the request without looking at the status. It only fails when
// the request cannot be built, an interceptor rejects it or no response was
// received.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	intercepted := &qtest.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
		Body:    body,
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, fmt.Errorf("preparing request: %w", err)
	}

	target, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, bodyReader(intercepted.Body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, values := range intercepted.Headers {
		httpReq.Header[key] = values
	}

	c.logRequest(httpReq, loggableBody(req, intercepted.Body))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		transportErr := &qtest.TransportError{Method: req.Method, URL: target, Err: err}
		c.runResponseInterceptors(ctx, intercepted, &qtest.Response{Error: transportErr})

		return nil, transportErr
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		transportErr := &qtest.TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("reading response body: %w", err)}
		c.runResponseInterceptors(ctx, intercepted, &qtest.Response{StatusCode: resp.StatusCode, Error: transportErr})

		return nil, transportErr
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	c.logResponse(httpReq, response, loggableResponseBody(req, response.Body))
	c.runResponseInterceptors(ctx, intercepted, &qtest.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	})

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func (c *Client) buildURL(req *Request) (string, error) {
	target, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", c.baseURL+req.Path, err)
	}

	if len(req.Query) > 0 {
		query := target.Query()

		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		target.RawQuery = query.Encode()
	}

	return target.String(), nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *qtest.Request, resp *qtest.Response) {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
			"error":  err.Error(),
		})
	}
}

func (c *Client) logRequest(req *retryablehttp.Request, body string) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.String(),
		"headers": redactHeaders(req.Header),
		"body":    body,
	})
}

func (c *Client) logResponse(req *retryablehttp.Request, resp *Response, body string) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL.String(),
		"status_code": resp.StatusCode,
		"body":        body,
	})
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.Form != nil {
		return []byte(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	if raw, ok := req.Body.([]byte); ok {
		return raw, "application/json", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return data, "application/json", nil
}

func bodyReader(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}

func statusError(req *Request, resp *Response) error {
	message := qtest.ParseErrorBody(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &qtest.NotFoundError{Method: req.Method, Path: req.Path, Message: message}
	case isWrite(req.Method):
		return &qtest.ValidationError{Method: req.Method, Path: req.Path, StatusCode: resp.StatusCode, Message: message}
	default:
		return &qtest.StatusError{Method: req.Method, Path: req.Path, StatusCode: resp.StatusCode, Message: message}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// loggableBody masks credentials carried in form bodies.
func loggableBody(req *Request, body []byte) string {
	if req.Form == nil {
		return string(body)
	}

	masked := url.Values{}

	for key, values := range req.Form {
		if key == "password" {
			masked.Set(key, constants.MaskedSecret)

			continue
		}

		masked[key] = values
	}

	return masked.Encode()
}

// secretResponseFields are masked in logged bodies of form requests, which
// are only sent to the token endpoint.
var secretResponseFields = []string{"access_token", "refresh_token", "id_token"}

// loggableResponseBody masks tokens in the response to a form request. A body
// that is not a JSON object is replaced entirely.
func loggableResponseBody(req *Request, body []byte) string {
	if req.Form == nil {
		return string(body)
	}

	var fields map[string]json.RawMessage

	err := json.Unmarshal(body, &fields)
	if err != nil || fields == nil {
		return constants.MaskedSecret
	}

	masked, _ := json.Marshal(constants.MaskedSecret)

	for _, key := range secretResponseFields {
		if _, ok := fields[key]; ok {
			fields[key] = masked
		}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return constants.MaskedSecret
	}

	return string(data)
}

func redactHeaders(headers http.Header) map[string]string {
	redacted := make(map[string]string, len(headers))

	for key, values := range headers {
		if strings.EqualFold(key, "Authorization") {
			redacted[key] = constants.MaskedSecret

			continue
		}

		redacted[key] = strings.Join(values, ", ")
	}

	return redacted
}
