// Package httpclient is the JSON-over-HTTP plumbing shared by the downstream API clients.
//
// Every call gets a client span and a latency observation labelled by operation. GET
// requests answered with 404 report "not found" to the caller instead of an error; every
// other non-2xx status becomes an *APIError. Nothing is retried.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"schemereg/pkg/requestcontext"
)

// APIError is a non-2xx answer from a downstream API.
type APIError struct {
	API        string
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.API, e.Operation, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// TokenSource supplies the bearer token for a call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token. The empty token sends no Authorization header.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Metrics records downstream call latency.
type Metrics struct {
	Latency *prometheus.HistogramVec
}

// NewMetrics registers client metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Latency: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schemereg_downstream_request_duration_seconds",
			Help:    "Latency of downstream API calls by api, operation and status",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"api", "operation", "status"}),
	}
}

func (m *Metrics) observe(api, op string, status int, d time.Duration) {
	if m != nil {
		m.Latency.WithLabelValues(api, op, strconv.Itoa(status)).Observe(d.Seconds())
	}
}

// Client calls one downstream API.
type Client struct {
	api     string
	baseURL string
	http    *http.Client
	tokens  TokenSource
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithMetrics records call latency.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the API called api (used in spans, metrics and errors).
func New(api, baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		api:     api,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  StaticToken(""),
		tracer:  otel.Tracer("schemereg/" + api),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a completed call with its body read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends a request to path and returns the response when the status is 2xx. Build the
// body with the given content type; pass a nil body for none.
func (c *Client) Do(ctx context.Context, op, method, path, contentType string, body io.Reader, header http.Header) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, c.api+"."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := c.send(ctx, op, method, path, contentType, body, header)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.observe(c.api, op, status, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, op, method, path, contentType string, body io.Reader, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: build request: %w", c.api, op, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if reqID := requestcontext.RequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s %s: acquire token: %w", c.api, op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.api, op, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}
	if err != nil {
		return resp, fmt.Errorf("%s %s: read body: %w", c.api, op, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &APIError{API: c.api, Operation: op, StatusCode: httpResp.StatusCode, Body: truncate(data, 512)}
	}
	return resp, nil
}

// GetJSON decodes a GET response into dest. It returns false with a nil error on 404.
func (c *Client) GetJSON(ctx context.Context, op, path string, dest any) (bool, error) {
	resp, err := c.Do(ctx, op, http.MethodGet, path, "", nil, nil)
	if IsStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := decode(resp.Body, dest); err != nil {
		return false, fmt.Errorf("%s %s: decode response: %w", c.api, op, err)
	}
	return true, nil
}

// SendJSON sends payload as JSON and decodes any response body into dest when non-nil.
func (c *Client) SendJSON(ctx context.Context, op, method, path string, payload, dest any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", c.api, op, err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	resp, err := c.Do(ctx, op, method, path, contentType, body, nil)
	if err != nil {
		return err
	}
	if dest != nil {
		if err := decode(resp.Body, dest); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", c.api, op, err)
		}
	}
	return nil
}

func decode(data []byte, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
