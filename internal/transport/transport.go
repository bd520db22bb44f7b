// Package transport carries gateway requests over HTTP. The gateway client
// depends only on the Transport interface so tests can substitute a fake.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single request when the caller's context has no deadline.
	DefaultTimeout = 10 * time.Second

	// MaxResponseBytes caps how much of a gateway body is read.
	MaxResponseBytes = 8 << 20
)

// ErrResponseTooLarge is returned when a body exceeds MaxResponseBytes.
var ErrResponseTooLarge = errors.New("gateway response too large")

// Request is a single call to the gateway. Path is joined to the base URL.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Transport sends a request and returns the raw response body. The status
// code is deliberately not part of the contract: callers decide success from
// the body alone.
type Transport interface {
	Do(ctx context.Context, req Request) ([]byte, error)
}

// HTTPTransport is the net/http implementation of Transport.
type HTTPTransport struct {
	baseURL    string
	timeout    time.Duration
	maxBody    int64
	httpClient *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL. A zero timeout
// falls back to DefaultTimeout.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		maxBody: MaxResponseBytes,
		httpClient: &http.Client{
			Timeout: timeout + time.Second,
		},
	}
}

// withTimeout wraps the context with a timeout if it doesn't already have one.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, r Request) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, t.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("gateway request timeout or canceled: %w", err)
		}
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if int64(len(raw)) > t.maxBody {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, t.maxBody)
	}

	return raw, nil
}

var _ Transport = (*HTTPTransport)(nil)
