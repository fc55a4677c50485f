package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	userAgent             = "appshell/0.1"
	defaultRequestTimeout = 30 * time.Second
	requestIDHeader       = "X-Request-ID"
)

// Tracker observes request lifecycles. state.Activity implements it.
type Tracker interface {
	Begin()
	End(err error)
}

// Config holds the transport settings fixed at construction.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration // zero uses 30s
	ResourceTimeout time.Duration // zero uses 2x RequestTimeout
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport timeouts
// stand in for RequestTimeout; ResourceTimeout is still enforced per call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTracker registers an observer for request start and end.
func WithTracker(t Tracker) Option {
	return func(c *Client) { c.tracker = t }
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client performs requests against one base URL. It is safe for concurrent
// use; one instance is meant to be shared by every caller in the process.
//
// InFlight counts outstanding requests, so overlapping calls compose. LastError
// is the most recent failure seen by any call and is cleared when a call
// starts; with overlapping calls it reflects whichever finished last. Callers
// that need the outcome of their own call must use the returned error.
type Client struct {
	baseURL         string
	resourceTimeout time.Duration
	http            *http.Client
	logger          *slog.Logger
	tracker         Tracker
	metrics         *Metrics

	inFlight atomic.Int64
	mu       sync.RWMutex
	lastErr  error
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if _, err := parseAbsolute(base); err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
	}
	reqTimeout := cfg.RequestTimeout
	if reqTimeout <= 0 {
		reqTimeout = defaultRequestTimeout
	}
	resTimeout := cfg.ResourceTimeout
	if resTimeout <= 0 {
		resTimeout = 2 * reqTimeout
	}

	c := &Client{
		baseURL:         base,
		resourceTimeout: resTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = newHTTPClient(reqTimeout, resTimeout)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

func newHTTPClient(reqTimeout, resTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = reqTimeout
	return &http.Client{
		Timeout:   resTimeout,
		Transport: transport,
		// 3xx is reported to the caller as an HTTP error, never followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// InFlight returns the number of requests currently executing.
func (c *Client) InFlight() int { return int(c.inFlight.Load()) }

// Busy reports whether any request is outstanding.
func (c *Client) Busy() bool { return c.InFlight() > 0 }

// LastError returns the most recent observed failure, or nil.
func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// NoContent is a result type for endpoints whose body is ignored.
type NoContent struct{}

// Execute performs ep and decodes a 2xx JSON body into T.
func Execute[T any](ctx context.Context, c *Client, ep Endpoint) (T, error) {
	var out T
	err := c.track(ctx, string(ep.Method()), func(ctx context.Context) error {
		req, err := ep.Resolve(c.baseURL)
		if err != nil {
			return err
		}
		body, status, err := c.send(ctx, req)
		if err != nil {
			return err
		}
		if !isSuccess(status) {
			return statusError(KindHTTPError, status)
		}
		return decode(body, &out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Download fetches raw bytes from an absolute URL.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	var data []byte
	err := c.track(ctx, http.MethodGet, func(ctx context.Context) error {
		u, err := parseAbsolute(rawURL)
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return newError(KindInvalidURL, err)
		}
		body, status, err := c.send(ctx, req)
		if err != nil {
			return err
		}
		if !isSuccess(status) {
			return statusError(KindDownloadFailed, status)
		}
		data = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Upload posts raw bytes to an absolute URL.
func (c *Client) Upload(ctx context.Context, data []byte, rawURL string) error {
	return c.track(ctx, http.MethodPost, func(ctx context.Context) error {
		u, err := parseAbsolute(rawURL)
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(data))
		if err != nil {
			return newError(KindInvalidURL, err)
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		_, status, err := c.send(ctx, req)
		if err != nil {
			return err
		}
		if !isSuccess(status) {
			return statusError(KindUploadFailed, status)
		}
		return nil
	})
}

// track wraps one request with the shared in-flight and last-error bookkeeping.
// The deferred end runs on every exit path.
func (c *Client) track(ctx context.Context, method string, fn func(context.Context) error) (err error) {
	if c == nil {
		return newError(KindUnknown, fmt.Errorf("client is nil"))
	}
	c.begin()
	start := time.Now()
	defer func() {
		c.end(method, err, time.Since(start))
	}()
	return fn(ctx)
}

func (c *Client) begin() {
	c.inFlight.Add(1)
	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()
	if c.tracker != nil {
		c.tracker.Begin()
	}
	if c.metrics != nil {
		c.metrics.inFlight.Inc()
	}
}

func (c *Client) end(method string, err error, elapsed time.Duration) {
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
	}
	c.inFlight.Add(-1)
	if c.tracker != nil {
		c.tracker.End(err)
	}
	if c.metrics != nil {
		c.metrics.observe(method, err, elapsed)
	}
}

// send executes req under the resource timeout and returns the full body.
func (c *Client) send(ctx context.Context, req *http.Request) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.resourceTimeout)
	defer cancel()

	reqID := uuid.NewString()
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, reqID)

	c.logger.Debug("http request", "method", req.Method, "url", req.URL.String(), "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		c.logger.Debug("http request failed", "request_id", reqID, "kind", apiErr.Kind.String(), "error", err)
		return nil, 0, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 100 || resp.StatusCode > 999 {
		return nil, resp.StatusCode, newError(KindInvalidResponse, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, classifyTransport(err)
	}
	c.logger.Debug("http response", "request_id", reqID, "status", resp.StatusCode, "bytes", len(body))
	return body, resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

func decode[T any](body []byte, dest *T) error {
	if _, ok := any(dest).(*NoContent); ok {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return newError(KindDecodingError, err)
	}
	return nil
}
