package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	evdsbridge "github.com/wippyai/evds-bridge"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds one complete round trip including body read.
	// The core specifies no timeout of its own; this is the collaborator's
	// documented default.
	DefaultTimeout = 30 * time.Second

	// DefaultAttempts matches the reference behavior of retrying a failed
	// transfer twice before giving up. Retry lives here, never in the core.
	DefaultAttempts = 3

	defaultUserAgent = "evds-bridge/1"
)

// Options configures the HTTP collaborator. The zero value is usable.
type Options struct {
	// Timeout per attempt. Zero means DefaultTimeout.
	Timeout time.Duration
	// Attempts is the total number of tries for connection-level failures.
	// Non-2xx statuses are returned to the caller, not retried. Zero means
	// DefaultAttempts.
	Attempts int
	// UserAgent overrides the request User-Agent header.
	UserAgent string
	// Client supplies a pre-configured http.Client. Timeout is still applied
	// per attempt through the request context.
	Client *http.Client
}

// HTTP is the default Transport implementation backed by net/http.
type HTTP struct {
	client    *http.Client
	timeout   time.Duration
	attempts  int
	userAgent string
}

var _ evdsbridge.Transport = (*HTTP)(nil)

// New creates an HTTP transport. A nil opts selects all defaults.
func New(opts *Options) *HTTP {
	if opts == nil {
		opts = &Options{}
	}
	t := &HTTP{
		client:    opts.Client,
		timeout:   opts.Timeout,
		attempts:  opts.Attempts,
		userAgent: opts.UserAgent,
	}
	if t.client == nil {
		t.client = &http.Client{}
	}
	if t.timeout <= 0 {
		t.timeout = DefaultTimeout
	}
	if t.attempts <= 0 {
		t.attempts = DefaultAttempts
	}
	if t.userAgent == "" {
		t.userAgent = defaultUserAgent
	}
	return t
}

// Get performs a blocking GET and returns the status and full body. Only
// connection-level failures are retried; the last attempt's error wins.
func (t *HTTP) Get(ctx context.Context, url string) (*evdsbridge.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= t.attempts; attempt++ {
		resp, err := t.once(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		Logger().Debug("attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max", t.attempts),
			zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (t *HTTP) once(ctx context.Context, url string) (*evdsbridge.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &evdsbridge.Response{Status: resp.StatusCode, Body: body}, nil
}
