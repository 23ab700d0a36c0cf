package connectors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rostlab/tmvis/internal/core/domain"
	"github.com/rostlab/tmvis/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 2

	// RetryDelay is the initial delay between retries.
	RetryDelay = 500 * time.Millisecond

	// DefaultMaxBodyBytes bounds a response body (AlphaFold models reach a few MB).
	DefaultMaxBodyBytes = 32 << 20

	userAgent = "tmvis (+https://github.com/rostlab/tmvis)"
)

// Config holds the HTTP settings of one upstream.
type Config struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string

	// Timeout bounds every request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond overrides the service's default throttle when positive.
	RequestsPerSecond float64

	// MaxBodyBytes bounds a response body. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Response is a fetched body with its content type.
type Response struct {
	Body        []byte
	ContentType string
}

// Client performs throttled GET requests against one upstream.
type Client struct {
	service Service
	baseURL string
	http    *http.Client
	limiter *RateLimiter
	maxBody int64
	log     logger.Scoped
}

// NewClient creates a client for a service.
func NewClient(service Service, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	limiter := NewRateLimiter(service)
	if cfg.RequestsPerSecond > 0 {
		limiter = NewRateLimiterWithConfig(service, RateLimitConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         int(cfg.RequestsPerSecond) + 1,
		})
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &Client{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		limiter: limiter,
		maxBody: maxBody,
		log:     logger.For(string(service)),
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches a URL. 404 maps to domain.ErrNoCoverage and 429 to
// domain.ErrRateLimited; 5xx responses and network errors are retried.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	var lastErr error
	delay := RetryDelay

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug("retry %d after %s: %v", attempt, delay, lastErr)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}

		resp, err := c.do(ctx, rawURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || !c.retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) retryable(err error) bool {
	if errors.Is(err, domain.ErrNoCoverage) || errors.Is(err, domain.ErrRateLimited) ||
		errors.Is(err, ErrResponseTooLarge) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return IsTransient(err)
	}
	return true
}

func (c *Client) do(ctx context.Context, rawURL string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("GET %s", rawURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.service, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNoCoverage
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		return nil, fmt.Errorf("%s: %w", c.service, domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{Service: c.service, StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", c.service, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%s: %w: over %d bytes (URL: %s)", c.service, ErrResponseTooLarge, c.maxBody, rawURL)
	}
	return &Response{Body: body, ContentType: resp.Header.Get("Content-Type")}, nil
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
