package connectors

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Service identifies an upstream API for rate limiting purposes.
type Service string

const (
	// ServiceUniProt is the UniProt REST API.
	ServiceUniProt Service = "uniprot"
	// ServiceTmAlphaFold is the TmAlphaFold API.
	ServiceTmAlphaFold Service = "tmalphafold"
	// ServiceAlphaFold is the AlphaFold DB API.
	ServiceAlphaFold Service = "alphafold"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits are conservative defaults for each upstream.
// The public academic services publish no hard quota.
var DefaultRateLimits = map[Service]RateLimitConfig{
	ServiceUniProt:     {RequestsPerSecond: 5.0, BurstSize: 5},
	ServiceTmAlphaFold: {RequestsPerSecond: 2.0, BurstSize: 2},
	ServiceAlphaFold:   {RequestsPerSecond: 5.0, BurstSize: 5},
}

// defaultBackoff applies when a 429 carries no Retry-After.
const defaultBackoff = 30 * time.Second

// RateLimiter provides token-bucket throttling with backoff after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service Service
}

// NewRateLimiter creates a rate limiter with the service defaults.
func NewRateLimiter(service Service) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 2.0, BurstSize: 2}
	}
	return NewRateLimiterWithConfig(service, cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
// A non-positive rate disables throttling.
func NewRateLimiterWithConfig(service Service, cfg RateLimitConfig) *RateLimiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		service: service,
	}
}

// Service returns the service the limiter throttles.
func (r *RateLimiter) Service() Service {
	return r.service
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		timer := time.NewTimer(time.Until(retryAt))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// Allow reports whether a request can be made immediately.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
