package connectors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	for service := range DefaultRateLimits {
		rl := NewRateLimiter(service)
		require.NotNil(t, rl)
		assert.Equal(t, service, rl.Service())
		assert.True(t, rl.Allow())
	}
}

func TestRateLimiter_UnlimitedWhenRateNotPositive(t *testing.T) {
	rl := NewRateLimiterWithConfig(ServiceUniProt, RateLimitConfig{})
	for i := 0; i < 50; i++ {
		assert.True(t, rl.Allow())
	}
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	rl := NewRateLimiterWithConfig(ServiceUniProt, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	rl.RecordRateLimitError(time.Hour)
	assert.False(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, retryAfter("5"))
	assert.Equal(t, time.Duration(0), retryAfter(""))
	assert.Equal(t, time.Duration(0), retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&APIError{StatusCode: 503}))
	assert.False(t, IsTransient(&APIError{StatusCode: 400}))
	assert.False(t, IsTransient(context.Canceled))
}
