// middleware/ratelimit_test.go
package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsAndRefills(t *testing.T) {
	bucket := NewTokenBucket(3, 1000) // effectively instant refill

	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())

	slow := NewTokenBucket(2, 0.001)
	assert.True(t, slow.Allow())
	assert.True(t, slow.Allow())
	assert.False(t, slow.Allow(), "empty bucket must reject")

	fast := NewTokenBucket(1, 100)
	assert.True(t, fast.Allow())
	time.Sleep(50 * time.Millisecond)
	assert.True(t, fast.Allow(), "bucket should refill over time")
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, 3600)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// A different client gets its own bucket.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimitDisabledFlag(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.True(t, rateLimitDisabled())

	t.Setenv("RATE_LIMIT_ENABLED", "true")
	assert.False(t, rateLimitDisabled())

	t.Setenv("RATE_LIMIT_ENABLED", "")
	assert.False(t, rateLimitDisabled())
}
