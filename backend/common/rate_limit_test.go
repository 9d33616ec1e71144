package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitRequest_AllowsWithinLimit(t *testing.T) {
	RedisEnabled = false
	key := "test:within:" + time.Now().String()

	for i := 0; i < 5; i++ {
		assert.True(t, RateLimitRequest(key, 5, time.Minute))
	}
	assert.False(t, RateLimitRequest(key, 5, time.Minute))
}

func TestRateLimitRequest_WindowSlides(t *testing.T) {
	RedisEnabled = false
	key := "test:slides:" + time.Now().String()

	assert.True(t, RateLimitRequest(key, 1, 50*time.Millisecond))
	assert.False(t, RateLimitRequest(key, 1, 50*time.Millisecond))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, RateLimitRequest(key, 1, 50*time.Millisecond))
}

func TestRateLimitRequest_KeysAreIndependent(t *testing.T) {
	RedisEnabled = false
	now := time.Now().String()

	assert.True(t, RateLimitRequest("test:a:"+now, 1, time.Minute))
	assert.True(t, RateLimitRequest("test:b:"+now, 1, time.Minute))
}
