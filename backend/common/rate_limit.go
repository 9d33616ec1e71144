package common

import (
	"context"
	"sync"
	"time"
)

// Sliding-window rate limiter, Redis-backed when Redis is enabled and an
// in-memory store otherwise. Keys expire after RateLimitKeyExpirationDuration.

type inMemoryRateLimiter struct {
	store sync.Map // key -> *[]time.Time
	mutex sync.Mutex
}

var memoryRateLimiter inMemoryRateLimiter
var cleanupOnce sync.Once

func (l *inMemoryRateLimiter) cleanupLoop() {
	for {
		time.Sleep(RateLimitKeyExpirationDuration)
		cutoff := time.Now().Add(-RateLimitKeyExpirationDuration)
		l.store.Range(func(key, value any) bool {
			l.mutex.Lock()
			stamps := value.(*[]time.Time)
			if len(*stamps) == 0 || (*stamps)[len(*stamps)-1].Before(cutoff) {
				l.store.Delete(key)
			}
			l.mutex.Unlock()
			return true
		})
	}
}

func (l *inMemoryRateLimiter) request(key string, maxRequestNum int, duration time.Duration) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	now := time.Now()
	value, _ := l.store.LoadOrStore(key, &[]time.Time{})
	stamps := value.(*[]time.Time)
	cutoff := now.Add(-duration)
	kept := (*stamps)[:0]
	for _, t := range *stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	*stamps = kept
	if len(*stamps) >= maxRequestNum {
		return false
	}
	*stamps = append(*stamps, now)
	return true
}

func redisRateLimitRequest(key string, maxRequestNum int, duration time.Duration) bool {
	ctx := context.Background()
	count, err := RDB.Incr(ctx, key).Result()
	if err != nil {
		SysError("rate limit Redis error: " + err.Error())
		return true
	}
	if count == 1 {
		RDB.Expire(ctx, key, duration)
	}
	return count <= int64(maxRequestNum)
}

// RateLimitRequest reports whether the caller identified by key is within
// maxRequestNum requests per duration.
func RateLimitRequest(key string, maxRequestNum int, duration time.Duration) bool {
	if RedisEnabled {
		return redisRateLimitRequest("rateLimit:"+key, maxRequestNum, duration)
	}
	cleanupOnce.Do(func() {
		go memoryRateLimiter.cleanupLoop()
	})
	return memoryRateLimiter.request(key, maxRequestNum, duration)
}
