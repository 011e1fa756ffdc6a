// Package ratelimit throttles requests per client IP, backed by Redis when
// available and by in-process token buckets otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// maxLocalKeys bounds the in-process limiter map.
const maxLocalKeys = 10000

// Limiter decides whether one more request for key fits in the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by every API instance
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxRequests: maxRequests, window: window}
}

// getKey generates the Redis key for the current window of key
func (l *RedisLimiter) getKey(key string, now time.Time) string {
	bucket := now.UnixMilli() / l.window.Milliseconds()
	return fmt.Sprintf("ratelimit:%s:%d", key, bucket)
}

// Allow increments the window counter and reports whether it is within the limit
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := l.getKey(key, time.Now())

	count, err := l.client.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, windowKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}

	return count <= int64(l.maxRequests), nil
}

// LocalLimiter keeps one token bucket per key in memory
type LocalLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewLocalLimiter allows bursts of maxRequests refilled evenly over window.
func NewLocalLimiter(maxRequests int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(window / time.Duration(maxRequests)),
		burst:    maxRequests,
	}
}

// getLimiter returns the bucket for key, creating it on first use
func (l *LocalLimiter) getLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		if len(l.limiters) >= maxLocalKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}

	return limiter
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.getLimiter(key).Allow(), nil
}
