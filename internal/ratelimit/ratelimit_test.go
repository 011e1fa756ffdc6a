package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/friend-app/internal/httputil"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLocalLimiter_PerKeyBudget(t *testing.T) {
	l := NewLocalLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "1.1.1.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "2.2.2.2")
	assert.True(t, ok)
}

func TestMiddleware_Returns429(t *testing.T) {
	h := Middleware(NewLocalLimiter(1, time.Hour))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Same IP from a different source port shares the budget.
	req.RemoteAddr = "10.0.0.1:6666"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests from this IP, please try again later.", body.Error)
	assert.Equal(t, httputil.CodeTooManyRequests, body.Code)
}

func TestMiddleware_FailsOpen(t *testing.T) {
	h := Middleware(failingLimiter{})(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedisLimiter_UnreachableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, 10, time.Minute)
	_, err := l.Allow(context.Background(), "1.1.1.1")
	assert.Error(t, err)

	h := Middleware(l)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRedisLimiter_WindowKey(t *testing.T) {
	l := NewRedisLimiter(nil, 10, time.Minute)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, l.getKey("ip", base), l.getKey("ip", base.Add(30*time.Second)))
	assert.NotEqual(t, l.getKey("ip", base), l.getKey("ip", base.Add(time.Minute)))
}
