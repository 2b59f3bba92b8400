package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BlocksWithinWindow(t *testing.T) {
	now := time.Now()
	l := NewMemoryLimiter(2, 10*time.Second)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, _ := l.Allow(context.Background(), "1.2.3.4")
	require.False(t, ok)

	ok, _ = l.Allow(context.Background(), "5.6.7.8")
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	ok, _ = l.Allow(context.Background(), "1.2.3.4")
	require.True(t, ok)
}

func TestMemoryLimiter_SweepRemovesExpired(t *testing.T) {
	base := time.Now()
	l := NewMemoryLimiter(1, 10*time.Second)
	l.counts["expired"] = &windowCount{start: base.Add(-20 * time.Second), n: 1}
	l.counts["active"] = &windowCount{start: base.Add(-2 * time.Second), n: 1}

	l.mu.Lock()
	l.sweepLocked(base)
	l.mu.Unlock()

	require.NotContains(t, l.counts, "expired")
	require.Contains(t, l.counts, "active")
	require.False(t, l.lastSweep.IsZero())
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit_Middleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := RateLimit(NewMemoryLimiter(1, time.Minute))(ok)

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/image/1/song/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusCreated, do("10.0.0.1:1111"))
	require.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:2222"))
	require.Equal(t, http.StatusCreated, do("10.0.0.2:1111"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := RateLimit(brokenLimiter{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 1, time.Minute)
	l.prefix = "test_upload_limit:" + time.Now().Format(time.RFC3339Nano) + ":"

	ok, err := l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err := client.TTL(context.Background(), l.prefix+"1.2.3.4").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	ok, err = l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.False(t, ok)

	ttl2, err := client.TTL(context.Background(), l.prefix+"1.2.3.4").Result()
	require.NoError(t, err)
	require.LessOrEqual(t, ttl2, ttl)
}
