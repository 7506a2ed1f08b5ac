package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/booth-data/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "198.51.100.7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucket_RejectsBeyondCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		Prefix:         "rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i, wantRemaining := range []string{"1", "0"} {
		rec := get(e, "/healthz")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Fatalf("request %d: expected remaining %s, got %q", i+1, wantRemaining, got)
		}
	}

	rec := get(e, "/healthz")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	secs, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	if err != nil || secs <= 0 || secs > 3600 {
		t.Fatalf("expected Retry-After within the refill interval, got %q", rec.Header().Get("Retry-After"))
	}
	if rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Fatalf("expected limit header 2, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderXRealIP, "198.51.100.8")
	other := httptest.NewRecorder()
	e.ServeHTTP(other, req)
	if other.Code != http.StatusOK {
		t.Fatalf("expected a fresh bucket for another ip, got %d", other.Code)
	}
}

func TestTokenBucket_RedisDownLetsRequestsThrough(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()

	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"}, rdb))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i := 0; i < 3; i++ {
		if rec := get(e, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 without redis, got %d", i+1, rec.Code)
		}
	}
}

func cachedServer(rdb *redis.Client, cfg config.CacheConfig, hits *int) *echo.Echo {
	e := echo.New()
	cache := NewEventCache(cfg, rdb)
	e.GET("/events/index.json", func(c echo.Context) error {
		*hits++
		return c.JSONBlob(http.StatusOK, []byte(`{"events":["c1"]}`))
	}, cache)
	e.GET("/v1/events/:eventId/booths", func(c echo.Context) error {
		*hits++
		return c.JSONBlob(http.StatusOK, []byte(`[{"id":1,"circle":"Tom & Jerry"}]`))
	}, cache)
	return e
}

func TestEventCache_ReplaysHit(t *testing.T) {
	_, rdb := newRedis(t)
	hits := 0
	e := cachedServer(rdb, config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "booths"}, &hits)

	first := get(e, "/v1/events/c1/booths?day=1")
	if first.Code != http.StatusOK || first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected MISS, got %d %q", first.Code, first.Header().Get("X-Cache"))
	}
	second := get(e, "/v1/events/c1/booths?day=1")
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("expected HIT, got %q", second.Header().Get("X-Cache"))
	}
	if second.Code != http.StatusOK || second.Body.String() != first.Body.String() {
		t.Fatalf("expected identical replay, got %d %q vs %q", second.Code, second.Body.String(), first.Body.String())
	}
	if !strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		t.Fatalf("expected stored content type, got %q", second.Header().Get(echo.HeaderContentType))
	}
	if hits != 1 {
		t.Fatalf("expected the handler to run once, ran %d times", hits)
	}

	if rec := get(e, "/v1/events/c1/booths?day=2"); rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected another query to miss, got %q", rec.Header().Get("X-Cache"))
	}
}

func TestEventCache_SkipsOversizedBodies(t *testing.T) {
	mr, rdb := newRedis(t)
	hits := 0
	e := cachedServer(rdb, config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "booths", MaxBodyBytes: 8}, &hits)

	get(e, "/v1/events/c1/booths")
	if rec := get(e, "/v1/events/c1/booths"); rec.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("expected truncated body not to be stored, got %q", rec.Header().Get("X-Cache"))
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected no keys, got %v", keys)
	}
}

func TestInvalidateEvent_DropsOnlyThatEvent(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "booths"}
	hits := 0
	e := cachedServer(rdb, cfg, &hits)

	get(e, "/events/index.json")
	get(e, "/v1/events/c1/booths")
	get(e, "/v1/events/c1/booths?tag=x")
	get(e, "/v1/events/c2/booths")
	if n := len(mr.Keys()); n != 4 {
		t.Fatalf("expected 4 cached responses, got %d: %v", n, mr.Keys())
	}

	if err := InvalidateEvent(context.Background(), cfg, rdb, "c1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "booths:event:c1:") {
			t.Fatalf("expected c1 keys to be gone, found %s", k)
		}
	}
	if n := len(mr.Keys()); n != 2 {
		t.Fatalf("expected index and c2 to survive, got %v", mr.Keys())
	}

	if err := InvalidateEvent(context.Background(), cfg, nil, "c2"); err != nil {
		t.Fatalf("expected nil client to be a no-op, got %v", err)
	}
}
