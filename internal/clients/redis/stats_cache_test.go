package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/scrapbook-backend/internal/logger"
)

func newTestCache(t *testing.T) (StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewStatsCacheWithClient(log, rdb), mr
}

func TestStatsCacheMissThenHit(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "user:stats:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	if err := cache.Set(ctx, "user:stats:abc", []byte(`{"total_reviews":3}`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	raw, ok, err := cache.Get(ctx, "user:stats:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if string(raw) != `{"total_reviews":3}` {
		t.Fatalf("unexpected value: %s", raw)
	}
}

func TestStatsCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "user:stats:abc", []byte(`{}`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(time.Hour + time.Second)

	_, ok, err := cache.Get(ctx, "user:stats:abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected entry to expire after its TTL")
	}
}
