package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client), mr
}

func TestCacheSetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "quiz_all", []byte(`{"a":1}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, err := cache.Get(ctx, "quiz_all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(raw) != `{"a":1}` {
		t.Fatalf("unexpected value ok=%v raw=%s", ok, raw)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, ok, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestCacheExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "quiz_all", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "quiz_all")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected entry expired")
	}
}

func TestCacheDelete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "quiz_all", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Delete(ctx, "quiz_all"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, _ := cache.Get(ctx, "quiz_all")
	if ok {
		t.Fatalf("expected entry gone after delete")
	}
}

func TestCacheKeysAreNamespaced(t *testing.T) {
	cache, mr := newTestCache(t)

	if err := cache.Set(context.Background(), "quiz_all", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("yabby:cache:quiz_all") {
		t.Fatalf("expected namespaced key, got keys %v", mr.Keys())
	}
}
