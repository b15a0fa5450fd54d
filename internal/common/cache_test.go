package common

import (
	"testing"
	"time"
)

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_SetGet(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyUser(1), "value")

	if _, ok := cache.Get(CacheKeyUser(1)); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Expiration(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("short", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := cache.Get("short"); ok {
		t.Error("expected key to be expired")
	}
}

func TestCache_Delete(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyUser(2), "value")
	cache.Delete(CacheKeyUser(2))

	if _, ok := cache.Get(CacheKeyUser(2)); ok {
		t.Error("expected key to be deleted")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}
