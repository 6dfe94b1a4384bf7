package cache

import (
	"testing"
	"time"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](3, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.Set("records", "snapshot")
	got, ok := c.Get("records")
	if !ok || got != "snapshot" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was recently used and should survive")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c was just inserted and should survive")
	}
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("k", 42)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d after expired read", c.Size())
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	if c.Size() != 0 {
		t.Errorf("Size = %d after purge", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("purged entry should miss")
	}

	// Cache stays usable after a purge.
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get after purge = %d, %v", v, ok)
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("fresh", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired = %d, want 2", removed)
	}
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}
}

func TestLRUCacheUpdateExistingKey(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)

	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get = %d, want 2", v)
	}
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}
}
