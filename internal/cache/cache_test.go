package cache

import (
	"testing"
	"time"
)

func TestCache_PutAndGet(t *testing.T) {
	c := New[string](1 * time.Second)
	c.Put("key1", "value1")

	val, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if val != "value1" {
		t.Errorf("expected value1, got %s", val)
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New[int](1 * time.Second)
	if _, ok := c.Get("nope"); ok {
		t.Fatal("expected cache miss for unknown key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](50 * time.Millisecond)
	c.Put("key1", "value1")

	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get("key1")
	if ok {
		t.Fatal("expected cache miss after TTL")
	}
}

func TestCache_PurgeRemovesOnlyExpired(t *testing.T) {
	c := New[int](50 * time.Millisecond)
	c.Put("old", 1)
	time.Sleep(100 * time.Millisecond)
	c.Put("fresh", 2)

	removed := c.Purge()
	if removed != 1 {
		t.Fatalf("expected 1 entry purged, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry remaining, got %d", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("fresh entry should survive purge")
	}
}
