package idcache

import (
	"testing"
	"time"

	"finance-tracker/internal/sources"
)

func TestPutGet(t *testing.T) {
	c := New(time.Minute)
	c.Put(1, sources.AssetInfo{LogoURL: "https://example.com/a.png"})

	info, ok := c.Get(1)
	if !ok {
		t.Fatalf("expected a hit for id 1")
	}
	if info.LogoURL != "https://example.com/a.png" {
		t.Errorf("wrong info: %+v", info)
	}

	if _, ok := c.Get(2); ok {
		t.Errorf("expected a miss for id 2")
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put(1, sources.AssetInfo{LogoURL: "x"})

	base = base.Add(59 * time.Second)
	if _, ok := c.Get(1); !ok {
		t.Errorf("entry expired too early")
	}

	base = base.Add(2 * time.Second)
	if _, ok := c.Get(1); ok {
		t.Errorf("entry should have expired")
	}
}

func TestPutResetsExpiry(t *testing.T) {
	c := New(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put(1, sources.AssetInfo{LogoURL: "old"})
	base = base.Add(50 * time.Second)
	c.Put(1, sources.AssetInfo{LogoURL: "new"})

	base = base.Add(50 * time.Second)
	info, ok := c.Get(1)
	if !ok {
		t.Fatalf("refreshed entry must still be live")
	}
	if info.LogoURL != "new" {
		t.Errorf("expected the refreshed value, got %q", info.LogoURL)
	}
}

func TestPruneExpired(t *testing.T) {
	c := New(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put(1, sources.AssetInfo{})
	c.Put(2, sources.AssetInfo{})
	base = base.Add(30 * time.Second)
	c.Put(3, sources.AssetInfo{})

	base = base.Add(45 * time.Second)
	if dropped := c.PruneExpired(); dropped != 2 {
		t.Errorf("expected 2 dropped entries, got %d", dropped)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 remaining entry, got %d", c.Len())
	}
	if _, ok := c.Get(3); !ok {
		t.Errorf("unexpired entry must survive pruning")
	}
}

func TestDefaultTTL(t *testing.T) {
	c := New(0)
	if c.ttl != DefaultTTL {
		t.Errorf("expected the default TTL, got %v", c.ttl)
	}
}
