//go:build integration

package cache

import (
	"testing"
	"time"
)

func newTestCache(t *testing.T, now *time.Time) *Cache {
	t.Helper()
	c, err := New("file::memory:", WithClock(func() time.Time { return *now }))
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_SetGet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("today_matches", []byte(`[{"home":"الهلال"}]`), 30*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get("today_matches")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"home":"الهلال"}]` {
		t.Errorf("Get = %q, want stored payload", got)
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	got, err := c.Get("absent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a cache miss, got %q", got)
	}
}

func TestCache_ExpiryUsesInjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("live_matches", []byte("payload"), 30*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	now = now.Add(29 * time.Minute)
	if got, _ := c.Get("live_matches"); got == nil {
		t.Fatal("entry expired too early")
	}

	now = now.Add(2 * time.Minute)
	got, err := c.Get("live_matches")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired entry to be a miss, got %q", got)
	}
}

func TestCache_OverwriteResetsTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("news", []byte("old"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	now = now.Add(50 * time.Second)
	if err := c.Set("news", []byte("new"), time.Minute); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	now = now.Add(30 * time.Second)

	got, err := c.Get("news")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}
}
