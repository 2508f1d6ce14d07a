package cache

import (
	"context"
	"bytes"
	"sync"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for absent key")
	}

	if err := m.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	_ = m.Set(ctx, "k", []byte("v"), time.Hour)

	now = now.Add(59 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("entry served past its TTL")
	}
	if len(m.entries) != 0 {
		t.Fatalf("expected lazy eviction, %d entries remain", len(m.entries))
	}
}

func TestMemorySetSweepsExpired(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	_ = m.Set(ctx, "old", []byte("v"), time.Minute)

	now = now.Add(time.Hour)
	_ = m.Set(ctx, "fresh", []byte("v"), time.Minute)

	if _, ok := m.entries["old"]; ok {
		t.Fatal("expired entry not swept on write")
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Set(ctx, "shared", []byte("v"), time.Minute)
				_, _, _ = m.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	if _, ok, _ := m.Get(ctx, "shared"); !ok {
		t.Fatal("expected hit after concurrent writes")
	}
}

func TestMemoryCopiesValue(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	src := []byte("original")
	_ = m.Set(ctx, "k", src, time.Minute)
	src[0] = 'X'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "original" {
		t.Fatalf("cached value aliased caller's buffer: %q", got)
	}
}
