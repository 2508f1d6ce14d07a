package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedisClient struct {
	data    map[string][]byte
	lastTTL time.Duration
	getErr  error
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{data: make(map[string][]byte)}
}

func (f *fakeRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(string(v), nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.lastTTL = expiration
	switch v := value.(type) {
	case []byte:
		f.data[key] = append([]byte(nil), v...)
	case string:
		f.data[key] = []byte(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()

	client := newFakeRedisClient()
	store := NewRedis(client)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastTTL != time.Hour {
		t.Fatalf("expected TTL to reach redis, got %v", client.lastTTL)
	}

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("unexpected read: %q ok=%v err=%v", got, ok, err)
	}
}

func TestRedisStorePropagatesErrors(t *testing.T) {
	t.Parallel()

	client := newFakeRedisClient()
	client.getErr = context.DeadlineExceeded
	store := NewRedis(client)

	if _, _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error to propagate")
	}
}
