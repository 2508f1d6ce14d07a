package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"stocklens/internal/cache"

	"golang.org/x/sync/singleflight"
)

// fetcher is the shared transport core of both providers: rate-limited GET
// with TTL response caching keyed by the full request signature. Concurrent
// misses for the same key are collapsed into a single network call via
// singleflight; a duplicate fetch on a race would not be incorrect, just
// wasteful.
type fetcher struct {
	name    string
	client  *http.Client
	limiter *RateLimiter
	store   cache.Store
	ttl     time.Duration
	group   singleflight.Group
}

func (f *fetcher) fetch(ctx context.Context, endpoint, key, url string) (json.RawMessage, error) {
	if f.store != nil {
		if cached, ok, err := f.cacheGet(ctx, key); err == nil && ok {
			return cached, nil
		}
	}

	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		if f.store != nil {
			// A concurrent flight may have filled the cache while this
			// call was queued behind it.
			if cached, ok, err := f.cacheGet(ctx, key); err == nil && ok {
				return cached, nil
			}
		}

		body, err := f.doRequest(ctx, endpoint, url)
		if err != nil {
			return nil, err
		}
		if f.store != nil {
			_ = f.store.Set(ctx, key, body, f.ttl)
		}
		return json.RawMessage(body), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (f *fetcher) cacheGet(ctx context.Context, key string) (json.RawMessage, bool, error) {
	data, ok, err := f.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	return json.RawMessage(data), true, nil
}

func (f *fetcher) doRequest(ctx context.Context, endpoint, url string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   f.name,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return io.ReadAll(resp.Body)
}
