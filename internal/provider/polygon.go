package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stocklens/internal/cache"
	"stocklens/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const polygonBaseURL = "https://api.polygon.io/v2"

// PolygonProvider fetches daily aggregate price bars from the Polygon API.
type PolygonProvider struct {
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	fetcher *fetcher
}

func NewPolygonProvider(apiKey string, tracer trace.Tracer, store cache.Store, ttl time.Duration) *PolygonProvider {
	return &PolygonProvider{
		baseURL: polygonBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		fetcher: &fetcher{
			name:    "polygon",
			client:  &http.Client{Timeout: 30 * time.Second},
			limiter: NewRateLimiter(5, 12 * time.Second),
			store:   store,
			ttl:     ttl,
		},
	}
}

// FetchDailyBars fetches adjusted daily bars for ticker over [from, to],
// oldest first.
func (p *PolygonProvider) FetchDailyBars(ctx context.Context, ticker string, from, to time.Time) (json.RawMessage, error) {
	_, span := p.tracer.Start(ctx, "polygon.fetch-daily-bars")
	defer span.End()

	ticker = domain.NormalizeTicker(ticker)
	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")

	key := fmt.Sprintf("polygon:aggs:%s:%s:%s", ticker, fromStr, toStr)
	fullURL := fmt.Sprintf("%s/aggs/ticker/%s/range/1/day/%s/%s?adjusted=true&sort=asc&apiKey=%s",
		p.baseURL, ticker, fromStr, toStr, p.apiKey)

	body, err := p.fetcher.fetch(ctx, "aggs", key, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", ticker, err)
	}
	return body, nil
}
