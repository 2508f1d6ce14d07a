package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stocklens/internal/cache"
	"stocklens/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const fmpBaseURL = "https://financialmodelingprep.com/stable"

// FMPProvider fetches company profile, quote, and annual statement data
// from the Financial Modeling Prep API.
type FMPProvider struct {
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	fetcher *fetcher
}

// NewFMPProvider creates a provider with built-in rate limiting and a
// one-hour response cache (store may be nil to disable caching).
func NewFMPProvider(apiKey string, tracer trace.Tracer, store cache.Store, ttl time.Duration) *FMPProvider {
	return &FMPProvider{
		baseURL: fmpBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		fetcher: &fetcher{
			name:    "fmp",
			client:  &http.Client{Timeout: 30 * time.Second},
			limiter: NewRateLimiter(5, time.Second),
			store:   store,
			ttl:     ttl,
		},
	}
}

func (p *FMPProvider) FetchProfile(ctx context.Context, ticker string) (json.RawMessage, error) {
	return p.get(ctx, domain.DatasetProfile, "profile", ticker, nil)
}

func (p *FMPProvider) FetchQuote(ctx context.Context, ticker string) (json.RawMessage, error) {
	return p.get(ctx, domain.DatasetQuote, "quote", ticker, nil)
}

func (p *FMPProvider) FetchIncomeStatement(ctx context.Context, ticker string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("period", "annual")
	params.Set("limit", strconv.Itoa(limit))
	return p.get(ctx, domain.DatasetIncome, "income-statement", ticker, params)
}

func (p *FMPProvider) FetchCashFlowStatement(ctx context.Context, ticker string, limit int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return p.get(ctx, domain.DatasetCashFlow, "cash-flow-statement", ticker, params)
}

func (p *FMPProvider) get(ctx context.Context, dataset, endpoint, ticker string, params url.Values) (json.RawMessage, error) {
	_, span := p.tracer.Start(ctx, "fmp.fetch-"+dataset)
	defer span.End()

	if params == nil {
		params = url.Values{}
	}
	ticker = domain.NormalizeTicker(ticker)

	// Cache key is the request signature without the credential.
	key := fmt.Sprintf("fmp:%s:%s:%s", endpoint, ticker, params.Encode())

	params.Set("symbol", ticker)
	params.Set("apikey", p.apiKey)
	fullURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())

	body, err := p.fetcher.fetch(ctx, endpoint, key, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for %s: %w", dataset, ticker, err)
	}
	return body, nil
}
