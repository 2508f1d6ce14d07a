package job

import (
	"context"
	"log"
	"time"

	"stocklens/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Refresher periodically re-requests the watchlist tickers so their cached
// responses never go cold. One ticker is refreshed per tick, round-robin,
// to spread the upstream calls instead of bursting them at interval edges.
type Refresher struct {
	tracer     trace.Tracer
	financials FinancialDataRefresher
	tickers    []string
	interval   time.Duration
}

type FinancialDataRefresher interface {
	GetAllFinancialData(ctx context.Context, ticker string) (*domain.FinancialData, error)
}

func NewRefresher(tracer trace.Tracer, financials FinancialDataRefresher, tickers []string, intervalSecs int) *Refresher {
	normalized := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if n := domain.NormalizeTicker(t); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &Refresher{
		tracer:     tracer,
		financials: financials,
		tickers:    normalized,
		interval:   time.Duration(intervalSecs) * time.Second,
	}
}

// Start launches the refresh loop. Blocks until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if len(r.tickers) == 0 {
		return
	}
	log.Printf("Watchlist refresher starting for %d tickers...", len(r.tickers))

	idx := 0
	r.refreshNext(ctx, &idx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Watchlist refresher stopped")
			return
		case <-ticker.C:
			r.refreshNext(ctx, &idx)
		}
	}
}

func (r *Refresher) refreshNext(ctx context.Context, idx *int) {
	symbol := r.tickers[*idx%len(r.tickers)]
	*idx++

	ctx, span := r.tracer.Start(ctx, "job.refresh-watchlist-ticker")
	defer span.End()

	if _, err := r.financials.GetAllFinancialData(ctx, symbol); err != nil {
		log.Printf("watchlist refresh error for %s: %v", symbol, err)
	}
}
