package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"stocklens/internal/domain"
	"stocklens/internal/metrics"
	"stocklens/internal/transform"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StatementProvider covers the profile, quote, and statement endpoints.
type StatementProvider interface {
	FetchProfile(ctx context.Context, ticker string) (json.RawMessage, error)
	FetchQuote(ctx context.Context, ticker string) (json.RawMessage, error)
	FetchIncomeStatement(ctx context.Context, ticker string, limit int) (json.RawMessage, error)
	FetchCashFlowStatement(ctx context.Context, ticker string, limit int) (json.RawMessage, error)
}

// PriceProvider covers the historical price bars endpoint.
type PriceProvider interface {
	FetchDailyBars(ctx context.Context, ticker string, from, to time.Time) (json.RawMessage, error)
}

// FinancialDataService fetches the five datasets for a ticker, transforms
// each into a table, and runs one enrichment pass over the fresh tables.
type FinancialDataService struct {
	tracer         trace.Tracer
	statements     StatementProvider
	prices         PriceProvider
	historyYears   int
	statementLimit int
	now            func() time.Time
}

func NewFinancialDataService(
	tracer trace.Tracer,
	statements StatementProvider,
	prices PriceProvider,
	historyYears int,
	statementLimit int,
) *FinancialDataService {
	if historyYears <= 0 {
		historyYears = 5
	}
	if statementLimit <= 0 {
		statementLimit = 5
	}
	return &FinancialDataService{
		tracer:         tracer,
		statements:     statements,
		prices:         prices,
		historyYears:   historyYears,
		statementLimit: statementLimit,
		now:            time.Now,
	}
}

// GetAllFinancialData assembles the aggregate result for one ticker. The
// five fetches are independent and run concurrently; a failed fetch marks
// only its own dataset unavailable and never aborts the siblings. The
// returned aggregate is freshly built per call and never mutated afterward,
// which is what keeps enrichment a strictly once-per-table event.
func (s *FinancialDataService) GetAllFinancialData(ctx context.Context, ticker string) (*domain.FinancialData, error) {
	ctx, span := s.tracer.Start(ctx, "service.get-all-financial-data")
	defer span.End()

	ticker = domain.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("empty ticker")
	}
	span.SetAttributes(attribute.String("ticker", ticker))

	now := s.now()
	var (
		wg sync.WaitGroup

		profileRaw, quoteRaw, incomeRaw, cashFlowRaw, pricesRaw json.RawMessage
		profileErr, quoteErr, incomeErr, cashFlowErr, pricesErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		profileRaw, profileErr = s.statements.FetchProfile(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		quoteRaw, quoteErr = s.statements.FetchQuote(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		incomeRaw, incomeErr = s.statements.FetchIncomeStatement(ctx, ticker, s.statementLimit)
	}()
	go func() {
		defer wg.Done()
		cashFlowRaw, cashFlowErr = s.statements.FetchCashFlowStatement(ctx, ticker, s.statementLimit)
	}()
	go func() {
		defer wg.Done()
		pricesRaw, pricesErr = s.prices.FetchDailyBars(ctx, ticker, now.AddDate(-s.historyYears, 0, 0), now)
	}()
	wg.Wait()

	result := &domain.FinancialData{
		Ticker:      ticker,
		Unavailable: make(map[string]string),
	}

	if profileErr == nil {
		result.Profile, profileErr = transform.ProfileRecord(profileRaw)
	}
	s.markUnavailable(result, domain.DatasetProfile, profileErr)

	if quoteErr == nil {
		result.Quote, quoteErr = transform.QuoteRecord(quoteRaw)
	}
	s.markUnavailable(result, domain.DatasetQuote, quoteErr)

	if incomeErr == nil {
		result.Income, incomeErr = transform.StatementTable(incomeRaw)
	}
	s.markUnavailable(result, domain.DatasetIncome, incomeErr)

	if cashFlowErr == nil {
		result.CashFlow, cashFlowErr = transform.StatementTable(cashFlowRaw)
	}
	s.markUnavailable(result, domain.DatasetCashFlow, cashFlowErr)

	if pricesErr == nil {
		result.Prices, pricesErr = transform.PriceTable(pricesRaw)
		result.PricesMonthly = transform.ResampleMonthly(result.Prices)
	}
	s.markUnavailable(result, domain.DatasetPrices, pricesErr)

	if len(result.Unavailable) == 0 {
		result.Unavailable = nil
	}

	s.enrich(result)
	return result, nil
}

// enrich runs the single enrichment pass over the freshly transformed
// tables. Derived columns needing the share price or market cap are left
// as "no value" when the profile or quote dataset is missing.
func (s *FinancialDataService) enrich(result *domain.FinancialData) {
	price := s.currentPrice(result)
	marketCap := 0.0
	if result.Profile != nil {
		marketCap = result.Profile.MarketCap
	}

	if price > 0 {
		metrics.AddPERatio(result.Income, price)
	}
	metrics.AddProfitMargins(result.Income)
	metrics.AddFCFMetrics(result.CashFlow, marketCap)
	result.AvgFCFYield, result.LatestFCFYield = metrics.FCFYieldSummary(result.CashFlow)

	windows := domain.DefaultCAGRWindows
	growth := domain.Growth{}
	addGrowth := func(name string, records []domain.PeriodRecord, value func(domain.PeriodRecord) *float64) {
		if cagrs := metrics.MetricCAGRs(records, value, windows); len(cagrs) > 0 {
			growth[name] = cagrs
		}
	}

	addGrowth("revenue", result.Income, func(r domain.PeriodRecord) *float64 { return r.Revenue })
	addGrowth("eps_diluted", result.Income, func(r domain.PeriodRecord) *float64 { return r.EPSDiluted })
	addGrowth("shares_outstanding", result.Income, func(r domain.PeriodRecord) *float64 { return r.SharesOutstanding })
	addGrowth("free_cash_flow", result.CashFlow, func(r domain.PeriodRecord) *float64 { return r.FreeCashFlow })
	addGrowth("fcf_minus_sbc", result.CashFlow, func(r domain.PeriodRecord) *float64 { return r.FCFMinusSBC })

	if len(growth) > 0 {
		result.Growth = growth
	}
}

func (s *FinancialDataService) currentPrice(result *domain.FinancialData) float64 {
	if result.Quote != nil && result.Quote.Price > 0 {
		return result.Quote.Price
	}
	if result.Profile != nil {
		return result.Profile.Price
	}
	return 0
}

func (s *FinancialDataService) markUnavailable(result *domain.FinancialData, dataset string, err error) {
	if err == nil {
		return
	}
	log.Printf("dataset %s unavailable for %s: %v", dataset, result.Ticker, err)
	result.Unavailable[dataset] = err.Error()
}
