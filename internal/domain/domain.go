package domain

import "strings"

// NormalizeTicker canonicalizes a caller-supplied ticker symbol.
// Ticker identity is case-insensitive; "aapl" and "AAPL" are the same key.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Float builds an optional numeric value. A nil *float64 is the explicit
// "no value" marker used throughout: it means "not reported or not
// computable", which is never the same thing as zero.
func Float(v float64) *float64 {
	return &v
}

// Dataset names used as keys in FinancialData.Unavailable and as endpoint
// identities in provider errors.
const (
	DatasetProfile  = "profile"
	DatasetQuote    = "quote"
	DatasetIncome   = "income"
	DatasetCashFlow = "cash_flow"
	DatasetPrices   = "prices"
)

// Granularity distinguishes daily price series from month-end snapshots.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

// Growth holds CAGR values per metric per lookback window,
// e.g. Growth["revenue"]["3Y"] = 0.118. Windows with insufficient history
// are absent, not zero.
type Growth map[string]map[string]float64

// CAGR window labels are formatted as "1Y", "3Y", "5Y".
var DefaultCAGRWindows = []int{1, 3, 5}
