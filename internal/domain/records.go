package domain

import "time"

// PeriodRecord is one row of a financial-statement table: a reporting date
// plus the statement fields we track. Optional fields are pointers; nil
// means the provider did not report the figure.
type PeriodRecord struct {
	Date              time.Time `json:"date"`
	Revenue           *float64  `json:"revenue,omitempty"`
	EPSDiluted        *float64  `json:"eps_diluted,omitempty"`
	SharesOutstanding *float64  `json:"shares_outstanding,omitempty"`
	GrossProfit       *float64  `json:"gross_profit,omitempty"`
	OperatingIncome   *float64  `json:"operating_income,omitempty"`
	NetIncome         *float64  `json:"net_income,omitempty"`
	FreeCashFlow      *float64  `json:"free_cash_flow,omitempty"`
	StockBasedComp    *float64  `json:"stock_based_comp,omitempty"`

	// Derived columns, filled by the metrics enrichment pass. Nil when the
	// inputs were degenerate (zero denominator, missing operand).
	PE              *float64 `json:"pe,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`
	FCFMinusSBC     *float64 `json:"fcf_minus_sbc,omitempty"`
	FCFYield        *float64 `json:"fcf_yield,omitempty"`
}

// PriceRecord is one trading day (or one month-end snapshot) of closing
// price data.
type PriceRecord struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Profile is the company profile record.
type Profile struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	MarketCap   float64 `json:"market_cap"`
	Price       float64 `json:"price"`
	Exchange    string  `json:"exchange,omitempty"`
	Industry    string  `json:"industry,omitempty"`
}

// Quote is the latest quote record.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Price         float64  `json:"price"`
	Change        *float64 `json:"change,omitempty"`
	ChangePct     *float64 `json:"change_pct,omitempty"`
	DayHigh       *float64 `json:"day_high,omitempty"`
	DayLow        *float64 `json:"day_low,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
}

// FinancialData is the aggregate returned for one ticker request. It is
// built fresh per request and never mutated after it is returned; datasets
// that could not be fetched are recorded in Unavailable keyed by dataset
// name, with the sibling datasets populated as usual.
type FinancialData struct {
	Ticker        string         `json:"ticker"`
	Profile       *Profile       `json:"profile"`
	Quote         *Quote         `json:"quote"`
	Income        []PeriodRecord `json:"income"`
	CashFlow      []PeriodRecord `json:"cash_flow"`
	Prices        []PriceRecord  `json:"prices"`
	PricesMonthly []PriceRecord  `json:"prices_monthly"`

	Growth         Growth   `json:"growth,omitempty"`
	AvgFCFYield    *float64 `json:"avg_fcf_yield,omitempty"`
	LatestFCFYield *float64 `json:"latest_fcf_yield,omitempty"`

	Unavailable map[string]string `json:"unavailable,omitempty"`
}
