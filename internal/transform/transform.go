// Package transform converts raw provider payloads into time-indexed
// tables. It is stateless: raw JSON in, sorted records out. Providers are
// not guaranteed to return sorted data, so every table is re-sorted
// ascending by date. Individual rows missing their date are dropped; rows
// missing optional numeric fields keep nil for those fields.
package transform

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"stocklens/internal/domain"
)

const fmpDateLayout = "2006-01-02"

type statementRow struct {
	Date                     string   `json:"date"`
	Revenue                  *float64 `json:"revenue"`
	EPSDiluted               *float64 `json:"epsDiluted"`
	WeightedAverageShsOutDil *float64 `json:"weightedAverageShsOutDil"`
	GrossProfit              *float64 `json:"grossProfit"`
	OperatingIncome          *float64 `json:"operatingIncome"`
	NetIncome                *float64 `json:"netIncome"`
	FreeCashFlow             *float64 `json:"freeCashFlow"`
	StockBasedCompensation   *float64 `json:"stockBasedCompensation"`
}

// StatementTable converts a raw FMP statement payload into period records
// sorted oldest first. An empty payload yields an empty table, not an
// error.
func StatementTable(raw json.RawMessage) ([]domain.PeriodRecord, error) {
	if isEmptyPayload(raw) {
		return nil, nil
	}

	var rows []statementRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode statement payload: %w", err)
	}

	records := make([]domain.PeriodRecord, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(fmpDateLayout, row.Date)
		if err != nil {
			// A row without a parseable reporting date cannot be placed on
			// the time axis; drop it rather than abort the table.
			continue
		}
		records = append(records, domain.PeriodRecord{
			Date:              date.UTC(),
			Revenue:           row.Revenue,
			EPSDiluted:        row.EPSDiluted,
			SharesOutstanding: row.WeightedAverageShsOutDil,
			GrossProfit:       row.GrossProfit,
			OperatingIncome:   row.OperatingIncome,
			NetIncome:         row.NetIncome,
			FreeCashFlow:      row.FreeCashFlow,
			StockBasedComp:    row.StockBasedCompensation,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

type aggsPayload struct {
	Results []aggsBar `json:"results"`
}

type aggsBar struct {
	Timestamp *int64   `json:"t"`
	Close     *float64 `json:"c"`
}

// PriceTable converts a raw Polygon aggregates payload into daily price
// records sorted oldest first.
func PriceTable(raw json.RawMessage) ([]domain.PriceRecord, error) {
	if isEmptyPayload(raw) {
		return nil, nil
	}

	var payload aggsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode aggregates payload: %w", err)
	}

	records := make([]domain.PriceRecord, 0, len(payload.Results))
	for _, bar := range payload.Results {
		if bar.Timestamp == nil || bar.Close == nil {
			continue
		}
		records = append(records, domain.PriceRecord{
			Date:  time.UnixMilli(*bar.Timestamp).UTC(),
			Close: *bar.Close,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// ResampleMonthly reduces a sorted daily series to one record per calendar
// month: the last available trading-day close, not an average, so monthly
// growth metrics line up with month-end snapshots.
func ResampleMonthly(daily []domain.PriceRecord) []domain.PriceRecord {
	if len(daily) == 0 {
		return nil
	}

	var monthly []domain.PriceRecord
	for _, rec := range daily {
		y, m, _ := rec.Date.Date()
		if len(monthly) > 0 {
			ly, lm, _ := monthly[len(monthly)-1].Date.Date()
			if ly == y && lm == m {
				monthly[len(monthly)-1] = rec
				continue
			}
		}
		monthly = append(monthly, rec)
	}
	return monthly
}

type profileRow struct {
	Symbol      string   `json:"symbol"`
	CompanyName string   `json:"companyName"`
	MktCap      *float64 `json:"mktCap"`
	MarketCap   *float64 `json:"marketCap"`
	Price       *float64 `json:"price"`
	Exchange    string   `json:"exchange"`
	Industry    string   `json:"industry"`
}

// ProfileRecord extracts the company profile from a raw FMP profile
// payload. FMP wraps the profile in a single-element array; an empty array
// yields (nil, nil).
func ProfileRecord(raw json.RawMessage) (*domain.Profile, error) {
	if isEmptyPayload(raw) {
		return nil, nil
	}

	var rows []profileRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode profile payload: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	profile := &domain.Profile{
		Symbol:      domain.NormalizeTicker(row.Symbol),
		CompanyName: row.CompanyName,
		Exchange:    row.Exchange,
		Industry:    row.Industry,
	}
	// FMP has shipped the market cap under both names over time.
	if row.MktCap != nil {
		profile.MarketCap = *row.MktCap
	} else if row.MarketCap != nil {
		profile.MarketCap = *row.MarketCap
	}
	if row.Price != nil {
		profile.Price = *row.Price
	}
	return profile, nil
}

type quoteRow struct {
	Symbol            string   `json:"symbol"`
	Price             *float64 `json:"price"`
	Change            *float64 `json:"change"`
	ChangesPercentage *float64 `json:"changesPercentage"`
	DayHigh           *float64 `json:"dayHigh"`
	DayLow            *float64 `json:"dayLow"`
	PreviousClose     *float64 `json:"previousClose"`
}

// QuoteRecord extracts the latest quote from a raw FMP quote payload.
// When the provider omits changesPercentage it is derived from change and
// previousClose.
func QuoteRecord(raw json.RawMessage) (*domain.Quote, error) {
	if isEmptyPayload(raw) {
		return nil, nil
	}

	var rows []quoteRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode quote payload: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	quote := &domain.Quote{
		Symbol:        domain.NormalizeTicker(row.Symbol),
		Change:        row.Change,
		ChangePct:     row.ChangesPercentage,
		DayHigh:       row.DayHigh,
		DayLow:        row.DayLow,
		PreviousClose: row.PreviousClose,
	}
	if row.Price != nil {
		quote.Price = *row.Price
	}
	if quote.ChangePct == nil && row.Change != nil && row.PreviousClose != nil && *row.PreviousClose != 0 {
		quote.ChangePct = domain.Float(*row.Change / *row.PreviousClose * 100)
	}
	return quote, nil
}

func isEmptyPayload(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	switch string(raw) {
	case "null", "[]", "{}":
		return true
	}
	return false
}
