// Package metrics computes derived financial metrics over period tables.
// Every function is pure, and every division guards its denominator: a zero
// or missing denominator produces the nil "no value" marker, never a panic
// and never a silent zero.
package metrics

import (
	"fmt"
	"math"
	"time"

	"stocklens/internal/domain"
)

const daysPerYear = 365.25

// CAGR returns the compound annual growth rate between start and end over
// the given number of years, or nil when the inputs cannot define one:
// a compound rate over a non-positive base is mathematically undefined.
func CAGR(start, end *float64, years float64) *float64 {
	if start == nil || end == nil || years <= 0 {
		return nil
	}
	if *start <= 0 || *end <= 0 {
		return nil
	}
	return domain.Float(math.Pow(*end / *start, 1/years) - 1)
}

// MetricCAGRs computes CAGR over each lookback window for one column of a
// sorted period table. For an N-year window the start record is the one
// nearest by date to (latest date - N years); the growth rate is annualized
// over the actual spacing between the two records, not the nominal window.
// A window is skipped, not zeroed, when the table covers less than half of
// it or the value at either endpoint is missing.
func MetricCAGRs(records []domain.PeriodRecord, value func(domain.PeriodRecord) *float64, windows []int) map[string]float64 {
	out := make(map[string]float64)
	if len(records) < 2 {
		return out
	}

	latest := records[len(records)-1]
	endVal := value(latest)
	if endVal == nil {
		return out
	}

	for _, window := range windows {
		if window <= 0 {
			continue
		}
		target := latest.Date.AddDate(-window, 0, 0)

		var start *domain.PeriodRecord
		best := time.Duration(math.MaxInt64)
		for i := range records[:len(records)-1] {
			d := records[i].Date.Sub(target)
			if d < 0 {
				d = -d
			}
			if d < best {
				best = d
				start = &records[i]
			}
		}
		if start == nil {
			continue
		}

		years := latest.Date.Sub(start.Date).Hours() / 24 / daysPerYear
		if years <= 0 || years < float64(window)/2 {
			continue
		}
		if r := CAGR(value(*start), endVal, years); r != nil {
			out[fmt.Sprintf("%dY", window)] = *r
		}
	}
	return out
}

// PERatio returns price divided by diluted EPS, or nil when EPS is missing
// or zero.
func PERatio(price float64, eps *float64) *float64 {
	if eps == nil || *eps == 0 {
		return nil
	}
	return domain.Float(price / *eps)
}

// FCFMinusSBC returns free cash flow less stock-based compensation. A
// missing operand propagates: an unreported SBC figure means the adjusted
// FCF cannot be trusted, not that SBC is known to be zero.
func FCFMinusSBC(fcf, sbc *float64) *float64 {
	if fcf == nil || sbc == nil {
		return nil
	}
	return domain.Float(*fcf - *sbc)
}

// FCFYield returns adjusted FCF as a percentage of market cap, or nil when
// either input is missing or market cap is zero.
func FCFYield(fcfAdjusted *float64, marketCap float64) *float64 {
	if fcfAdjusted == nil || marketCap == 0 {
		return nil
	}
	return domain.Float(*fcfAdjusted / marketCap * 100)
}

// Margin returns income as a percentage of revenue, or nil when revenue is
// missing or zero. The same rule serves gross, operating, and net margins.
func Margin(income, revenue *float64) *float64 {
	if income == nil || revenue == nil || *revenue == 0 {
		return nil
	}
	return domain.Float(*income / *revenue * 100)
}
