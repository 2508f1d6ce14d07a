package metrics

import "stocklens/internal/domain"

// The enrichment passes below fill derived columns from base columns only,
// so applying one to an already-enriched table recomputes the same values:
// enrichment is idempotent by construction.

// AddPERatio fills the P/E column of an income table against the current
// share price.
func AddPERatio(records []domain.PeriodRecord, price float64) {
	for i := range records {
		records[i].PE = PERatio(price, records[i].EPSDiluted)
	}
}

// AddProfitMargins fills the gross, operating, and net margin columns of an
// income table.
func AddProfitMargins(records []domain.PeriodRecord) {
	for i := range records {
		records[i].GrossMargin = Margin(records[i].GrossProfit, records[i].Revenue)
		records[i].OperatingMargin = Margin(records[i].OperatingIncome, records[i].Revenue)
		records[i].NetMargin = Margin(records[i].NetIncome, records[i].Revenue)
	}
}

// AddFCFMetrics fills the FCF-minus-SBC and FCF yield columns of a
// cash-flow table against the current market cap.
func AddFCFMetrics(records []domain.PeriodRecord, marketCap float64) {
	for i := range records {
		records[i].FCFMinusSBC = FCFMinusSBC(records[i].FreeCashFlow, records[i].StockBasedComp)
		records[i].FCFYield = FCFYield(records[i].FCFMinusSBC, marketCap)
	}
}

// FCFYieldSummary returns the average and latest FCF yield across a
// cash-flow table, skipping periods where the yield could not be computed.
func FCFYieldSummary(records []domain.PeriodRecord) (avg, latest *float64) {
	var sum float64
	var n int
	for _, rec := range records {
		if rec.FCFYield == nil {
			continue
		}
		sum += *rec.FCFYield
		n++
		latest = rec.FCFYield
	}
	if n == 0 {
		return nil, nil
	}
	return domain.Float(sum / float64(n)), latest
}
