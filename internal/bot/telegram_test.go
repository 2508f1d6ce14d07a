package bot

import (
	"strings"
	"testing"

	"stocklens/internal/domain"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	StartTelegramBot(nil)
}

func TestFormatQuote(t *testing.T) {
	data := &domain.FinancialData{
		Ticker:  "AAPL",
		Profile: &domain.Profile{CompanyName: "Apple Inc."},
		Quote: &domain.Quote{
			Symbol:    "AAPL",
			Price:     195,
			ChangePct: domain.Float(0.78),
			DayLow:    domain.Float(192),
			DayHigh:   domain.Float(196),
		},
	}

	got := formatQuote(data)
	for _, want := range []string{"Apple Inc. (AAPL)", "Price: $195.00", "Change: 0.78%", "Day Range: $192.00 - $196.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in message, got:\n%s", want, got)
		}
	}
}

func TestFormatQuoteUnavailable(t *testing.T) {
	data := &domain.FinancialData{
		Ticker:      "AAPL",
		Unavailable: map[string]string{domain.DatasetQuote: "upstream status 500"},
	}

	got := formatQuote(data)
	if !strings.Contains(got, "quote unavailable: upstream status 500") {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestFormatMetrics(t *testing.T) {
	data := &domain.FinancialData{
		Ticker: "AAPL",
		Income: []domain.PeriodRecord{
			{PE: domain.Float(31.8), NetMargin: domain.Float(25.3)},
		},
		LatestFCFYield: domain.Float(2.94),
		Growth: domain.Growth{
			"revenue":     {"5Y": 0.081},
			"eps_diluted": {"5Y": 0.152},
		},
	}

	got := formatMetrics(data)
	for _, want := range []string{"AAPL fundamentals", "P/E: 31.8", "Net Margin: 25.3%", "FCF Yield: 2.94%", "Revenue CAGR (5Y): 8.1%", "EPS CAGR (5Y): 15.2%"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in message, got:\n%s", want, got)
		}
	}
}

func TestFormatMetricsSkipsMissingValues(t *testing.T) {
	data := &domain.FinancialData{
		Ticker: "NEWCO",
		Income: []domain.PeriodRecord{{}},
	}

	got := formatMetrics(data)
	if strings.Contains(got, "P/E") || strings.Contains(got, "CAGR") {
		t.Errorf("expected missing values omitted, got:\n%s", got)
	}
}
