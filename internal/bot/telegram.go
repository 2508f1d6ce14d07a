package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"stocklens/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// FinancialDataProvider is the service surface the bot depends on.
type FinancialDataProvider interface {
	GetAllFinancialData(ctx context.Context, ticker string) (*domain.FinancialData, error)
}

func StartTelegramBot(financials FinancialDataProvider) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/quote", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /quote AAPL")
		}
		ticker := domain.NormalizeTicker(args[0])
		data, err := financials.GetAllFinancialData(context.Background(), ticker)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching quote for %s: %v", ticker, err))
		}
		return c.Send(formatQuote(data))
	})

	b.Handle("/metrics", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /metrics AAPL")
		}
		ticker := domain.NormalizeTicker(args[0])
		data, err := financials.GetAllFinancialData(context.Background(), ticker)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching metrics for %s: %v", ticker, err))
		}
		return c.Send(formatMetrics(data))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatQuote(data *domain.FinancialData) string {
	if data.Quote == nil {
		if msg, ok := data.Unavailable[domain.DatasetQuote]; ok {
			return fmt.Sprintf("%s quote unavailable: %s", data.Ticker, msg)
		}
		return fmt.Sprintf("%s quote unavailable", data.Ticker)
	}

	var b strings.Builder
	name := data.Ticker
	if data.Profile != nil && data.Profile.CompanyName != "" {
		name = fmt.Sprintf("%s (%s)", data.Profile.CompanyName, data.Ticker)
	}
	fmt.Fprintf(&b, "%s\nPrice: $%.2f", name, data.Quote.Price)
	if data.Quote.ChangePct != nil {
		fmt.Fprintf(&b, "\nChange: %.2f%%", *data.Quote.ChangePct)
	}
	if data.Quote.DayLow != nil && data.Quote.DayHigh != nil {
		fmt.Fprintf(&b, "\nDay Range: $%.2f - $%.2f", *data.Quote.DayLow, *data.Quote.DayHigh)
	}
	return b.String()
}

func formatMetrics(data *domain.FinancialData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s fundamentals", data.Ticker)

	if len(data.Income) > 0 {
		latest := data.Income[len(data.Income)-1]
		if latest.PE != nil {
			fmt.Fprintf(&b, "\nP/E: %.1f", *latest.PE)
		}
		if latest.NetMargin != nil {
			fmt.Fprintf(&b, "\nNet Margin: %.1f%%", *latest.NetMargin)
		}
	}
	if data.LatestFCFYield != nil {
		fmt.Fprintf(&b, "\nFCF Yield: %.2f%%", *data.LatestFCFYield)
	}
	if rev, ok := data.Growth["revenue"]; ok {
		if r, ok := rev["5Y"]; ok {
			fmt.Fprintf(&b, "\nRevenue CAGR (5Y): %.1f%%", r*100)
		}
	}
	if eps, ok := data.Growth["eps_diluted"]; ok {
		if r, ok := eps["5Y"]; ok {
			fmt.Fprintf(&b, "\nEPS CAGR (5Y): %.1f%%", r*100)
		}
	}
	for dataset, msg := range data.Unavailable {
		fmt.Fprintf(&b, "\n%s unavailable: %s", dataset, msg)
	}
	return b.String()
}
