package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	FMPAPIKey     string
	PolygonAPIKey string

	RedisURL         string
	CacheTTLSecs     int
	HistoryYears     int
	StatementLimit   int
	TelegramBotToken string
	Watchlist        []string
	Port             int
}

// Load reads configuration from the process environment. The two provider
// credentials are mandatory: a missing credential is a startup error, not
// something discovered on the first request.
func Load() (*Config, error) {
	cfg := &Config{
		FMPAPIKey:        strings.TrimSpace(os.Getenv("FMP_API_KEY")),
		PolygonAPIKey:    strings.TrimSpace(os.Getenv("POLYGON_API_KEY")),
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.FMPAPIKey == "" {
		return nil, fmt.Errorf("FMP_API_KEY not set")
	}
	if cfg.PolygonAPIKey == "" {
		return nil, fmt.Errorf("POLYGON_API_KEY not set")
	}

	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, using in-memory response cache")
	}

	cfg.CacheTTLSecs = 3600
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	cfg.HistoryYears = 5
	if v := strings.TrimSpace(os.Getenv("HISTORY_YEARS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryYears = n
		}
	}

	cfg.StatementLimit = 5
	if v := strings.TrimSpace(os.Getenv("STATEMENT_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StatementLimit = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("WATCHLIST")); v != "" {
		for _, ticker := range strings.Split(v, ",") {
			if ticker = strings.TrimSpace(ticker); ticker != "" {
				cfg.Watchlist = append(cfg.Watchlist, ticker)
			}
		}
	}

	cfg.Port = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	return cfg, nil
}
