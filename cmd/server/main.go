package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocklens/internal/bot"
	"stocklens/internal/cache"
	"stocklens/internal/config"
	"stocklens/internal/handler"
	"stocklens/internal/job"
	"stocklens/internal/provider"
	"stocklens/internal/service"
	"stocklens/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	connectRedisFunc       = cache.Connect
	initTracerFunc         = tracing.InitTracer
	newRefresherFunc       = job.NewRefresher
	startRefresherFunc     = func(r *job.Refresher, ctx context.Context) { go r.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg, err := loadConfigFunc()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Pick the response cache backend
	var store cache.Store = cache.NewMemory()
	if cfg.RedisURL != "" {
		redisStore, err := connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Println("Using Redis response cache")
	}

	// Create providers and the aggregation service
	ttl := time.Duration(cfg.CacheTTLSecs) * time.Second
	fmp := provider.NewFMPProvider(cfg.FMPAPIKey, tracer, store, ttl)
	polygon := provider.NewPolygonProvider(cfg.PolygonAPIKey, tracer, store, ttl)
	financials := service.NewFinancialDataService(tracer, fmp, polygon, cfg.HistoryYears, cfg.StatementLimit)

	// Start watchlist refresher (background goroutine, stopped by ctx cancel)
	if len(cfg.Watchlist) > 0 {
		refresher := newRefresherFunc(tracer, financials, cfg.Watchlist, cfg.CacheTTLSecs/2)
		startRefresherFunc(refresher, ctx)
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(financials)

	// Create handlers and routes
	h := newHandlerFunc(tracer, financials)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("stocklens"))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
