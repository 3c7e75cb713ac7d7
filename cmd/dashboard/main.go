package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshpex/ffb-dashboard-bfa-go/internal/config"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/domain"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/handler"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/cache"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/corebank"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/observability"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/infra/resilience"
	"github.com/freshpex/ffb-dashboard-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("corebank_url", cfg.CoreBankURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "ffb-dashboard-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	planCache := cache.New[[]domain.InvestmentPlan](cfg.CacheTTL)
	cardCache := cache.New[[]domain.Card](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("corebank")

	// --- Core bank client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := corebank.NewClient(httpClient, cfg.CoreBankURL, cfg.CoreBankAPIKey, cb, resilienceCfg, metrics, logger)

	// --- Service ---
	svc := service.NewDashboardService(store, metrics, logger, planCache, cardCache)

	// --- Auth ---
	auth := handler.NewAuth(cfg.JWTSecret, cfg.AdminKeyHash, logger)
	if cfg.AdminKeyHash == "" {
		logger.Warn("ADMIN_KEY_HASH not set, X-Admin-Key fallback disabled")
	}

	// --- Router ---
	router := handler.NewRouter(svc, auth, metrics, cfg.AllowedOrigins, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
