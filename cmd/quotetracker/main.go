package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/kmiservices/quotetracker/internal/app"
	"github.com/kmiservices/quotetracker/internal/notify"
	"github.com/kmiservices/quotetracker/internal/observability"
	"github.com/kmiservices/quotetracker/internal/platform/cache"
	"github.com/kmiservices/quotetracker/internal/platform/db"
	"github.com/kmiservices/quotetracker/internal/pricing"
	"github.com/kmiservices/quotetracker/internal/quotes"
	"github.com/kmiservices/quotetracker/internal/reports"
	"github.com/kmiservices/quotetracker/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var store quotes.Store
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		store = quotes.NewPostgresStore(pool)
	default:
		store = quotes.NewFileStore(cfg.QuotesPath)
	}

	catalog := pricing.NewSource(cfg.PricingPath, cfg.CatalogReload)

	var notifier quotes.Notifier = notify.NewLogDispatcher(logger, cfg.OfficeEmail)
	var jobHandler *jobs.Handler
	if redisClient, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, notifications will be logged only", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()

		queueClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Error("init queue client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := queueClient.Close(); err != nil {
				logger.Warn("queue client close", slog.Any("error", err))
			}
		}()

		notifier = notify.NewQueueDispatcher(logger, queueClient, cfg.OfficeEmail)
		jobHandler = jobs.NewHandler(asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr}), logger)
	}

	metrics := observability.NewMetrics()
	service := quotes.NewService(logger, store, catalog, notifier)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		QuoteHandler:   quotes.NewHandler(logger, service),
		ReportHandler:  reports.NewHandler(logger, store),
		PricingHandler: pricing.NewHandler(logger, catalog),
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
