package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dfameublement/catalogue-backend/api/routes"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/internal/catalog"
	"github.com/dfameublement/catalogue-backend/internal/quotes"
	"github.com/dfameublement/catalogue-backend/pkg/config"
	"github.com/dfameublement/catalogue-backend/pkg/db"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
	"github.com/dfameublement/catalogue-backend/pkg/metrics"
	"github.com/dfameublement/catalogue-backend/pkg/migrate"
	"github.com/dfameublement/catalogue-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cartStore := cart.NewRedisStore(redisClient, cfg.Cart.BlobTTL)
	cartManager := cart.NewManager(cartStore, cfg.Cart.PersistDebounce, cfg.Cart.ContainerIdleTTL, logg)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(promRegistry)

	var notifier quotes.Notifier = quotes.NopNotifier{}
	if cfg.Sendgrid.APIKey != "" && cfg.Quotes.RecipientEmail != "" {
		sendgridNotifier, err := quotes.NewSendgridNotifier(
			cfg.Sendgrid.APIKey,
			cfg.Sendgrid.DefaultFrom,
			cfg.Quotes.RecipientEmail,
			logg,
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create quote notifier", err)
			os.Exit(1)
		}
		notifier = sendgridNotifier
	} else {
		logg.Warn(context.Background(), "quote notifications disabled, sendgrid not configured")
	}

	quotesService, err := quotes.NewService(quotes.NewRepository(dbClient.DB()), notifier, logg, quoteMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotes service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			cartManager,
			catalogService,
			quotesService,
			promRegistry,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "server shutdown failed", err)
		}
		// Flush any coalesced cart writes still waiting on the debounce.
		cartManager.Close(drainCtx)
	}
}
