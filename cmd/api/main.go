package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/novamart/storefront-backend/api/controllers"
	"github.com/novamart/storefront-backend/api/middleware"
	"github.com/novamart/storefront-backend/api/routes"
	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/internal/newsletter"
	"github.com/novamart/storefront-backend/internal/orders"
	"github.com/novamart/storefront-backend/internal/pricing"
	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/db"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/metrics"
	"github.com/novamart/storefront-backend/pkg/migrate"
	"github.com/novamart/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootstrapFatal("loading config", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.New(ctx, cfg.DB, cfg.App.DataDir, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	if err := migrate.MaybeAutoRun(ctx, cfg, logg, client); err != nil {
		logg.Error(ctx, "preparing schema", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "connecting to redis", err)
			os.Exit(1)
		}
		defer func() { _ = redisClient.Close() }()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	rules := pricing.FromConfig(cfg.Pricing)
	catalogRepo := catalog.NewRepository(client.DB())
	orderSvc := orders.NewService(
		client,
		orders.NewRepository(client.DB()),
		catalogRepo,
		metrics.NewOrderMetrics(registry),
	)

	var rateLimitStore middleware.CounterStore
	var redisPinger controllers.Pinger
	if redisClient != nil {
		rateLimitStore = redisClient
		redisPinger = redisClient
	}

	handler := routes.New(routes.Dependencies{
		Logger:          logg,
		Health:          controllers.NewHealthController(client, redisPinger, logg),
		Products:        controllers.NewProductController(catalog.NewService(catalogRepo), logg),
		Cart:            controllers.NewCartController(rules, logg),
		Orders:          controllers.NewOrderController(orderSvc, logg),
		Newsletter:      controllers.NewNewsletterController(newsletter.NewService(newsletter.NewRepository(client.DB())), logg),
		RateLimitStore:  rateLimitStore,
		RateLimitConfig: cfg.NewsletterRateLimit,
		HTTPMetrics:     metrics.NewHTTPMetrics(registry),
		Registry:        registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "storefront api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "http server failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
}

func bootstrapFatal(msg string, err error) {
	fallback := logger.New(logger.Options{ServiceName: "storefront-api"})
	fallback.Error(context.Background(), msg, err)
	os.Exit(1)
}
