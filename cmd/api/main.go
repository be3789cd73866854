package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/build0hq/storefront-session/api/routes"
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/build0hq/storefront-session/internal/checkout"
	"github.com/build0hq/storefront-session/internal/notifications"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/config"
	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/metrics"
	"github.com/build0hq/storefront-session/pkg/redis"
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

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	catalogClient, err := catalog.NewClient(cfg.Storefront.BaseURL, catalog.WithTimeout(cfg.Storefront.FetchTimeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}
	resource := catalog.NewResource(catalogClient, cfg.Storefront.ID, logg, catalogMetrics)

	// Warm the catalog. A failed first fetch is not fatal; the resource
	// stays failed until a refresh succeeds.
	if result := resource.Refresh(context.Background()); result.Status == catalog.StatusFailed {
		logg.Warn(context.Background(), "initial catalog fetch failed")
	}

	checkoutClient, err := checkout.NewClient(
		cfg.Checkout.EffectiveBaseURL(cfg.Storefront),
		checkout.WithTimeout(cfg.Checkout.SubmitTimeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout client", err)
		os.Exit(1)
	}

	hub := session.NewHub(cfg.Session, logg,
		func(sessionID uuid.UUID, feed *notifications.Feed) *checkout.Submitter {
			return checkout.NewSubmitter(checkoutClient, cfg.Storefront.ID, feed, logg, checkoutMetrics)
		})
	defer hub.Close()

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go hub.Start(sweepCtx)

	var redisP redis.Pinger
	var idemStore redis.IdempotencyStore
	if cfg.Redis.Enabled() {
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
		redisP = redisClient
		idemStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, checkout idempotency guard disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"storefront": cfg.Storefront.ID,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, resource, hub, redisP, idemStore, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
