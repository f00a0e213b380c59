package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nightcrawl/nightcrawl-backend/api/routes"
	checkoutsvc "github.com/nightcrawl/nightcrawl-backend/internal/checkout"
	"github.com/nightcrawl/nightcrawl-backend/internal/venues"
	"github.com/nightcrawl/nightcrawl-backend/pkg/config"
	"github.com/nightcrawl/nightcrawl-backend/pkg/logger"
	"github.com/nightcrawl/nightcrawl-backend/pkg/maps"
	"github.com/nightcrawl/nightcrawl-backend/pkg/metrics"
	"github.com/nightcrawl/nightcrawl-backend/pkg/square"
	"github.com/nightcrawl/nightcrawl-backend/pkg/stripe"
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

	mapsOpts := []maps.Option{}
	if cfg.GoogleMaps.BaseURL != "" {
		mapsOpts = append(mapsOpts, maps.WithBaseURL(cfg.GoogleMaps.BaseURL))
	}
	mapsClient, err := maps.NewClient(cfg.GoogleMaps.APIKey, mapsOpts...)
	if err != nil {
		logg.Error(context.Background(), "failed to build google maps client", err)
		os.Exit(1)
	}

	venueService, err := venues.NewService(mapsClient, mapsClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build venue service", err)
		os.Exit(1)
	}

	gateway, err := buildGateway(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout gateway", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(gateway, cfg.Checkout.SuccessURL, cfg.Checkout.CancelURL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build checkout service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"provider": cfg.Checkout.ProviderName(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, venueService, checkoutService, httpMetrics, metricsHandler),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildGateway(cfg *config.Config, logg *logger.Logger) (checkoutsvc.Gateway, error) {
	switch cfg.Checkout.ProviderName() {
	case config.ProviderStripe:
		stripeClient, err := stripe.NewClient(cfg.Stripe.APIKey, cfg.Stripe.Environment())
		if err != nil {
			return nil, err
		}
		return checkoutsvc.NewGateway(config.ProviderStripe, nil, stripeClient)
	default:
		squareClient, err := square.NewClient(context.Background(), cfg.Square, logg)
		if err != nil {
			return nil, err
		}
		return checkoutsvc.NewGateway(config.ProviderSquare, squareClient, nil)
	}
}
