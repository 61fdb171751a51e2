package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/logging"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DotEnvErr != nil {
		log.Infow("no .env file loaded", "error", cfg.DotEnvErr)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Warnw("OPENWEATHER_API_KEY is not set; data routes will answer 500")
	}

	metrics.Register()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Provider with resilience (rate limit + circuit breaker, no retries).
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.OpenWeatherBaseURL),
		providers.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
	)

	var serviceOpts []weather.ServiceOption
	if cfg.GoogleGeocodingAPIKey != "" {
		serviceOpts = append(serviceOpts, weather.WithFallbackGeocoder(providers.NewGoogleReverseGeocoder(cfg.GoogleGeocodingAPIKey)))
	}
	service := weather.NewService(provider, log, serviceOpts...)

	// Background probe of the upstream; results show up on /health.
	health := store.NewHealthStore(96, 24*time.Hour)
	sched := scheduler.New(service, health,
		weather.Coordinate{Latitude: cfg.HealthProbeLat, Longitude: cfg.HealthProbeLon},
		cfg.HealthProbeInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.RequestTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	httpapi.RegisterRoutes(app, service, httpapi.Options{
		RequestTimeout:  cfg.RequestTimeout,
		Health:          health,
		MapTilesEnabled: cfg.MapTilesAPIKey != "",
		Logger:          log,
	})

	// Start server with graceful shutdown
	go func() {
		log.Infow("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "error", err)
	}
}
