// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dailyquote/qotd-service/internal/adapters/clients"
	"github.com/dailyquote/qotd-service/internal/adapters/clients/zenquotes"
	"github.com/dailyquote/qotd-service/internal/adapters/http"
	"github.com/dailyquote/qotd-service/internal/adapters/http/handlers"
	"github.com/dailyquote/qotd-service/internal/adapters/store/redisstore"
	"github.com/dailyquote/qotd-service/internal/adapters/store/upstash"
	"github.com/dailyquote/qotd-service/internal/app"
	"github.com/dailyquote/qotd-service/internal/platform/config"
	"github.com/dailyquote/qotd-service/internal/platform/logging"
	"github.com/dailyquote/qotd-service/internal/platform/telemetry"
	"github.com/dailyquote/qotd-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load .env if present (local development convenience)
	_ = godotenv.Load()

	// 2. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 3. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 4. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	// 5. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 7. Create the quote store for the configured driver
	store, storeProbe, err := buildStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating quote store: %w", err)
	}

	if err := healthRegistry.Register(storeProbe); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 8. Create the upstream provider adapter. Upstream calls are a
	// single attempt: a failure surfaces immediately with its response
	// body so the error detail can carry the failure payload.
	providerRetry := cfg.Client.Retry
	providerRetry.MaxAttempts = 1

	providerClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Provider.BaseURL,
		ServiceName: cfg.Provider.Name,
		Timeout:     cfg.Provider.Timeout,
		Retry:       providerRetry,
		Circuit:     cfg.Client.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating provider HTTP client: %w", err)
	}

	provider := zenquotes.NewClient(zenquotes.ClientConfig{
		Client: providerClient,
		Logger: logger,
	})

	// 9. Create the resolver (application layer)
	resolver := app.NewQuoteResolver(app.QuoteResolverConfig{
		Store:     store,
		Provider:  provider,
		KeyPrefix: cfg.Cache.KeyPrefix,
		Logger:    logger,
	})

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, storeProbe, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(resolver)

	// 11. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 12. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:           logger,
		AppConfig:        &cfg.App,
		CORSAllowOrigins: cfg.CORS.AllowOrigins,
		QuoteHandler:     quoteHandler,
		HealthHandler:    healthHandler,
		Timeout:          http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 13. Start server (non-blocking)
	serverErr := server.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// storeWithProbe is satisfied by both store drivers: the quote store
// contract plus the health probe.
type storeWithProbe interface {
	ports.QuoteStore
	ports.HealthChecker
}

// buildStore constructs the quote store selected by cache.driver.
func buildStore(cfg *config.Config, logger *slog.Logger) (ports.QuoteStore, storeWithProbe, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverUpstash:
		storeClient, err := clients.New(&clients.Config{
			BaseURL:           cfg.Cache.Upstash.URL,
			ServiceName:       "upstash",
			Timeout:           cfg.Client.Timeout,
			Retry:             cfg.Client.Retry,
			RetryServerErrors: true,
			Circuit:           cfg.Client.CircuitBreaker,
			AuthFunc:          upstash.BearerAuth(cfg.Cache.Upstash.Token),
			Logger:            logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating upstash HTTP client: %w", err)
		}

		store := upstash.NewStore(upstash.StoreConfig{
			Client:   storeClient,
			ProbeKey: cfg.Cache.ProbeKey,
			Logger:   logger,
		})

		return store, store, nil

	case config.CacheDriverRedis:
		store := redisstore.NewStore(redisstore.StoreConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			ProbeKey: cfg.Cache.ProbeKey,
			Logger:   logger,
		})

		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
