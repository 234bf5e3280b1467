package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dailyquote/qotd-service/internal/adapters/http/handlers"
	"github.com/dailyquote/qotd-service/internal/adapters/http/middleware"
	"github.com/dailyquote/qotd-service/internal/platform/config"
	"github.com/dailyquote/qotd-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for quote requests. It
// leaves headroom over the upstream provider timeout so a slow fetch
// fails with a provider error rather than a blanket request timeout.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// CORSAllowOrigins is the list of allowed origins; a single "*"
	// entry allows all.
	CORSAllowOrigins []string

	// QuoteHandler handles the quote endpoint.
	QuoteHandler *handlers.QuoteHandler

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. CORS - browser cross-origin policy
//  5. OpenTelemetry - tracing and metrics
//  6. Logging - request logging
//  7. Timeout - request deadline on the quote route
//
// Route layout:
//   - GET /quote - quote retrieval
//   - GET /health - cache probe
//   - /-/ (internal): liveness, readiness, build info, metrics
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		corsMiddleware(cfg.CORSAllowOrigins),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints carry no timeout so probes see real latency
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("")
	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}
}

// corsMiddleware builds the CORS policy from the configured origin
// allow-list.
func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"*"}

	if len(allowOrigins) == 1 && allowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowOrigins
	}

	return cors.New(corsCfg)
}
