package handlers

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dailyquote/qotd-service/internal/adapters/http/dto"
	"github.com/dailyquote/qotd-service/internal/platform/logging"
	"github.com/dailyquote/qotd-service/internal/ports"
)

// BuildInfo contains build-time information about the service.
// These values are typically injected at build time using ldflags.
type BuildInfo struct {
	// Version is the semantic version of the service.
	Version string `json:"version"`

	// Commit is the git commit SHA.
	Commit string `json:"commit"`

	// BuildTime is the timestamp when the binary was built.
	BuildTime string `json:"buildTime"`

	// GoVersion is the Go version used to build the binary.
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo creates a BuildInfo with the Go version automatically set.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler handles health-related HTTP endpoints.
type HealthHandler struct {
	registry   ports.HealthRegistry
	cacheProbe ports.HealthChecker
	buildInfo  BuildInfo
}

// NewHealthHandler creates a new health handler. cacheProbe backs the
// public /health endpoint; the registry backs the internal /-/ready
// endpoint and may aggregate additional checkers.
func NewHealthHandler(registry ports.HealthRegistry, cacheProbe ports.HealthChecker, buildInfo BuildInfo) *HealthHandler {
	return &HealthHandler{
		registry:   registry,
		cacheProbe: cacheProbe,
		buildInfo:  buildInfo,
	}
}

// Health handles the public GET /health endpoint: a write-then-read
// probe against the cache store. Returns 200 {"ok": true} when the
// round trip succeeds, 500 {"ok": false, "error": ...} otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.cacheProbe.Check(c.Request.Context()); err != nil {
		logging.FromContext(c.Request.Context()).Warn("cache probe failed",
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.HealthResponse{
			OK:    false,
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{OK: true})
}

// livenessResponse is the response structure for /-/live endpoint.
type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness handles the /-/live endpoint.
// Returns 200 OK if the process is running. It should NOT check any
// dependencies; that's what readiness is for.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{
		Status: "ok",
	})
}

// readinessResponse is the response structure for /-/ready endpoint.
type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness handles the /-/ready endpoint.
// Returns 200 OK if all registered health checks pass, 503 Service
// Unavailable otherwise.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	resp := readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	}

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

// BuildInfoHandler handles the /-/build endpoint.
// Returns build information including version, commit, and build time.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler returns an http.Handler for Prometheus metrics.
// Use this with gin.WrapH() to register it as a route.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes registers internal operational routes on the
// given router group, expected to be mounted at /-:
//   - GET /-/live - Liveness probe
//   - GET /-/ready - Readiness probe
//   - GET /-/build - Build information
//   - GET /-/metrics - Prometheus metrics
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine registers the public /health probe and
// the internal /-/ routes directly on the engine.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	engine.GET("/health", h.Health)

	internal := engine.Group("/-")
	h.RegisterHealthRoutes(internal)
}
