package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyquote/qotd-service/internal/ports"
)

// stubChecker is a HealthChecker with a fixed name and result.
type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string                    { return s.name }
func (s *stubChecker) Check(ctx context.Context) error { return s.err }

func newHealthEngine(t *testing.T, probe ports.HealthChecker, checkers ...ports.HealthChecker) *gin.Engine {
	t.Helper()

	registry := ports.NewHealthRegistry()
	for _, checker := range checkers {
		require.NoError(t, registry.Register(checker))
	}

	handler := NewHealthHandler(registry, probe, NewBuildInfo("1.2.3", "abc123", "2024-01-01T00:00:00Z"))

	engine := gin.New()
	handler.RegisterHealthRoutesOnEngine(engine)

	return engine
}

func TestHealth_ProbeSucceeds(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"})

	w := doRequest(engine, "/health")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "error")
}

func TestHealth_ProbeFails(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache", err: errors.New("connection refused")})

	w := doRequest(engine, "/health")

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "connection refused")
}

func TestLiveness(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"})

	w := doRequest(engine, "/-/live")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReadiness_AllHealthy(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"},
		&stubChecker{name: "cache"},
		&stubChecker{name: "zenquotes"},
	)

	w := doRequest(engine, "/-/ready")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestReadiness_Unhealthy(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"},
		&stubChecker{name: "cache"},
		&stubChecker{name: "zenquotes", err: errors.New("unreachable")},
	)

	w := doRequest(engine, "/-/ready")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	assert.Contains(t, w.Body.String(), "unreachable")
}

func TestBuildInfo(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"})

	w := doRequest(engine, "/-/build")

	require.Equal(t, http.StatusOK, w.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

func TestMetricsEndpoint(t *testing.T) {
	engine := newHealthEngine(t, &stubChecker{name: "cache"})

	w := doRequest(engine, "/-/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
