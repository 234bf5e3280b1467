package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyquote/qotd-service/internal/app"
	"github.com/dailyquote/qotd-service/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory QuoteStore for handler tests.
type memStore struct {
	data   map[string]map[string]string
	getErr error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]map[string]string)}
}

func (s *memStore) GetFields(ctx context.Context, key string) (map[string]string, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if fields, ok := s.data[key]; ok {
		return fields, nil
	}
	return map[string]string{}, nil
}

func (s *memStore) SetFields(ctx context.Context, key string, fields map[string]string) error {
	s.data[key] = fields
	return nil
}

// stubProvider is a QuoteProvider returning a fixed result.
type stubProvider struct {
	quote *domain.ProviderQuote
	err   error
	calls int
}

func (p *stubProvider) Fetch(ctx context.Context, today bool) (*domain.ProviderQuote, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.quote, nil
}

func newQuoteEngine(store *memStore, provider *stubProvider) *gin.Engine {
	resolver := app.NewQuoteResolver(app.QuoteResolverConfig{
		Store:    store,
		Provider: provider,
	})

	engine := gin.New()
	NewQuoteHandler(resolver).RegisterQuoteRoutes(engine.Group(""))

	return engine
}

func doRequest(engine *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestGetQuote_CacheHit(t *testing.T) {
	store := newMemStore()
	store.data["quote:2024-01-01"] = map[string]string{
		"text":      "Carpe diem",
		"author":    "Horace",
		"source":    "zenquotes",
		"stored_at": "2024-01-01T08:00:00Z",
	}
	provider := &stubProvider{}

	w := doRequest(newQuoteEngine(store, provider), "/quote?date=2024-01-01")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-01", body["date"])
	assert.Equal(t, "Carpe diem", body["text"])
	assert.Equal(t, "Horace", body["author"])
	assert.Equal(t, "zenquotes", body["source"])
	assert.Equal(t, "2024-01-01T08:00:00Z", body["stored_at"])
	assert.Zero(t, provider.calls)
}

func TestGetQuote_MissFetchesAndStores(t *testing.T) {
	store := newMemStore()
	provider := &stubProvider{quote: &domain.ProviderQuote{Text: "fresh", Author: "Someone"}}

	w := doRequest(newQuoteEngine(store, provider), "/quote?date=2024-01-01")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "fresh", body["text"])
	assert.Equal(t, "zenquotes", body["source"])
	assert.NotEmpty(t, body["stored_at"])
	assert.Equal(t, 1, provider.calls)
	assert.Contains(t, store.data, "quote:2024-01-01")
}

func TestGetQuote_InvalidDate(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing date", "/quote"},
		{"empty date", "/quote?date="},
		{"malformed date", "/quote?date=not-a-date"},
		{"impossible date", "/quote?date=2024-13-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			provider := &stubProvider{}

			w := doRequest(newQuoteEngine(store, provider), tt.target)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Invalid date format, use YYYY-MM-DD", body["detail"])
			assert.Zero(t, provider.calls)
		})
	}
}

func TestGetQuote_UpstreamFailure(t *testing.T) {
	store := newMemStore()
	provider := &stubProvider{err: domain.NewUpstreamError(503, "Service Unavailable")}

	w := doRequest(newQuoteEngine(store, provider), "/quote?date=2024-01-01")

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "zenquotes 503")
	assert.Contains(t, body["detail"], "Service Unavailable")
}

func TestGetQuote_CacheDownStillServes(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	provider := &stubProvider{quote: &domain.ProviderQuote{Text: "resilient", Author: "Anon"}}

	w := doRequest(newQuoteEngine(store, provider), "/quote?date=2024-01-01")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "resilient", body["text"])
}
