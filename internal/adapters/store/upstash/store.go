// Package upstash implements the quote store against the Upstash Redis
// REST API. Commands travel over HTTPS: reads use the path-encoded
// command form, writes POST a JSON command array to the root path.
// Authentication is a bearer token injected on every request.
package upstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dailyquote/qotd-service/internal/adapters/clients"
	"github.com/dailyquote/qotd-service/internal/domain"
)

// defaultProbeKey is the hash used for the write-then-read health probe.
const defaultProbeKey = "qotd:health"

// StoreConfig contains configuration for the Upstash store.
type StoreConfig struct {
	// Client is the HTTP client to use. Its BaseURL must be the
	// Upstash REST endpoint and its AuthFunc must inject the bearer
	// token.
	Client *clients.Client

	// ProbeKey overrides the health probe hash key when non-empty.
	ProbeKey string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Store implements ports.QuoteStore over the Upstash REST protocol.
type Store struct {
	client   *clients.Client
	probeKey string
	logger   *slog.Logger
}

// NewStore creates a new Upstash store adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Client == nil {
		panic("upstash.Store: Client is required")
	}

	probeKey := cfg.ProbeKey
	if probeKey == "" {
		probeKey = defaultProbeKey
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client:   cfg.Client,
		probeKey: probeKey,
		logger:   logger,
	}
}

// BearerAuth returns a client auth function injecting the Upstash REST
// token as a bearer Authorization header.
func BearerAuth(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// restResult is the envelope every Upstash REST response uses: either a
// result payload or an error string.
type restResult struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// GetFields returns the hash at key via HGETALL, or an empty map when
// the key is absent.
// Implements ports.QuoteStore.
func (s *Store) GetFields(ctx context.Context, key string) (map[string]string, error) {
	path := "/hgetall/" + url.PathEscape(key)

	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, domain.NewCacheUnavailableError("get", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := s.decodeResult(resp)
	if err != nil {
		return nil, domain.NewCacheUnavailableError("get", err)
	}

	// HGETALL yields a flat [field, value, field, value, ...] array.
	var flat []string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, domain.NewCacheUnavailableError("get", fmt.Errorf("decoding hgetall result: %w", err))
	}

	if len(flat)%2 != 0 {
		return nil, domain.NewCacheUnavailableError("get", fmt.Errorf("odd hgetall result length %d", len(flat)))
	}

	fields := make(map[string]string, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		fields[flat[i]] = flat[i+1]
	}

	return fields, nil
}

// SetFields writes the whole hash at key via a single HSET command.
// Implements ports.QuoteStore.
func (s *Store) SetFields(ctx context.Context, key string, fields map[string]string) error {
	command := make([]string, 0, 2+2*len(fields))
	command = append(command, "HSET", key)
	for field, value := range fields {
		command = append(command, field, value)
	}

	body, err := json.Marshal(command)
	if err != nil {
		return domain.NewCacheUnavailableError("set", fmt.Errorf("encoding command: %w", err))
	}

	resp, err := s.client.Post(ctx, "/", bytes.NewReader(body))
	if err != nil {
		return domain.NewCacheUnavailableError("set", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := s.decodeResult(resp); err != nil {
		return domain.NewCacheUnavailableError("set", err)
	}

	return nil
}

// decodeResult unwraps the REST envelope, surfacing Upstash-level
// errors and non-200 statuses.
func (s *Store) decodeResult(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var envelope restResult
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}

	if envelope.Error != "" {
		return nil, fmt.Errorf("upstash error: %s", envelope.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstash returned status %d", resp.StatusCode)
	}

	return envelope.Result, nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *Store) Name() string {
	return "cache"
}

// Check performs a write-then-read probe on a dedicated hash,
// verifying the store round trip end to end.
// Implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	probe := map[string]string{
		"ok": "1",
		"ts": time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.SetFields(ctx, s.probeKey, probe); err != nil {
		return err
	}

	fields, err := s.GetFields(ctx, s.probeKey)
	if err != nil {
		return err
	}

	if fields["ok"] != "1" {
		return fmt.Errorf("probe readback mismatch: %q", fields["ok"])
	}

	return nil
}
