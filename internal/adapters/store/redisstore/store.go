// Package redisstore implements the quote store against a plain Redis
// server over the wire protocol, for deployments that run their own
// Redis instead of the hosted REST variant.
package redisstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dailyquote/qotd-service/internal/domain"
)

// defaultProbeKey is the hash used for the write-then-read health probe.
const defaultProbeKey = "qotd:health"

// StoreConfig contains configuration for the Redis store.
type StoreConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password authenticates the connection; empty disables AUTH.
	Password string

	// DB selects the logical database.
	DB int

	// ProbeKey overrides the health probe hash key when non-empty.
	ProbeKey string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Store implements ports.QuoteStore on go-redis.
type Store struct {
	rdb      *redis.Client
	probeKey string
	logger   *slog.Logger
}

// NewStore creates a new Redis store adapter. The connection is lazy;
// use Check to verify reachability at startup.
func NewStore(cfg StoreConfig) *Store {
	probeKey := cfg.ProbeKey
	if probeKey == "" {
		probeKey = defaultProbeKey
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Store{
		rdb:      rdb,
		probeKey: probeKey,
		logger:   logger,
	}
}

// GetFields returns the hash at key via HGETALL. go-redis already
// yields an empty map for an absent key.
// Implements ports.QuoteStore.
func (s *Store) GetFields(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, domain.NewCacheUnavailableError("get", err)
	}

	return fields, nil
}

// SetFields writes the whole hash at key via a single HSET command.
// Implements ports.QuoteStore.
func (s *Store) SetFields(ctx context.Context, key string, fields map[string]string) error {
	values := make(map[string]any, len(fields))
	for field, value := range fields {
		values[field] = value
	}

	if err := s.rdb.HSet(ctx, key, values).Err(); err != nil {
		return domain.NewCacheUnavailableError("set", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *Store) Name() string {
	return "cache"
}

// Check performs a write-then-read probe on a dedicated hash.
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
