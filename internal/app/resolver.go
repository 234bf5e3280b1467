// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dailyquote/qotd-service/internal/domain"
	"github.com/dailyquote/qotd-service/internal/ports"
)

// DefaultKeyPrefix is prepended to the raw date string to form the
// storage key. The date string is used verbatim: callers are expected
// to canonicalize before calling.
const DefaultKeyPrefix = "quote:"

// QuoteResolver is the cache-aside orchestrator. Given a requested
// date it checks the cache store, serves a valid hit immediately, and
// otherwise fetches from the upstream provider and populates the cache
// best-effort. Cache failures on either path never fail the request;
// the resolver degrades to "always fetch from provider".
type QuoteResolver struct {
	store     ports.QuoteStore
	provider  ports.QuoteProvider
	keyPrefix string
	logger    *slog.Logger

	// group coalesces concurrent misses for the same key so a burst
	// of first requests for a date results in a single provider call.
	group singleflight.Group

	// now is overridable for tests.
	now func() time.Time
}

// QuoteResolverConfig contains dependencies for the resolver.
type QuoteResolverConfig struct {
	// Store is the cache store adapter.
	Store ports.QuoteStore

	// Provider is the upstream quote provider adapter.
	Provider ports.QuoteProvider

	// KeyPrefix overrides DefaultKeyPrefix when non-empty.
	KeyPrefix string

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewQuoteResolver creates a resolver with the provided dependencies.
// Panics if Store or Provider is nil.
func NewQuoteResolver(cfg QuoteResolverConfig) *QuoteResolver {
	if cfg.Store == nil {
		panic("QuoteResolver: Store is required")
	}

	if cfg.Provider == nil {
		panic("QuoteResolver: Provider is required")
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteResolver{
		store:     cfg.Store,
		provider:  cfg.Provider,
		keyPrefix: keyPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// Resolve returns the quote record for dateStr.
//
// The date must be a well-formed YYYY-MM-DD calendar date; anything
// else fails fast with domain.ErrInvalidDate before any cache or
// provider call. A valid cached record is returned as-is. On a miss
// (or a cache read error, which is logged and treated as a miss) the
// provider is called — the "today" endpoint when the parsed date
// matches the current UTC date, the "random" endpoint otherwise — and
// the resulting record is written back to the cache best-effort before
// being returned.
func (r *QuoteResolver) Resolve(ctx context.Context, dateStr string) (*domain.QuoteRecord, error) {
	parsed, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	key := r.keyPrefix + dateStr

	if record := r.fromCache(ctx, key, dateStr); record != nil {
		return record, nil
	}

	// Concurrent misses for the same key share one provider fetch.
	// Last write to the store still wins, which is accepted.
	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.fetchAndStore(ctx, key, dateStr, parsed)
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.QuoteRecord), nil
}

// fromCache attempts a cache read. Returns nil on absence, on an
// invalid record, and on a transport error; errors are logged, never
// propagated.
func (r *QuoteResolver) fromCache(ctx context.Context, key, dateStr string) *domain.QuoteRecord {
	fields, err := r.store.GetFields(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed, continuing without cache",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil
	}

	record := domain.RecordFromFields(dateStr, fields)
	if !record.Valid() {
		return nil
	}

	return record
}

// fetchAndStore fetches from the provider, builds the canonical
// record, and persists it best-effort.
func (r *QuoteResolver) fetchAndStore(ctx context.Context, key, dateStr string, parsed time.Time) (*domain.QuoteRecord, error) {
	today := parsed.Format(domain.DateLayout) == r.now().UTC().Format(domain.DateLayout)

	quote, err := r.provider.Fetch(ctx, today)
	if err != nil {
		return nil, err
	}

	record := &domain.QuoteRecord{
		Date:     dateStr,
		Text:     quote.Text,
		Author:   quote.Author,
		Source:   domain.SourceZenQuotes,
		StoredAt: r.now().UTC().Format(time.RFC3339),
	}

	if err := r.store.SetFields(ctx, key, record.Fields()); err != nil {
		r.logger.WarnContext(ctx, "cache write failed, returning uncached record",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return record, nil
}
