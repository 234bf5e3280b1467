// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete implementations.
//
// Port design principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never external DTOs
//   - Error returns use domain error types
package ports

import (
	"context"

	"github.com/dailyquote/qotd-service/internal/domain"
)

// QuoteStore is the cache store contract: a remote key-value store
// holding flat field→value hashes addressed by a string key.
//
// Implementations must treat "key not found" as an empty map, not an
// error. Errors are reserved for transport-level failures (unreachable
// store, auth failure); the resolver absorbs them and proceeds without
// the cache.
type QuoteStore interface {
	// GetFields returns all fields of the hash at key, or an empty
	// map when the key is absent.
	GetFields(ctx context.Context, key string) (map[string]string, error)

	// SetFields writes the whole record hash at key in one call.
	// No TTL is set; records live until purged out-of-band.
	SetFields(ctx context.Context, key string, fields map[string]string) error
}

// QuoteProvider is the upstream provider contract, queried only on a
// cache miss. today selects the provider's "today" endpoint; any other
// date uses the "random" endpoint.
//
// Implementations return trimmed text and author (author defaulted
// when blank) and fail with domain.ErrUpstream for non-200 statuses,
// unparsable bodies, and empty or malformed payloads.
type QuoteProvider interface {
	Fetch(ctx context.Context, today bool) (*domain.ProviderQuote, error)
}
