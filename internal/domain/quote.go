// Package domain contains core business entities and rules.
package domain

import "time"

// SourceZenQuotes is the provenance tag recorded on every record this
// service produces. Stored alongside the record so a future provider
// change remains distinguishable in the cache.
const SourceZenQuotes = "zenquotes"

// DefaultAuthor is used when the upstream provider omits the author.
const DefaultAuthor = "Unknown"

// DateLayout is the external representation of the date key.
const DateLayout = "2006-01-02"

// QuoteRecord is the quote served for a given calendar date.
// Records are created once per distinct date on first request and are
// never updated or deleted by this service (write-once-by-convention:
// a racing second write for the same date is benign).
type QuoteRecord struct {
	// Date is the calendar date key in YYYY-MM-DD form, kept verbatim
	// as supplied by the caller.
	Date string

	// Text is the quote itself.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// Source identifies the upstream provider that produced the record.
	Source string

	// StoredAt is the RFC 3339 UTC timestamp recorded at write time.
	// Advisory only; nothing expires based on it.
	StoredAt string
}

// Valid reports whether the record is cache-hit-worthy: both Text and
// Author must be present and non-empty. An empty-text record in the
// store is treated as a miss.
func (q *QuoteRecord) Valid() bool {
	return q.Text != "" && q.Author != ""
}

// Fields flattens the record into the field→value hash stored in the
// cache. Date is part of the key, not the hash.
func (q *QuoteRecord) Fields() map[string]string {
	return map[string]string{
		"text":      q.Text,
		"author":    q.Author,
		"source":    q.Source,
		"stored_at": q.StoredAt,
	}
}

// RecordFromFields rebuilds a record for date from a cached hash.
// Source falls back to SourceZenQuotes when the cached hash predates
// the provenance field.
func RecordFromFields(date string, fields map[string]string) *QuoteRecord {
	source := fields["source"]
	if source == "" {
		source = SourceZenQuotes
	}

	return &QuoteRecord{
		Date:     date,
		Text:     fields["text"],
		Author:   fields["author"],
		Source:   source,
		StoredAt: fields["stored_at"],
	}
}

// ProviderQuote is what the upstream provider yields on a cache miss:
// just the quote text and author, already trimmed and defaulted. The
// resolver turns it into a full QuoteRecord.
type ProviderQuote struct {
	Text   string
	Author string
}

// ParseDate parses a date key, failing with InvalidDateError for
// anything that is not a well-formed YYYY-MM-DD calendar date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, NewInvalidDateError(dateStr)
	}

	return t, nil
}
