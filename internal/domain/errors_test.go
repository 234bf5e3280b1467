package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidDateError(t *testing.T) {
	err := NewInvalidDateError("not-a-date")

	require.Error(t, err)
	assert.True(t, IsInvalidDate(err))
	assert.True(t, errors.Is(err, ErrInvalidDate))
	assert.Contains(t, err.Error(), "not-a-date")
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	var invalidErr *InvalidDateError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "not-a-date", invalidErr.Input)
}

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "with status",
			err:      NewUpstreamError(500, "Internal Server Error"),
			contains: []string{"500", "Internal Server Error"},
		},
		{
			name:     "without status",
			err:      NewUpstreamError(0, "unexpected payload"),
			contains: []string{"unexpected payload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsUpstream(tt.err))
			for _, s := range tt.contains {
				assert.Contains(t, tt.err.Error(), s)
			}
		})
	}
}

func TestCacheUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCacheUnavailableError("get", cause)

	assert.True(t, IsCacheUnavailable(err))
	assert.Contains(t, err.Error(), "get")
	assert.Contains(t, err.Error(), "connection refused")

	// Wrapping preserves errors.Is through fmt.
	wrapped := fmt.Errorf("resolver: %w", err)
	assert.True(t, IsCacheUnavailable(wrapped))
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, IsUpstream(NewInvalidDateError("x")))
	assert.False(t, IsInvalidDate(NewUpstreamError(502, "bad gateway")))
	assert.False(t, IsCacheUnavailable(NewUpstreamError(502, "bad gateway")))
}

func TestQuoteRecordValid(t *testing.T) {
	tests := []struct {
		name   string
		record QuoteRecord
		want   bool
	}{
		{"both present", QuoteRecord{Text: "Carpe diem", Author: "Horace"}, true},
		{"empty text", QuoteRecord{Text: "", Author: "Horace"}, false},
		{"empty author", QuoteRecord{Text: "Carpe diem", Author: ""}, false},
		{"both empty", QuoteRecord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Valid())
		})
	}
}

func TestRecordFromFields_SourceFallback(t *testing.T) {
	record := RecordFromFields("2024-01-01", map[string]string{
		"text":   "Be kind.",
		"author": "Anon",
	})

	assert.Equal(t, "2024-01-01", record.Date)
	assert.Equal(t, SourceZenQuotes, record.Source)
	assert.Empty(t, record.StoredAt)
}

func TestRecordFieldsRoundTrip(t *testing.T) {
	record := &QuoteRecord{
		Date:     "2024-01-01",
		Text:     "Carpe diem",
		Author:   "Horace",
		Source:   SourceZenQuotes,
		StoredAt: "2024-01-01T10:00:00Z",
	}

	rebuilt := RecordFromFields(record.Date, record.Fields())

	assert.Equal(t, record, rebuilt)
}

func TestParseDate(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		d, err := ParseDate("2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
	})

	for _, input := range []string{"", "not-a-date", "2024-13-01", "01/01/2024", "2024-1-1"} {
		t.Run("malformed "+input, func(t *testing.T) {
			_, err := ParseDate(input)
			require.Error(t, err)
			assert.True(t, IsInvalidDate(err))
		})
	}
}
