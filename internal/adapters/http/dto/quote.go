package dto

import "github.com/dailyquote/qotd-service/internal/domain"

// QuoteQuery binds the query parameters of GET /quote.
type QuoteQuery struct {
	// Date is the requested calendar date in YYYY-MM-DD form.
	Date string `form:"date" validate:"required,datekey"`
}

// QuoteResponse is the HTTP response structure for a quote.
type QuoteResponse struct {
	Date     string `json:"date"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	Source   string `json:"source"`
	StoredAt string `json:"stored_at"`
}

// ToQuoteResponse converts a domain record to an HTTP response.
func ToQuoteResponse(record *domain.QuoteRecord) *QuoteResponse {
	return &QuoteResponse{
		Date:     record.Date,
		Text:     record.Text,
		Author:   record.Author,
		Source:   record.Source,
		StoredAt: record.StoredAt,
	}
}

// HealthResponse is the HTTP response structure for GET /health.
type HealthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
