// Package zenquotes adapts the ZenQuotes HTTP API to the domain. It is
// an anti-corruption layer: external DTOs and error shapes stay inside
// this package and only domain types cross the boundary.
package zenquotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dailyquote/qotd-service/internal/adapters/clients"
	"github.com/dailyquote/qotd-service/internal/domain"
)

const (
	// PathToday and PathRandom are the two upstream endpoints. The
	// resolver selects between them based on whether the requested
	// date is the current UTC date.
	PathToday  = "/today"
	PathRandom = "/random"

	// snippetLimit caps the diagnostic excerpt of a failure body that
	// gets forwarded to callers.
	snippetLimit = 160
)

// ClientConfig contains configuration for the ZenQuotes client.
type ClientConfig struct {
	// Client is the HTTP client to use for requests. Its BaseURL
	// should point at the ZenQuotes API root (e.g.
	// "https://zenquotes.io/api").
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Client implements ports.QuoteProvider against the ZenQuotes API.
type Client struct {
	client *clients.Client
	logger *slog.Logger
}

// NewClient creates a new ZenQuotes adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Client == nil {
		panic("zenquotes.Client: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client: cfg.Client,
		logger: logger,
	}
}

// quoteItem is the external DTO: ZenQuotes returns a JSON array whose
// elements carry the quote under "q" and the author under "a".
// Never exposed outside this package.
type quoteItem struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Fetch retrieves a quote from the upstream API. today selects the
// /today endpoint, otherwise /random is used.
// Implements ports.QuoteProvider.
func (c *Client) Fetch(ctx context.Context, today bool) (*domain.ProviderQuote, error) {
	path := PathRandom
	if today {
		path = PathToday
	}

	c.logger.DebugContext(ctx, "fetching quote", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, domain.NewUpstreamError(0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError(resp.StatusCode, "reading body: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "upstream returned non-200",
			slog.Int("status", resp.StatusCode),
			slog.String("path", path),
		)
		return nil, domain.NewUpstreamError(resp.StatusCode, snippet(body))
	}

	return translate(body)
}

// translate parses the raw response body into a domain quote,
// enforcing the payload shape: a non-empty JSON array whose first
// element is the quote item.
func translate(body []byte) (*domain.ProviderQuote, error) {
	var items []quoteItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, domain.NewUpstreamError(0, "non-JSON: "+snippet(body))
	}

	if len(items) == 0 {
		return nil, domain.NewUpstreamError(0, "unexpected payload: "+snippet(body))
	}

	item := items[0]

	author := strings.TrimSpace(item.A)
	if author == "" {
		author = domain.DefaultAuthor
	}

	return &domain.ProviderQuote{
		Text:   strings.TrimSpace(item.Q),
		Author: author,
	}, nil
}

// snippet truncates a failure body to a caller-safe diagnostic excerpt.
func snippet(body []byte) string {
	s := string(body)
	if len(s) > snippetLimit {
		s = s[:snippetLimit]
	}

	return s
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *Client) Name() string {
	return "zenquotes"
}

// Check verifies upstream connectivity with a request to the random
// endpoint.
// Implements ports.HealthChecker.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, PathRandom)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zenquotes returned status %d", resp.StatusCode)
	}

	return nil
}
