// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyquote/qotd-service/internal/adapters/http/dto"
	"github.com/dailyquote/qotd-service/internal/app"
)

// QuoteHandler handles the quote endpoint.
type QuoteHandler struct {
	resolver *app.QuoteResolver
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(resolver *app.QuoteResolver) *QuoteHandler {
	return &QuoteHandler{
		resolver: resolver,
	}
}

// GetQuote handles GET /quote?date=YYYY-MM-DD.
// Returns the cached quote for the date, fetching and caching from the
// upstream provider on a miss.
//
// Responses:
//   - 200 with {date, text, author, source, stored_at}
//   - 400 with {detail} when the date is missing or unparsable
//   - 502 with {detail} when the upstream provider fails
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	var query dto.QuoteQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.MsgInvalidDate))
		return
	}

	record, err := h.resolver.Resolve(c.Request.Context(), query.Date)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(record))
}

// RegisterQuoteRoutes registers the quote route on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/quote", h.GetQuote)
}
