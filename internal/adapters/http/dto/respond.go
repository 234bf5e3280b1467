package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyquote/qotd-service/internal/domain"
	"github.com/dailyquote/qotd-service/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
//
// Invalid dates are client errors. Upstream provider failures surface
// as a gateway error carrying the provider diagnostic, since the
// failure is outside this service's control. Anything else (including
// cache errors, which the resolver is expected to have absorbed) gets
// a generic 500.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsInvalidDate(err):
		return http.StatusBadRequest, NewErrorResponse(MsgInvalidDate)

	case domain.IsUpstream(err):
		return http.StatusBadGateway, NewErrorResponse(err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(MsgInternal)
	}
}

// HandleError writes an error response to the gin.Context.
// Server-side failures are logged with the trace ID when one is available.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	var traceID string
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		traceID = span.SpanContext().TraceID().String()
	}

	if status >= http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("request failed",
			"status", status,
			"error", err.Error(),
			"trace_id", traceID,
		)
	}

	c.JSON(status, errResp)
}
