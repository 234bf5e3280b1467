// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

// ErrorResponse is the error envelope for all error responses: a
// single human-readable detail string.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MsgInvalidDate is the detail returned for any unparsable or missing
// date parameter.
const MsgInvalidDate = "Invalid date format, use YYYY-MM-DD"

// MsgInternal is the generic detail for unexpected failures, kept
// vague to avoid leaking internals.
const MsgInternal = "an internal error occurred"

// NewErrorResponse creates an error response with the given detail.
func NewErrorResponse(detail string) *ErrorResponse {
	return &ErrorResponse{Detail: detail}
}
