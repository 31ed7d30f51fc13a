package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrorResponse is the wire shape for errors returned by the HTTP layer.
// The admin frontend extracts error.message for its toast notifications.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HTTPStatusFromErr maps a marked error to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrHTTPClient):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the wire error payload. The hint, when present,
// takes priority over the internal message since it is written for users.
func NewErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{}
	var ie *InternalError
	if errors.As(err, &ie) {
		resp.Error.Message = ie.Error()
		if ie.Hint() != "" {
			resp.Error.Message = ie.Hint()
		}
		resp.Error.Details = ie.ReportableDetails()
		return resp
	}
	resp.Error.Message = err.Error()
	return resp
}
