// Package httputil translates service-layer results and typed
// failures into HTTP responses. It is the only place that knows which
// status code each failure kind maps to.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/istanbulcare/backend/internal/apperrors"
)

// ErrorResponse is the JSON body returned for every failure.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	ErrorType  string `json:"error_type"`
	StatusCode int    `json:"status_code"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err's failure kind to an HTTP status and writes the
// error body. Untyped errors become a generic 500 with no internal
// detail exposed.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	WriteJSON(w, statusFor(kind), ErrorResponse{
		Detail:     apperrors.MessageOf(err),
		ErrorType:  errorTypeFor(kind),
		StatusCode: statusFor(kind),
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindAlreadyExists:
		return http.StatusBadRequest
	case apperrors.KindValidation:
		return http.StatusUnprocessableEntity
	case apperrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func errorTypeFor(kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindNotFound:
		return "NotFoundError"
	case apperrors.KindAlreadyExists:
		return "AlreadyExistsError"
	case apperrors.KindValidation:
		return "ValidationError"
	case apperrors.KindUnauthenticated:
		return "AuthenticationError"
	case apperrors.KindForbidden:
		return "AuthorizationError"
	default:
		return "InternalServerError"
	}
}
