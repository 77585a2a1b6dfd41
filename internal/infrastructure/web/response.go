package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bnema/cookiemsg/internal/domain/entity"
)

// problem is an RFC 7807 error body.
type problem struct {
	Type   string             `json:"type"`
	Title  string             `json:"title"`
	Status int                `json:"status"`
	Detail string             `json:"detail,omitempty"`
	Errors entity.FieldErrors `json:"errors"`
	// Submit carries the cycle outcome when a save failed.
	Submit any `json:"submit,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, detail string, submit any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Errors: entity.FieldErrors{},
		Submit: submit,
	})
}

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnknownTab):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrTabForbidden),
		errors.Is(err, ErrCSRFMissing),
		errors.Is(err, ErrCSRFInvalid),
		errors.Is(err, ErrCSRFExpired):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrWriteConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
