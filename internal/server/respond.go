package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmorales/seatscout/internal/track"
	"github.com/jmorales/seatscout/internal/vendor"
)

// envelope is the shared response shape.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError pairs an HTTP status with a stable machine-readable code.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func badRequest(msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: msg}
}

func notFound(msg string) *apiError {
	return &apiError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: msg}
}

// respondJSON writes a success envelope.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// respondError maps an error to a status and writes a failure envelope.
func respondError(w http.ResponseWriter, err error) {
	status, code, msg := classifyError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: msg},
	})
}

// classifyError translates domain errors into HTTP terms. Unrecognized
// errors are reported as a generic 500 without leaking detail.
func classifyError(err error) (status int, code, msg string) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Status, ae.Code, ae.Message
	}

	var vendorErr *vendor.APIError
	switch {
	case errors.Is(err, track.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "tracked game not found"
	case errors.As(err, &vendorErr):
		if vendorErr.Timeout {
			return http.StatusGatewayTimeout, "VENDOR_TIMEOUT", "vendor request timed out"
		}
		return http.StatusBadGateway, "VENDOR_ERROR", "vendor request failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "request timed out"
	case errors.Is(err, context.Canceled):
		return 499, "CANCELED", "request canceled"
	default:
		return http.StatusInternalServerError, "INTERNAL", "an unexpected error occurred"
	}
}
