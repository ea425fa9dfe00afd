package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/potledger/potledger/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// WriteDomainError maps domain errors to HTTP status codes and writes the
// standard error response. Validation failures are 400, missing entities
// 404, business conflicts 409, and fatal ledger-state errors 422 — the
// caller sent something the engine cannot ever compute from.
func WriteDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var ledgerErr *domain.LedgerStateError
	var unbalancedErr *domain.UnbalancedError
	var overflowErr *domain.OverflowError

	switch {
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTransactionWrongSession):
		WriteError(w, http.StatusNotFound, err.Error(), "resource not found")
	case errors.Is(err, domain.ErrPlayerAlreadyExists):
		WriteError(w, http.StatusConflict, err.Error(), "a player with this name is already in the session")
	case errors.Is(err, domain.ErrTransactionAlreadyVoid):
		WriteError(w, http.StatusConflict, err.Error(), "transaction was already voided")
	case errors.As(err, &ledgerErr):
		WriteError(w, http.StatusUnprocessableEntity, "invalid_ledger_state", ledgerErr.Message)
	case errors.As(err, &unbalancedErr):
		WriteError(w, http.StatusUnprocessableEntity, "unbalanced_positions", unbalancedErr.Error())
	case errors.As(err, &overflowErr):
		WriteError(w, http.StatusUnprocessableEntity, "precision_overflow", overflowErr.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}
