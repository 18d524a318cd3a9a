package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okubo/chobo/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type violationResponse struct {
	Violations []ledger.Violation `json:"violations"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeViolations returns the full ordered violation list; validation
// failures are 422, never 500.
func writeViolations(w http.ResponseWriter, vs []ledger.Violation) {
	writeJSON(w, http.StatusUnprocessableEntity, violationResponse{Violations: vs})
}

// mapError classifies infrastructure faults. An unknown classification in a
// breakdown batch is deliberately 500-class: the whole batch is aborted and
// the caller must not treat it as a per-request validation problem.
func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrJournalNotFound),
		errors.Is(err, ledger.ErrFiscalYearNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrEmptyAccountCode),
		errors.Is(err, ledger.ErrInvalidGranularity),
		errors.Is(err, ledger.ErrInvalidBreakdownSide),
		errors.Is(err, ledger.ErrInvalidTimeUnit):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
