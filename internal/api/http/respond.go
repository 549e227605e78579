package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/logger"
)

// dataEnvelope is the read-path response shape: {data, error}.
type dataEnvelope struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// actionEnvelope is the mutation response shape: {success, error, errors[]}.
// The errors array carries secondary-channel diagnostics on partial failure.
type actionEnvelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func respondSuccess(w http.ResponseWriter, status int, data any, diagnostics []string) {
	writeJSON(w, status, actionEnvelope{Success: true, Data: data, Errors: diagnostics})
}

func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, actionEnvelope{Success: false, Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.Errorf(domain.ErrValidation, "malformed request body: %v", err)
	}
	return nil
}

func validateBody(body any) error {
	if err := validate.Struct(body); err != nil {
		return domain.Errorf(domain.ErrValidation, "%v", err)
	}
	return nil
}
