package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargeops/internal/repository"
	"chargeops/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain failures onto the response taxonomy.
// Persistence and unexpected errors are logged and surfaced as a generic 500.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var vErr *validate.Error
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, repository.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "employee not found")
	case errors.Is(err, repository.ErrSessionCompleted):
		writeError(w, http.StatusConflict, "session already completed")
	case errors.Is(err, repository.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
