package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the error taxonomy onto HTTP statuses. Validation
// and business-rule failures travel with their own message; anything
// unrecognized is an infrastructure failure and is logged but never leaked.
func WriteServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		status  int
		code    string
		message = err.Error()
	)

	var depErr *apperrors.DependencyBlockedError
	switch {
	case apperrors.IsValidation(err):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.As(err, &depErr):
		if encErr := writeDependencyBlocked(w, depErr); encErr != nil {
			logger.Error("Failed to write error response", zap.Error(encErr))
		}
		return
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrAlreadyActive):
		status, code = http.StatusConflict, "already_active"
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, apperrors.ErrInvalidUserType):
		status, code = http.StatusInternalServerError, "invalid_user_type"
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		status, code, message = http.StatusInternalServerError, "internal_error", "an unexpected error occurred"
	}

	if encErr := ErrorResponse(w, status, code, message); encErr != nil {
		logger.Error("Failed to write error response", zap.Error(encErr))
	}
}

func writeDependencyBlocked(w http.ResponseWriter, depErr *apperrors.DependencyBlockedError) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	return json.NewEncoder(w).Encode(map[string]any{
		"error":      "dependency_blocked",
		"message":    depErr.Error(),
		"dependents": depErr.Dependents,
	})
}
