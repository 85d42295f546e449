package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/apperrors"
)

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.Validationf("iso code must be exactly 2 letters"), http.StatusBadRequest, "validation_error"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("fare basis code x: %w", apperrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"already active", apperrors.ErrAlreadyActive, http.StatusConflict, "already_active"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"invalid user type", apperrors.ErrInvalidUserType, http.StatusInternalServerError, "invalid_user_type"},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteServiceError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestWriteServiceErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteServiceError(rec, zap.NewNop(), errors.New("connect to 10.0.0.5:5432 refused"))

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "an unexpected error occurred")
}

func TestWriteServiceErrorListsDependents(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &apperrors.DependencyBlockedError{Dependents: []string{"active aircraft", "active users"}}

	WriteServiceError(rec, zap.NewNop(), err)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error      string   `json:"error"`
		Dependents []string `json:"dependents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dependency_blocked", body.Error)
	assert.Equal(t, []string{"active aircraft", "active users"}, body.Dependents)
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
