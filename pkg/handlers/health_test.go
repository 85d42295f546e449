package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fareops/catalog-engine/pkg/config"
)

func TestHealthReturnsPlainOK(t *testing.T) {
	h := NewHealthHandler(&config.Config{}, zap.NewNop())

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestPingReportsBuildInfo(t *testing.T) {
	h := NewHealthHandler(&config.Config{Env: "test", Version: "1.2.3"}, zap.NewNop())

	rr := httptest.NewRecorder()
	h.Ping(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp PingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, serviceName, resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "test", resp.Environment)
	assert.NotEmpty(t, resp.Hostname)
}
