package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func probe(t *testing.T, h *HealthHandler, path string) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth_Live(t *testing.T) {
	status, body := probe(t, NewHealthHandler("job-board", "1.0.0", stubPinger{}, nil), "/health/live")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealth_ReadyWithDegradedCache(t *testing.T) {
	h := NewHealthHandler("job-board", "1.0.0", stubPinger{}, stubPinger{err: errors.New("connection refused")})

	status, body := probe(t, h, "/health/ready")
	assert.Equal(t, fiber.StatusOK, status)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["postgres"])
	assert.Contains(t, deps["redis"], "degraded")
}

func TestHealth_NotReadyWithoutPostgres(t *testing.T) {
	h := NewHealthHandler("job-board", "1.0.0", stubPinger{err: errors.New("no pool")}, stubPinger{})

	status, body := probe(t, h, "/health/ready")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body["error"].(map[string]any)["code"])
}
