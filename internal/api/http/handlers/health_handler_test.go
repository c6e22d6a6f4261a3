package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recommendation-service/internal/config"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func readiness(t *testing.T, postgres, redis Pinger) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/ready", NewHealthHandler(config.AppConfig{Name: "recs"}, postgres, redis).Ready)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ready", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestReadyWhenDependenciesAnswer(t *testing.T) {
	status, body := readiness(t, stubPinger{}, stubPinger{})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestReadyReportsFailingDependency(t *testing.T) {
	status, body := readiness(t, stubPinger{}, stubPinger{err: errors.New("connection refused")})
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	apiErr, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", apiErr["code"])
	deps, ok := apiErr["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", deps["postgres"])
	assert.Equal(t, "connection refused", deps["redis"])
}
