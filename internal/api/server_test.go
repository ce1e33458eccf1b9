package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/alloy"
	"github.com/taibuivan/alloyforge/internal/api"
	"github.com/taibuivan/alloyforge/internal/catalog"
	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/config"
	"github.com/taibuivan/alloyforge/internal/registry"
)

func metal(id string) *material.Material {
	return &material.Material{
		ID:              id,
		Label:           id,
		Commonality:     0.5,
		StuffCategories: []string{"Metallic"},
		Stuff:           &material.StuffProps{Categories: []string{"Metallic"}},
	}
}

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat := catalog.Static{metal("Steel"), metal("Silver"), metal("Gold")}
	reg := registry.NewMemory(cat...)
	report, err := alloy.NewBatch(cat, reg, alloy.Provenance{ContentPack: "alloyforge", BatchID: "batch-test"}, logger).Run(t.Context())
	require.NoError(t, err)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	server := api.NewServer(t.Context(), &config.Config{ServerPort: "0", Environment: "development"}, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Material:  material.NewHandler(material.NewService(reg, nil, logger)),
		Recipe:    recipe.NewHandler(recipe.NewService(reg, nil, logger)),
		Batch:     api.NewBatchHandler(report),
	})
	return server.Handler()
}

func serve(t *testing.T, handler http.Handler, path string) (int, map[string]any) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestServer_Health(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	status, body := serve(t, handler, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])

	status, body = serve(t, handler, "/ready")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["data"].(map[string]any)["status"])
}

func TestServer_ReadyDegraded(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("connection refused") },
	})

	status, body := serve(t, handler, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	data := body["data"].(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	checks := data["checks"].([]any)
	require.Len(t, checks, 2)
	assert.Equal(t, true, checks[0].(map[string]any)["ok"])
	assert.Equal(t, "connection refused", checks[1].(map[string]any)["error"])
}

func TestServer_Catalog(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	status, body := serve(t, handler, "/api/v1/materials?generated=true")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 3)
	assert.EqualValues(t, 3, body["meta"].(map[string]any)["total"])

	status, body = serve(t, handler, "/api/v1/recipes/Make_AutoMaterial_Steel_Gold_GeneratedDef")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Make_AutoMaterial_Steel_Gold_GeneratedDef", body["data"].(map[string]any)["id"])

	status, body = serve(t, handler, "/api/v1/batch")
	assert.Equal(t, http.StatusOK, status)
	report := body["data"].(map[string]any)
	assert.Equal(t, "batch-test", report["batch_id"])
	assert.EqualValues(t, 3, report["materials"])
}

func TestBatchHandler_NoReport(t *testing.T) {
	recorder := httptest.NewRecorder()
	api.NewBatchHandler(nil)(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/batch", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
