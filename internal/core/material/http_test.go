package material_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/registry"
	"github.com/taibuivan/alloyforge/pkg/pagination"
)

type listResponse struct {
	Data []*material.Material `json:"data"`
	Meta pagination.Meta      `json:"meta"`
}

type itemResponse struct {
	Data  *material.Material `json:"data"`
	Error string             `json:"error"`
	Code  string             `json:"code"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := registry.NewMemory(
		&material.Material{ID: "Steel", Label: "steel", Slug: "steel"},
		&material.Material{ID: "Gold", Label: "gold", Slug: "gold"},
		&material.Material{ID: "AutoMaterial_Steel_Gold_GeneratedDef", Label: "AutoMaterial steel gold GeneratedDef", Slug: "automaterial-steel-gold-generateddef", Generated: true},
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := chi.NewRouter()
	router.Route("/materials", material.NewHandler(material.NewService(reg, nil, logger)).RegisterRoutes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()

	response, err := http.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()

	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
	return response.StatusCode
}

func TestHandler_ListMaterials(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name  string
		query string
		ids   []string
		total int
	}{
		{"all", "", []string{"Steel", "Gold", "AutoMaterial_Steel_Gold_GeneratedDef"}, 3},
		{"generated_only", "?generated=true", []string{"AutoMaterial_Steel_Gold_GeneratedDef"}, 1},
		{"base_only", "?generated=false", []string{"Steel", "Gold"}, 2},
		{"second_page", "?limit=2&page=2", []string{"AutoMaterial_Steel_Gold_GeneratedDef"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body listResponse
			status := getJSON(t, server.URL+"/materials"+tt.query, &body)

			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.total, body.Meta.Total)

			ids := make([]string, 0, len(body.Data))
			for _, m := range body.Data {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestHandler_ListMaterials_InvalidFilter(t *testing.T) {
	server := newTestServer(t)

	var body itemResponse
	status := getJSON(t, server.URL+"/materials?generated=maybe", &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestHandler_GetMaterial(t *testing.T) {
	server := newTestServer(t)

	var body itemResponse
	status := getJSON(t, server.URL+"/materials/Gold", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Data)
	assert.Equal(t, "gold", body.Data.Label)
}

func TestHandler_GetMaterial_NotFoundSuggests(t *testing.T) {
	server := newTestServer(t)

	var body itemResponse
	status := getJSON(t, server.URL+"/materials/Gould", &body)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, `Material not found; did you mean "Gold"?`, body.Error)
}

func TestHandler_GetMaterialBySlug(t *testing.T) {
	server := newTestServer(t)

	var body itemResponse
	status := getJSON(t, server.URL+"/materials/by-slug/automaterial-steel-gold-generateddef", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Data)
	assert.Equal(t, "AutoMaterial_Steel_Gold_GeneratedDef", body.Data.ID)

	status = getJSON(t, server.URL+"/materials/by-slug/unobtainium", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_GetMaterialBySlug_Malformed(t *testing.T) {
	server := newTestServer(t)

	var body itemResponse
	status := getJSON(t, server.URL+"/materials/by-slug/Steel_Gold", &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}
