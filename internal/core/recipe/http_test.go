package recipe_test

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
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/registry"
	"github.com/taibuivan/alloyforge/pkg/pagination"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := t.Context()

	reg := registry.NewMemory(
		&material.Material{ID: "Steel", Label: "steel"},
		&material.Material{ID: "Silver", Label: "silver"},
	)
	derived := &material.Material{ID: "AutoMaterial_Steel_Silver_GeneratedDef", Label: "alloy", Generated: true}
	require.NoError(t, reg.InvalidateCache(ctx))
	require.NoError(t, reg.RegisterMaterial(ctx, derived))
	require.NoError(t, reg.RegisterRecipe(ctx, &recipe.Recipe{
		ID:          "Make_" + derived.ID,
		Label:       "Make alloy",
		Ingredients: []recipe.Ingredient{{MaterialID: "Steel", Count: 25}, {MaterialID: "Silver", Count: 25}},
		Products:    []recipe.Product{{MaterialID: derived.ID, Count: 25}},
		Producers:   []string{"FueledSmithy", "ElectricSmithy"},
		Generated:   true,
	}))
	require.NoError(t, reg.ResolveReferences(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	router.Route("/recipes", recipe.NewHandler(recipe.NewService(reg, nil, logger)).RegisterRoutes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestHandler_ListRecipes(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Get(server.URL + "/recipes")
	require.NoError(t, err)
	defer response.Body.Close()

	var body struct {
		Data []*recipe.Recipe `json:"data"`
		Meta pagination.Meta  `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, 1, body.Meta.Total)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Make_AutoMaterial_Steel_Silver_GeneratedDef", body.Data[0].ID)
	assert.Equal(t, []string{"FueledSmithy", "ElectricSmithy"}, body.Data[0].Producers)
}

func TestHandler_GetRecipe(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		id     string
		status int
		error  string
	}{
		{"found", "Make_AutoMaterial_Steel_Silver_GeneratedDef", http.StatusOK, ""},
		{"typo_suggests", "Make_AutoMaterial_Steel_Silvr_GeneratedDef", http.StatusNotFound, `Recipe not found; did you mean "Make_AutoMaterial_Steel_Silver_GeneratedDef"?`},
		{"unknown", "Smelt", http.StatusNotFound, "Recipe not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := http.Get(server.URL + "/recipes/" + tt.id)
			require.NoError(t, err)
			defer response.Body.Close()

			var body struct {
				Data  *recipe.Recipe `json:"data"`
				Error string         `json:"error"`
			}
			require.NoError(t, json.NewDecoder(response.Body).Decode(&body))

			assert.Equal(t, tt.status, response.StatusCode)
			assert.Equal(t, tt.error, body.Error)
			if tt.status == http.StatusOK {
				require.NotNil(t, body.Data)
				assert.Equal(t, tt.id, body.Data.ID)
			}
		})
	}
}
