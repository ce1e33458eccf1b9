package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/registry"
)

func baseCatalog() []*material.Material {
	return []*material.Material{
		{ID: "Steel", Label: "steel", Slug: "steel"},
		{ID: "Gold", Label: "gold", Slug: "gold"},
	}
}

func derivedSteelGold() (*material.Material, *recipe.Recipe) {
	m := &material.Material{
		ID:        "AutoMaterial_Steel_Gold_GeneratedDef",
		Label:     "AutoMaterial steel gold GeneratedDef",
		Slug:      "automaterial-steel-gold-generateddef",
		Generated: true,
		CostList: []material.Cost{
			{MaterialID: "Steel", Count: 25},
			{MaterialID: "Gold", Count: 25},
		},
	}
	r := &recipe.Recipe{
		ID:          "Make_" + m.ID,
		Ingredients: []recipe.Ingredient{{MaterialID: "Steel", Count: 25}, {MaterialID: "Gold", Count: 25}},
		Products:    []recipe.Product{{MaterialID: m.ID, Count: 25}},
		Generated:   true,
	}
	return m, r
}

func TestMemory_RegisterAndResolve(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)
	m, r := derivedSteelGold()

	require.NoError(t, reg.InvalidateCache(ctx))
	require.NoError(t, reg.RegisterMaterial(ctx, m))
	require.NoError(t, reg.RegisterRecipe(ctx, r))

	// The slug index only sees new records after resolution.
	_, err := reg.GetMaterialBySlug(ctx, m.Slug)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	require.NoError(t, reg.ResolveReferences(ctx))

	got, err := reg.GetMaterialBySlug(ctx, m.Slug)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	ids, err := reg.MaterialIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Steel", "Gold", m.ID}, ids)

	rec, err := reg.GetRecipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.Products, rec.Products)
}

func TestMemory_RegisterMaterial_Conflict(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)

	err := reg.RegisterMaterial(ctx, &material.Material{ID: "Steel"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	err = reg.RegisterMaterial(ctx, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
}

func TestMemory_RegisterRecipe_Conflict(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory()

	r := &recipe.Recipe{ID: "Make_X"}
	require.NoError(t, reg.RegisterRecipe(ctx, r))
	assert.True(t, apperr.HasCode(reg.RegisterRecipe(ctx, &recipe.Recipe{ID: "Make_X"}), apperr.CodeConflict))
}

func TestMemory_ResolveReferences_Dangling(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)

	m := &material.Material{
		ID:       "AutoMaterial_Steel_Silver_GeneratedDef",
		CostList: []material.Cost{{MaterialID: "Steel", Count: 25}, {MaterialID: "Gol", Count: 25}},
	}
	require.NoError(t, reg.RegisterMaterial(ctx, m))

	err := reg.ResolveReferences(ctx)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
	assert.Contains(t, err.Error(), `"Gol"`)
	assert.Contains(t, err.Error(), `did you mean "Gold"?`)
}

func TestMemory_ResolveReferences_RecipeProduct(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)

	require.NoError(t, reg.RegisterRecipe(ctx, &recipe.Recipe{
		ID:       "Make_Missing",
		Products: []recipe.Product{{MaterialID: "Uranium", Count: 25}},
	}))

	err := reg.ResolveReferences(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestMemory_ResolveReferences_IgnoresBaseCosts(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(&material.Material{
		ID:       "WoodLog",
		CostList: []material.Cost{{MaterialID: "Tree", Count: 1}},
	})

	assert.NoError(t, reg.ResolveReferences(ctx))
}

func TestMemory_SearchMaterials(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)
	m, _ := derivedSteelGold()
	require.NoError(t, reg.RegisterMaterial(ctx, m))

	generated := true
	items, total, err := reg.SearchMaterials(ctx, material.Filter{Generated: &generated}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, m.ID, items[0].ID)

	items, total, err = reg.SearchMaterials(ctx, material.Filter{}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Gold", items[0].ID)

	items, _, err = reg.SearchMaterials(ctx, material.Filter{}, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_ReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(baseCatalog()...)

	got, err := reg.GetMaterial(ctx, "Steel")
	require.NoError(t, err)
	got.Label = "mutated"

	again, err := reg.GetMaterial(ctx, "Steel")
	require.NoError(t, err)
	assert.Equal(t, "steel", again.Label)
}

func TestMemory_ListMaterials(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewMemory(
		&material.Material{ID: "Steel", StuffCategories: []string{"Metallic"}},
		&material.Material{ID: "WoodLog"},
	)

	metals, err := reg.ListMaterials(ctx, material.IsMetallic)
	require.NoError(t, err)
	require.Len(t, metals, 1)
	assert.Equal(t, "Steel", metals[0].ID)
}
