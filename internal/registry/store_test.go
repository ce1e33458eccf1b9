package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/registry"
)

type fakeMaterials struct {
	rows map[string]*material.Material
	ids  []string
	err  error
}

func (f *fakeMaterials) UpsertMaterial(_ context.Context, m *material.Material) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[m.ID]; !ok {
		f.ids = append(f.ids, m.ID)
	}
	f.rows[m.ID] = m
	return nil
}

func (f *fakeMaterials) MaterialIDs(context.Context) ([]string, error) {
	return f.ids, nil
}

type fakeRecipes struct {
	rows map[string]*recipe.Recipe
}

func (f *fakeRecipes) UpsertRecipe(_ context.Context, r *recipe.Recipe) error {
	f.rows[r.ID] = r
	return nil
}

type fakeCache struct {
	calls int
	err   error
}

func (f *fakeCache) Invalidate(context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

func newFakes() (*fakeMaterials, *fakeRecipes) {
	mats := &fakeMaterials{rows: map[string]*material.Material{}}
	for _, m := range baseCatalog() {
		_ = mats.UpsertMaterial(context.Background(), m)
	}
	return mats, &fakeRecipes{rows: map[string]*recipe.Recipe{}}
}

func TestStore_Batch(t *testing.T) {
	ctx := context.Background()
	mats, recs := newFakes()
	cache := &fakeCache{}
	store := registry.NewStore(mats, recs, cache)

	m, r := derivedSteelGold()

	require.NoError(t, store.InvalidateCache(ctx))
	require.NoError(t, store.RegisterMaterial(ctx, m))
	require.NoError(t, store.RegisterRecipe(ctx, r))
	require.NoError(t, store.ResolveReferences(ctx))

	assert.Equal(t, 1, cache.calls)
	assert.Contains(t, mats.rows, m.ID)
	assert.Contains(t, recs.rows, r.ID)
}

func TestStore_RegisterMaterial_ConflictWithinBatch(t *testing.T) {
	ctx := context.Background()
	mats, recs := newFakes()
	store := registry.NewStore(mats, recs, nil)

	m, _ := derivedSteelGold()
	require.NoError(t, store.InvalidateCache(ctx))
	require.NoError(t, store.RegisterMaterial(ctx, m))

	err := store.RegisterMaterial(ctx, m)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	// A new batch may upsert the same id again.
	require.NoError(t, store.InvalidateCache(ctx))
	assert.NoError(t, store.RegisterMaterial(ctx, m))
}

func TestStore_ResolveReferences_Dangling(t *testing.T) {
	ctx := context.Background()
	mats, recs := newFakes()
	store := registry.NewStore(mats, recs, nil)

	require.NoError(t, store.RegisterRecipe(ctx, &recipe.Recipe{
		ID:          "Make_Thing",
		Ingredients: []recipe.Ingredient{{MaterialID: "Steell", Count: 25}},
	}))

	err := store.ResolveReferences(ctx)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnprocessable))
	assert.Contains(t, err.Error(), `did you mean "Steel"?`)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("cache_failure", func(t *testing.T) {
		mats, recs := newFakes()
		store := registry.NewStore(mats, recs, &fakeCache{err: errors.New("redis down")})
		assert.Error(t, store.InvalidateCache(ctx))
	})

	t.Run("upsert_failure", func(t *testing.T) {
		mats, recs := newFakes()
		mats.err = apperr.Internal(errors.New("connection reset"))
		store := registry.NewStore(mats, recs, nil)

		m, _ := derivedSteelGold()
		err := store.RegisterMaterial(ctx, m)
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	mats := &fakeMaterials{rows: map[string]*material.Material{}}
	derived, _ := derivedSteelGold()

	seeded, err := registry.Seed(ctx, mats, append(baseCatalog(), nil, derived))
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
	assert.Equal(t, []string{"Steel", "Gold"}, mats.ids)

	// Upserts make a second seed a no-op on ids.
	_, err = registry.Seed(ctx, mats, baseCatalog())
	require.NoError(t, err)
	assert.Equal(t, []string{"Steel", "Gold"}, mats.ids)

	mats.err = errors.New("connection reset")
	_, err = registry.Seed(ctx, mats, baseCatalog())
	assert.ErrorContains(t, err, `seed material "Steel"`)
}
