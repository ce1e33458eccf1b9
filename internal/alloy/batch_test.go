package alloy_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/alloy"
	"github.com/taibuivan/alloyforge/internal/catalog"
	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/registry"
)

// recordingSink captures every call in order.
type recordingSink struct {
	calls     []string
	materials []*material.Material
	recipes   []*recipe.Recipe
	failOn    string
}

func (s *recordingSink) fail(call string) error {
	s.calls = append(s.calls, call)
	if s.failOn == call {
		return errors.New(call + " failed")
	}
	return nil
}

func (s *recordingSink) InvalidateCache(context.Context) error {
	return s.fail("invalidate")
}

func (s *recordingSink) RegisterMaterial(_ context.Context, m *material.Material) error {
	if err := s.fail("material"); err != nil {
		return err
	}
	s.materials = append(s.materials, m)
	return nil
}

func (s *recordingSink) RegisterRecipe(_ context.Context, r *recipe.Recipe) error {
	if err := s.fail("recipe"); err != nil {
		return err
	}
	s.recipes = append(s.recipes, r)
	return nil
}

func (s *recordingSink) ResolveReferences(context.Context) error {
	return s.fail("resolve")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func steelGoldCatalog() catalog.Static {
	return catalog.Static{
		metal("Steel", 0.3, gray),
		{ID: "WoodLog", Label: "wood", Commonality: 1},
		metal("Gold", 0.5, yellow, "golden"),
	}
}

func TestBatch_Run_EndToEnd(t *testing.T) {
	sink := &recordingSink{}
	b := alloy.NewBatch(steelGoldCatalog(), sink, testProvenance, discardLogger())

	report, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, alloy.OutcomeCreated, report.Outcome)
	assert.Equal(t, 2, report.Sources)
	assert.Equal(t, 1, report.Materials)
	assert.Equal(t, 1, report.Recipes)
	assert.Equal(t, []string{"AutoMaterial_Steel_Gold_GeneratedDef"}, report.MaterialIDs)
	assert.Equal(t, []alloy.State{
		alloy.StateIdle,
		alloy.StateCacheCleared,
		alloy.StateEnumerated,
		alloy.StateSynthesized,
		alloy.StateRegistered,
		alloy.StateReferencesResolved,
		alloy.StateDone,
	}, report.States)
	assert.Equal(t, alloy.StateDone, b.State())
	assert.Equal(t, []string{"invalidate", "material", "recipe", "resolve"}, sink.calls)

	require.Len(t, sink.materials, 1)
	m := sink.materials[0]
	assert.Equal(t, "AutoMaterial_Steel_Gold_GeneratedDef", m.ID)
	assert.InDelta(t, 0.4, m.Commonality, 1e-9)
	assert.True(t, m.Stuff.HasAdjective("golden"))
	assert.InDelta(t, 0.8, m.Stuff.Color.R, 1e-9)
	assert.InDelta(t, 0.72, m.Stuff.Color.G, 1e-9)
	assert.InDelta(t, 0.3, m.Stuff.Color.B, 1e-9)
	assert.Equal(t, []material.Cost{{MaterialID: "Steel", Count: 25}, {MaterialID: "Gold", Count: 25}}, m.CostList)

	require.Len(t, sink.recipes, 1)
	r := sink.recipes[0]
	assert.Equal(t, "Make_AutoMaterial_Steel_Gold_GeneratedDef", r.ID)
	assert.Equal(t, []recipe.Ingredient{{MaterialID: "Steel", Count: 25}, {MaterialID: "Gold", Count: 25}}, r.Ingredients)
	assert.Equal(t, []recipe.Product{{MaterialID: m.ID, Count: 25}}, r.Products)
}

func TestBatch_Run_MemoryRegistry(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Static{
		metal("Steel", 0.3, gray),
		metal("Silver", 0.2, white),
		metal("Gold", 0.5, yellow, "golden"),
		metal("Plasteel", 0.1, gray),
	}
	reg := registry.NewMemory(cat...)

	report, err := alloy.NewBatch(cat, reg, testProvenance, discardLogger()).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, report.Materials)

	generated := true
	items, total, err := reg.SearchMaterials(ctx, material.Filter{Generated: &generated}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Equal(t, "AutoMaterial_Steel_Silver_GeneratedDef", items[0].ID)
	assert.Equal(t, "AutoMaterial_Gold_Plasteel_GeneratedDef", items[5].ID)

	bySlug, err := reg.GetMaterialBySlug(ctx, "automaterial-steel-gold-generateddef")
	require.NoError(t, err)
	assert.Equal(t, "AutoMaterial_Steel_Gold_GeneratedDef", bySlug.ID)
}

func TestBatch_Run_Reproducible(t *testing.T) {
	run := func() []string {
		report, err := alloy.NewBatch(steelGoldCatalog(), &recordingSink{}, testProvenance, discardLogger()).Run(context.Background())
		require.NoError(t, err)
		return report.MaterialIDs
	}
	assert.Equal(t, run(), run())
}

func TestBatch_Run_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		catalog catalog.Static
		sources int
	}{
		{"empty", catalog.Static{}, 0},
		{"single_metal", catalog.Static{metal("Steel", 0.3, gray)}, 1},
		{"no_metals", catalog.Static{{ID: "WoodLog", Label: "wood"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			b := alloy.NewBatch(tt.catalog, sink, testProvenance, discardLogger())

			report, err := b.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, alloy.OutcomeNoMaterials, report.Outcome)
			assert.Equal(t, tt.sources, report.Sources)
			assert.Zero(t, report.Materials)
			assert.Empty(t, report.MaterialIDs)
			assert.Equal(t, alloy.StateDone, b.State())
			assert.Equal(t, []string{"invalidate"}, sink.calls)
		})
	}
}

func TestBatch_Run_Once(t *testing.T) {
	sink := &recordingSink{}
	b := alloy.NewBatch(steelGoldCatalog(), sink, testProvenance, discardLogger())

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	report, err := b.Run(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, alloy.ErrAlreadyRan)
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyComplete))
	assert.Len(t, sink.materials, 1)
}

func TestBatch_Run_StructuralErrorLeavesSinkEmpty(t *testing.T) {
	cat := catalog.Static{
		metal("Steel", 0.3, gray),
		metal("Gold", 0.5, yellow),
		// Tagged metallic at the record level but missing its stuff block.
		{ID: "Slag", Label: "slag", StuffCategories: []string{"Metallic"}},
	}
	sink := &recordingSink{}

	report, err := alloy.NewBatch(cat, sink, testProvenance, discardLogger()).Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeStructural))
	assert.NotNil(t, report)
	assert.Empty(t, sink.materials)
	assert.Empty(t, sink.recipes)
	assert.Equal(t, []string{"invalidate"}, sink.calls)
}

func TestBatch_Run_DuplicateSourceIDs(t *testing.T) {
	cat := catalog.Static{
		metal("Steel", 0.3, gray),
		metal("Gold", 0.5, yellow),
		metal("Steel", 0.3, gray),
		metal("Silver", 0.2, white),
	}
	sink := &recordingSink{}

	_, err := alloy.NewBatch(cat, sink, testProvenance, discardLogger()).Run(context.Background())
	assert.True(t, apperr.HasCode(err, apperr.CodeStructural))
	assert.Empty(t, sink.materials)
}

func TestBatch_Run_SinkFailures(t *testing.T) {
	for _, call := range []string{"invalidate", "material", "recipe", "resolve"} {
		t.Run(call, func(t *testing.T) {
			sink := &recordingSink{failOn: call}
			b := alloy.NewBatch(steelGoldCatalog(), sink, testProvenance, discardLogger())

			_, err := b.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), call+" failed")
			assert.NotEqual(t, alloy.StateDone, b.State())
		})
	}
}

func TestBatch_Options(t *testing.T) {
	cat := catalog.Static{
		{ID: "Granite", Label: "granite", Stuff: &material.StuffProps{Categories: []string{"Stony"}}},
		{ID: "Marble", Label: "marble", Stuff: &material.StuffProps{Categories: []string{"Stony"}}},
	}
	stony := func(m *material.Material) bool {
		return m.Stuff != nil && len(m.Stuff.Categories) > 0 && m.Stuff.Categories[0] == "Stony"
	}
	sink := &recordingSink{}

	report, err := alloy.NewBatch(cat, sink, testProvenance, discardLogger(),
		alloy.WithFilter(stony),
		alloy.WithStatStrategy(alloy.StatStrategyAverage),
	).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "average", report.Strategy)
	assert.Equal(t, []string{"AutoMaterial_Granite_Marble_GeneratedDef"}, report.MaterialIDs)
}
