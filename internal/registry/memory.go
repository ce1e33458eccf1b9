// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/ctxutil"
	"github.com/taibuivan/alloyforge/pkg/pagination"
	"github.com/taibuivan/alloyforge/pkg/slice"
)

// Memory is an in-process catalog of materials and recipes.
//
// It is a [Sink] for the batch and, once the batch is done, the repository
// behind the read API. Records keep their registration order; base materials
// passed to [NewMemory] come first.
//
// # Concurrency
//
// The batch writes from a single goroutine. The lock exists so HTTP handlers
// can read concurrently once serving starts.
type Memory struct {
	mu sync.RWMutex

	materials  []*material.Material
	materialID map[string]*material.Material
	recipes    []*recipe.Recipe
	recipeID   map[string]*recipe.Recipe

	// slugs is rebuilt by ResolveReferences and dropped by InvalidateCache.
	slugs map[string]*material.Material

	pendingMaterials []*material.Material
	pendingRecipes   []*recipe.Recipe
}

// NewMemory creates a registry seeded with the base catalog. Base records are
// copied.
func NewMemory(base ...*material.Material) *Memory {
	m := &Memory{
		materialID: make(map[string]*material.Material, len(base)),
		recipeID:   make(map[string]*recipe.Recipe),
	}
	for _, b := range base {
		if b == nil || b.ID == "" {
			continue
		}
		if _, dup := m.materialID[b.ID]; dup {
			continue
		}
		c := b.Clone()
		m.materials = append(m.materials, c)
		m.materialID[c.ID] = c
	}
	m.rebuildIndex()
	return m
}

// # Sink

// InvalidateCache implements [Sink].
func (m *Memory) InvalidateCache(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slugs = nil
	m.pendingMaterials = nil
	m.pendingRecipes = nil

	ctxutil.GetLogger(ctx).Debug("registry_cache_invalidated", slog.Int("materials", len(m.materials)))
	return nil
}

// RegisterMaterial implements [Sink].
func (m *Memory) RegisterMaterial(_ context.Context, rec *material.Material) error {
	if err := checkMaterial(rec); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.materialID[rec.ID]; dup {
		return apperr.Conflict(fmt.Sprintf("material %q is already registered", rec.ID))
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	m.materials = append(m.materials, rec)
	m.materialID[rec.ID] = rec
	m.pendingMaterials = append(m.pendingMaterials, rec)
	return nil
}

// RegisterRecipe implements [Sink].
func (m *Memory) RegisterRecipe(_ context.Context, rec *recipe.Recipe) error {
	if err := checkRecipe(rec); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.recipeID[rec.ID]; dup {
		return apperr.Conflict(fmt.Sprintf("recipe %q is already registered", rec.ID))
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	m.recipes = append(m.recipes, rec)
	m.recipeID[rec.ID] = rec
	m.pendingRecipes = append(m.pendingRecipes, rec)
	return nil
}

// ResolveReferences implements [Sink]. On success the lookup indexes are
// rebuilt and the pending set is cleared.
func (m *Memory) ResolveReferences(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	known := make([]string, len(m.materials))
	for i, rec := range m.materials {
		known[i] = rec.ID
	}

	if err := checkReferences(known, m.pendingMaterials, m.pendingRecipes); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Debug("registry_references_resolved",
		slog.Int("materials", len(m.pendingMaterials)),
		slog.Int("recipes", len(m.pendingRecipes)),
	)

	m.pendingMaterials = nil
	m.pendingRecipes = nil
	m.rebuildIndex()
	return nil
}

func (m *Memory) rebuildIndex() {
	m.slugs = make(map[string]*material.Material, len(m.materials))
	for _, rec := range m.materials {
		if rec.Slug == "" {
			continue
		}
		if _, taken := m.slugs[rec.Slug]; !taken {
			m.slugs[rec.Slug] = rec
		}
	}
}

// # Catalog source

// ListMaterials implements catalog.Source over everything registered so far.
func (m *Memory) ListMaterials(_ context.Context, predicate func(*material.Material) bool) ([]*material.Material, error) {
	if predicate == nil {
		predicate = material.Any
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*material.Material, 0, len(m.materials))
	for _, rec := range m.materials {
		if predicate(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// # Material repository

// SearchMaterials implements [material.Repository].
func (m *Memory) SearchMaterials(_ context.Context, filter material.Filter, limit, offset int) ([]*material.Material, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := slice.Filter(m.materials, filter.Match)

	page := pagination.Window(matched, limit, offset)
	out := make([]*material.Material, len(page))
	for i, rec := range page {
		out[i] = rec.Clone()
	}
	return out, len(matched), nil
}

// GetMaterial implements [material.Repository].
func (m *Memory) GetMaterial(_ context.Context, id string) (*material.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.materialID[id]
	if !ok {
		return nil, apperr.NotFound("Material")
	}
	return rec.Clone(), nil
}

// GetMaterialBySlug implements [material.Repository]. Only records indexed
// by the last successful ResolveReferences are visible.
func (m *Memory) GetMaterialBySlug(_ context.Context, slug string) (*material.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.slugs[slug]
	if !ok {
		return nil, apperr.NotFound("Material")
	}
	return rec.Clone(), nil
}

// MaterialIDs implements [material.Repository].
func (m *Memory) MaterialIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, len(m.materials))
	for i, rec := range m.materials {
		ids[i] = rec.ID
	}
	return ids, nil
}

// # Recipe repository

// SearchRecipes implements [recipe.Repository].
func (m *Memory) SearchRecipes(_ context.Context, limit, offset int) ([]*recipe.Recipe, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page := pagination.Window(m.recipes, limit, offset)
	out := make([]*recipe.Recipe, len(page))
	for i, rec := range page {
		out[i] = rec.Clone()
	}
	return out, len(m.recipes), nil
}

// GetRecipe implements [recipe.Repository].
func (m *Memory) GetRecipe(_ context.Context, id string) (*recipe.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.recipeID[id]
	if !ok {
		return nil, apperr.NotFound("Recipe")
	}
	return rec.Clone(), nil
}

// RecipeIDs implements [recipe.Repository].
func (m *Memory) RecipeIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, len(m.recipes))
	for i, rec := range m.recipes {
		ids[i] = rec.ID
	}
	return ids, nil
}
