// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/ctxutil"
)

// MaterialWriter persists materials. Implemented by material.PostgresRepository.
type MaterialWriter interface {
	UpsertMaterial(context context.Context, m *material.Material) error
	MaterialIDs(context context.Context) ([]string, error)
}

// RecipeWriter persists recipes. Implemented by recipe.PostgresRepository.
type RecipeWriter interface {
	UpsertRecipe(context context.Context, r *recipe.Recipe) error
}

// Invalidator drops cached catalog entries. Implemented by [RedisCache].
type Invalidator interface {
	Invalidate(context context.Context) (int, error)
}

// Store is a [Sink] backed by the persistent catalog.
//
// Records are upserted, so re-running a batch over the same catalog rewrites
// the same rows. Within one batch a repeated id is still a CONFLICT.
type Store struct {
	materials MaterialWriter
	recipes   RecipeWriter
	cache     Invalidator

	seenMaterials map[string]struct{}
	seenRecipes   map[string]struct{}
	pendingMats   []*material.Material
	pendingRecs   []*recipe.Recipe
}

// NewStore creates a persistent sink. cache may be nil.
func NewStore(materials MaterialWriter, recipes RecipeWriter, cache Invalidator) *Store {
	return &Store{
		materials:     materials,
		recipes:       recipes,
		cache:         cache,
		seenMaterials: make(map[string]struct{}),
		seenRecipes:   make(map[string]struct{}),
	}
}

// InvalidateCache implements [Sink].
func (s *Store) InvalidateCache(ctx context.Context) error {
	s.seenMaterials = make(map[string]struct{})
	s.seenRecipes = make(map[string]struct{})
	s.pendingMats = nil
	s.pendingRecs = nil

	if s.cache == nil {
		return nil
	}

	deleted, err := s.cache.Invalidate(ctx)
	if err != nil {
		return err
	}
	ctxutil.GetLogger(ctx).Info("catalog_cache_invalidated", slog.Int("keys", deleted))
	return nil
}

// RegisterMaterial implements [Sink].
func (s *Store) RegisterMaterial(ctx context.Context, m *material.Material) error {
	if err := checkMaterial(m); err != nil {
		return err
	}
	if _, dup := s.seenMaterials[m.ID]; dup {
		return apperr.Conflict(fmt.Sprintf("material %q is already registered", m.ID))
	}

	if err := s.materials.UpsertMaterial(ctx, m); err != nil {
		return err
	}

	s.seenMaterials[m.ID] = struct{}{}
	s.pendingMats = append(s.pendingMats, m)
	return nil
}

// RegisterRecipe implements [Sink].
func (s *Store) RegisterRecipe(ctx context.Context, r *recipe.Recipe) error {
	if err := checkRecipe(r); err != nil {
		return err
	}
	if _, dup := s.seenRecipes[r.ID]; dup {
		return apperr.Conflict(fmt.Sprintf("recipe %q is already registered", r.ID))
	}

	if err := s.recipes.UpsertRecipe(ctx, r); err != nil {
		return err
	}

	s.seenRecipes[r.ID] = struct{}{}
	s.pendingRecs = append(s.pendingRecs, r)
	return nil
}

// ResolveReferences implements [Sink] against every material id stored.
func (s *Store) ResolveReferences(ctx context.Context) error {
	known, err := s.materials.MaterialIDs(ctx)
	if err != nil {
		return err
	}

	if err := checkReferences(known, s.pendingMats, s.pendingRecs); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Debug("registry_references_resolved",
		slog.Int("materials", len(s.pendingMats)),
		slog.Int("recipes", len(s.pendingRecs)),
	)

	s.pendingMats = nil
	s.pendingRecs = nil
	return nil
}

// Seed upserts base catalog records so references from derived records can
// resolve against the persistent catalog. Derived records are skipped.
func Seed(ctx context.Context, writer MaterialWriter, base []*material.Material) (int, error) {
	seeded := 0
	for _, m := range base {
		if m == nil || m.Generated {
			continue
		}
		if err := checkMaterial(m); err != nil {
			return seeded, err
		}
		if err := writer.UpsertMaterial(ctx, m); err != nil {
			return seeded, fmt.Errorf("seed material %q: %w", m.ID, err)
		}
		seeded++
	}

	ctxutil.GetLogger(ctx).Info("catalog_seeded", slog.Int("materials", seeded))
	return seeded, nil
}
