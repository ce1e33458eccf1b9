// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registry receives the records produced by a combination batch.

A [Sink] accepts derived materials and recipes, drops derived caches before a
batch starts, and resolves cross-record references once everything is
registered. Implementations:

  - [Memory]: in-process catalog, also served by the read API.
  - [Store]: Postgres upserts with an optional Redis read cache ([RedisCache]).

Registration order is significant: materials first, recipes second, then a
single ResolveReferences call.
*/
package registry

import (
	"context"
	"fmt"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/pkg/suggest"
)

// Sink is the registration target of a combination batch.
type Sink interface {
	// InvalidateCache drops caches derived from the registered catalog.
	InvalidateCache(ctx context.Context) error
	// RegisterMaterial adds a derived material. Duplicate ids fail with CONFLICT.
	RegisterMaterial(ctx context.Context, m *material.Material) error
	// RegisterRecipe adds a recipe.
	RegisterRecipe(ctx context.Context, r *recipe.Recipe) error
	// ResolveReferences checks every reference made by records registered
	// since the last cache invalidation.
	ResolveReferences(ctx context.Context) error
}

// checkReferences verifies that every material id referenced by the pending
// records is known. The first dangling reference fails with UNPROCESSABLE and
// names the closest known id, if any.
func checkReferences(known []string, materials []*material.Material, recipes []*recipe.Recipe) error {
	set := make(map[string]struct{}, len(known))
	for _, id := range known {
		set[id] = struct{}{}
	}

	dangling := func(owner, ref string) error {
		if _, ok := set[ref]; ok {
			return nil
		}
		msg := fmt.Sprintf("%s references unknown material %q", owner, ref)
		if hint, ok := suggest.Closest(ref, known); ok {
			msg += fmt.Sprintf("; did you mean %q?", hint)
		}
		return apperr.Unprocessable(msg)
	}

	for _, m := range materials {
		for _, c := range m.CostList {
			if err := dangling("material "+m.ID, c.MaterialID); err != nil {
				return err
			}
		}
	}
	for _, r := range recipes {
		for _, ref := range r.MaterialIDs() {
			if err := dangling("recipe "+r.ID, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkMaterial(m *material.Material) error {
	if m == nil || m.ID == "" {
		return apperr.Unprocessable("material record has no identifier")
	}
	return nil
}

func checkRecipe(r *recipe.Recipe) error {
	if r == nil || r.ID == "" {
		return apperr.Unprocessable("recipe record has no identifier")
	}
	return nil
}
