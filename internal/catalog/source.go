// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog provides read-only access to the base material catalog.

The combination batch receives a [Source] explicitly instead of reaching into
global state. Two implementations exist:

  - [HCLSource]: declarative `.hcl` catalog files (this package).
  - material.PostgresRepository: the persisted base table.

Both return materials in a stable catalog order, which makes the combination
order (and therefore every derived identifier) reproducible.
*/
package catalog

import (
	"context"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/pkg/slice"
)

// Source lists base materials in catalog order.
type Source interface {
	// ListMaterials returns every material accepted by predicate, in catalog
	// order. Callers must treat the returned records as read-only.
	ListMaterials(ctx context.Context, predicate func(*material.Material) bool) ([]*material.Material, error)
}

// Static is an in-memory [Source] over a fixed slice.
type Static []*material.Material

// ListMaterials implements [Source].
func (s Static) ListMaterials(_ context.Context, predicate func(*material.Material) bool) ([]*material.Material, error) {
	return filter(s, predicate), nil
}

func filter(all []*material.Material, predicate func(*material.Material) bool) []*material.Material {
	if predicate == nil {
		predicate = material.Any
	}
	return slice.Filter(all, predicate)
}
