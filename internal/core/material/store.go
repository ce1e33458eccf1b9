package material

import "context"

// Filter narrows material listings.
type Filter struct {
	// Generated selects derived (true) or base (false) records; nil keeps both.
	Generated *bool
}

// Match reports whether m passes the filter.
func (f Filter) Match(m *Material) bool {
	return f.Generated == nil || m.Generated == *f.Generated
}

// Repository is the read side of the material catalog served by the API.
type Repository interface {
	SearchMaterials(context context.Context, filter Filter, limit, offset int) ([]*Material, int, error)
	GetMaterial(context context.Context, id string) (*Material, error)
	GetMaterialBySlug(context context.Context, slug string) (*Material, error)
	MaterialIDs(context context.Context) ([]string, error)
}

// Cache is an optional read-through cache in front of a [Repository].
// A miss returns (nil, nil).
type Cache interface {
	GetMaterial(context context.Context, id string) (*Material, error)
	SetMaterial(context context.Context, m *Material) error
}
