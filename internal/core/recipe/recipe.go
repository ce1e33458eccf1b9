package recipe

import (
	"slices"
	"time"
)

// Ingredient is a required quantity of one material.
type Ingredient struct {
	MaterialID string `json:"material_id"`
	Count      int    `json:"count"`
}

// Product is the material and quantity one recipe run yields.
type Product struct {
	MaterialID string `json:"material_id"`
	Count      int    `json:"count"`
}

// Recipe is a crafting transformation consuming ingredients at one of the
// allowed producer stations.
type Recipe struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`

	Ingredients []Ingredient `json:"ingredients"`
	Products    []Product    `json:"products"`
	Producers   []string     `json:"producers"`

	UsesIngredientColor bool `json:"uses_ingredient_color"`

	// Provenance
	Generated   bool      `json:"generated"`
	ContentPack string    `json:"content_pack,omitempty"`
	BatchID     string    `json:"batch_id,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

// MaterialIDs lists every material the recipe references, ingredients first.
func (r *Recipe) MaterialIDs() []string {
	ids := make([]string, 0, len(r.Ingredients)+len(r.Products))
	for _, in := range r.Ingredients {
		ids = append(ids, in.MaterialID)
	}
	for _, p := range r.Products {
		ids = append(ids, p.MaterialID)
	}
	return ids
}

// Clone returns a deep copy sharing no slices with r.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Products = slices.Clone(r.Products)
	out.Producers = slices.Clone(r.Producers)
	return &out
}
