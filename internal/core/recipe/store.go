package recipe

import "context"

// Repository is the read side of the recipe catalog served by the API.
type Repository interface {
	SearchRecipes(context context.Context, limit, offset int) ([]*Recipe, int, error)
	GetRecipe(context context.Context, id string) (*Recipe, error)
	RecipeIDs(context context.Context) ([]string, error)
}

// Cache is an optional read-through cache in front of a [Repository].
// A miss returns (nil, nil).
type Cache interface {
	GetRecipe(context context.Context, id string) (*Recipe, error)
	SetRecipe(context context.Context, r *Recipe) error
}
