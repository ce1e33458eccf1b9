package alloy

import (
	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/pkg/slice"
)

// Recipe synthesizes the recipe producing m. Its ingredients mirror m's
// cost list; an empty cost list yields a recipe without ingredients.
func (s *Synthesizer) Recipe(m *material.Material) *recipe.Recipe {
	return &recipe.Recipe{
		ID:          constants.RecipeIDPrefix + m.ID,
		Label:       constants.RecipeLabelPrefix + m.Label,
		Description: constants.RecipeDescription,
		Ingredients: slice.Map(m.CostList, func(c material.Cost) recipe.Ingredient {
			return recipe.Ingredient{MaterialID: c.MaterialID, Count: c.Count}
		}),
		Products: []recipe.Product{
			{MaterialID: m.ID, Count: constants.ProductCount},
		},
		Producers: []string{
			constants.ProducerFueledSmithy,
			constants.ProducerElectricSmithy,
		},
		UsesIngredientColor: true,
		Generated:           true,
		ContentPack:         s.provenance.ContentPack,
		BatchID:             s.provenance.BatchID,
	}
}
