package schema

// CatalogRecipeTable represents the 'catalog.recipe' table
type CatalogRecipeTable struct {
	Table               string
	ID                  string
	Label               string
	Description         string
	Ingredients         string
	Products            string
	Producers           string
	UsesIngredientColor string
	Generated           string
	ContentPack         string
	BatchID             string
	CreatedAt           string
	UpdatedAt           string
}

// CatalogRecipe is the schema definition for catalog.recipe
var CatalogRecipe = CatalogRecipeTable{
	Table:               "catalog.recipe",
	ID:                  "id",
	Label:               "label",
	Description:         "description",
	Ingredients:         "ingredients",
	Products:            "products",
	Producers:           "producers",
	UsesIngredientColor: "usesingredientcolor",
	Generated:           "generated",
	ContentPack:         "contentpack",
	BatchID:             "batchid",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

func (t CatalogRecipeTable) Columns() []string {
	return []string{
		t.ID, t.Label, t.Description, t.Ingredients, t.Products, t.Producers,
		t.UsesIngredientColor, t.Generated, t.ContentPack, t.BatchID, t.CreatedAt, t.UpdatedAt,
	}
}
