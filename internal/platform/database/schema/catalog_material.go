package schema

// CatalogMaterialTable represents the 'catalog.material' table
type CatalogMaterialTable struct {
	Table           string
	ID              string
	Label           string
	Description     string
	Slug            string
	Stats           string
	Stuff           string
	Commonality     string
	CostList        string
	StackLimit      string
	StuffCategories string
	ThingCategories string
	Graphic         string
	Traits          string
	Generated       string
	ContentPack     string
	BatchID         string
	Position        string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogMaterial is the schema definition for catalog.material
var CatalogMaterial = CatalogMaterialTable{
	Table:           "catalog.material",
	ID:              "id",
	Label:           "label",
	Description:     "description",
	Slug:            "slug",
	Stats:           "stats",
	Stuff:           "stuff",
	Commonality:     "commonality",
	CostList:        "costlist",
	StackLimit:      "stacklimit",
	StuffCategories: "stuffcategories",
	ThingCategories: "thingcategories",
	Graphic:         "graphic",
	Traits:          "traits",
	Generated:       "generated",
	ContentPack:     "contentpack",
	BatchID:         "batchid",
	Position:        "position",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns lists every column in declaration order.
func (t CatalogMaterialTable) Columns() []string {
	return []string{
		t.ID, t.Label, t.Description, t.Slug, t.Stats, t.Stuff, t.Commonality, t.CostList,
		t.StackLimit, t.StuffCategories, t.ThingCategories, t.Graphic, t.Traits,
		t.Generated, t.ContentPack, t.BatchID, t.Position, t.CreatedAt, t.UpdatedAt,
	}
}
