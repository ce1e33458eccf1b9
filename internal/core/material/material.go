package material

import (
	"fmt"
	"slices"
	"time"

	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/internal/platform/validate"
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Lerp interpolates component-wise from c towards to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// SoundProfile names the sounds played when the material is hit.
type SoundProfile struct {
	Impact     string `json:"impact"`
	MeleeSharp string `json:"melee_sharp"`
	MeleeBlunt string `json:"melee_blunt"`
}

// Cost is one entry of a material's production cost.
type Cost struct {
	MaterialID string `json:"material_id"`
	Count      int    `json:"count"`
}

// Graphic references the icon template drawn for a material.
// The asset itself is resolved by the host.
type Graphic struct {
	Class   string `json:"class"`
	TexPath string `json:"tex_path"`
	Shader  string `json:"shader"`
}

// StuffProps is the substructure that makes a thing usable as a building
// material. Every combination source must carry one.
type StuffProps struct {
	Categories           []string     `json:"categories"`
	Commonality          float64      `json:"commonality"`
	Color                Color        `json:"color"`
	Sounds               SoundProfile `json:"sounds"`
	Adjectives           []string     `json:"adjectives,omitempty"`
	Appearance           string       `json:"appearance,omitempty"`
	AllowColorGenerators bool         `json:"allow_color_generators"`
	StatFactors          StatSet      `json:"stat_factors,omitempty"`
}

// HasAdjective reports whether the adjective tag is present.
func (s *StuffProps) HasAdjective(tag string) bool {
	return s != nil && slices.Contains(s.Adjectives, tag)
}

// Clone returns a deep copy.
func (s *StuffProps) Clone() *StuffProps {
	if s == nil {
		return nil
	}
	out := *s
	out.Categories = slices.Clone(s.Categories)
	out.Adjectives = slices.Clone(s.Adjectives)
	out.StatFactors = s.StatFactors.Clone()
	return &out
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Traits are host-facing template flags. The combiner sets them from the
// template and never reads them back.
type Traits struct {
	ThingClass               string   `json:"thing_class"`
	Category                 string   `json:"category"`
	DrawerType               string   `json:"drawer_type"`
	AltitudeLayer            string   `json:"altitude_layer"`
	ResourceReadoutPriority  string   `json:"resource_readout_priority"`
	UseHitPoints             bool     `json:"use_hit_points"`
	Selectable               bool     `json:"selectable"`
	AlwaysHaulable           bool     `json:"always_haulable"`
	DrawGUIOverlay           bool     `json:"draw_gui_overlay"`
	Rotatable                bool     `json:"rotatable"`
	HealthAffectsPrice       bool     `json:"health_affects_price"`
	ResourceReadoutAlwaysOn  bool     `json:"resource_readout_always_show"`
	Smeltable                bool     `json:"smeltable"`
	BurnableByRecipe         bool     `json:"burnable_by_recipe"`
	DeepCommonality          float64  `json:"deep_commonality"`
	DeepCountPerPortion      int      `json:"deep_count_per_portion"`
	DeepLumpSize             IntRange `json:"deep_lump_size"`
	TerrainAffordance        string   `json:"terrain_affordance"`
	SoundDrop                string   `json:"sound_drop"`
	SoundInteract            string   `json:"sound_interact"`
	Comps                    []string `json:"comps"`
}

// Material is a craftable substance: either a base catalog entry or a record
// derived from a combination of base entries.
type Material struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Slug        string `json:"slug"`

	Stats       StatSet     `json:"stats,omitempty"`
	Stuff       *StuffProps `json:"stuff,omitempty"`
	Commonality float64     `json:"commonality"`
	CostList    []Cost      `json:"cost_list"`
	StackLimit  int         `json:"stack_limit"`

	StuffCategories []string `json:"stuff_categories"`
	ThingCategories []string `json:"thing_categories"`

	Graphic Graphic `json:"graphic"`
	Traits  Traits  `json:"traits"`

	// Provenance
	Generated   bool      `json:"generated"`
	ContentPack string    `json:"content_pack,omitempty"`
	BatchID     string    `json:"batch_id,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

// Clone returns a deep copy sharing no slices or maps with m.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	out := *m
	out.Stats = m.Stats.Clone()
	out.Stuff = m.Stuff.Clone()
	out.CostList = slices.Clone(m.CostList)
	out.StuffCategories = slices.Clone(m.StuffCategories)
	out.ThingCategories = slices.Clone(m.ThingCategories)
	out.Traits.Comps = slices.Clone(m.Traits.Comps)
	return &out
}

// IsMetallic reports whether the material belongs to the metallic stuff category.
func IsMetallic(m *Material) bool {
	if m == nil {
		return false
	}
	if slices.Contains(m.StuffCategories, constants.CategoryMetallic) {
		return true
	}
	return m.Stuff != nil && slices.Contains(m.Stuff.Categories, constants.CategoryMetallic)
}

// IsGenerated selects records produced by a combination batch.
func IsGenerated(m *Material) bool {
	return m != nil && m.Generated
}

// Any accepts every record.
func Any(*Material) bool { return true }

// Validate rejects base catalog records the combiner must never see:
// missing identifiers, negative commonality, and out-of-range colors.
func (m *Material) Validate() error {
	v := &validate.Validator{}
	v.Required("id", m.ID).
		Identifier("id", m.ID).
		Required("label", m.Label).
		NonNegative("commonality", m.Commonality).
		Custom("stack_limit", m.StackLimit < 0, "Must be >= 0")

	for i, c := range m.CostList {
		field := fmt.Sprintf("cost_list[%d]", i)
		v.Required(field+".material_id", c.MaterialID).
			Custom(field+".count", c.Count <= 0, "Must be positive")
	}

	if m.Stuff != nil {
		v.NonNegative("stuff.commonality", m.Stuff.Commonality).
			UnitInterval("stuff.color.r", m.Stuff.Color.R).
			UnitInterval("stuff.color.g", m.Stuff.Color.G).
			UnitInterval("stuff.color.b", m.Stuff.Color.B)
	}

	return v.Err()
}
