package material

import "github.com/taibuivan/alloyforge/internal/platform/constants"

// Template values shared by every derived material.
const (
	templateStuffCommonality = 0.02
	templateAppearance       = "Metal"

	SoundImpactMetal     = "BulletImpact_Metal"
	SoundMeleeSharpMetal = "MeleeHit_Metal_Sharp"
	SoundMeleeBluntMetal = "MeleeHit_Metal_Blunt"
	soundStandardDrop    = "Standard_Drop"
)

// IngotGraphic is the icon template assigned to every derived material.
var IngotGraphic = Graphic{
	Class:   "Graphic_StackCount",
	TexPath: "Things/Items/Resources/Ingot",
	Shader:  "CutoutComplex",
}

// NewTemplate allocates a derived-material record populated with template
// defaults. Each call returns fresh slices and maps.
func NewTemplate() *Material {
	return &Material{
		Stats:      StatSet{StatFlammability: 0},
		CostList:   []Cost{},
		StackLimit: constants.StackLimitCap,

		StuffCategories: []string{constants.CategoryMetallic},
		ThingCategories: []string{constants.CategoryResourcesRaw},

		Stuff: &StuffProps{
			Categories:           []string{constants.CategoryMetallic},
			Commonality:          templateStuffCommonality,
			AllowColorGenerators: true,
			Appearance:           templateAppearance,
			Sounds: SoundProfile{
				Impact:     SoundImpactMetal,
				MeleeSharp: SoundMeleeSharpMetal,
				MeleeBlunt: SoundMeleeBluntMetal,
			},
			StatFactors: StatSet{StatFlammability: 0},
		},

		Traits: Traits{
			ThingClass:              "ThingWithComps",
			Category:                "Item",
			DrawerType:              "MapMeshOnly",
			AltitudeLayer:           "Item",
			ResourceReadoutPriority: "Middle",
			UseHitPoints:            true,
			Selectable:              true,
			AlwaysHaulable:          true,
			DrawGUIOverlay:          true,
			Rotatable:               false,
			HealthAffectsPrice:      false,
			ResourceReadoutAlwaysOn: true,
			Smeltable:               true,
			BurnableByRecipe:        false,
			DeepCommonality:         0.5,
			DeepCountPerPortion:     70,
			DeepLumpSize:            IntRange{Min: 1, Max: 4},
			TerrainAffordance:       "Medium",
			SoundDrop:               soundStandardDrop,
			SoundInteract:           soundStandardDrop,
			Comps:                   []string{"CompProperties_Forbiddable"},
		},
	}
}

// ClampStackLimit bounds a stack limit to [0, StackLimitCap].
func ClampStackLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > constants.StackLimitCap {
		return constants.StackLimitCap
	}
	return limit
}
