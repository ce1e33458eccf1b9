package material

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StatKind identifies a numeric property of a material.
type StatKind int

const (
	StatMass StatKind = iota
	StatMaxHitPoints
	StatBeauty
	StatFlammability
	StatWorkToMake
	StatWorkToBuild
	StatSellPriceFactor
	StatSharpDamageMultiplier
	StatBluntDamageMultiplier
	StatInsulationColdFactor
	StatInsulationHeatFactor
	StatArmorBlunt
	StatArmorHeat
	StatArmorSharp
	StatInsulationCold
	StatInsulationHeat
)

var statNames = [...]string{
	StatMass:                  "Mass",
	StatMaxHitPoints:          "MaxHitPoints",
	StatBeauty:                "Beauty",
	StatFlammability:          "Flammability",
	StatWorkToMake:            "WorkToMake",
	StatWorkToBuild:           "WorkToBuild",
	StatSellPriceFactor:       "SellPriceFactor",
	StatSharpDamageMultiplier: "SharpDamageMultiplier",
	StatBluntDamageMultiplier: "BluntDamageMultiplier",
	StatInsulationColdFactor:  "InsulationColdFactor",
	StatInsulationHeatFactor:  "InsulationHeatFactor",
	StatArmorBlunt:            "ArmorBlunt",
	StatArmorHeat:             "ArmorHeat",
	StatArmorSharp:            "ArmorSharp",
	StatInsulationCold:        "InsulationCold",
	StatInsulationHeat:        "InsulationHeat",
}

// statAliases accepts the alternative names used by catalog authors.
var statAliases = map[string]StatKind{
	"MaxDurability": StatMaxHitPoints,
}

// CombinedStats lists every stat kind a derived material may inherit, in
// declaration order.
func CombinedStats() []StatKind {
	kinds := make([]StatKind, len(statNames))
	for i := range statNames {
		kinds[i] = StatKind(i)
	}
	return kinds
}

func (k StatKind) String() string {
	if k < 0 || int(k) >= len(statNames) {
		return fmt.Sprintf("StatKind(%d)", int(k))
	}
	return statNames[k]
}

// ParseStatKind resolves a canonical stat name or alias.
func ParseStatKind(name string) (StatKind, error) {
	for i, n := range statNames {
		if n == name {
			return StatKind(i), nil
		}
	}
	if k, ok := statAliases[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// StatSet maps stat kinds to values. Absent keys are uninitialized.
type StatSet map[StatKind]float64

// Clone returns an independent copy. A nil set clones to nil.
func (s StatSet) Clone() StatSet {
	if s == nil {
		return nil
	}
	out := make(StatSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the value for kind and whether it is present.
func (s StatSet) Get(kind StatKind) (float64, bool) {
	v, ok := s[kind]
	return v, ok
}

// Kinds returns the present keys in declaration order.
func (s StatSet) Kinds() []StatKind {
	kinds := make([]StatKind, 0, len(s))
	for k := range s {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// MarshalJSON encodes the set keyed by stat name.
func (s StatSet) MarshalJSON() ([]byte, error) {
	named := make(map[string]float64, len(s))
	for k, v := range s {
		named[k.String()] = v
	}
	return json.Marshal(named)
}

// UnmarshalJSON decodes a set keyed by stat name.
func (s *StatSet) UnmarshalJSON(data []byte) error {
	var named map[string]float64
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}
	if named == nil {
		*s = nil
		return nil
	}
	out := make(StatSet, len(named))
	for name, v := range named {
		kind, err := ParseStatKind(name)
		if err != nil {
			return err
		}
		out[kind] = v
	}
	*s = out
	return nil
}
