package alloy

import (
	"fmt"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/pkg/slice"
)

// Every merge rule below takes the sources in subset order and is pure.
// Rules that read stuff properties expect sources already checked by
// checkSources.

// MergeCommonality is the arithmetic mean of the sources' commonality
// weights, clamped to >= 0. No sources merge to 0.
func MergeCommonality(sources []*material.Material) float64 {
	if len(sources) == 0 {
		return 0
	}
	total := slice.Reduce(sources, 0.0, func(acc float64, m *material.Material) float64 {
		return acc + m.Commonality
	})
	mean := total / float64(len(sources))
	if mean < 0 {
		return 0
	}
	return mean
}

// MergeColor interpolates halfway between the first two sources' colors.
func MergeColor(sources []*material.Material) material.Color {
	switch len(sources) {
	case 0:
		return material.Color{}
	case 1:
		return sources[0].Stuff.Color
	}
	return sources[0].Stuff.Color.Lerp(sources[1].Stuff.Color, constants.ColorLerpT)
}

// MergeAdjectives propagates "golden" if any source carries it. No other
// adjective is inherited.
func MergeAdjectives(sources []*material.Material) []string {
	for _, m := range sources {
		if m.Stuff.HasAdjective(constants.AdjectiveGolden) {
			return []string{constants.AdjectiveGolden}
		}
	}
	return nil
}

// MergeSounds copies the first source's sound profile.
func MergeSounds(sources []*material.Material) material.SoundProfile {
	if len(sources) == 0 {
		return material.SoundProfile{}
	}
	return sources[0].Stuff.Sounds
}

// MergeCostList charges CostCount units of every source, in subset order.
func MergeCostList(sources []*material.Material) []material.Cost {
	return slice.Map(sources, func(m *material.Material) material.Cost {
		return material.Cost{MaterialID: m.ID, Count: constants.CostCount}
	})
}

// StatStrategy decides the stat bases of a derived material.
type StatStrategy int

const (
	// StatStrategyTemplate keeps the template stats and ignores the sources.
	StatStrategyTemplate StatStrategy = iota
	// StatStrategyAverage averages every stat present on at least one source.
	StatStrategyAverage
)

// ParseStatStrategy maps a configuration value to a strategy.
func ParseStatStrategy(name string) (StatStrategy, error) {
	switch name {
	case "", "template":
		return StatStrategyTemplate, nil
	case "average":
		return StatStrategyAverage, nil
	}
	return 0, fmt.Errorf("unknown stat strategy %q", name)
}

func (s StatStrategy) String() string {
	switch s {
	case StatStrategyTemplate:
		return "template"
	case StatStrategyAverage:
		return "average"
	}
	return fmt.Sprintf("StatStrategy(%d)", int(s))
}

// MergeStats returns the stat bases for a derived material starting from
// template. The template set is never modified.
func MergeStats(strategy StatStrategy, template material.StatSet, sources []*material.Material) material.StatSet {
	out := template.Clone()
	if out == nil {
		out = material.StatSet{}
	}
	if strategy != StatStrategyAverage {
		return out
	}

	for _, kind := range material.CombinedStats() {
		var sum float64
		var present int
		for _, m := range sources {
			if v, ok := m.Stats.Get(kind); ok {
				sum += v
				present++
			}
		}
		if present > 0 {
			out[kind] = sum / float64(present)
		}
	}
	return out
}
