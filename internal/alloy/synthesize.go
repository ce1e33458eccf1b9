package alloy

import (
	"fmt"
	"strings"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/pkg/slice"
	"github.com/taibuivan/alloyforge/pkg/slug"
)

// Provenance is stamped on every record a synthesizer produces.
type Provenance struct {
	ContentPack string
	BatchID     string
}

// Synthesizer turns a subset of source materials into a derived material and
// its recipe.
//
// # Concurrency
//
// A Synthesizer holds no mutable state and may be shared.
type Synthesizer struct {
	strategy   StatStrategy
	provenance Provenance
}

// NewSynthesizer constructs a [Synthesizer].
func NewSynthesizer(strategy StatStrategy, provenance Provenance) *Synthesizer {
	return &Synthesizer{strategy: strategy, provenance: provenance}
}

// MaterialID derives the identifier of the material combining sources.
func MaterialID(sources []*material.Material) string {
	var b strings.Builder
	b.WriteString(constants.MaterialIDPrefix)
	for _, m := range sources {
		b.WriteString(m.ID)
		b.WriteString(constants.MaterialIDSeparator)
	}
	b.WriteString(constants.MaterialIDSuffix)
	return b.String()
}

// MaterialLabel derives the display label of the material combining sources.
func MaterialLabel(sources []*material.Material) string {
	parts := make([]string, 0, len(sources)+2)
	parts = append(parts, constants.MaterialLabelPrefix)
	parts = append(parts, slice.Map(sources, func(m *material.Material) string { return m.Label })...)
	parts = append(parts, constants.MaterialLabelSuffix)
	return strings.Join(parts, " ")
}

// MaterialDescription renders the description template. note is appended
// when non-empty.
func MaterialDescription(sourceCount int, note string) string {
	desc := fmt.Sprintf(constants.MaterialDescription, sourceCount)
	if note = strings.TrimSpace(note); note != "" {
		desc += " " + note
	}
	return desc
}

// Material synthesizes the derived material for sources.
//
// It fails with a STRUCTURAL_ERROR when fewer than two sources are given or a
// source lacks an identifier or its stuff properties. No partially populated
// record is ever returned.
func (s *Synthesizer) Material(sources []*material.Material) (*material.Material, error) {
	if err := checkSources(sources); err != nil {
		return nil, err
	}

	m := material.NewTemplate()

	m.ID = MaterialID(sources)
	m.Label = MaterialLabel(sources)
	m.Description = MaterialDescription(len(sources), "")
	m.Slug = slug.From(m.Label)
	m.Graphic = material.IngotGraphic
	m.CostList = MergeCostList(sources)

	m.Commonality = MergeCommonality(sources)
	m.Stuff.Adjectives = MergeAdjectives(sources)
	m.Stuff.Color = MergeColor(sources)
	m.Stats = MergeStats(s.strategy, m.Stats, sources)
	m.StackLimit = material.ClampStackLimit(m.StackLimit)

	// Sounds come from the first source only.
	m.Stuff.Sounds = MergeSounds(sources)

	m.Generated = true
	m.ContentPack = s.provenance.ContentPack
	m.BatchID = s.provenance.BatchID

	return m, nil
}

func checkSources(sources []*material.Material) error {
	if len(sources) < constants.SubsetSize {
		return apperr.Structural(
			fmt.Sprintf("combination needs at least %d sources, got %d", constants.SubsetSize, len(sources)), nil)
	}
	for i, m := range sources {
		switch {
		case m == nil:
			return apperr.Structural(fmt.Sprintf("source %d is nil", i), nil)
		case m.ID == "":
			return apperr.Structural(fmt.Sprintf("source %d has no identifier", i), nil)
		case m.Stuff == nil:
			return apperr.Structural(fmt.Sprintf("source %q has no stuff properties", m.ID), nil)
		}
	}
	return nil
}
