package alloy

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/alloyforge/internal/catalog"
	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/internal/platform/ctxutil"
	"github.com/taibuivan/alloyforge/internal/registry"
)

// # Batch States

// State is a step of the batch state machine. States only ever advance.
type State string

const (
	StateIdle               State = "idle"
	StateCacheCleared       State = "cache_cleared"
	StateEnumerated         State = "enumerated"
	StateSynthesized        State = "synthesized"
	StateRegistered         State = "registered"
	StateReferencesResolved State = "references_resolved"
	StateDone               State = "done"
)

// Outcome summarizes how a batch finished.
type Outcome string

const (
	// OutcomeCreated means at least one material was derived and registered.
	OutcomeCreated Outcome = "created"
	// OutcomeNoMaterials means fewer than two eligible sources were found.
	OutcomeNoMaterials Outcome = "no_materials_created"
)

// Report describes a finished batch run.
type Report struct {
	BatchID     string        `json:"batch_id"`
	ContentPack string        `json:"content_pack"`
	Strategy    string        `json:"stat_strategy"`
	Outcome     Outcome       `json:"outcome"`
	Sources     int           `json:"sources"`
	Materials   int           `json:"materials"`
	Recipes     int           `json:"recipes"`
	MaterialIDs []string      `json:"material_ids"`
	States      []State       `json:"states"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// ErrAlreadyRan is returned by every call to [Batch.Run] after the first.
var ErrAlreadyRan = apperr.AlreadyComplete("combination batch already ran")

// derived pairs a synthesized material with its recipe.
type derived struct {
	material *material.Material
	recipe   *recipe.Recipe
}

// # Batch Driver

// Batch runs the combination pass over a catalog exactly once.
//
// # Lifecycle
//
// Idle → CacheCleared → Enumerated → Synthesized → Registered →
// ReferencesResolved → Done. There are no retries and no way back; a second
// call to Run fails with ALREADY_COMPLETE.
//
// # Failure
//
// Every subset is synthesized before the first record reaches the sink, so a
// structural error leaves the sink untouched. Errors raised by the sink itself
// are returned as-is; records registered before such an error stay registered.
type Batch struct {
	source      catalog.Source
	sink        registry.Sink
	synthesizer *Synthesizer
	provenance  Provenance
	strategy    StatStrategy
	filter      func(*material.Material) bool
	logger      *slog.Logger

	once  sync.Once
	state State
}

// BatchOption customizes a [Batch].
type BatchOption func(*Batch)

// WithFilter replaces the default metallic source filter.
func WithFilter(filter func(*material.Material) bool) BatchOption {
	return func(b *Batch) { b.filter = filter }
}

// WithStatStrategy selects how derived stats are computed.
func WithStatStrategy(strategy StatStrategy) BatchOption {
	return func(b *Batch) { b.strategy = strategy }
}

// NewBatch constructs a [Batch] reading from source and registering into sink.
func NewBatch(source catalog.Source, sink registry.Sink, provenance Provenance, logger *slog.Logger, opts ...BatchOption) *Batch {
	b := &Batch{
		source:     source,
		sink:       sink,
		provenance: provenance,
		strategy:   StatStrategyTemplate,
		filter:     material.IsMetallic,
		logger:     logger,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.synthesizer = NewSynthesizer(b.strategy, provenance)
	return b
}

// State returns the state the batch last reached.
func (b *Batch) State() State {
	return b.state
}

// Run executes the batch. Only the first call does any work.
func (b *Batch) Run(ctx context.Context) (*Report, error) {
	var (
		report *Report
		err    error
		ran    bool
	)
	b.once.Do(func() {
		ran = true
		report, err = b.run(ctx)
	})
	if !ran {
		return nil, ErrAlreadyRan
	}
	return report, err
}

func (b *Batch) run(ctx context.Context) (*Report, error) {
	ctx = ctxutil.WithBatchID(ctx, b.provenance.BatchID)
	log := b.logger.With(
		slog.String("batch_id", b.provenance.BatchID),
		slog.String("content_pack", b.provenance.ContentPack),
	)
	ctx = ctxutil.WithLogger(ctx, log)

	report := &Report{
		BatchID:     b.provenance.BatchID,
		ContentPack: b.provenance.ContentPack,
		Strategy:    b.strategy.String(),
		MaterialIDs: []string{},
		States:      []State{StateIdle},
		StartedAt:   time.Now(),
	}
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	log.Info("batch_started", slog.String("stat_strategy", b.strategy.String()))

	// ── 1. Cache ──────────────────────────────────────────────────────────
	if err := b.sink.InvalidateCache(ctx); err != nil {
		return report, fmt.Errorf("alloy: invalidate cache: %w", err)
	}
	b.advance(report, StateCacheCleared)

	// ── 2. Enumeration ────────────────────────────────────────────────────
	sources, err := b.source.ListMaterials(ctx, b.filter)
	if err != nil {
		return report, fmt.Errorf("alloy: list materials: %w", err)
	}
	report.Sources = len(sources)
	pairs := Combinations(sources, constants.SubsetSize)
	b.advance(report, StateEnumerated)

	log.Debug("catalog_enumerated",
		slog.Int("sources", len(sources)),
		slog.Int("subsets", CountCombinations(len(sources), constants.SubsetSize)),
	)

	// ── 3. Synthesis ──────────────────────────────────────────────────────
	results, err := b.synthesize(pairs, log)
	if err != nil {
		log.Error("batch_aborted", slog.Any("error", err))
		return report, err
	}

	if len(results) == 0 {
		report.Outcome = OutcomeNoMaterials
		b.advance(report, StateDone)
		log.Info("no_materials_created", slog.Int("sources", len(sources)))
		return report, nil
	}
	b.advance(report, StateSynthesized)

	// ── 4. Registration ───────────────────────────────────────────────────
	for _, d := range results {
		if err := b.sink.RegisterMaterial(ctx, d.material); err != nil {
			return report, fmt.Errorf("alloy: register material %s: %w", d.material.ID, err)
		}
		report.Materials++
		report.MaterialIDs = append(report.MaterialIDs, d.material.ID)
	}
	for _, d := range results {
		if err := b.sink.RegisterRecipe(ctx, d.recipe); err != nil {
			return report, fmt.Errorf("alloy: register recipe %s: %w", d.recipe.ID, err)
		}
		report.Recipes++
	}
	b.advance(report, StateRegistered)

	// ── 5. Reference resolution ───────────────────────────────────────────
	if err := b.sink.ResolveReferences(ctx); err != nil {
		return report, fmt.Errorf("alloy: resolve references: %w", err)
	}
	b.advance(report, StateReferencesResolved)

	report.Outcome = OutcomeCreated
	b.advance(report, StateDone)

	log.Info("batch_completed",
		slog.Int("materials", report.Materials),
		slog.Int("recipes", report.Recipes),
	)

	return report, nil
}

// synthesize derives every subset before anything is registered.
func (b *Batch) synthesize(pairs iter.Seq[[]*material.Material], log *slog.Logger) ([]derived, error) {
	var results []derived
	seen := make(map[string]struct{})

	for subset := range pairs {
		m, err := b.synthesizer.Material(subset)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m.ID]; dup {
			return nil, apperr.Structural(fmt.Sprintf("duplicate derived material %q; catalog ids must be unique", m.ID), nil)
		}
		seen[m.ID] = struct{}{}

		results = append(results, derived{material: m, recipe: b.synthesizer.Recipe(m)})
		log.Debug("material_created", slog.String("material_id", m.ID))
	}

	return results, nil
}

func (b *Batch) advance(report *Report, next State) {
	b.state = next
	report.States = append(report.States, next)
}
