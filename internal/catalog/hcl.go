package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/ctxutil"
	"github.com/taibuivan/alloyforge/internal/platform/validate"
	"github.com/taibuivan/alloyforge/pkg/slug"
)

const hclExtension = ".hcl"

// fileRoot decodes every top-level block allowed in a catalog file.
type fileRoot struct {
	Materials []*materialBlock `hcl:"material,block"`
}

type materialBlock struct {
	ID          string             `hcl:"id,label"`
	Label       string             `hcl:"label"`
	Description string             `hcl:"description,optional"`
	Commonality float64            `hcl:"commonality,optional"`
	Categories  []string           `hcl:"categories,optional"`
	StackLimit  int                `hcl:"stack_limit,optional"`
	Stats       map[string]float64 `hcl:"stats,optional"`
	Costs       []*costBlock       `hcl:"cost,block"`
	Stuff       *stuffBlock        `hcl:"stuff,block"`
}

type costBlock struct {
	Material string `hcl:"material"`
	Count    int    `hcl:"count"`
}

type stuffBlock struct {
	Color       []float64   `hcl:"color"`
	Commonality float64     `hcl:"commonality,optional"`
	Categories  []string    `hcl:"categories,optional"`
	Adjectives  []string    `hcl:"adjectives,optional"`
	Appearance  string      `hcl:"appearance,optional"`
	Sounds      *soundBlock `hcl:"sounds,block"`
}

type soundBlock struct {
	Impact     string `hcl:"impact,optional"`
	MeleeSharp string `hcl:"melee_sharp,optional"`
	MeleeBlunt string `hcl:"melee_blunt,optional"`
}

// HCLSource reads the base catalog from `.hcl` files.
//
// Paths may name single files or directories, which are walked recursively.
// Files are read in lexical path order and blocks in declaration order; that
// sequence is the catalog order.
type HCLSource struct {
	paths []string
}

// NewHCLSource creates a catalog source over the given paths.
func NewHCLSource(paths ...string) *HCLSource {
	return &HCLSource{paths: paths}
}

// ListMaterials implements [Source]. The files are re-read on every call.
func (s *HCLSource) ListMaterials(ctx context.Context, predicate func(*material.Material) bool) ([]*material.Material, error) {
	all, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, predicate), nil
}

// Load parses and validates every catalog file.
func (s *HCLSource) Load(ctx context.Context) ([]*material.Material, error) {
	logger := ctxutil.GetLogger(ctx)

	files, err := findHCLFiles(s.paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog_files_discovered", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := evalContext()

	var materials []*material.Material
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("catalog: failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("catalog: failed to decode %s: %w", file, diags)
		}

		for _, block := range root.Materials {
			if first, dup := seen[block.ID]; dup {
				return nil, apperr.Conflict(fmt.Sprintf("material %q declared in %s and %s", block.ID, first, file))
			}
			seen[block.ID] = file

			m, err := block.toMaterial()
			if err != nil {
				return nil, fmt.Errorf("catalog: %s: material %q%s: %w", file, block.ID, fieldList(err), err)
			}
			materials = append(materials, m)
		}
	}

	logger.Debug("catalog_loaded", "files", len(files), "materials", len(materials))
	return materials, nil
}

func (b *materialBlock) toMaterial() (*material.Material, error) {
	m := &material.Material{
		ID:              b.ID,
		Label:           b.Label,
		Description:     b.Description,
		Slug:            slug.From(b.Label),
		Commonality:     b.Commonality,
		StackLimit:      b.StackLimit,
		StuffCategories: b.Categories,
	}

	if len(b.Stats) > 0 {
		m.Stats = make(material.StatSet, len(b.Stats))
		for name, value := range b.Stats {
			kind, err := material.ParseStatKind(name)
			if err != nil {
				return nil, validate.RequiredError("stats."+name, err.Error())
			}
			m.Stats[kind] = value
		}
	}

	for _, c := range b.Costs {
		m.CostList = append(m.CostList, material.Cost{MaterialID: c.Material, Count: c.Count})
	}

	if b.Stuff != nil {
		stuff, err := b.Stuff.toStuffProps()
		if err != nil {
			return nil, err
		}
		m.Stuff = stuff
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *stuffBlock) toStuffProps() (*material.StuffProps, error) {
	if len(b.Color) != 3 {
		return nil, validate.RequiredError("stuff.color", "Must have exactly 3 components")
	}

	sounds := material.SoundProfile{
		Impact:     material.SoundImpactMetal,
		MeleeSharp: material.SoundMeleeSharpMetal,
		MeleeBlunt: material.SoundMeleeBluntMetal,
	}
	if b.Sounds != nil {
		sounds = material.SoundProfile{
			Impact:     orDefault(b.Sounds.Impact, sounds.Impact),
			MeleeSharp: orDefault(b.Sounds.MeleeSharp, sounds.MeleeSharp),
			MeleeBlunt: orDefault(b.Sounds.MeleeBlunt, sounds.MeleeBlunt),
		}
	}

	return &material.StuffProps{
		Categories:  b.Categories,
		Commonality: b.Commonality,
		Color:       material.Color{R: b.Color[0], G: b.Color[1], B: b.Color[2]},
		Sounds:      sounds,
		Adjectives:  b.Adjectives,
		Appearance:  b.Appearance,
	}, nil
}

// fieldList renders the failing fields of a validation error, e.g. " [id, stuff.color.r]".
func fieldList(err error) string {
	ae := apperr.As(err)
	if ae == nil || len(ae.Details) == 0 {
		return ""
	}
	fields := make([]string, len(ae.Details))
	for i, d := range ae.Details {
		fields[i] = d.Field
	}
	return " [" + strings.Join(fields, ", ") + "]"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// findHCLFiles walks all given paths and returns a sorted, de-duplicated
// list of catalog files. Missing paths are an error.
func findHCLFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == hclExtension {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == hclExtension {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: walk %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
