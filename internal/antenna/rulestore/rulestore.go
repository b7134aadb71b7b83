// Package rulestore caches, per technology layer, the derived antenna
// factors the rest of the antenna-checker pipeline consumes so the
// hot path never has to re-derive them or fall back on conditionals
// (spec.md §4.1).
package rulestore

import (
	"fmt"

	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// AntennaModel is the per-layer set of derived factors RatioEngine
// plugs straight into its PAR/PSR/CAR/CSR formulas.
type AntennaModel struct {
	MetalFactor     float64
	DiffMetalFactor float64

	CutFactor     float64
	DiffCutFactor float64

	SideMetalFactor     float64
	DiffSideMetalFactor float64

	MinusDiffFactor float64
	PlusDiffFactor  float64

	// AreaDiffReduce is evaluated per InfoRecord against the summed
	// diffusion area of the record's gates; DiffMetalReduceFactor below is only the
	// PWL-table default (1.0) used when the table is empty.
	AreaDiffReduce          pdb.PWLTable
	DiffMetalReduceFactor float64
}

// Warning is a non-fatal DataWarning raised while building the store
// (spec.md §7): a routing layer defines a side-area rule but carries
// zero thickness.
type Warning struct {
	Layer  string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("rulestore: layer %s: %s", w.Layer, w.Detail)
}

// Store is the immutable, design-wide cache of AntennaModel values,
// built once on design load (spec.md lifecycle) and read concurrently
// thereafter.
type Store struct {
	models   map[string]AntennaModel
	warnings []Warning
}

// Build derives an AntennaModel for every layer in layers that
// carries an AntennaRule; layers without one are simply absent from
// the store (RuleGap, spec.md §7) — Lookup reports ok=false for them.
func Build(layers []*pdb.Layer) *Store {
	s := &Store{models: make(map[string]AntennaModel, len(layers))}
	for _, l := range layers {
		if l.Rule == nil {
			continue
		}
		s.models[l.Name] = deriveModel(*l.Rule)
		if l.Rule.SideAreaFactor != 0 && l.RoutingLevel > 0 && l.ThicknessUM == 0 {
			s.warnings = append(s.warnings, Warning{
				Layer:  l.Name,
				Detail: "side-area rule defined but layer thickness is zero",
			})
		}
	}
	return s
}

// Lookup returns the derived model for a layer, or ok=false if the
// layer has no antenna rule at all.
func (s *Store) Lookup(layerName string) (AntennaModel, bool) {
	m, ok := s.models[layerName]
	return m, ok
}

// Warnings returns the DataWarnings accumulated during Build. The
// caller (Checker, then the CLI) decides whether/how to surface them;
// rulestore itself never logs.
func (s *Store) Warnings() []Warning {
	return append([]Warning(nil), s.warnings...)
}

func deriveModel(rule pdb.AntennaRule) AntennaModel {
	m := AntennaModel{
		MetalFactor:     1.0,
		DiffMetalFactor: 1.0,
		CutFactor:       1.0,
		DiffCutFactor:   1.0,

		SideMetalFactor:     1.0,
		DiffSideMetalFactor: 1.0,

		MinusDiffFactor: rule.MinusDiffFactor,
		PlusDiffFactor:  rule.PlusDiffFactor,

		AreaDiffReduce:        rule.AreaDiffReduce,
		DiffMetalReduceFactor: 1.0,
	}

	if rule.AreaFactorDiffOnly {
		m.DiffMetalFactor = rule.AreaFactor
		m.DiffCutFactor = rule.AreaFactor
	} else {
		m.MetalFactor = rule.AreaFactor
		m.DiffMetalFactor = rule.AreaFactor
		m.CutFactor = rule.AreaFactor
		m.DiffCutFactor = rule.AreaFactor
	}

	if rule.SideAreaFactorDiffOnly {
		m.DiffSideMetalFactor = rule.SideAreaFactor
	} else {
		m.SideMetalFactor = rule.SideAreaFactor
		m.DiffSideMetalFactor = rule.SideAreaFactor
	}

	return m
}
