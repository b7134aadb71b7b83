package rulestore

import (
	"testing"

	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

func TestBuildSkipsLayersWithoutRule(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1},
		{Name: "M2", RoutingLevel: 2, Rule: &pdb.AntennaRule{AreaFactor: 1}},
	}
	s := Build(layers)

	if _, ok := s.Lookup("M1"); ok {
		t.Errorf("expected no model for M1 (RuleGap)")
	}
	if _, ok := s.Lookup("M2"); !ok {
		t.Errorf("expected a model for M2")
	}
}

func TestDeriveModelAreaFactorBothBranches(t *testing.T) {
	m := deriveModel(pdb.AntennaRule{AreaFactor: 1.5})
	if m.MetalFactor != 1.5 || m.DiffMetalFactor != 1.5 || m.CutFactor != 1.5 || m.DiffCutFactor != 1.5 {
		t.Errorf("non-diff-only AreaFactor should apply to both branches: %+v", m)
	}
}

func TestDeriveModelAreaFactorDiffOnly(t *testing.T) {
	m := deriveModel(pdb.AntennaRule{AreaFactor: 2.0, AreaFactorDiffOnly: true})
	if m.MetalFactor != 1.0 || m.CutFactor != 1.0 {
		t.Errorf("non-diffusion branch must stay at the default 1.0: %+v", m)
	}
	if m.DiffMetalFactor != 2.0 || m.DiffCutFactor != 2.0 {
		t.Errorf("diffusion branch should receive AreaFactor: %+v", m)
	}
}

func TestDeriveModelSideAreaFactorDiffOnly(t *testing.T) {
	m := deriveModel(pdb.AntennaRule{SideAreaFactor: 3.0, SideAreaFactorDiffOnly: true})
	if m.SideMetalFactor != 1.0 {
		t.Errorf("non-diffusion side branch must stay at default 1.0: %+v", m)
	}
	if m.DiffSideMetalFactor != 3.0 {
		t.Errorf("diffusion side branch should receive SideAreaFactor: %+v", m)
	}
}

func TestBuildWarnsOnZeroThicknessWithSideRule(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1, ThicknessUM: 0, Rule: &pdb.AntennaRule{SideAreaFactor: 1}},
	}
	s := Build(layers)
	warnings := s.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	if warnings[0].Layer != "M1" {
		t.Errorf("warning should name the offending layer, got %+v", warnings[0])
	}
}

func TestBuildNoWarningForCutLayer(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "V1", RoutingLevel: 0, ThicknessUM: 0, Rule: &pdb.AntennaRule{SideAreaFactor: 1}},
	}
	s := Build(layers)
	if len(s.Warnings()) != 0 {
		t.Errorf("cut layers have no side area; zero thickness should not warn")
	}
}
