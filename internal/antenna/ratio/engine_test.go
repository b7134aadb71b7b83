package ratio

import (
	"testing"

	"github.com/exa-laboratories/OpenROAD/internal/antenna/connectivity"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/geometry"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/rulestore"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
	"github.com/exa-laboratories/OpenROAD/internal/pdb/fixture"
)

func gateTerm(gateArea float64) *pdb.ITerm {
	return &pdb.ITerm{
		InstanceName: "g1",
		PinName:      "A",
		MasterTerm: &pdb.MTerm{
			Name:            "g1",
			IsInput:         true,
			GateAreaByLayer: map[string]float64{"M1": gateArea},
		},
	}
}

func buildRecords(t *testing.T, layers []*pdb.Layer, net *pdb.Net) []InfoRecord {
	t.Helper()
	db, err := fixture.New(layers, []*pdb.Net{net}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	g, err := geometry.Build(net, db)
	if err != nil {
		t.Fatal(err)
	}
	sets := connectivity.Compute(net, g)
	store := rulestore.Build(db.Layers())
	return Compute(g, sets, store)
}

func TestComputeFlagsPARViolation(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1, Rule: &pdb.AntennaRule{AreaFactor: 1, PAR: 2.0}},
	}
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 2}}, // area 20
		},
		Pins: []pdb.Pin{
			{Term: gateTerm(5), Footprint: []pdb.PinBox{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1}}}},
		},
	}
	recs := buildRecords(t, layers, net)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if got, want := rec.PAR, 19.0/5.0; got != want {
		t.Errorf("PAR = %v, want %v", got, want) // area shrinks by 1 from pin footprint subtraction
	}
	if !rec.ParViolated {
		t.Errorf("expected PAR violation: %+v", rec)
	}
}

func TestComputeSkipsLayerWithoutRule(t *testing.T) {
	layers := []*pdb.Layer{{Name: "M1", RoutingLevel: 1}}
	net := &pdb.Net{
		Name:     "n1",
		Segments: []pdb.Segment{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 2}}},
	}
	recs := buildRecords(t, layers, net)
	if len(recs) != 0 {
		t.Errorf("expected no records for a RuleGap layer, got %d", len(recs))
	}
}

func TestComputeCumulativeIncludesCuts(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1, Rule: &pdb.AntennaRule{AreaFactor: 1}},
		{Name: "V1", RoutingLevel: 0, Rule: &pdb.AntennaRule{AreaFactor: 1}},
		{Name: "M2", RoutingLevel: 2, Rule: &pdb.AntennaRule{AreaFactor: 1}, CumulativeIncludesCuts: true},
	}
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 1}},
			{Layer: "M2", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 1}},
		},
		Vias: []pdb.Via{
			{
				BottomLayer: "M1", BottomRect: pdb.Rect{X1: 1, Y1: 0, X2: 2, Y2: 1},
				CutLayer: "V1", CutRect: pdb.Rect{X1: 1, Y1: 0, X2: 2, Y2: 1},
				TopLayer: "M2", TopRect: pdb.Rect{X1: 1, Y1: 0, X2: 2, Y2: 1},
			},
		},
		Pins: []pdb.Pin{
			{Term: gateTerm(10), Footprint: []pdb.PinBox{{Layer: "M1", Rect: pdb.Rect{X1: 5, Y1: 0, X2: 6, Y2: 1}}}},
		},
	}
	recs := buildRecords(t, layers, net)
	var m2rec InfoRecord
	var m1PAR float64
	found := false
	for _, r := range recs {
		if r.Layer == "M1" {
			m1PAR = r.PAR
		}
		if r.Layer == "M2" {
			m2rec = r
			found = true
		}
	}
	if !found {
		t.Fatal("expected an M2 record")
	}
	// The wire-only sum is M1 PAR + M2 PAR; CumulativeIncludesCuts must
	// push M2's CAR above it by the via's PAR contribution.
	if m2rec.CAR <= m1PAR+m2rec.PAR {
		t.Errorf("M2's CAR should fold in the via's PAR contribution (CumulativeIncludesCuts): CAR=%v wire-only sum=%v", m2rec.CAR, m1PAR+m2rec.PAR)
	}
}

func TestComputePARUsesDiffFactorWhenDiffConnectedAndDiffOnly(t *testing.T) {
	layers := []*pdb.Layer{
		{
			Name: "M1", RoutingLevel: 1,
			Rule: &pdb.AntennaRule{AreaFactor: 5, AreaFactorDiffOnly: true, PAR: 1000},
		},
	}
	gate := &pdb.ITerm{
		InstanceName: "g1", PinName: "A",
		MasterTerm: &pdb.MTerm{
			Name: "g1", IsInput: true,
			GateAreaByLayer: map[string]float64{"M1": 5},
			DiffAreaByLayer: map[string]float64{"M1": 2},
		},
	}
	net := &pdb.Net{
		Name:     "n1",
		Segments: []pdb.Segment{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 2}}}, // area 20
		Pins:     []pdb.Pin{{Term: gate, Footprint: []pdb.PinBox{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1}}}}},
	}
	recs := buildRecords(t, layers, net)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if !rec.DiffConnected {
		t.Fatal("expected the set to be diffusion-connected")
	}
	// AreaFactorDiffOnly leaves MetalFactor at the neutral 1.0 default
	// and carries the real factor (5) on DiffMetalFactor only. A
	// diffusion-connected record's PAR must use that diff factor too,
	// not silently fall back to the neutral plain one.
	if got, want := rec.PAR, 19.0/5.0*5.0; got != want {
		t.Errorf("PAR = %v, want %v (should scale by the diff-only area factor)", got, want)
	}
}

func TestComputeDiffConnectedSwitchesFormula(t *testing.T) {
	layers := []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1, Rule: &pdb.AntennaRule{AreaFactor: 1, MinusDiffFactor: 1, DiffPAR: pdb.PWLTable{{Index: 0, Ratio: 100}}}},
	}
	gate := &pdb.ITerm{
		InstanceName: "g1", PinName: "A",
		MasterTerm: &pdb.MTerm{
			Name: "g1", IsInput: true,
			GateAreaByLayer: map[string]float64{"M1": 5},
			DiffAreaByLayer: map[string]float64{"M1": 3},
		},
	}
	net := &pdb.Net{
		Name:     "n1",
		Segments: []pdb.Segment{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 2}}},
		Pins:     []pdb.Pin{{Term: gate, Footprint: []pdb.PinBox{{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 1, Y2: 1}}}}},
	}
	recs := buildRecords(t, layers, net)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if !rec.DiffConnected {
		t.Fatal("expected the set to be diffusion-connected")
	}
	if rec.ActivePAR() != rec.DiffPAR {
		t.Errorf("a diffusion-connected record should report DiffPAR as its active PAR")
	}
	if rec.DiffPAR == rec.PAR {
		t.Errorf("MinusDiffFactor should make DiffPAR diverge from the plain PAR: both %v", rec.PAR)
	}
}
