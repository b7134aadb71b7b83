package geometry

import (
	"testing"

	"github.com/exa-laboratories/OpenROAD/internal/pdb"
	"github.com/exa-laboratories/OpenROAD/internal/pdb/fixture"
)

func twoMetalOneViaStack() []*pdb.Layer {
	return []*pdb.Layer{
		{Name: "M1", RoutingLevel: 1, WidthUM: 0.1, ThicknessUM: 0.1},
		{Name: "V1", RoutingLevel: 0},
		{Name: "M2", RoutingLevel: 2, WidthUM: 0.1, ThicknessUM: 0.1},
	}
}

func gateTerm(name string, gateArea float64) *pdb.ITerm {
	return &pdb.ITerm{
		InstanceName: name,
		PinName:      "A",
		MasterTerm: &pdb.MTerm{
			Name:            name,
			IsInput:         true,
			GateAreaByLayer: map[string]float64{"M1": gateArea},
		},
	}
}

func TestBuildMergesTouchingWireSegmentsIntoOneIsland(t *testing.T) {
	layers := twoMetalOneViaStack()
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 1}},
			{Layer: "M1", Rect: pdb.Rect{X1: 10, Y1: 0, X2: 20, Y2: 1}},
		},
	}
	db, err := fixture.New(layers, []*pdb.Net{net}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(net, db)
	if err != nil {
		t.Fatal(err)
	}
	islands := g.Islands("M1")
	if len(islands) != 1 {
		t.Fatalf("expected touching segments to merge into 1 island, got %d", len(islands))
	}
	if got, want := islands[0].Area(), 20.0; got != want {
		t.Errorf("merged island area = %v, want %v", got, want)
	}
}

func TestBuildKeepsDisjointWireSegmentsAsSeparateIslands(t *testing.T) {
	layers := twoMetalOneViaStack()
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 1}},
			{Layer: "M1", Rect: pdb.Rect{X1: 100, Y1: 0, X2: 110, Y2: 1}},
		},
	}
	db, err := fixture.New(layers, []*pdb.Net{net}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(net, db)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(g.Islands("M1")); got != 2 {
		t.Fatalf("expected 2 disjoint islands, got %d", got)
	}
}

func TestBuildSubtractsPinFootprint(t *testing.T) {
	layers := twoMetalOneViaStack()
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}},
		},
		Pins: []pdb.Pin{
			{
				Term: gateTerm("g1", 1),
				Footprint: []pdb.PinBox{
					{Layer: "M1", Rect: pdb.Rect{X1: 2, Y1: 2, X2: 4, Y2: 4}},
				},
			},
		},
	}
	db, err := fixture.New(layers, []*pdb.Net{net}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(net, db)
	if err != nil {
		t.Fatal(err)
	}
	islands := g.Islands("M1")
	if len(islands) != 1 {
		t.Fatalf("expected 1 island, got %d", len(islands))
	}
	if got, want := islands[0].Area(), 96.0; got != want {
		t.Errorf("island area after pin subtraction = %v, want %v", got, want)
	}
}

func TestBuildResolvesViaAdjacencyBothSides(t *testing.T) {
	layers := twoMetalOneViaStack()
	net := &pdb.Net{
		Name: "n1",
		Segments: []pdb.Segment{
			{Layer: "M1", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 5, Y2: 5}},
			{Layer: "M2", Rect: pdb.Rect{X1: 0, Y1: 0, X2: 5, Y2: 5}},
		},
		Vias: []pdb.Via{
			{
				BottomLayer: "M1", BottomRect: pdb.Rect{X1: 1, Y1: 1, X2: 2, Y2: 2},
				CutLayer: "V1", CutRect: pdb.Rect{X1: 1, Y1: 1, X2: 2, Y2: 2},
				TopLayer: "M2", TopRect: pdb.Rect{X1: 1, Y1: 1, X2: 2, Y2: 2},
			},
		},
	}
	db, err := fixture.New(layers, []*pdb.Net{net}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(net, db)
	if err != nil {
		t.Fatal(err)
	}
	vias := g.Islands("V1")
	if len(vias) != 1 {
		t.Fatalf("expected 1 via island, got %d", len(vias))
	}
	via := vias[0]
	if len(via.LowerNeighbors) != 1 || len(via.UpperNeighbors) != 1 {
		t.Fatalf("via should have exactly one lower and one upper neighbor, got %+v", via)
	}
	m1 := g.Islands("M1")[0]
	m2 := g.Islands("M2")[0]
	if m1.UpperNeighbors[0] != via.ID {
		t.Errorf("M1 island should back-point to the via as its upper neighbor")
	}
	if m2.LowerNeighbors[0] != via.ID {
		t.Errorf("M2 island should back-point to the via as its lower neighbor")
	}
	if len(g.AdjacencyWarnings) != 0 {
		t.Errorf("unexpected adjacency warnings: %v", g.AdjacencyWarnings)
	}
}
