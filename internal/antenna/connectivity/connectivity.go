// Package connectivity implements the antenna checker's Connectivity
// stage: it unions a net's per-layer islands bottom-to-top through
// via adjacency, then attaches each resulting electrical set to the
// gate terminals whose pin footprint lands on one of its islands
// (spec.md §4.3).
package connectivity

import (
	"github.com/exa-laboratories/OpenROAD/internal/antenna/geometry"
	"github.com/exa-laboratories/OpenROAD/internal/geomx"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// Set is one maximal electrically-connected group of islands, plus
// the gate terminals whose pins attach to it.
type Set struct {
	ID       int
	Islands  []*geometry.Island
	Gates    map[pdb.Terminal]struct{}
}

// GateArea is the diffusion/gate-oxide area the data model attributes
// to this set's attached gates: the sum of each distinct gate
// terminal's GateArea.
func (s *Set) GateArea() float64 {
	var total float64
	for t := range s.Gates {
		total += t.Master().GateArea()
	}
	return total
}

// DiffArea is the sum of each attached gate's DiffArea. A nonzero
// DiffArea is what makes a set diffusion-connected, switching
// RatioEngine from the plain PAR/PSR formulas to the diff_PAR/
// diff_PSR ones (spec.md §4.4).
func (s *Set) DiffArea() float64 {
	var total float64
	for t := range s.Gates {
		total += t.Master().DiffArea()
	}
	return total
}

// Compute unions net's LayeredGraph bottom-to-top through via
// adjacency and attaches gate terminals, returning one Set per
// resulting connected component, ordered by the lowest island id each
// contains.
//
// Islands and gates are joined one layer at a time, lowest to
// highest: this layer's islands are first unioned with their
// LowerNeighbors, and only then are this layer's gate pin footprints
// attached, using the DSU state as it stands after that union. A gate
// whose pin footprint sits on an upper layer is therefore invisible
// to islands below it until fabricated wiring actually reaches it —
// matching AntennaChecker::saveGates, which walks the same layer
// stack bottom-to-top rather than pre-unioning the whole net.
func Compute(net *pdb.Net, g *geometry.LayeredGraph) []*Set {
	d := newDSU(len(g.All))
	rootGates := make(map[int]map[pdb.Terminal]struct{})

	gatePinsByLayer := make(map[string][]gatePin)
	for _, pin := range net.Pins {
		if !pdb.IsGate(pin.Term) {
			continue
		}
		for _, box := range pin.Footprint {
			gatePinsByLayer[box.Layer] = append(gatePinsByLayer[box.Layer], gatePin{term: pin.Term, box: box})
		}
	}

	for _, layer := range g.Order {
		islands := g.ByLayer[layer.Name]

		for _, isl := range islands {
			for _, lowerID := range isl.LowerNeighbors {
				unionGates(d, rootGates, int(isl.ID), int(lowerID))
			}
		}

		for _, gp := range gatePinsByLayer[layer.Name] {
			for _, isl := range islands {
				if !footprintTouches(gp.box, isl.Rects) {
					continue
				}
				root := d.find(int(isl.ID))
				if rootGates[root] == nil {
					rootGates[root] = make(map[pdb.Terminal]struct{})
				}
				rootGates[root][gp.term] = struct{}{}
			}
		}

		for _, isl := range islands {
			root := d.find(int(isl.ID))
			for t := range rootGates[root] {
				isl.AddGate(t)
			}
		}
	}

	membersByRoot := make(map[int][]*geometry.Island)
	var order []int
	for _, isl := range g.All {
		root := d.find(int(isl.ID))
		if _, ok := membersByRoot[root]; !ok {
			order = append(order, root)
		}
		membersByRoot[root] = append(membersByRoot[root], isl)
	}

	sets := make([]*Set, 0, len(order))
	for i, root := range order {
		s := &Set{ID: i, Islands: membersByRoot[root]}
		if gates := rootGates[root]; gates != nil {
			s.Gates = gates
		}
		sets = append(sets, s)
	}
	return sets
}

type gatePin struct {
	term pdb.Terminal
	box  pdb.PinBox
}

// unionGates merges a and b's DSU components and folds whichever
// root's accumulated gate set doesn't survive the union into the one
// that does, so gate visibility built up before a merge carries
// forward after it.
func unionGates(d *dsu, rootGates map[int]map[pdb.Terminal]struct{}, a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	d.union(a, b)
	root := d.find(a)
	stale := ra
	if root == ra {
		stale = rb
	}
	if gates, ok := rootGates[stale]; ok {
		if rootGates[root] == nil {
			rootGates[root] = gates
		} else {
			for t := range gates {
				rootGates[root][t] = struct{}{}
			}
		}
		delete(rootGates, stale)
	}
}

func footprintTouches(box pdb.PinBox, rects geomx.RectSet) bool {
	r := geomx.Rect{X1: box.Rect.X1, Y1: box.Rect.Y1, X2: box.Rect.X2, Y2: box.Rect.Y2}
	for _, cand := range rects {
		if r.Touches(cand) {
			return true
		}
	}
	return false
}
