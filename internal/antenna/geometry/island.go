// Package geometry implements LayerGeometry: it turns one net's wire
// and via shapes into a per-layer polygon-set graph with vertical
// (via) adjacency, ready for Connectivity to union into gate islands
// (spec.md §4.2).
package geometry

import (
	"github.com/exa-laboratories/OpenROAD/internal/geomx"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// IslandID is a dense integer id assigned across all layers of one
// net's LayeredGraph, in bottom-to-top, insertion order. Keeping this
// a plain index instead of a pointer into shared memory is what lets
// Connectivity walk the graph with typed indices rather than raw
// pointers into externally owned state (spec.md §9 REDESIGN FLAG).
type IslandID int

// Island is one maximal polygon on one layer, after merging touching
// wire/via shapes and subtracting pin footprints.
type Island struct {
	ID    IslandID
	Layer *pdb.Layer
	Rects geomx.RectSet

	// LowerNeighbors/UpperNeighbors hold the ids of islands on the
	// immediately adjacent layer (lower/upper in the stack) that this
	// island's shape touches. Populated symmetrically for both via
	// and metal islands: a via's neighbors are explicit (it was built
	// from intersecting the via shape against its neighbor layers); a
	// metal island's neighbors are the back-pointers from the via
	// islands that listed it.
	LowerNeighbors []IslandID
	UpperNeighbors []IslandID

	// Gates is filled in by the connectivity package, not by
	// LayerGeometry — it is the set of gate terminals electrically
	// connected to this island once the net is fabricated up to and
	// including this layer.
	Gates map[pdb.Terminal]struct{}
}

// Area is the island polygon's area in square micrometers.
func (isl *Island) Area() float64 { return isl.Rects.Area() }

// Perimeter is the island polygon's boundary length in micrometers.
// Side area only applies to metal layers; callers on via layers
// should not use this value (RatioEngine ignores it for cut layers).
func (isl *Island) Perimeter() float64 { return isl.Rects.Perimeter() }

// HasGate reports whether t is recorded as reachable from this
// island.
func (isl *Island) HasGate(t pdb.Terminal) bool {
	_, ok := isl.Gates[t]
	return ok
}

// AddGate records t as reachable from this island.
func (isl *Island) AddGate(t pdb.Terminal) {
	if isl.Gates == nil {
		isl.Gates = make(map[pdb.Terminal]struct{})
	}
	isl.Gates[t] = struct{}{}
}

// LayeredGraph is the complete per-net polygon graph: every layer's
// islands, in the order LayerGeometry discovered them.
type LayeredGraph struct {
	// Order is the stack order of layers on which this net has at
	// least one wire or via shape. A layer whose shapes are all
	// covered by pin footprints stays in Order with no islands.
	Order []*pdb.Layer

	// ByLayer maps a layer name to its islands, in dense-id order.
	ByLayer map[string][]*Island

	// All is every island across every layer, indexed by IslandID.
	All []*Island

	// AdjacencyWarnings records data-model errors: one entry for each
	// via island that touches more than one island on the layer below
	// or on the layer above. They are reported, not fatal.
	AdjacencyWarnings []string
}

// Islands returns the islands on a layer, or nil if the net has none
// there.
func (g *LayeredGraph) Islands(layerName string) []*Island {
	return g.ByLayer[layerName]
}

// Island returns the island with the given id.
func (g *LayeredGraph) Island(id IslandID) *Island {
	return g.All[id]
}
