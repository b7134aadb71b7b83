package geometry

import (
	"fmt"
	"sort"

	"github.com/exa-laboratories/OpenROAD/internal/geomx"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// Build converts one net's wire segments, via landing pads and cuts,
// and pin footprints into a LayeredGraph: per-layer merged islands
// with pin footprints subtracted and via-to-metal adjacency resolved.
//
// db supplies the technology stack so layer names on the net's
// segments/vias can be resolved to stack position and neighbor
// layers; it is never mutated.
func Build(net *pdb.Net, db pdb.Database) (*LayeredGraph, error) {
	raw := make(map[string][]geomx.Rect)
	addRaw := func(layer string, r pdb.Rect) {
		raw[layer] = append(raw[layer], geomx.Rect{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2})
	}

	for _, seg := range net.Segments {
		addRaw(seg.Layer, seg.Rect)
	}
	for _, v := range net.Vias {
		addRaw(v.BottomLayer, v.BottomRect)
		addRaw(v.CutLayer, v.CutRect)
		addRaw(v.TopLayer, v.TopRect)
	}

	holes := make(map[string][]geomx.Rect)
	for _, pin := range net.Pins {
		for _, box := range pin.Footprint {
			holes[box.Layer] = append(holes[box.Layer], geomx.Rect{
				X1: box.Rect.X1, Y1: box.Rect.Y1, X2: box.Rect.X2, Y2: box.Rect.Y2,
			})
		}
	}

	g := &LayeredGraph{ByLayer: make(map[string][]*Island)}

	for _, layer := range db.Layers() {
		rects, ok := raw[layer.Name]
		if !ok {
			continue
		}
		components := geomx.RectSet(rects).Merge()
		g.Order = append(g.Order, layer)
		for _, comp := range components {
			final := comp
			if hs := holes[layer.Name]; len(hs) > 0 {
				final = comp.SubtractAll(hs)
			}
			if len(final) == 0 {
				continue
			}
			isl := &Island{ID: IslandID(len(g.All)), Layer: layer, Rects: final}
			g.All = append(g.All, isl)
			g.ByLayer[layer.Name] = append(g.ByLayer[layer.Name], isl)
		}
	}

	g.resolveViaAdjacency()
	return g, nil
}

// resolveViaAdjacency fills LowerNeighbors/UpperNeighbors for every
// via-layer island and the back-pointers on the metal islands they
// touch (spec.md §4.2 step 3).
func (g *LayeredGraph) resolveViaAdjacency() {
	for _, layer := range g.Order {
		if !layer.IsCut() {
			continue
		}
		vias := g.ByLayer[layer.Name]
		if lower := layer.Lower(); lower != nil {
			for _, via := range vias {
				matches := touchingIslands(via, g.ByLayer[lower.Name])
				if len(matches) > 1 {
					g.AdjacencyWarnings = append(g.AdjacencyWarnings, fmt.Sprintf(
						"via island on %s touches %d islands on %s (expected at most 1)",
						layer.Name, len(matches), lower.Name))
				}
				for _, m := range matches {
					via.LowerNeighbors = append(via.LowerNeighbors, m.ID)
					m.UpperNeighbors = append(m.UpperNeighbors, via.ID)
				}
			}
		}
		if upper := layer.Upper(); upper != nil {
			for _, via := range vias {
				matches := touchingIslands(via, g.ByLayer[upper.Name])
				if len(matches) > 1 {
					g.AdjacencyWarnings = append(g.AdjacencyWarnings, fmt.Sprintf(
						"via island on %s touches %d islands on %s (expected at most 1)",
						layer.Name, len(matches), upper.Name))
				}
				for _, m := range matches {
					via.UpperNeighbors = append(via.UpperNeighbors, m.ID)
					m.LowerNeighbors = append(m.LowerNeighbors, via.ID)
				}
			}
		}
	}
	// Deterministic order for tests and reports.
	for _, isl := range g.All {
		sort.Slice(isl.LowerNeighbors, func(i, j int) bool { return isl.LowerNeighbors[i] < isl.LowerNeighbors[j] })
		sort.Slice(isl.UpperNeighbors, func(i, j int) bool { return isl.UpperNeighbors[i] < isl.UpperNeighbors[j] })
	}
}

func touchingIslands(via *Island, candidates []*Island) []*Island {
	var out []*Island
	for _, c := range candidates {
		if rectSetsTouch(via.Rects, c.Rects) {
			out = append(out, c)
		}
	}
	return out
}

func rectSetsTouch(a, b geomx.RectSet) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.Touches(rb) {
				return true
			}
		}
	}
	return false
}
