package pdb

// Rect is an axis-aligned rectangle in micrometers, already converted
// from database distance units and already transformed to absolute
// design coordinates. Analysis-engine packages consume Rect values;
// they never see database units or instance transforms.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Width, Height and Area are convenience accessors; the hot path
// (internal/geomx) keeps its own
// equivalent helpers to avoid an import of this package from the
// generic geometry kernel.
func (r Rect) Width() float64  { return r.X2 - r.X1 }
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Segment is a wire shape on one routing (metal) layer.
type Segment struct {
	Layer string
	Rect  Rect
}

// Via is a cut crossing two routing layers. Its three geometric
// parts — the bottom routing-layer landing shape, the cut shape
// itself, and the top routing-layer landing shape — are each unioned
// into their own layer's polygon set (spec.md §4.2).
type Via struct {
	BottomLayer string
	BottomRect  Rect

	CutLayer string
	CutRect  Rect

	TopLayer string
	TopRect  Rect
}

// PinBox is one layer of a pin's master-terminal geometry, already
// transformed into absolute design coordinates.
type PinBox struct {
	Layer string
	Rect  Rect
}

// Pin is one terminal instance on a net, together with the absolute
// footprint boxes used to subtract it from the conductor polygon set
// and to test island adjacency.
type Pin struct {
	Term      Terminal
	Footprint []PinBox
}

// Net is a wire graph plus the pins attached to it. A special net
// (power/ground/etc.) is skipped entirely by the checker.
type Net struct {
	Name     string
	Special  bool
	Segments []Segment
	Vias     []Via
	Pins     []Pin
}
