package pdb

// MTerm is a master-cell terminal: the antenna-relevant properties of
// a pin that are shared by every instance of the cell. GateArea and
// DiffArea tables are keyed by routing layer name, since a pin's
// oxide/diffusion exposure can differ per layer of its LEF geometry.
type MTerm struct {
	Name    string
	IsInput bool

	GateAreaByLayer map[string]float64
	DiffAreaByLayer map[string]float64
}

// GateArea is the max over this terminal's per-layer gate-area
// entries, per the data model's Gate definition.
func (m *MTerm) GateArea() float64 {
	return maxOf(m.GateAreaByLayer)
}

// DiffArea is the max over this terminal's per-layer diff-area
// entries.
func (m *MTerm) DiffArea() float64 {
	return maxOf(m.DiffAreaByLayer)
}

func maxOf(m map[string]float64) float64 {
	var best float64
	for _, v := range m {
		if v > best {
			best = v
		}
	}
	return best
}

// Terminal is the sum type over the two kinds of pin terminal that
// can appear on a net: an instance terminal (ITerm, a pin of a placed
// instance) or a block terminal (BTerm, a top-level IO pin). Equality
// between two Terminals is always identity equality on the concrete
// pointer, never on name — two distinct instances of the same master
// cell must never compare equal just because their MTerm names match.
type Terminal interface {
	Master() *MTerm
	terminalMarker()
}

// ITerm is a terminal on an instance pin.
type ITerm struct {
	InstanceName string
	PinName      string
	MasterTerm   *MTerm
}

func (t *ITerm) Master() *MTerm   { return t.MasterTerm }
func (t *ITerm) terminalMarker()  {}

// BTerm is a terminal on a top-level block (design IO) pin.
type BTerm struct {
	PinName    string
	MasterTerm *MTerm
}

func (t *BTerm) Master() *MTerm  { return t.MasterTerm }
func (t *BTerm) terminalMarker() {}

// SameTerminal reports whether a and b are the same terminal
// instance, by pointer identity of the concrete ITerm/BTerm, not by
// name.
func SameTerminal(a, b Terminal) bool {
	switch av := a.(type) {
	case *ITerm:
		bv, ok := b.(*ITerm)
		return ok && av == bv
	case *BTerm:
		bv, ok := b.(*BTerm)
		return ok && av == bv
	default:
		return false
	}
}

// IsGate reports whether t is a gate per the data model: an input
// terminal with nonzero gate area.
func IsGate(t Terminal) bool {
	m := t.Master()
	return m != nil && m.IsInput && m.GateArea() != 0
}
