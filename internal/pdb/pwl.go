package pdb

import "sort"

// PWLPoint is one (index, ratio) sample of a piecewise-linear antenna
// threshold or reduction table, keyed by diffusion area in square
// micrometers.
type PWLPoint struct {
	Index float64
	Ratio float64
}

// PWLTable is a finite sequence of (index, ratio) pairs evaluated by
// linear interpolation between consecutive points and linear
// extrapolation past either end using the last slope. A table is not
// required to arrive pre-sorted by Index; Eval sorts a copy on every
// call and leaves the table itself unchanged.
type PWLTable []PWLPoint

// Empty reports whether the table carries no points at all, in which
// case Eval always returns the caller-supplied default.
func (t PWLTable) Empty() bool {
	return len(t) == 0
}

// Eval interpolates the table at x. An empty table returns def. A
// single-point table is constant. Outside the table's domain, Eval
// extrapolates linearly using the slope of the nearest segment.
func (t PWLTable) Eval(x float64, def float64) float64 {
	if len(t) == 0 {
		return def
	}
	pts := make([]PWLPoint, len(t))
	copy(pts, t)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Index < pts[j].Index })

	if len(pts) == 1 {
		return pts[0].Ratio
	}
	if x <= pts[0].Index {
		return extrapolate(pts[0], pts[1], x)
	}
	last := len(pts) - 1
	if x >= pts[last].Index {
		return extrapolate(pts[last-1], pts[last], x)
	}
	for i := 0; i < last; i++ {
		if x >= pts[i].Index && x <= pts[i+1].Index {
			return lerp(pts[i], pts[i+1], x)
		}
	}
	return pts[last].Ratio
}

func lerp(a, b PWLPoint, x float64) float64 {
	if b.Index == a.Index {
		return a.Ratio
	}
	t := (x - a.Index) / (b.Index - a.Index)
	return a.Ratio + t*(b.Ratio-a.Ratio)
}

func extrapolate(a, b PWLPoint, x float64) float64 {
	if b.Index == a.Index {
		return a.Ratio
	}
	slope := (b.Ratio - a.Ratio) / (b.Index - a.Index)
	return a.Ratio + slope*(x-a.Index)
}
