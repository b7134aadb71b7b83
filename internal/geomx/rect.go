// Package geomx implements the rectilinear polygon-set primitives the
// antenna checker's LayerGeometry stage needs: merging touching wire
// shapes into islands, computing the area and perimeter of a union of
// rectangles, and carving pin footprints out of a conductor shape.
// Every polygon in this domain is axis-aligned (Manhattan geometry),
// so a set of rectangles — not a general polygon winding — is always
// a sufficient representation.
package geomx

import "math"

// Rect is an axis-aligned rectangle with X1<=X2 and Y1<=Y2.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Width, Height, and Area are the rectangle's own dimensions.
func (r Rect) Width() float64  { return r.X2 - r.X1 }
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Perimeter is the rectangle's own boundary length.
func (r Rect) Perimeter() float64 { return 2 * (r.Width() + r.Height()) }

// Empty reports whether the rectangle has zero or negative area.
func (r Rect) Empty() bool { return r.X2 <= r.X1 || r.Y2 <= r.Y1 }

// Intersects reports whether r and o overlap with nonzero area.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 < o.X2 && o.X1 < r.X2 && r.Y1 < o.Y2 && o.Y1 < r.Y2
}

// Intersection returns the overlapping rectangle of r and o. Callers
// should check Intersects (or Empty on the result) first.
func (r Rect) Intersection(o Rect) Rect {
	return Rect{
		X1: math.Max(r.X1, o.X1),
		Y1: math.Max(r.Y1, o.Y1),
		X2: math.Min(r.X2, o.X2),
		Y2: math.Min(r.Y2, o.Y2),
	}
}

// Touches reports whether r and o are connected for polygon-merge
// purposes: they overlap with nonzero area, or they share a boundary
// segment of nonzero length (edge-adjacent). Rectangles that meet at
// a single corner point only are NOT considered touching — a point
// contact carries no conductive width in Manhattan layout geometry.
func (r Rect) Touches(o Rect) bool {
	if r.Intersects(o) {
		return true
	}
	xOverlap := math.Min(r.X2, o.X2) - math.Max(r.X1, o.X1)
	yOverlap := math.Min(r.Y2, o.Y2) - math.Max(r.Y1, o.Y1)
	xAdjacent := r.X2 == o.X1 || o.X2 == r.X1
	yAdjacent := r.Y2 == o.Y1 || o.Y2 == r.Y1
	if xAdjacent && yOverlap > 0 {
		return true
	}
	if yAdjacent && xOverlap > 0 {
		return true
	}
	return false
}

// Subtract removes hole from r, returning the (up to four) remaining
// fragments. If hole does not intersect r, Subtract returns []Rect{r}
// unchanged. If hole fully covers r, Subtract returns nil.
func (r Rect) Subtract(hole Rect) []Rect {
	if !r.Intersects(hole) {
		return []Rect{r}
	}
	ix := r.Intersection(hole)

	var out []Rect
	if ix.Y1 > r.Y1 {
		out = append(out, Rect{r.X1, r.Y1, r.X2, ix.Y1})
	}
	if ix.Y2 < r.Y2 {
		out = append(out, Rect{r.X1, ix.Y2, r.X2, r.Y2})
	}
	if ix.X1 > r.X1 {
		out = append(out, Rect{r.X1, ix.Y1, ix.X1, ix.Y2})
	}
	if ix.X2 < r.X2 {
		out = append(out, Rect{ix.X2, ix.Y1, r.X2, ix.Y2})
	}
	return out
}
