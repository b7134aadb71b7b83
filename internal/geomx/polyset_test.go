package geomx

import "testing"

func TestRectSetAreaNoOverlap(t *testing.T) {
	s := RectSet{{0, 0, 10, 10}, {20, 0, 30, 10}}
	if got, want := s.Area(), 200.0; got != want {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestRectSetAreaOverlapCountedOnce(t *testing.T) {
	s := RectSet{{0, 0, 10, 10}, {5, 5, 15, 15}}
	// union area = 100 + 100 - overlap(25) = 175
	if got, want := s.Area(), 175.0; got != want {
		t.Errorf("Area() = %v, want %v", got, want)
	}
}

func TestRectSetPerimeterSingleRect(t *testing.T) {
	s := RectSet{{0, 0, 10, 4}}
	if got, want := s.Perimeter(), 28.0; got != want {
		t.Errorf("Perimeter() = %v, want %v", got, want)
	}
}

func TestRectSetPerimeterTouchingRectsMergeEdges(t *testing.T) {
	// Two 10x10 squares sharing a full edge form a 20x10 rectangle;
	// the shared internal edge should not be double counted.
	s := RectSet{{0, 0, 10, 10}, {10, 0, 20, 10}}
	if got, want := s.Perimeter(), 60.0; got != want {
		t.Errorf("Perimeter() = %v, want %v", got, want)
	}
}

func TestRectSetMergeGroupsConnectedComponents(t *testing.T) {
	s := RectSet{
		{0, 0, 10, 10},
		{10, 0, 20, 10}, // touches [0]
		{100, 100, 110, 110}, // isolated
	}
	groups := s.Merge()
	if len(groups) != 2 {
		t.Fatalf("expected 2 connected components, got %d: %+v", len(groups), groups)
	}
	if len(groups[0]) != 2 {
		t.Errorf("first component should have 2 members, got %d", len(groups[0]))
	}
	if len(groups[1]) != 1 {
		t.Errorf("second component should have 1 member, got %d", len(groups[1]))
	}
}

func TestRectSetSubtractAll(t *testing.T) {
	s := RectSet{{0, 0, 10, 10}}
	out := s.SubtractAll([]Rect{{4, 4, 6, 6}})
	if got, want := out.Area(), 96.0; got != want {
		t.Errorf("Area after subtract = %v, want %v", got, want)
	}
}

func TestRectSetAreaEmpty(t *testing.T) {
	var s RectSet
	if got := s.Area(); got != 0 {
		t.Errorf("Area() of empty set = %v, want 0", got)
	}
}
