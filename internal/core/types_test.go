package core

import "testing"

func TestAnchorSide(t *testing.T) {
	tests := []struct {
		in   string
		want AnchorSide
		err  bool
	}{
		{"top", Top, false},
		{"Bottom", Bottom, false},
		{" top ", Top, false},
		{"left", Top, true},
	}

	for _, tt := range tests {
		got, err := ParseAnchorSide(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseAnchorSide(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseAnchorSide(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if Top.Opposite() != Bottom || Bottom.Opposite() != Top {
		t.Error("Opposite should swap top and bottom")
	}
}

func TestGraphResolveSkipsDangling(t *testing.T) {
	g := NewGraph(
		[]Node{{ID: "a"}, {ID: "b", Pos: Pt(0, 200)}},
		[]Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "ax", Source: "a", Target: "x"},
			{ID: "yb", Source: "y", Target: "b"},
		},
	)

	resolved := g.Resolve()
	if len(resolved) != 1 || resolved[0].Edge.ID != "ab" {
		t.Fatalf("expected only edge ab, got %+v", resolved)
	}
	if resolved[0].Target.Pos != Pt(0, 200) {
		t.Errorf("target position not resolved: %v", resolved[0].Target.Pos)
	}

	if d := g.Dangling(); len(d) != 2 {
		t.Errorf("expected 2 dangling edges, got %d", len(d))
	}
}

func TestGraphBounds(t *testing.T) {
	geom := Geometry{Width: 100, Height: 50}
	g := NewGraph([]Node{{ID: "a", Pos: Pt(10, 20)}, {ID: "b", Pos: Pt(-30, 200)}}, nil)

	lo, hi, ok := g.Bounds(geom)
	if !ok {
		t.Fatal("expected bounds")
	}
	if lo != Pt(-30, 20) || hi != Pt(110, 250) {
		t.Errorf("Bounds = %v..%v", lo, hi)
	}

	if _, _, ok := NewGraph(nil, nil).Bounds(geom); ok {
		t.Error("empty graph should have no bounds")
	}
}
