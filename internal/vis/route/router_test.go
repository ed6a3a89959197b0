package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/topograph/internal/core"
)

func TestAnchorPosition(t *testing.T) {
	geom := core.Geometry{Width: 100, Height: 100, AnchorRadius: 6}
	n := core.Node{ID: "a", Pos: core.Pt(100, 100)}

	assert.Equal(t, core.Pt(150, 100), AnchorPosition(n, core.Top, geom))
	assert.Equal(t, core.Pt(150, 200), AnchorPosition(n, core.Bottom, geom))

	ref := AnchorRefFor(n, core.Bottom, geom)
	assert.Equal(t, core.NodeID("a"), ref.NodeID)
	assert.Equal(t, core.Bottom, ref.Side)
}

func TestBuildBottomToTop(t *testing.T) {
	// Bottom anchor of A at (150,200) to top anchor of B at (150,300).
	r := Build(core.Pt(150, 200), core.Pt(150, 300), core.Bottom, core.Top)

	assert.Equal(t, core.Pt(150, 250), r.Path.C1)
	assert.Equal(t, core.Pt(150, 250), r.Path.C2)
	assert.Equal(t, core.Pt(150, 250), r.Midpoint)
	assert.Equal(t, "M 150 200 C 150 250, 150 250, 150 300", r.Path.String())
}

func TestBuildControlOffset(t *testing.T) {
	tests := []struct {
		name             string
		src, dst         core.Point
		srcSide, dstSide core.AnchorSide
		c1, c2           core.Point
	}{
		{"same row keeps minimum bulge", core.Pt(0, 0), core.Pt(300, 0), core.Bottom, core.Top, core.Pt(0, 50), core.Pt(300, -50)},
		{"large dy grows bulge", core.Pt(0, 0), core.Pt(0, 400), core.Bottom, core.Top, core.Pt(0, 200), core.Pt(0, 200)},
		{"top to bottom upward", core.Pt(0, 400), core.Pt(0, 0), core.Top, core.Bottom, core.Pt(0, 200), core.Pt(0, 200)},
		{"top to top", core.Pt(0, 0), core.Pt(50, 20), core.Top, core.Top, core.Pt(0, -50), core.Pt(50, -30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(tt.src, tt.dst, tt.srcSide, tt.dstSide)
			assert.Equal(t, tt.c1, r.Path.C1)
			assert.Equal(t, tt.c2, r.Path.C2)
			assert.Equal(t, tt.src, r.Path.Start)
			assert.Equal(t, tt.dst, r.Path.End)
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := core.Pt(12.345, 67.891)
	b := core.Pt(-98.7, 654.321)

	r1 := Build(a, b, core.Top, core.Bottom)
	r2 := Build(a, b, core.Top, core.Bottom)

	require.Equal(t, r1, r2)
	assert.Equal(t, r1.Path.String(), r2.Path.String())
	assert.Equal(t, FlowMarkers(r1.Path, 3, 0.25), FlowMarkers(r2.Path, 3, 0.25))
}

func TestPendingUsesOppositeSide(t *testing.T) {
	src := core.AnchorRef{NodeID: "a", Side: core.Bottom, Pos: core.Pt(0, 0)}
	r := Pending(src, core.Pt(0, 100))

	assert.Equal(t, core.Pt(0, 50), r.Path.C1)
	assert.Equal(t, core.Pt(0, 50), r.Path.C2, "cursor end should behave as a top anchor")
}

func TestPointAtFraction(t *testing.T) {
	// A straight vertical curve: fraction maps linearly to distance.
	p := Path{Start: core.Pt(0, 0), C1: core.Pt(0, 100), C2: core.Pt(0, 200), End: core.Pt(0, 300)}

	assert.InDelta(t, 300, p.Length(), 1e-6)
	assert.Equal(t, p.Start, p.PointAtFraction(0))
	assert.Equal(t, p.End, p.PointAtFraction(1))
	assert.InDelta(t, 150, p.PointAtFraction(0.5).Y, 1e-6)
	assert.InDelta(t, 100, p.PointAtFraction(1.0/3).Y, 1e-6)
}

func TestFlowMarkers(t *testing.T) {
	p := Path{Start: core.Pt(0, 0), C1: core.Pt(0, 100), C2: core.Pt(0, 200), End: core.Pt(0, 300)}

	m := FlowMarkers(p, 3, 0)
	require.Len(t, m, 3)
	assert.InDelta(t, 0, m[0].Y, 1e-6)
	assert.InDelta(t, 100, m[1].Y, 1e-6)
	assert.InDelta(t, 200, m[2].Y, 1e-6)

	// Markers past the end wrap to the start.
	m = FlowMarkers(p, 3, 0.5)
	assert.InDelta(t, 150, m[0].Y, 1e-6)
	assert.InDelta(t, 250, m[1].Y, 1e-6)
	assert.InDelta(t, 50, m[2].Y, 1e-6)

	assert.Nil(t, FlowMarkers(p, 0, 0))
}

func TestDistanceTo(t *testing.T) {
	r := Build(core.Pt(0, 0), core.Pt(0, 300), core.Bottom, core.Top)

	assert.InDelta(t, 0, r.Path.DistanceTo(core.Pt(0, 150)), 1e-6)
	assert.InDelta(t, 20, r.Path.DistanceTo(core.Pt(20, 150)), 1e-6)
	assert.True(t, r.Path.DistanceTo(core.Pt(500, 500)) > 100)
}

func TestDirection(t *testing.T) {
	p := Path{Start: core.Pt(0, 0), C1: core.Pt(0, 100), C2: core.Pt(0, 200), End: core.Pt(0, 300)}
	d := p.Direction(0.5)
	assert.InDelta(t, 0, d.X, 1e-9)
	assert.InDelta(t, 1, d.Y, 1e-9)
	assert.InDelta(t, 1, math.Hypot(d.X, d.Y), 1e-9)
}
