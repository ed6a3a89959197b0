package route

import (
	"fmt"
	"math"
	"sort"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// MinControlOffset keeps curves between nodes on the same row from
// flattening into a line.
const MinControlOffset = 50.0

// flattenSegments is the polyline resolution used for length and distance.
const flattenSegments = 64

// Path is a single cubic bezier in world space.
type Path struct {
	Start core.Point
	C1    core.Point
	C2    core.Point
	End   core.Point
}

// Route is a routed edge: its curve and the label position.
type Route struct {
	Path     Path
	Midpoint core.Point
}

// Build routes an edge from src to dst. Control points are pushed out of
// the anchors vertically: down for bottom anchors, up for top anchors, by
// max(50, |dy|/2).
func Build(src, dst core.Point, srcSide, dstSide core.AnchorSide) Route {
	offset := math.Max(MinControlOffset, math.Abs(dst.Y-src.Y)*0.5)

	return Route{
		Path: Path{
			Start: src,
			C1:    displace(src, srcSide, offset),
			C2:    displace(dst, dstSide, offset),
			End:   dst,
		},
		// Linear mean of the endpoints, not the curve midpoint.
		Midpoint: core.Point{X: (src.X + dst.X) / 2, Y: (src.Y + dst.Y) / 2},
	}
}

// Pending routes the in-progress edge while a connection is being drawn.
// The cursor end is treated as the anchor opposite the source side.
func Pending(source core.AnchorRef, cursor core.Point) Route {
	return Build(source.Pos, cursor, source.Side, source.Side.Opposite())
}

func displace(p core.Point, side core.AnchorSide, offset float64) core.Point {
	if side == core.Bottom {
		return core.Point{X: p.X, Y: p.Y + offset}
	}
	return core.Point{X: p.X, Y: p.Y - offset}
}

// String returns the SVG path description of the curve.
func (p Path) String() string {
	return fmt.Sprintf("M %g %g C %g %g, %g %g, %g %g",
		p.Start.X, p.Start.Y, p.C1.X, p.C1.Y, p.C2.X, p.C2.Y, p.End.X, p.End.Y)
}

// PointAt evaluates the curve at parameter t in [0,1].
func (p Path) PointAt(t float64) core.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return core.Point{
		X: a*p.Start.X + b*p.C1.X + c*p.C2.X + d*p.End.X,
		Y: a*p.Start.Y + b*p.C1.Y + c*p.C2.Y + d*p.End.Y,
	}
}

// Flatten approximates the curve with n segments (n+1 points).
func (p Path) Flatten(n int) []core.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]core.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = p.PointAt(float64(i) / float64(n))
	}
	return pts
}

// Length approximates the arc length of the curve.
func (p Path) Length() float64 {
	lengths := p.cumulative()
	return lengths[len(lengths)-1]
}

// PointAtFraction returns the point at fraction f of the arc length.
// f is clamped to [0,1].
func (p Path) PointAtFraction(f float64) core.Point {
	if f <= 0 {
		return p.Start
	}
	if f >= 1 {
		return p.End
	}

	pts := p.Flatten(flattenSegments)
	lengths := cumulativeOf(pts)
	total := lengths[len(lengths)-1]
	if total == 0 {
		return p.Start
	}

	target := f * total
	i := sort.SearchFloat64s(lengths, target)
	if i == 0 {
		return pts[0]
	}
	seg := lengths[i] - lengths[i-1]
	if seg == 0 {
		return pts[i]
	}
	alpha := (target - lengths[i-1]) / seg
	return core.Point{
		X: pts[i-1].X + alpha*(pts[i].X-pts[i-1].X),
		Y: pts[i-1].Y + alpha*(pts[i].Y-pts[i-1].Y),
	}
}

// DistanceTo returns the approximate distance from q to the curve.
func (p Path) DistanceTo(q core.Point) float64 {
	pts := p.Flatten(flattenSegments)
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		if d := segmentDistance(q, pts[i], pts[i+1]); d < best {
			best = d
		}
	}
	return best
}

func (p Path) cumulative() []float64 {
	return cumulativeOf(p.Flatten(flattenSegments))
}

func cumulativeOf(pts []core.Point) []float64 {
	out := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		out[i] = out[i-1] + math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return out
}

func segmentDistance(q, a, b core.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(q.X-a.X, q.Y-a.Y)
	}
	t := ((q.X-a.X)*dx + (q.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(q.X-(a.X+t*dx), q.Y-(a.Y+t*dy))
}
