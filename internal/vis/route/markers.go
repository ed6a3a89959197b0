package route

import (
	"math"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// FlowMarkers places count markers evenly along the path by arc length,
// shifted by phase. phase is the animation position in [0,1); markers wrap
// from the end of the edge back to its start.
func FlowMarkers(p Path, count int, phase float64) []core.Point {
	if count <= 0 {
		return nil
	}
	out := make([]core.Point, count)
	for i := range out {
		f := float64(i)/float64(count) + phase
		f -= math.Floor(f)
		out[i] = p.PointAtFraction(f)
	}
	return out
}

// Direction returns the unit tangent of the curve at parameter t, used to
// orient arrow heads and markers.
func (p Path) Direction(t float64) core.Point {
	u := 1 - t
	dx := 3*u*u*(p.C1.X-p.Start.X) + 6*u*t*(p.C2.X-p.C1.X) + 3*t*t*(p.End.X-p.C2.X)
	dy := 3*u*u*(p.C1.Y-p.Start.Y) + 6*u*t*(p.C2.Y-p.C1.Y) + 3*t*t*(p.End.Y-p.C2.Y)
	l := math.Hypot(dx, dy)
	if l == 0 {
		d := p.End.Sub(p.Start)
		l = math.Hypot(d.X, d.Y)
		if l == 0 {
			return core.Point{X: 0, Y: 1}
		}
		return d.Div(l)
	}
	return core.Point{X: dx / l, Y: dy / l}
}
