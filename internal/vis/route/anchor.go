// Package route computes anchor positions and edge curves in world space.
// Everything here is a pure function of its inputs.
package route

import "github.com/elektrokombinacija/topograph/internal/core"

// AnchorPosition returns the world position of a node's anchor.
// Top anchors sit at the top edge centre, bottom anchors at the bottom edge
// centre.
func AnchorPosition(n core.Node, side core.AnchorSide, geom core.Geometry) core.Point {
	p := core.Point{X: n.Pos.X + geom.Width/2, Y: n.Pos.Y}
	if side == core.Bottom {
		p.Y += geom.Height
	}
	return p
}

// AnchorRefFor resolves a node anchor into an AnchorRef.
func AnchorRefFor(n core.Node, side core.AnchorSide, geom core.Geometry) core.AnchorRef {
	return core.AnchorRef{
		NodeID: n.ID,
		Side:   side,
		Pos:    AnchorPosition(n, side, geom),
	}
}

// EdgeRoute routes a resolved edge between its two anchors.
func EdgeRoute(e core.ResolvedEdge, geom core.Geometry) Route {
	src := AnchorPosition(e.Source, e.Edge.SourceAnchor, geom)
	dst := AnchorPosition(e.Target, e.Edge.TargetAnchor, geom)
	return Build(src, dst, e.Edge.SourceAnchor, e.Edge.TargetAnchor)
}
