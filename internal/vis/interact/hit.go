package interact

import (
	"math"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/vis/route"
)

// HitKind is what a screen point lands on.
type HitKind int

const (
	HitEmpty HitKind = iota
	HitNode
	HitAnchor
	HitEdge
)

func (k HitKind) String() string {
	return [...]string{"Empty", "Node", "Anchor", "Edge"}[k]
}

// Hit is the result of ClassifyHit.
type Hit struct {
	Kind   HitKind
	Node   core.Node      // HitNode, HitAnchor
	Anchor core.AnchorRef // HitAnchor
	Edge   core.EdgeID    // HitEdge
}

// Same reports whether two hits land on the same target. An anchor counts
// as part of its node.
func (h Hit) Same(o Hit) bool {
	switch h.Kind {
	case HitEmpty:
		return o.Kind == HitEmpty
	case HitEdge:
		return o.Kind == HitEdge && h.Edge == o.Edge
	default:
		return (o.Kind == HitNode || o.Kind == HitAnchor) && h.Node.ID == o.Node.ID
	}
}

// Hit slop in screen pixels.
const (
	AnchorSlop = 4.0
	EdgeSlop   = 6.0
)

// ClassifyHit decides what lies under a screen point. Nodes are tested
// topmost first; for each node its anchors win over its body. Edges are
// only considered when no node is hit.
func ClassifyHit(screen core.Point, vp Viewport, g *core.Graph, geom core.Geometry) Hit {
	if g == nil {
		return Hit{Kind: HitEmpty}
	}
	world := vp.ScreenToWorld(screen)
	zoom := vp.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	anchorR := geom.AnchorRadius + AnchorSlop/zoom
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		n := g.Nodes[i]
		for _, side := range [...]core.AnchorSide{core.Top, core.Bottom} {
			ref := route.AnchorRefFor(n, side, geom)
			if math.Hypot(world.X-ref.Pos.X, world.Y-ref.Pos.Y) <= anchorR {
				return Hit{Kind: HitAnchor, Node: n, Anchor: ref}
			}
		}
		if world.X >= n.Pos.X && world.X <= n.Pos.X+geom.Width &&
			world.Y >= n.Pos.Y && world.Y <= n.Pos.Y+geom.Height {
			return Hit{Kind: HitNode, Node: n}
		}
	}

	edges := g.Resolve()
	tol := EdgeSlop / zoom
	for i := len(edges) - 1; i >= 0; i-- {
		r := route.EdgeRoute(edges[i], geom)
		if r.Path.DistanceTo(world) <= tol {
			return Hit{Kind: HitEdge, Edge: edges[i].Edge.ID}
		}
	}

	return Hit{Kind: HitEmpty}
}
