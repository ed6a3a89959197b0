package core

// Graph is a read-only snapshot of the nodes and edges on the canvas.
// Node order is draw order: later nodes are on top.
type Graph struct {
	Nodes []Node
	Edges []Edge
	index map[NodeID]int
}

// NewGraph builds a snapshot. The slices are copied.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		Nodes: append([]Node(nil), nodes...),
		Edges: append([]Edge(nil), edges...),
		index: make(map[NodeID]int, len(nodes)),
	}
	for i, n := range g.Nodes {
		g.index[n.ID] = i
	}
	return g
}

// Node looks up a node by ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Has reports whether a node exists.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.Node(id)
	return ok
}

// ResolvedEdge is an edge whose endpoints both exist in the snapshot.
type ResolvedEdge struct {
	Edge   Edge
	Source Node
	Target Node
}

// Resolve returns edges with both endpoints present. Dangling edges are
// skipped.
func (g *Graph) Resolve() []ResolvedEdge {
	if g == nil {
		return nil
	}
	out := make([]ResolvedEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		src, ok := g.Node(e.Source)
		if !ok {
			continue
		}
		dst, ok := g.Node(e.Target)
		if !ok {
			continue
		}
		out = append(out, ResolvedEdge{Edge: e, Source: src, Target: dst})
	}
	return out
}

// Dangling returns edges that reference a missing node.
func (g *Graph) Dangling() []Edge {
	if g == nil {
		return nil
	}
	var out []Edge
	for _, e := range g.Edges {
		if !g.Has(e.Source) || !g.Has(e.Target) {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the world-space box covering every node.
func (g *Graph) Bounds(geom Geometry) (lo, hi Point, ok bool) {
	if g == nil || len(g.Nodes) == 0 {
		return Point{}, Point{}, false
	}
	lo = g.Nodes[0].Pos
	hi = g.Nodes[0].Pos.Add(Pt(geom.Width, geom.Height))
	for _, n := range g.Nodes[1:] {
		if n.Pos.X < lo.X {
			lo.X = n.Pos.X
		}
		if n.Pos.Y < lo.Y {
			lo.Y = n.Pos.Y
		}
		if x := n.Pos.X + geom.Width; x > hi.X {
			hi.X = x
		}
		if y := n.Pos.Y + geom.Height; y > hi.Y {
			hi.Y = y
		}
	}
	return lo, hi, true
}
