// Package draw renders the topology canvas with Gio.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/vis/interact"
	"github.com/elektrokombinacija/topograph/internal/vis/route"
	"github.com/elektrokombinacija/topograph/internal/vis/state"
)

var (
	ColorBackground   = color.NRGBA{R: 24, G: 26, B: 30, A: 255}
	ColorGrid         = color.NRGBA{R: 40, G: 44, B: 50, A: 255}
	ColorNodeDefault  = color.NRGBA{R: 60, G: 70, B: 84, A: 255}
	ColorNodeHealthy  = color.NRGBA{R: 48, G: 110, B: 72, A: 255}
	ColorNodeDegraded = color.NRGBA{R: 150, G: 110, B: 40, A: 255}
	ColorNodeDown     = color.NRGBA{R: 150, G: 56, B: 56, A: 255}
	ColorSelected     = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorAnchor       = color.NRGBA{R: 150, G: 170, B: 190, A: 255}
	ColorEdgeDefault  = color.NRGBA{R: 110, G: 125, B: 140, A: 220}
	ColorEdgePending  = color.NRGBA{R: 100, G: 180, B: 255, A: 200}
	ColorFlowMarker   = color.NRGBA{R: 120, G: 220, B: 255, A: 255}
	ColorLabel        = color.NRGBA{R: 225, G: 228, B: 232, A: 255}
	ColorEdgeLabel    = color.NRGBA{R: 170, G: 180, B: 190, A: 255}
)

// Scene is everything needed to draw one frame of the canvas.
type Scene struct {
	Graph       *core.Graph
	Geometry    core.Geometry
	Viewport    interact.Viewport
	Selection   state.Selection
	Pending     *route.Route // Connection being dragged, world space
	FlowPhase   float64
	FlowMarkers int
	GridSpacing float64
	ReadOnly    bool
}

// DrawScene renders the grid, edges, nodes and any pending connection.
func DrawScene(gtx layout.Context, th *material.Theme, s Scene) {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, ColorBackground, clip.Rect(image.Rectangle{Max: size}).Op())

	if s.GridSpacing > 0 {
		DrawGrid(gtx, s.Viewport, s.GridSpacing, ColorGrid)
	}

	resolved := s.Graph.Resolve()
	for _, e := range resolved {
		r := route.EdgeRoute(e, s.Geometry)
		col := ColorEdgeDefault
		width := float32(2)
		if s.Selection.Kind == state.SelectEdge && s.Selection.Edge == e.Edge.ID {
			col = ColorSelected
			width = 3
		}
		DrawEdge(gtx, r.Path, s.Viewport, col, width)
		if s.FlowMarkers > 0 {
			DrawFlowMarkers(gtx, r.Path, s.Viewport, s.FlowMarkers, s.FlowPhase)
		}
	}
	for _, e := range resolved {
		if e.Edge.Label == "" {
			continue
		}
		r := route.EdgeRoute(e, s.Geometry)
		DrawLabel(gtx, th, s.Viewport.WorldToScreen(r.Midpoint), e.Edge.Label, 11, ColorEdgeLabel)
	}

	if s.Graph != nil {
		for _, n := range s.Graph.Nodes {
			selected := s.Selection.Kind == state.SelectNode && s.Selection.Node == n.ID
			DrawNode(gtx, th, n, s.Geometry, s.Viewport, selected, !s.ReadOnly)
		}
	}

	if s.Pending != nil {
		DrawEdge(gtx, s.Pending.Path, s.Viewport, ColorEdgePending, 2)
	}
}

// NodeColor returns the fill colour for a node's kind tag.
func NodeColor(kind string) color.NRGBA {
	switch kind {
	case "healthy", "ok", "up":
		return ColorNodeHealthy
	case "degraded", "warning":
		return ColorNodeDegraded
	case "down", "error", "critical":
		return ColorNodeDown
	default:
		return ColorNodeDefault
	}
}

// DrawNode draws a node box with its name and, when editable, its anchors.
func DrawNode(gtx layout.Context, th *material.Theme, n core.Node, geom core.Geometry, vp interact.Viewport, selected, anchors bool) {
	lo := vp.WorldToScreen(n.Pos)
	hi := vp.WorldToScreen(n.Pos.Add(core.Pt(geom.Width, geom.Height)))
	drawRoundedRect(gtx, lo, hi, 6*vp.Zoom, NodeColor(n.Kind))
	if selected {
		drawRectOutline(gtx, lo, hi, ColorSelected, 2)
	}

	name := n.Name
	if name == "" {
		name = string(n.ID)
	}
	if vp.Zoom >= 0.3 {
		DrawLabel(gtx, th, lo.Add(hi).Div(2), name, float32(14*vp.Zoom), ColorLabel)
	}

	if !anchors {
		return
	}
	r := geom.AnchorRadius * vp.Zoom
	for _, side := range []core.AnchorSide{core.Top, core.Bottom} {
		c := vp.WorldToScreen(route.AnchorPosition(n, side, geom))
		drawFilledCircle(gtx, c, r, ColorBackground)
		drawCircleOutline(gtx, c, r, ColorAnchor, 1.5)
	}
}

// DrawEdge strokes a routed bezier edge.
func DrawEdge(gtx layout.Context, p route.Path, vp interact.Viewport, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(vp.WorldToScreen(p.Start)))
	path.CubeTo(
		pt(vp.WorldToScreen(p.C1)),
		pt(vp.WorldToScreen(p.C2)),
		pt(vp.WorldToScreen(p.End)),
	)
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width * float32(vp.Zoom)}.Op())

	// Arrowhead at the target, pointing along the final tangent.
	tip := vp.WorldToScreen(p.End)
	dir := p.Direction(1)
	if dir == (core.Point{}) {
		return
	}
	size := 8 * vp.Zoom
	back := tip.Sub(dir.Mul(size))
	side := core.Pt(-dir.Y, dir.X).Mul(size / 2)
	drawTriangle(gtx, tip, back.Add(side), back.Sub(side), col)
}

func drawTriangle(gtx layout.Context, a, b, c core.Point, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(a))
	path.LineTo(pt(b))
	path.LineTo(pt(c))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawFlowMarkers draws dots travelling along an edge at the given phase.
func DrawFlowMarkers(gtx layout.Context, p route.Path, vp interact.Viewport, count int, phase float64) {
	r := math.Max(2, 3*vp.Zoom)
	for _, m := range route.FlowMarkers(p, count, phase) {
		drawFilledCircle(gtx, vp.WorldToScreen(m), r, ColorFlowMarker)
	}
}

// DrawLabel draws text centred on a screen point.
func DrawLabel(gtx layout.Context, th *material.Theme, center core.Point, txt string, size float32, col color.NRGBA) {
	if size < 6 {
		return
	}
	const box = 400
	defer op.Offset(image.Pt(int(center.X)-box/2, int(center.Y)-box/2)).Push(gtx.Ops).Pop()

	gtx.Constraints = layout.Exact(image.Pt(box, box))
	label := material.Label(th, unit.Sp(size), txt)
	label.Color = col
	label.Alignment = text.Middle
	label.MaxLines = 1
	layout.Center.Layout(gtx, label.Layout)
}

// DrawGrid draws a background grid that pans and zooms with the viewport.
func DrawGrid(gtx layout.Context, vp interact.Viewport, spacing float64, col color.NRGBA) {
	bounds := gtx.Constraints.Max
	step := spacing * vp.Zoom
	if step < 8 {
		return
	}

	minWorld := vp.ScreenToWorld(core.Pt(0, 0))
	startX := math.Floor(minWorld.X/spacing) * spacing
	startY := math.Floor(minWorld.Y/spacing) * spacing
	start := vp.WorldToScreen(core.Pt(startX, startY))

	for x := start.X; x <= float64(bounds.X); x += step {
		rect := image.Rect(int(x), 0, int(x)+1, bounds.Y)
		paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
	}
	for y := start.Y; y <= float64(bounds.Y); y += step {
		rect := image.Rect(0, int(y), bounds.X, int(y)+1)
		paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
	}
}
