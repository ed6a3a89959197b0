package draw

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/topograph/internal/core"
)

func pt(p core.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func drawFilledCircle(gtx layout.Context, c core.Point, radius float64, col color.NRGBA) {
	r := image.Rect(
		int(c.X-radius), int(c.Y-radius),
		int(c.X+radius+0.5), int(c.Y+radius+0.5),
	)
	paint.FillShape(gtx.Ops, col, clip.Ellipse(r).Op(gtx.Ops))
}

func drawCircleOutline(gtx layout.Context, c core.Point, radius float64, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	r := float32(radius)
	center := pt(c)
	// Four cubic quarter arcs.
	const k = 0.5523
	path.MoveTo(f32.Pt(center.X+r, center.Y))
	path.CubeTo(f32.Pt(center.X+r, center.Y+k*r), f32.Pt(center.X+k*r, center.Y+r), f32.Pt(center.X, center.Y+r))
	path.CubeTo(f32.Pt(center.X-k*r, center.Y+r), f32.Pt(center.X-r, center.Y+k*r), f32.Pt(center.X-r, center.Y))
	path.CubeTo(f32.Pt(center.X-r, center.Y-k*r), f32.Pt(center.X-k*r, center.Y-r), f32.Pt(center.X, center.Y-r))
	path.CubeTo(f32.Pt(center.X+k*r, center.Y-r), f32.Pt(center.X+r, center.Y-k*r), f32.Pt(center.X+r, center.Y))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}

func drawRoundedRect(gtx layout.Context, lo, hi core.Point, radius float64, col color.NRGBA) {
	r := image.Rect(int(lo.X), int(lo.Y), int(hi.X+0.5), int(hi.Y+0.5))
	paint.FillShape(gtx.Ops, col, clip.UniformRRect(r, int(radius)).Op(gtx.Ops))
}

func drawRectOutline(gtx layout.Context, lo, hi core.Point, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(lo))
	path.LineTo(f32.Pt(float32(hi.X), float32(lo.Y)))
	path.LineTo(pt(hi))
	path.LineTo(f32.Pt(float32(lo.X), float32(hi.Y)))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}

func drawLine(gtx layout.Context, a, b core.Point, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(a))
	path.LineTo(pt(b))
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())
}
