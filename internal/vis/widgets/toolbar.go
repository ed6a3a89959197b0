package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/topograph/internal/vis/interact"
	"github.com/elektrokombinacija/topograph/internal/vis/state"
)

// Toolbar provides zoom, history and mode controls.
type Toolbar struct {
	ctrl      *interact.Controller
	editor    *state.Editor
	fitMargin float64
	title     string

	// Viewport
	zoomOutBtn widget.Clickable
	zoomInBtn  widget.Clickable
	fitBtn     widget.Clickable
	resetBtn   widget.Clickable

	// Undo/redo
	undoBtn widget.Clickable
	redoBtn widget.Clickable

	flowBtn     widget.Clickable
	readOnlyBtn widget.Clickable
}

// NewToolbar creates a new toolbar. title is shown on the right, usually the
// document path.
func NewToolbar(ctrl *interact.Controller, editor *state.Editor, fitMargin float64, title string) *Toolbar {
	return &Toolbar{
		ctrl:      ctrl,
		editor:    editor,
		fitMargin: fitMargin,
		title:     title,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(44))

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutZoomControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutEditControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := "Flow"
				active := t.editor.Flow != nil && t.editor.Flow.Playing
				return t.modeButton(gtx, th, &t.flowBtn, label, active)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.modeButton(gtx, th, &t.readOnlyBtn, "Read-only", t.ctrl.ReadOnly())
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Min.X}}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, t.status())
				label.Color = color.NRGBA{R: 160, G: 165, B: 170, A: 255}
				return label.Layout(gtx)
			}),
		)
	})
}

func (t *Toolbar) status() string {
	sel := t.editor.Edit.Selection()
	switch sel.Kind {
	case state.SelectNode:
		return fmt.Sprintf("%s  node %s", t.title, sel.Node)
	case state.SelectEdge:
		return fmt.Sprintf("%s  edge %s", t.title, sel.Edge)
	default:
		return t.title
	}
}

func (t *Toolbar) layoutZoomControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.zoomOutBtn, "-")
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(40))
				label := material.Label(th, 12, fmt.Sprintf("%d%%", t.ctrl.Viewport().Percent()))
				label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
				return layout.Center.Layout(gtx, label.Layout)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.iconButton(gtx, th, &t.zoomInBtn, "+")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.fitBtn, "Fit")
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.textButton(gtx, th, &t.resetBtn, "1:1")
		}),
	)
}

func (t *Toolbar) layoutEditControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.undoBtn, "<-", false, t.editor.Edit.CanUndo())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.buttonBase(gtx, th, &t.redoBtn, "->", false, t.editor.Edit.CanRedo())
		}),
	)
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) iconButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, icon string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, icon, false, true)
}

func (t *Toolbar) textButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, text, false, true)
}

func (t *Toolbar) modeButton(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	return t.buttonBase(gtx, th, btn, text, active, true)
}

func (t *Toolbar) buttonBase(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active, enabled bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() && enabled {
		bg = lighten(bg, 15)
	}
	fg := color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	if !enabled {
		fg.A = 90
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: gtx.Dp(unit.Dp(32)), Y: gtx.Dp(unit.Dp(28))}
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, text)
						label.Color = fg
						return label.Layout(gtx)
					})
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	for t.zoomOutBtn.Clicked(gtx) {
		t.ctrl.ZoomOut()
	}
	for t.zoomInBtn.Clicked(gtx) {
		t.ctrl.ZoomIn()
	}
	for t.fitBtn.Clicked(gtx) {
		t.ctrl.FitView(t.fitMargin)
	}
	for t.resetBtn.Clicked(gtx) {
		t.ctrl.ResetView()
	}

	for t.undoBtn.Clicked(gtx) {
		t.editor.Undo()
	}
	for t.redoBtn.Clicked(gtx) {
		t.editor.Redo()
	}

	for t.flowBtn.Clicked(gtx) {
		if t.editor.Flow != nil {
			t.editor.Flow.TogglePlay()
		}
	}
	for t.readOnlyBtn.Clicked(gtx) {
		t.ctrl.SetReadOnly(!t.ctrl.ReadOnly())
	}
}

func lighten(c color.NRGBA, d uint8) color.NRGBA {
	add := func(v uint8) uint8 {
		if v > 255-d {
			return 255
		}
		return v + d
	}
	return color.NRGBA{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}
