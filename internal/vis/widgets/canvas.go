// Package widgets provides Gio UI widgets for the editor.
package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/vis/draw"
	"github.com/elektrokombinacija/topograph/internal/vis/interact"
	"github.com/elektrokombinacija/topograph/internal/vis/route"
	"github.com/elektrokombinacija/topograph/internal/vis/state"
)

// CanvasStyle holds the drawing settings that do not change per frame.
type CanvasStyle struct {
	Geometry    core.Geometry
	GridSpacing float64
	FlowMarkers int
}

// Canvas is the editable graph area. It turns Gio input into interaction
// events and draws the current snapshot.
type Canvas struct {
	ctrl   *interact.Controller
	editor *state.Editor
	style  CanvasStyle

	size    image.Point
	pressed interact.Button
}

// NewCanvas creates a canvas widget.
func NewCanvas(ctrl *interact.Controller, editor *state.Editor, style CanvasStyle) *Canvas {
	return &Canvas{ctrl: ctrl, editor: editor, style: style}
}

// Layout handles input and renders the canvas.
func (c *Canvas) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	c.ctrl.SetGraph(c.editor.Snapshot())
	if bounds != c.size {
		c.size = bounds
		c.ctrl.SetViewportSize(core.Pt(float64(bounds.X), float64(bounds.Y)))
	}

	c.handleEvents(gtx)
	event.Op(gtx.Ops, c)
	c.cursor().Add(gtx.Ops)

	st := c.ctrl.State()
	scene := draw.Scene{
		Graph:       c.editor.Snapshot(),
		Geometry:    c.style.Geometry,
		Viewport:    st.Viewport,
		Selection:   c.editor.Edit.Selection(),
		GridSpacing: c.style.GridSpacing,
		FlowMarkers: c.style.FlowMarkers,
		ReadOnly:    c.ctrl.ReadOnly(),
	}
	if c.editor.Flow != nil {
		scene.FlowPhase = c.editor.Flow.Phase()
	}
	if st.Connect.Active {
		r := route.Pending(st.Connect.Source, st.Connect.Cursor)
		scene.Pending = &r
	}
	draw.DrawScene(gtx, th, scene)

	return layout.Dimensions{Size: bounds}
}

func (c *Canvas) cursor() pointer.Cursor {
	switch c.ctrl.State().Mode() {
	case interact.Panning, interact.Dragging:
		return pointer.CursorGrabbing
	case interact.Connecting:
		return pointer.CursorCrosshair
	default:
		return pointer.CursorDefault
	}
}

func (c *Canvas) handleEvents(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			pointer.Filter{
				Target:  c,
				Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll | pointer.Cancel,
				ScrollY: pointer.ScrollRange{Min: -1 << 20, Max: 1 << 20},
			},
			key.Filter{Focus: c, Name: key.NameSpace},
			key.Filter{Focus: c, Name: key.NameEscape},
			key.FocusFilter{Target: c},
		)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case pointer.Event:
			if e.Kind == pointer.Press {
				gtx.Execute(key.FocusCmd{Tag: c})
			}
			var ie interact.Event
			ie, c.pressed, ok = translatePointer(e, c.pressed)
			if ok {
				c.ctrl.Handle(ie)
			}
		case key.Event:
			if ie, ok := translateKey(e); ok {
				c.ctrl.Handle(ie)
			}
		case key.FocusEvent:
			if !e.Focus {
				// Losing focus means a held space or button will never be
				// released to us.
				c.ctrl.Handle(interact.Event{Kind: interact.Cancel})
				c.pressed = interact.ButtonPrimary
			}
		}
	}
}

// translatePointer maps a Gio pointer event to an interaction event. pressed
// is the button of the current press; the updated value is returned.
func translatePointer(e pointer.Event, pressed interact.Button) (interact.Event, interact.Button, bool) {
	pos := core.Pt(float64(e.Position.X), float64(e.Position.Y))
	switch e.Kind {
	case pointer.Press:
		b := buttonOf(e.Buttons)
		return interact.Event{Kind: interact.PointerDown, Pos: pos, Button: b}, b, true
	case pointer.Move, pointer.Drag:
		return interact.Event{Kind: interact.PointerMove, Pos: pos}, pressed, true
	case pointer.Release:
		return interact.Event{Kind: interact.PointerUp, Pos: pos, Button: pressed}, interact.ButtonPrimary, true
	case pointer.Scroll:
		if e.Scroll.Y == 0 {
			return interact.Event{}, pressed, false
		}
		return interact.Event{Kind: interact.Wheel, Pos: pos, WheelY: float64(e.Scroll.Y)}, pressed, true
	case pointer.Cancel:
		return interact.Event{Kind: interact.Cancel}, interact.ButtonPrimary, true
	default:
		return interact.Event{}, pressed, false
	}
}

func buttonOf(b pointer.Buttons) interact.Button {
	switch {
	case b.Contain(pointer.ButtonPrimary):
		return interact.ButtonPrimary
	case b.Contain(pointer.ButtonSecondary):
		return interact.ButtonSecondary
	case b.Contain(pointer.ButtonTertiary):
		return interact.ButtonTertiary
	default:
		return interact.ButtonPrimary
	}
}

func translateKey(e key.Event) (interact.Event, bool) {
	var k interact.Key
	switch e.Name {
	case key.NameSpace:
		k = interact.KeyPan
	case key.NameEscape:
		k = interact.KeyEscape
	default:
		return interact.Event{}, false
	}
	kind := interact.KeyDown
	if e.State == key.Release {
		kind = interact.KeyUp
	}
	return interact.Event{Kind: kind, Key: k}, true
}
