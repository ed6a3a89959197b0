// Package interact handles user interactions like pan, zoom, drag and
// connect.
package interact

import (
	"math"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// ZoomLimits bounds and scales viewport zoom.
type ZoomLimits struct {
	Min      float64 // Lowest zoom factor
	Max      float64 // Highest zoom factor
	WheelIn  float64 // Multiplier per wheel step towards the user (scroll up)
	WheelOut float64 // Multiplier per wheel step away (scroll down)
	Step     float64 // Additive step used by the +/- buttons
}

// DefaultZoomLimits returns the stock limits: [0.1, 3.0], x1.1 / x0.9, ±0.1.
func DefaultZoomLimits() ZoomLimits {
	return ZoomLimits{Min: 0.1, Max: 3.0, WheelIn: 1.1, WheelOut: 0.9, Step: 0.1}
}

// Viewport is the affine transform between world and screen space:
// screen = world*Zoom + Offset.
type Viewport struct {
	Zoom   float64
	Offset core.Point // Pan offset in screen pixels
	Size   core.Point // Visible area in screen pixels
	Limits ZoomLimits
}

// NewViewport creates an unpanned viewport at 100%.
func NewViewport(limits ZoomLimits) Viewport {
	return Viewport{Zoom: 1, Limits: limits}
}

// Reset returns the viewport to 100% with no pan, keeping size and limits.
func (v Viewport) Reset() Viewport {
	v.Zoom = 1
	v.Offset = core.Point{}
	return v.clamped()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v Viewport) WorldToScreen(p core.Point) core.Point {
	return p.Mul(v.Zoom).Add(v.Offset)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v Viewport) ScreenToWorld(p core.Point) core.Point {
	return p.Sub(v.Offset).Div(v.Zoom)
}

// ApplyZoom zooms one wheel step around pivot. Positive deltaY (scrolling
// down) zooms out, negative zooms in, zero is a no-op. The world point under
// pivot stays under pivot.
func (v Viewport) ApplyZoom(deltaY float64, pivot core.Point) Viewport {
	if deltaY == 0 {
		return v
	}
	factor := v.Limits.WheelIn
	if deltaY > 0 {
		factor = v.Limits.WheelOut
	}
	return v.zoomTo(v.Zoom*factor, pivot)
}

// StepZoom adds delta to the zoom, pivoting at the viewport centre.
func (v Viewport) StepZoom(delta float64) Viewport {
	return v.zoomTo(v.Zoom+delta, v.Size.Mul(0.5))
}

// ZoomIn is the "+" button.
func (v Viewport) ZoomIn() Viewport {
	return v.StepZoom(v.Limits.Step)
}

// ZoomOut is the "-" button.
func (v Viewport) ZoomOut() Viewport {
	return v.StepZoom(-v.Limits.Step)
}

func (v Viewport) zoomTo(zoom float64, pivot core.Point) Viewport {
	newZoom := v.clampZoom(zoom)
	if v.Zoom == 0 {
		v.Zoom = newZoom
		return v
	}
	// Keep the world point under pivot fixed on screen.
	v.Offset = pivot.Sub(pivot.Sub(v.Offset).Mul(newZoom / v.Zoom))
	v.Zoom = newZoom
	return v
}

// ApplyPan moves the viewport by a screen-space delta. Panning is unbounded.
func (v Viewport) ApplyPan(delta core.Point) Viewport {
	v.Offset = v.Offset.Add(delta)
	return v
}

// Percent returns the zoom level rounded to a whole percentage for display.
func (v Viewport) Percent() int {
	return int(math.Round(v.Zoom * 100))
}

// CenterOn pans so the world point sits in the middle of the viewport.
func (v Viewport) CenterOn(world core.Point) Viewport {
	v.Offset = v.Size.Mul(0.5).Sub(world.Mul(v.Zoom))
	return v
}

// FitBounds zooms and pans so the world box fits inside the viewport with a
// screen-space margin on every side.
func (v Viewport) FitBounds(lo, hi core.Point, margin float64) Viewport {
	worldW := hi.X - lo.X
	worldH := hi.Y - lo.Y
	if worldW <= 0 || worldH <= 0 {
		return v
	}

	availW := v.Size.X - 2*margin
	availH := v.Size.Y - 2*margin
	if availW <= 0 || availH <= 0 {
		return v
	}

	v.Zoom = v.clampZoom(math.Min(availW/worldW, availH/worldH))
	return v.CenterOn(core.Point{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2})
}

func (v Viewport) clamped() Viewport {
	v.Zoom = v.clampZoom(v.Zoom)
	return v
}

func (v Viewport) clampZoom(z float64) float64 {
	if z < v.Limits.Min {
		return v.Limits.Min
	}
	if z > v.Limits.Max {
		return v.Limits.Max
	}
	return z
}
