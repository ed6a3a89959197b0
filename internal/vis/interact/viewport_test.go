package interact

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/topograph/internal/core"
)

const eps = 1e-9

func TestScreenWorldRoundTrip(t *testing.T) {
	vp := Viewport{Zoom: 2, Offset: core.Pt(30, -40), Limits: DefaultZoomLimits()}

	w := vp.ScreenToWorld(core.Pt(130, 60))
	assert.Equal(t, core.Pt(50, 50), w)
	assert.Equal(t, core.Pt(130, 60), vp.WorldToScreen(w))
}

func TestApplyZoomWheelUpAtCursor(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())

	got := vp.ApplyZoom(-1, core.Pt(50, 50))

	assert.InDelta(t, 1.1, got.Zoom, eps)
	assert.InDelta(t, -5, got.Offset.X, eps)
	assert.InDelta(t, -5, got.Offset.Y, eps)
}

func TestApplyZoomWheelDown(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())

	got := vp.ApplyZoom(3, core.Pt(0, 0))
	assert.InDelta(t, 0.9, got.Zoom, eps)

	assert.Equal(t, vp, vp.ApplyZoom(0, core.Pt(10, 10)), "zero delta is a no-op")
}

func TestZoomPivotInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		vp := Viewport{
			Zoom:   0.1 + rng.Float64()*2.9,
			Offset: core.Pt(rng.Float64()*2000-1000, rng.Float64()*2000-1000),
			Limits: DefaultZoomLimits(),
		}
		pivot := core.Pt(rng.Float64()*1600, rng.Float64()*900)
		delta := 1.0
		if rng.Intn(2) == 0 {
			delta = -1
		}

		before := vp.ScreenToWorld(pivot)
		after := vp.ApplyZoom(delta, pivot).ScreenToWorld(pivot)

		assert.InDelta(t, before.X, after.X, 1e-6)
		assert.InDelta(t, before.Y, after.Y, 1e-6)
	}
}

func TestZoomClamping(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vp := NewViewport(DefaultZoomLimits())
	vp.Size = core.Pt(800, 600)

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			vp = vp.ApplyZoom(rng.Float64()*2-1, core.Pt(rng.Float64()*800, rng.Float64()*600))
		case 1:
			vp = vp.ZoomIn()
		case 2:
			vp = vp.ZoomOut()
		}
		if vp.Zoom < 0.1 || vp.Zoom > 3.0 {
			t.Fatalf("zoom %v escaped [0.1, 3.0] after %d operations", vp.Zoom, i)
		}
	}

	for i := 0; i < 100; i++ {
		vp = vp.ApplyZoom(-1, core.Pt(0, 0))
	}
	assert.Equal(t, 3.0, vp.Zoom)
	for i := 0; i < 100; i++ {
		vp = vp.ApplyZoom(1, core.Pt(0, 0))
	}
	assert.Equal(t, 0.1, vp.Zoom)
}

func TestStepZoomPivotsAtCenter(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())
	vp.Size = core.Pt(800, 600)
	center := core.Pt(400, 300)

	before := vp.ScreenToWorld(center)
	vp = vp.ZoomIn()
	after := vp.ScreenToWorld(center)

	assert.InDelta(t, 1.1, vp.Zoom, eps)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.Equal(t, 110, vp.Percent())
}

func TestApplyPanUnbounded(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())
	vp = vp.ApplyPan(core.Pt(1e7, -1e7))
	vp = vp.ApplyPan(core.Pt(5, 5))
	assert.Equal(t, core.Pt(1e7+5, -1e7+5), vp.Offset)
}

func TestFitBounds(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())
	vp.Size = core.Pt(1000, 500)

	vp = vp.FitBounds(core.Pt(0, 0), core.Pt(400, 400), 50)

	assert.InDelta(t, 1.0, vp.Zoom, eps) // min(900/400, 400/400)
	center := vp.WorldToScreen(core.Pt(200, 200))
	assert.InDelta(t, 500, center.X, eps)
	assert.InDelta(t, 250, center.Y, eps)

	vp = vp.FitBounds(core.Pt(0, 0), core.Pt(1e6, 1e6), 0)
	assert.Equal(t, 0.1, vp.Zoom)
}

func TestReset(t *testing.T) {
	vp := NewViewport(DefaultZoomLimits())
	vp.Size = core.Pt(10, 10)
	vp = vp.ApplyPan(core.Pt(3, 4)).ZoomIn().Reset()

	assert.Equal(t, 1.0, vp.Zoom)
	assert.Equal(t, core.Point{}, vp.Offset)
	assert.Equal(t, core.Pt(10, 10), vp.Size)
}
