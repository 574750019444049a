package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestViewport_RoundTrip(t *testing.T) {
	points := []struct{ x, y float64 }{
		{0, 0},
		{100, 200},
		{-350.5, 721.25},
		{0.001, -0.001},
	}

	for z := ZoomMin; z <= ZoomMax+tolerance; z += ZoomStep {
		v := Viewport{OffsetX: 42.5, OffsetY: -17, Zoom: z}
		for _, p := range points {
			sx, sy := v.CanvasToScreen(p.x, p.y)
			cx, cy := v.ScreenToCanvas(sx, sy)
			assert.InDelta(t, p.x, cx, tolerance)
			assert.InDelta(t, p.y, cy, tolerance)
		}
	}
}

func TestViewport_ZoomInClampsAtMax(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 20; i++ {
		v = v.ZoomIn()
	}
	assert.Equal(t, ZoomMax, v.Zoom)
}

func TestViewport_ZoomOutClampsAtMin(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 20; i++ {
		v = v.ZoomOut()
	}
	assert.Equal(t, ZoomMin, v.Zoom)
}

func TestViewport_ZoomSteps(t *testing.T) {
	v := NewViewport()
	v = v.ZoomIn()
	assert.InDelta(t, 1.25, v.Zoom, tolerance)
	v = v.ZoomOut()
	v = v.ZoomOut()
	assert.InDelta(t, 0.75, v.Zoom, tolerance)
}

func TestViewport_ResetZoom(t *testing.T) {
	v := Viewport{OffsetX: 5, OffsetY: 9, Zoom: 2.5}
	v = v.ResetZoom()
	assert.Equal(t, ZoomDefault, v.Zoom)
	// Pan offset is untouched by a zoom reset.
	assert.Equal(t, 5.0, v.OffsetX)
	assert.Equal(t, 9.0, v.OffsetY)
}

func TestViewport_PanToKeepsPointUnderCursor(t *testing.T) {
	v := Viewport{OffsetX: 10, OffsetY: 10, Zoom: 2.0}

	// Grab the canvas point under screen (40, 60).
	cx, cy := v.ScreenToCanvas(40, 60)

	// Drag the cursor to (55, 30); the grabbed point must follow.
	v = v.PanTo(55, 30, cx, cy)
	gx, gy := v.ScreenToCanvas(55, 30)
	assert.InDelta(t, cx, gx, tolerance)
	assert.InDelta(t, cy, gy, tolerance)
}
