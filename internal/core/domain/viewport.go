package domain

// Zoom bounds and step for the view controls.
const (
	ZoomMin     = 0.25
	ZoomMax     = 3.0
	ZoomStep    = 0.25
	ZoomDefault = 1.0
)

// Viewport maps between screen coordinates and canvas-space coordinates
// given a pan offset and a zoom scalar. The two transforms are exact
// inverses for any zoom in [ZoomMin, ZoomMax].
type Viewport struct {
	// OffsetX and OffsetY are the pan offset in canvas units.
	OffsetX float64
	OffsetY float64

	// Zoom is the scale factor, clamped to [ZoomMin, ZoomMax].
	Zoom float64
}

// NewViewport returns a viewport at the origin with the default zoom.
func NewViewport() Viewport {
	return Viewport{Zoom: ZoomDefault}
}

// ScreenToCanvas converts a screen point to canvas-space.
func (v Viewport) ScreenToCanvas(sx, sy float64) (float64, float64) {
	return sx/v.Zoom - v.OffsetX, sy/v.Zoom - v.OffsetY
}

// CanvasToScreen converts a canvas-space point to screen coordinates.
func (v Viewport) CanvasToScreen(cx, cy float64) (float64, float64) {
	return (cx + v.OffsetX) * v.Zoom, (cy + v.OffsetY) * v.Zoom
}

// PanTo recomputes the offset so that the canvas point (cx, cy) lies
// under the screen point (sx, sy). Used while panning to keep the point
// grabbed at pointer-down fixed under the cursor.
func (v Viewport) PanTo(sx, sy, cx, cy float64) Viewport {
	v.OffsetX = sx/v.Zoom - cx
	v.OffsetY = sy/v.Zoom - cy
	return v
}

// ZoomIn increases zoom by one step, clamping at ZoomMax.
func (v Viewport) ZoomIn() Viewport {
	v.Zoom = clampZoom(v.Zoom + ZoomStep)
	return v
}

// ZoomOut decreases zoom by one step, clamping at ZoomMin.
func (v Viewport) ZoomOut() Viewport {
	v.Zoom = clampZoom(v.Zoom - ZoomStep)
	return v
}

// ResetZoom restores the default zoom without touching the pan offset.
func (v Viewport) ResetZoom() Viewport {
	v.Zoom = ZoomDefault
	return v
}

func clampZoom(z float64) float64 {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}
