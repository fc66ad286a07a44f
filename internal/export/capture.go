// Package export computes raster-capture specifications for the frontend
// and serves the resulting PNG back as a download. The core never touches
// pixels: it decides what region to capture, at what density, on what
// background, and the rendering adapter does the drawing.
package export

import (
	"fmt"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// DefaultPixelRatio is used when the caller passes a non-positive
// multiplier.
const DefaultPixelRatio = 1.0

// CaptureSpec tells the rendering adapter exactly what to rasterize: the
// world-space rect, the pixel density and the background to paint first.
// An empty background means transparent; whatever background the canvas
// had before the capture must be restored afterwards.
type CaptureSpec struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixelRatio"`
	Background string  `json:"background,omitempty"`
}

// CaptureRect maps the visible screen viewport back to world space through
// the inverse view transform. A degenerate transform (zero scale) is a
// programming error in the adapter, not a user-input condition, so unlike
// the rest of the core this fails instead of clamping.
func CaptureRect(view geometry.Matrix2D, screenW, screenH float64) (geometry.Rect, error) {
	if view.Determinant() == 0 {
		return geometry.Rect{}, fmt.Errorf("export: view transform is not invertible (zero scale)")
	}
	if screenW <= 0 || screenH <= 0 {
		return geometry.Rect{}, fmt.Errorf("export: viewport size %gx%g is empty", screenW, screenH)
	}
	return view.Invert().TransformRect(geometry.Rect{Width: screenW, Height: screenH}), nil
}

// NewCaptureSpec builds the capture specification for the current view.
// Background "" captures on transparency.
func NewCaptureSpec(view geometry.Matrix2D, screenW, screenH, pixelRatio float64, background string) (CaptureSpec, error) {
	rect, err := CaptureRect(view, screenW, screenH)
	if err != nil {
		return CaptureSpec{}, err
	}
	if pixelRatio <= 0 {
		pixelRatio = DefaultPixelRatio
	}
	return CaptureSpec{
		X:          rect.X,
		Y:          rect.Y,
		Width:      rect.Width,
		Height:     rect.Height,
		PixelRatio: pixelRatio,
		Background: background,
	}, nil
}
