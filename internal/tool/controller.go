// Package tool implements the per-tool pointer-interaction state machine
// that turns a drag gesture into a document object. During the drag the
// controller feeds a transient preview shape to the scene; the document
// store is only touched on release.
package tool

import (
	"math"

	"github.com/Nimsalcade/FigmaClone/internal/document"
	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// commitThreshold is the minimum envelope dimension (px) a released drag
// must reach on either axis to create an object. Anything smaller is an
// accidental click-drag.
const commitThreshold = 5.0

// previewOpacity scales down the committed style while drawing.
const previewOpacity = 0.5

// shift-key snap increments.
const (
	segmentSnap = math.Pi / 4  // lines and arrows snap to 45°
	radialSnap  = math.Pi / 12 // star and polygon rotation snaps to 15°
)

// PreviewSink receives the in-progress preview shape. Implemented by the
// scene graph; previews are transient and never reconciled back into the
// document.
type PreviewSink interface {
	ShowPreview(o *document.ShapeObject)
	ClearPreview()
}

// Controller is the draw-gesture state machine: Idle until a pointer-down
// with a drawing tool active, Drawing until the matching pointer-up. Events
// arriving out of order are ignored.
type Controller struct {
	store *document.Store
	sink  PreviewSink

	drawing bool
	tool    document.Tool
	start   geometry.Point
}

// NewController returns an idle controller bound to a store and a preview
// sink.
func NewController(store *document.Store, sink PreviewSink) *Controller {
	return &Controller{store: store, sink: sink}
}

// IsDrawing reports whether a gesture is in progress.
func (c *Controller) IsDrawing() bool { return c.drawing }

// PointerDown starts a gesture when the active tool draws shapes. A down
// event during an active gesture is ignored.
func (c *Controller) PointerDown(p geometry.Point, shift bool) {
	if c.drawing {
		return
	}
	tool := c.store.ActiveTool()
	if !document.IsDrawingTool(tool) {
		return
	}
	c.drawing = true
	c.tool = tool
	c.start = p
	c.sink.ShowPreview(c.preview(p, shift))
}

// PointerMove recomputes the preview from the gesture start, the current
// pointer and the shift key. No-op outside a gesture.
func (c *Controller) PointerMove(p geometry.Point, shift bool) {
	if !c.drawing {
		return
	}
	c.sink.ShowPreview(c.preview(p, shift))
}

// PointerUp ends the gesture: the preview is removed and, if the final
// envelope clears the size threshold on either axis, the matching store
// factory creates the permanent object. Returns the new object id, or ""
// when nothing was created.
func (c *Controller) PointerUp(p geometry.Point, shift bool) string {
	if !c.drawing {
		return ""
	}
	c.drawing = false
	c.sink.ClearPreview()

	g := c.resolve(p, shift)
	if !g.commit {
		return ""
	}

	switch c.tool {
	case document.ToolFor(document.ShapeRectangle):
		return c.store.CreateRectangle(g.box.X, g.box.Y, g.box.Width, g.box.Height)
	case document.ToolFor(document.ShapeEllipse):
		return c.store.CreateEllipse(g.box.X, g.box.Y, g.box.Width, g.box.Height)
	case document.ToolFor(document.ShapeRoundedRectangle):
		return c.store.CreateRoundedRectangle(g.box.X, g.box.Y, g.box.Width, g.box.Height, document.DefaultRoundedRectRadius)
	case document.ToolFor(document.ShapeLine):
		return c.store.CreateLine(c.start, g.end)
	case document.ToolFor(document.ShapeArrow):
		return c.store.CreateArrow(c.start, g.end, geometry.ArrowOptions{})
	case document.ToolFor(document.ShapeTriangle):
		return c.store.CreateTriangle(g.box.X, g.box.Y, g.box.Width, g.box.Height, g.triangleMode, g.triangleOrientation)
	case document.ToolFor(document.ShapeStar):
		return c.store.CreateStar(c.start, g.radius, g.rotationDeg, geometry.MinStarPoints)
	case document.ToolFor(document.ShapePolygon):
		return c.store.CreatePolygon(c.start, g.radius, g.rotationDeg, document.DefaultPolygonSides)
	case document.ToolFor(document.ShapeText):
		return c.store.CreateText(c.start.X, c.start.Y, "Text")
	}
	return ""
}

// Cancel aborts an in-progress gesture without creating anything.
func (c *Controller) Cancel() {
	if !c.drawing {
		return
	}
	c.drawing = false
	c.sink.ClearPreview()
}

// gesture is the resolved geometry of one pointer frame.
type gesture struct {
	commit bool

	box                 geometry.Rect // rectangle, ellipse, rounded rect, triangle
	end                 geometry.Point
	radius, rotationDeg float64

	triangleMode        geometry.TriangleMode
	triangleOrientation geometry.TriangleOrientation
}

// resolve applies the per-tool rule to (start, pointer, shift). dx/dy are
// relative to the gesture start; sign determines which direction the box
// grows.
func (c *Controller) resolve(p geometry.Point, shift bool) gesture {
	dx := p.X - c.start.X
	dy := p.Y - c.start.Y

	var g gesture
	switch c.tool {
	case document.ToolFor(document.ShapeRectangle),
		document.ToolFor(document.ShapeEllipse),
		document.ToolFor(document.ShapeRoundedRectangle):
		g.box = dragBox(c.start, dx, dy, shift)
		g.commit = g.box.Width > commitThreshold || g.box.Height > commitThreshold

	case document.ToolFor(document.ShapeLine), document.ToolFor(document.ShapeArrow):
		g.end = p
		if shift {
			dist := c.start.Distance(p)
			angle := geometry.SnapAngle(c.start.Angle(p), segmentSnap)
			g.end = geometry.Point{
				X: c.start.X + math.Cos(angle)*dist,
				Y: c.start.Y + math.Sin(angle)*dist,
			}
		}
		g.commit = c.start.Distance(g.end) > commitThreshold

	case document.ToolFor(document.ShapeTriangle):
		g.box = dragBox(c.start, dx, dy, false)
		g.triangleMode = geometry.TriangleIsosceles
		if shift {
			g.triangleMode = geometry.TriangleEquilateral
		}
		g.triangleOrientation = geometry.TriangleDown
		if dy < 0 {
			g.triangleOrientation = geometry.TriangleUp
		}
		g.commit = g.box.Width > commitThreshold || g.box.Height > commitThreshold

	case document.ToolFor(document.ShapeStar), document.ToolFor(document.ShapePolygon):
		g.radius = c.start.Distance(p)
		angle := c.start.Angle(p)
		if shift {
			angle = geometry.SnapAngle(angle, radialSnap)
		}
		g.rotationDeg = angle * 180 / math.Pi
		g.commit = g.radius*2 > commitThreshold

	case document.ToolFor(document.ShapeText):
		// Text is placed on click, not sized by the drag.
		g.commit = true
	}
	return g
}

// dragBox turns a signed drag into an axis-aligned box anchored at the
// gesture start. With shift the dominant axis wins and the box is square,
// still growing in the dragged direction on each axis.
func dragBox(start geometry.Point, dx, dy float64, shift bool) geometry.Rect {
	w, h := math.Abs(dx), math.Abs(dy)
	if shift {
		side := max(w, h)
		w, h = side, side
	}
	x, y := start.X, start.Y
	if dx < 0 {
		x -= w
	}
	if dy < 0 {
		y -= h
	}
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

// preview builds the transient shape for the current pointer frame. It
// mirrors the commit geometry exactly so the release cannot jump.
func (c *Controller) preview(p geometry.Point, shift bool) *document.ShapeObject {
	g := c.resolve(p, shift)
	kind := document.ShapeType(c.tool)

	o := document.Prototype(kind)
	o.ID = "preview"
	o.Opacity *= previewOpacity

	switch kind {
	case document.ShapeRectangle, document.ShapeEllipse:
		o.X, o.Y, o.Width, o.Height = g.box.X, g.box.Y, g.box.Width, g.box.Height
	case document.ShapeRoundedRectangle:
		o.X, o.Y, o.Width, o.Height = g.box.X, g.box.Y, g.box.Width, g.box.Height
		r := geometry.Clamp(document.DefaultRoundedRectRadius, 0, min(g.box.Width, g.box.Height)/2)
		o.RoundedRect = &document.RoundedRectParams{
			Radius: r,
			Radii:  geometry.CornerRadii{TL: r, TR: r, BR: r, BL: r},
		}
	case document.ShapeLine, document.ShapeArrow:
		document.SegmentEnvelope(o, c.start, g.end)
		if kind == document.ShapeArrow {
			o.Arrow = &geometry.ArrowOptions{
				HeadType: geometry.ArrowHeadTriangle,
				TailType: geometry.ArrowTailNone,
				HeadSize: 1,
			}
		}
	case document.ShapeTriangle:
		o.X, o.Y, o.Width, o.Height = g.box.X, g.box.Y, g.box.Width, g.box.Height
		base, height := geometry.TriangleDimensions(g.triangleMode, g.box.Width, g.box.Height)
		o.Triangle = &document.TriangleParams{
			Mode:        g.triangleMode,
			Base:        base,
			Height:      height,
			Orientation: g.triangleOrientation,
		}
	case document.ShapeStar:
		o.X = c.start.X - g.radius
		o.Y = c.start.Y - g.radius
		o.Width, o.Height = g.radius*2, g.radius*2
		o.Rotation = g.rotationDeg
		o.Star = &document.StarParams{
			Points:      geometry.MinStarPoints,
			InnerRadius: g.radius * document.DefaultStarInnerRatio,
			OuterRadius: g.radius,
		}
	case document.ShapePolygon:
		o.X = c.start.X - g.radius
		o.Y = c.start.Y - g.radius
		o.Width, o.Height = g.radius*2, g.radius*2
		o.Rotation = g.rotationDeg
		o.Polygon = &document.PolygonParams{
			Sides:  document.DefaultPolygonSides,
			Radius: g.radius,
		}
	case document.ShapeText:
		o.X, o.Y = c.start.X, c.start.Y
		o.Width, o.Height = 32, 16
		o.Text = "Text"
	}
	return o
}
