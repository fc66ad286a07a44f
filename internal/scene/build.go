package scene

import (
	"github.com/Nimsalcade/FigmaClone/internal/document"
	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// buildNode resolves a document object into a render-ready node: local
// path, world transform and world-space bounds. One exhaustive switch over
// the shape kind produces the path.
func buildNode(o *document.ShapeObject) *Node {
	n := &Node{
		ID:          o.ID,
		Kind:        o.Type,
		X:           o.X,
		Y:           o.Y,
		Width:       o.Width,
		Height:      o.Height,
		Rotation:    o.Rotation,
		Fill:        o.Fill,
		Stroke:      o.Stroke,
		StrokeWidth: o.StrokeWidth,
		Opacity:     o.Opacity,
		Visible:     true,
		Text:        o.Text,
	}

	// Mirror parameter blocks so the node converts back to a document
	// object without reaching into the store.
	if o.Triangle != nil {
		t := *o.Triangle
		n.Triangle = &t
	}
	if o.Star != nil {
		s := *o.Star
		n.Star = &s
	}
	if o.Polygon != nil {
		p := *o.Polygon
		n.Polygon = &p
	}
	if o.RoundedRect != nil {
		r := *o.RoundedRect
		n.RoundedRect = &r
	}
	if o.Arrow != nil {
		a := *o.Arrow
		n.Arrow = &a
	}

	n.World = geometry.FromEnvelope(o.X, o.Y, o.Width, o.Height, o.Rotation)
	n.Path = resolvePath(o)

	if len(n.Path) > 0 {
		n.Bounds = geometry.PathBounds(n.Path, n.World)
	} else {
		n.Bounds = n.World.TransformRect(geometry.Rect{Width: o.Width, Height: o.Height})
	}

	// Segments collapse to a zero-area box; pad by half the stroke so hit
	// testing still finds them.
	if n.Bounds.IsEmpty() && len(n.Path) > 0 {
		pad := max(o.StrokeWidth, 1) / 2
		n.Bounds.X -= pad
		n.Bounds.Y -= pad
		n.Bounds.Width += pad * 2
		n.Bounds.Height += pad * 2
	}
	return n
}

// resolvePath produces the local-space path for a shape. Local space is the
// envelope box with the origin at its top-left corner; rotation lives in
// the world transform, not the path.
func resolvePath(o *document.ShapeObject) []geometry.PathCommand {
	w, h := o.Width, o.Height

	switch o.Type {
	case document.ShapeRectangle:
		return geometry.RectPath(w, h)

	case document.ShapeEllipse:
		return geometry.EllipsePath(w/2, h/2)

	case document.ShapeRoundedRectangle:
		var radii *geometry.CornerRadii
		radius := float64(document.DefaultRoundedRectRadius)
		if o.RoundedRect != nil {
			radius = o.RoundedRect.Radius
			r := o.RoundedRect.Radii
			radii = &r
		}
		return geometry.RoundedRectPath(w, h, geometry.NormalizeRadii(w, h, radius, radii))

	case document.ShapeLine:
		// The shaft runs along local +X; the envelope rotation carries the
		// direction.
		return []geometry.PathCommand{geometry.M(0, 0), geometry.L(w, 0)}

	case document.ShapeArrow:
		var opts geometry.ArrowOptions
		if o.Arrow != nil {
			opts = *o.Arrow
		}
		return geometry.ArrowPath(geometry.ComposeArrow(w, o.StrokeWidth, opts))

	case document.ShapeTriangle:
		spec := geometry.TriangleSpec{Width: w, Height: h, Mode: geometry.TriangleIsosceles, Orientation: geometry.TriangleDown}
		if o.Triangle != nil {
			spec.Mode = o.Triangle.Mode
			spec.Orientation = o.Triangle.Orientation
		}
		return geometry.PolygonPath(geometry.TrianglePoints(spec))

	case document.ShapeStar:
		spec := geometry.StarSpec{
			Points:      geometry.MinStarPoints,
			OuterRadius: min(w, h) / 2,
			RotationDeg: geometry.DefaultStarRotation,
		}
		spec.InnerRadius = spec.OuterRadius * document.DefaultStarInnerRatio
		if o.Star != nil {
			spec.Points = o.Star.Points
			spec.InnerRadius = o.Star.InnerRadius
			spec.OuterRadius = o.Star.OuterRadius
		}
		return geometry.PolygonPath(geometry.StarPoints(spec))

	case document.ShapePolygon:
		sides := document.DefaultPolygonSides
		radius := min(w, h) / 2
		if o.Polygon != nil {
			sides = o.Polygon.Sides
			radius = o.Polygon.Radius
		}
		return geometry.PolygonPath(geometry.PolygonVertices(sides, radius, geometry.DefaultPolygonRotation))

	case document.ShapeText:
		// Text is rasterized by the frontend; the node carries only the
		// envelope and the content.
		return nil
	}
	return nil
}
