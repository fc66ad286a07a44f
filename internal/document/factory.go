package document

import (
	"math"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// Per-kind default styles. Filled shapes get a distinct fill and no stroke;
// stroke-only kinds (line, arrow) get a stroke and no fill.
var defaultStyles = map[ShapeType]struct {
	fill        string
	stroke      string
	strokeWidth float64
}{
	ShapeRectangle:        {fill: "#e94560"},
	ShapeEllipse:          {fill: "#0f9b8e"},
	ShapeLine:             {stroke: "#f5f5f5", strokeWidth: 2},
	ShapeArrow:            {stroke: "#f0a500", strokeWidth: 2},
	ShapeText:             {fill: "#f5f5f5"},
	ShapeTriangle:         {fill: "#7f5af0"},
	ShapeStar:             {fill: "#ffd803"},
	ShapePolygon:          {fill: "#2cb67d"},
	ShapeRoundedRectangle: {fill: "#ff8906"},
}

// DefaultStarInnerRatio is the inner/outer ratio stars are created with.
const DefaultStarInnerRatio = 0.5

// DefaultPolygonSides is the side count polygons are created with.
const DefaultPolygonSides = 6

// DefaultRoundedRectRadius is the uniform corner radius rounded rectangles
// are created with.
const DefaultRoundedRectRadius = 8

// Prototype returns a zero-sized shape of the given kind carrying the
// default style. Used for new objects and draw previews.
func Prototype(t ShapeType) *ShapeObject {
	st := defaultStyles[t]
	return &ShapeObject{
		Type:        t,
		Fill:        st.fill,
		Stroke:      st.stroke,
		StrokeWidth: st.strokeWidth,
		Opacity:     1,
	}
}

func (s *Store) newShape(t ShapeType) *ShapeObject { return Prototype(t) }

// CreateRectangle inserts a rectangle and returns its id.
func (s *Store) CreateRectangle(x, y, w, h float64) string {
	o := s.newShape(ShapeRectangle)
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	return s.AddObject(o)
}

// CreateEllipse inserts an ellipse and returns its id.
func (s *Store) CreateEllipse(x, y, w, h float64) string {
	o := s.newShape(ShapeEllipse)
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	return s.AddObject(o)
}

// CreateRoundedRectangle inserts a rounded rectangle with a uniform corner
// radius and returns its id.
func (s *Store) CreateRoundedRectangle(x, y, w, h, radius float64) string {
	o := s.newShape(ShapeRoundedRectangle)
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	r := geometry.Clamp(radius, 0, min(w, h)/2)
	o.RoundedRect = &RoundedRectParams{
		Radius: r,
		Radii:  geometry.CornerRadii{TL: r, TR: r, BR: r, BL: r},
	}
	return s.AddObject(o)
}

// SegmentEnvelope stores a segment as an envelope of zero height centered on
// the segment midpoint, with rotation carrying the direction. Rotating the
// local +X shaft about the envelope center reproduces the segment exactly.
func SegmentEnvelope(o *ShapeObject, start, end geometry.Point) {
	length := start.Distance(end)
	mid := geometry.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	o.Width = length
	o.Height = 0
	o.X = mid.X - length/2
	o.Y = mid.Y
	o.Rotation = start.Angle(end) * 180 / math.Pi
}

// CreateLine inserts a line between two document-space points.
func (s *Store) CreateLine(start, end geometry.Point) string {
	o := s.newShape(ShapeLine)
	SegmentEnvelope(o, start, end)
	return s.AddObject(o)
}

// CreateArrow inserts an arrow between two document-space points with the
// given options (zero value gets a triangle head and no tail).
func (s *Store) CreateArrow(start, end geometry.Point, opts geometry.ArrowOptions) string {
	o := s.newShape(ShapeArrow)
	SegmentEnvelope(o, start, end)
	if opts.HeadType == "" {
		opts.HeadType = geometry.ArrowHeadTriangle
	}
	if opts.TailType == "" {
		opts.TailType = geometry.ArrowTailNone
	}
	if opts.HeadSize == 0 {
		opts.HeadSize = 1
	}
	o.Arrow = &opts
	return s.AddObject(o)
}

// CreateText inserts a single-line text label anchored at a point.
func (s *Store) CreateText(x, y float64, text string) string {
	o := s.newShape(ShapeText)
	o.X, o.Y = x, y
	o.Width = float64(len(text)) * 8
	o.Height = 16
	o.Text = text
	return s.AddObject(o)
}

// CreateTriangle inserts a triangle filling the given box.
func (s *Store) CreateTriangle(x, y, w, h float64, mode geometry.TriangleMode, orientation geometry.TriangleOrientation) string {
	o := s.newShape(ShapeTriangle)
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	o.Triangle = &TriangleParams{Mode: mode, Orientation: orientation}
	return s.AddObject(o)
}

// CreateStar inserts a star centered on a point with the given outer
// radius; the inner radius defaults to half the outer.
func (s *Store) CreateStar(center geometry.Point, radius, rotationDeg float64, points int) string {
	o := s.newShape(ShapeStar)
	radius = max(radius, 0)
	o.X = center.X - radius
	o.Y = center.Y - radius
	o.Width = radius * 2
	o.Height = radius * 2
	o.Rotation = rotationDeg
	o.Star = &StarParams{
		Points:      points,
		InnerRadius: radius * DefaultStarInnerRatio,
		OuterRadius: radius,
	}
	return s.AddObject(o)
}

// CreatePolygon inserts a regular polygon centered on a point.
func (s *Store) CreatePolygon(center geometry.Point, radius, rotationDeg float64, sides int) string {
	o := s.newShape(ShapePolygon)
	radius = max(radius, 0)
	o.X = center.X - radius
	o.Y = center.Y - radius
	o.Width = radius * 2
	o.Height = radius * 2
	o.Rotation = rotationDeg
	o.Polygon = &PolygonParams{Sides: sides}
	return s.AddObject(o)
}
