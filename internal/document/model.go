package document

import (
	"encoding/json"
	"time"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// ShapeType tags the kind of a canonical shape object. Every operation over
// shapes switches exhaustively on this tag.
type ShapeType string

const (
	ShapeRectangle        ShapeType = "rectangle"
	ShapeEllipse          ShapeType = "ellipse"
	ShapeLine             ShapeType = "line"
	ShapeArrow            ShapeType = "arrow"
	ShapeText             ShapeType = "text"
	ShapeTriangle         ShapeType = "triangle"
	ShapeStar             ShapeType = "star"
	ShapePolygon          ShapeType = "polygon"
	ShapeRoundedRectangle ShapeType = "roundedRectangle"
)

// ShapeTypes lists all shape kinds in a stable order.
var ShapeTypes = []ShapeType{
	ShapeRectangle, ShapeEllipse, ShapeLine, ShapeArrow, ShapeText,
	ShapeTriangle, ShapeStar, ShapePolygon, ShapeRoundedRectangle,
}

// TriangleParams is the triangle-specific parameter block.
type TriangleParams struct {
	Mode        geometry.TriangleMode        `json:"mode"`
	Base        float64                      `json:"base"`
	Height      float64                      `json:"height"`
	Orientation geometry.TriangleOrientation `json:"orientation"`
}

// StarParams is the star-specific parameter block.
type StarParams struct {
	Points      int     `json:"points"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
	Smooth      bool    `json:"smooth"`
}

// PolygonParams is the regular-polygon parameter block.
type PolygonParams struct {
	Sides  int     `json:"sides"`
	Radius float64 `json:"radius"`
}

// RoundedRectParams is the rounded-rectangle parameter block.
type RoundedRectParams struct {
	Radius float64              `json:"radius"`
	Radii  geometry.CornerRadii `json:"radii"`
}

// ShapeObject is the canonical, serializable unit of the document. The
// bounding-box envelope (X, Y, Width, Height, Rotation) is always the
// authoritative record; kind-specific parameter blocks are derived
// quantities reconciled against it on every write.
type ShapeObject struct {
	ID   string    `json:"id"`
	Type ShapeType `json:"type"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`

	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`

	Text string `json:"text,omitempty"`

	Triangle    *TriangleParams        `json:"triangle,omitempty"`
	Star        *StarParams            `json:"star,omitempty"`
	Polygon     *PolygonParams         `json:"polygon,omitempty"`
	RoundedRect *RoundedRectParams     `json:"roundedRectangle,omitempty"`
	Arrow       *geometry.ArrowOptions `json:"arrow,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	CreatedBy string `json:"createdBy"`
}

// Clone returns a deep copy of the object.
func (o *ShapeObject) Clone() *ShapeObject {
	c := *o
	if o.Triangle != nil {
		t := *o.Triangle
		c.Triangle = &t
	}
	if o.Star != nil {
		s := *o.Star
		c.Star = &s
	}
	if o.Polygon != nil {
		p := *o.Polygon
		c.Polygon = &p
	}
	if o.RoundedRect != nil {
		r := *o.RoundedRect
		c.RoundedRect = &r
	}
	if o.Arrow != nil {
		a := *o.Arrow
		c.Arrow = &a
	}
	return &c
}

// Bounds returns the envelope as a rect.
func (o *ShapeObject) Bounds() geometry.Rect {
	return geometry.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// clampStyle enforces the style invariants in place.
func (o *ShapeObject) clampStyle() {
	o.Width = max(o.Width, 0)
	o.Height = max(o.Height, 0)
	o.StrokeWidth = max(o.StrokeWidth, 0)
	o.Opacity = geometry.Clamp(o.Opacity, 0, 1)
}

// ReconcileParams recomputes the kind-specific parameter block from the
// envelope, and drops blocks that do not match the type. This is the inverse
// mapping applied after any free-form resize so that envelope and parameters
// always round-trip.
func (o *ShapeObject) ReconcileParams() {
	o.clampStyle()

	// Parameter block present iff the type matches.
	if o.Type != ShapeTriangle {
		o.Triangle = nil
	}
	if o.Type != ShapeStar {
		o.Star = nil
	}
	if o.Type != ShapePolygon {
		o.Polygon = nil
	}
	if o.Type != ShapeRoundedRectangle {
		o.RoundedRect = nil
	}
	if o.Type != ShapeArrow {
		o.Arrow = nil
	}

	switch o.Type {
	case ShapeTriangle:
		if o.Triangle == nil {
			o.Triangle = &TriangleParams{Mode: geometry.TriangleIsosceles, Orientation: geometry.TriangleDown}
		}
		if o.Triangle.Orientation == "" {
			o.Triangle.Orientation = geometry.TriangleDown
		}
		o.Triangle.Base, o.Triangle.Height = geometry.TriangleDimensions(o.Triangle.Mode, o.Width, o.Height)

	case ShapeStar:
		if o.Star == nil {
			o.Star = &StarParams{Points: 5}
		}
		ratio := geometry.RatioFromRadii(o.Star.InnerRadius, o.Star.OuterRadius)
		o.Star.Points = int(geometry.Clamp(float64(o.Star.Points), geometry.MinStarPoints, geometry.MaxStarPoints))
		o.Star.OuterRadius = min(o.Width, o.Height) / 2
		o.Star.InnerRadius = ratio * o.Star.OuterRadius
		// Regularity: the star box stays square.
		o.Width = o.Star.OuterRadius * 2
		o.Height = o.Width

	case ShapePolygon:
		if o.Polygon == nil {
			o.Polygon = &PolygonParams{Sides: 6}
		}
		o.Polygon.Sides = int(geometry.Clamp(float64(o.Polygon.Sides), geometry.MinPolygonSides, geometry.MaxPolygonSides))
		o.Polygon.Radius = min(o.Width, o.Height) / 2
		// Regularity constraint: width == height.
		o.Width = o.Polygon.Radius * 2
		o.Height = o.Width

	case ShapeRoundedRectangle:
		if o.RoundedRect == nil {
			o.RoundedRect = &RoundedRectParams{Radius: 8}
		}
		limit := min(o.Width, o.Height) / 2
		o.RoundedRect.Radius = geometry.Clamp(o.RoundedRect.Radius, 0, limit)
		o.RoundedRect.Radii = geometry.NormalizeRadii(o.Width, o.Height, o.RoundedRect.Radius, &o.RoundedRect.Radii)

	case ShapeArrow:
		if o.Arrow == nil {
			o.Arrow = &geometry.ArrowOptions{
				HeadType: geometry.ArrowHeadTriangle,
				TailType: geometry.ArrowTailNone,
				HeadSize: 1,
			}
		}
		o.Arrow.HeadSize = max(o.Arrow.HeadSize, 0)
		o.Arrow.TailLength = max(o.Arrow.TailLength, 0)

	case ShapeRectangle, ShapeEllipse, ShapeLine, ShapeText:
		// Envelope-only kinds.
	}
}

// Document is the serialized form of the whole editor document.
type Document struct {
	Objects     map[string]*ShapeObject `json:"objects"`
	SelectedIDs []string                `json:"selectedIds"`
	ActiveTool  Tool                    `json:"activeTool"`
}

// MarshalDocument serializes the store's canonical state.
func (s *Store) MarshalDocument() ([]byte, error) {
	doc := Document{
		Objects:     s.snapshotObjects(),
		SelectedIDs: s.Selection(),
		ActiveTool:  s.activeTool,
	}
	return json.Marshal(doc)
}

// LoadDocument replaces the store's state from serialized form. Loaded
// objects are re-clamped so a hand-edited file cannot violate invariants.
func (s *Store) LoadDocument(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	objects := make(map[string]*ShapeObject, len(doc.Objects))
	for id, o := range doc.Objects {
		c := o.Clone()
		c.ID = id
		c.ReconcileParams()
		objects[id] = c
	}

	s.objects = objects
	s.selected = nil
	for _, id := range doc.SelectedIDs {
		if _, ok := objects[id]; ok {
			s.selected = append(s.selected, id)
		}
	}
	if doc.ActiveTool != "" {
		s.activeTool = doc.ActiveTool
	}

	s.record("load document")
	return nil
}

func nowRFC3339(clock func() time.Time) string {
	return clock().UTC().Format(time.RFC3339)
}
