package geometry

import "math"

const (
	// MinPolygonSides and MaxPolygonSides bound the side count exposed to
	// the editor UI.
	MinPolygonSides = 3
	MaxPolygonSides = 12

	// maxPolygonSidesLoose is the bound of the general-purpose variant.
	maxPolygonSidesLoose = 64

	// DefaultPolygonRotation orients a vertex straight up, matching the star
	// and triangle defaults.
	DefaultPolygonRotation = -90.0
)

// PolygonVertices derives the vertices of a regular polygon around a center
// at (radius, radius), evenly spaced by 2π/sides starting at rotationDeg.
// Sides are clamped to [3,64]; negative radii to 0.
func PolygonVertices(sides int, radius, rotationDeg float64) []Point {
	n := int(Clamp(float64(sides), MinPolygonSides, maxPolygonSidesLoose))
	r := max(radius, 0)

	cx, cy := r, r
	rot := rotationDeg * math.Pi / 180
	step := 2 * math.Pi / float64(n)

	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := rot + float64(i)*step
		pts = append(pts, Point{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		})
	}
	return pts
}

// RegularPolygonPoints is the editor-facing variant with sides clamped to
// the UI range [3,12].
func RegularPolygonPoints(sides int, radius, rotationDeg float64) []Point {
	n := int(Clamp(float64(sides), MinPolygonSides, MaxPolygonSides))
	return PolygonVertices(n, radius, rotationDeg)
}
