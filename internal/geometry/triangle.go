package geometry

// TriangleMode selects how the three vertices are derived from the bounding box.
type TriangleMode string

const (
	TriangleEquilateral TriangleMode = "equilateral"
	TriangleIsosceles   TriangleMode = "isosceles"
	TriangleScalene     TriangleMode = "scalene"
)

// TriangleOrientation vertically mirrors the vertices within the box.
// "down" is the default and places the apex on the top edge.
type TriangleOrientation string

const (
	TriangleDown TriangleOrientation = "down"
	TriangleUp   TriangleOrientation = "up"
)

// TriangleSpec describes a triangle relative to its bounding box.
type TriangleSpec struct {
	Width       float64
	Height      float64
	Mode        TriangleMode
	Orientation TriangleOrientation
}

// sqrt3Over2 is the height-to-side ratio of an equilateral triangle.
const sqrt3Over2 = 0.8660254037844386

// ResolveEquilateralSize resolves the largest equilateral triangle that fits
// a w by h box: base = side length, height = (sqrt(3)/2) * base. The function
// is idempotent, so it can be re-applied whenever either dimension is edited
// independently.
func ResolveEquilateralSize(w, h float64) (base, height float64) {
	w = max(w, 0)
	h = max(h, 0)
	base = min(w, h/sqrt3Over2)
	return base, base * sqrt3Over2
}

// TrianglePoints derives the three vertices relative to the bounding-box
// origin (0,0).
func TrianglePoints(spec TriangleSpec) []Point {
	w := max(spec.Width, 0)
	h := max(spec.Height, 0)

	var pts []Point
	switch spec.Mode {
	case TriangleEquilateral:
		base, eh := ResolveEquilateralSize(w, h)
		// Center the resolved triangle within the original drag box.
		ox := (w - base) / 2
		oy := (h - eh) / 2
		pts = []Point{
			{X: ox + base/2, Y: oy},
			{X: ox + base, Y: oy + eh},
			{X: ox, Y: oy + eh},
		}
	case TriangleScalene:
		// Placeholder shape: apex pinned to the box corner. See DESIGN.md.
		pts = []Point{
			{X: 0, Y: 0},
			{X: w, Y: h},
			{X: 0, Y: h},
		}
	default: // isosceles
		pts = []Point{
			{X: w / 2, Y: 0},
			{X: w, Y: h},
			{X: 0, Y: h},
		}
	}

	if spec.Orientation == TriangleUp {
		for i := range pts {
			pts[i].Y = h - pts[i].Y
		}
	}
	return pts
}

// TriangleDimensions derives the persisted {base, height} parameters for a
// bounding box per mode. For equilateral triangles the pair is clamped to
// stay equilateral; for the other modes the box is authoritative.
func TriangleDimensions(mode TriangleMode, w, h float64) (base, height float64) {
	if mode == TriangleEquilateral {
		return ResolveEquilateralSize(w, h)
	}
	return max(w, 0), max(h, 0)
}
