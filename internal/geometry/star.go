package geometry

import "math"

const (
	// MinStarPoints and MaxStarPoints bound the outer point count of a star.
	MinStarPoints = 5
	MaxStarPoints = 12

	// DefaultStarRotation points one star tip straight up in a y-down
	// coordinate system.
	DefaultStarRotation = -90.0
)

// StarSpec describes a star relative to a box of side 2*OuterRadius.
type StarSpec struct {
	Points      int
	InnerRadius float64
	OuterRadius float64
	RotationDeg float64
}

// StarPoints derives 2*points vertices alternating between the outer and
// inner radius around a center at (outerRadius, outerRadius). Out-of-range
// inputs are clamped, never rejected: points to [5,12], negative radii to 0,
// and an inner radius larger than the outer to the outer (no
// self-intersecting star).
func StarPoints(spec StarSpec) []Point {
	n := int(Clamp(float64(spec.Points), MinStarPoints, MaxStarPoints))
	outer := max(spec.OuterRadius, 0)
	inner := Clamp(spec.InnerRadius, 0, outer)

	cx, cy := outer, outer
	rot := spec.RotationDeg * math.Pi / 180

	pts := make([]Point, 0, 2*n)
	for i := 0; i < 2*n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := rot + float64(i)*math.Pi/float64(n)
		pts = append(pts, Point{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		})
	}
	return pts
}

// RatioFromRadii computes the inner/outer ratio used by ratio-style UI
// controls, clamped to the open interval (0,1).
func RatioFromRadii(inner, outer float64) float64 {
	if outer <= 0 {
		return 0.5
	}
	return Clamp(inner/outer, 0.01, 0.99)
}
