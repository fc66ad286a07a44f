package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStarPointsCount(t *testing.T) {
	for n := 5; n <= 12; n++ {
		pts := StarPoints(StarSpec{Points: n, InnerRadius: 20, OuterRadius: 40, RotationDeg: DefaultStarRotation})
		require.Len(t, pts, 2*n)
	}
}

func TestStarPointsClampedRange(t *testing.T) {
	require.Len(t, StarPoints(StarSpec{Points: 2, InnerRadius: 10, OuterRadius: 20}), 2*MinStarPoints)
	require.Len(t, StarPoints(StarSpec{Points: 40, InnerRadius: 10, OuterRadius: 20}), 2*MaxStarPoints)
}

func TestStarInnerClampedToOuter(t *testing.T) {
	pts := StarPoints(StarSpec{Points: 5, InnerRadius: 100, OuterRadius: 30, RotationDeg: DefaultStarRotation})

	center := Point{X: 30, Y: 30}
	for i, p := range pts {
		d := center.Distance(p)
		require.LessOrEqual(t, d, 30+1e-9, "vertex %d escaped the outer radius", i)
	}
}

func TestStarAlternatingRadii(t *testing.T) {
	pts := StarPoints(StarSpec{Points: 6, InnerRadius: 15, OuterRadius: 50, RotationDeg: DefaultStarRotation})

	center := Point{X: 50, Y: 50}
	for i, p := range pts {
		want := 50.0
		if i%2 == 1 {
			want = 15.0
		}
		require.InDelta(t, want, center.Distance(p), 1e-9, "vertex %d", i)
	}
}

func TestStarDefaultRotationPointsUp(t *testing.T) {
	pts := StarPoints(StarSpec{Points: 5, InnerRadius: 20, OuterRadius: 40, RotationDeg: DefaultStarRotation})

	// First vertex is an outer tip straight above the center (y-down).
	require.InDelta(t, 40, pts[0].X, 1e-9)
	require.InDelta(t, 0, pts[0].Y, 1e-9)
}

func TestRatioFromRadii(t *testing.T) {
	require.InDelta(t, 0.5, RatioFromRadii(20, 40), 1e-9)
	require.InDelta(t, 0.99, RatioFromRadii(50, 40), 1e-9, "ratio above 1 clamps")
	require.InDelta(t, 0.01, RatioFromRadii(-3, 40), 1e-9, "negative inner clamps")
	require.InDelta(t, 0.5, RatioFromRadii(10, 0), 1e-9, "zero outer falls back to default")
}

func TestRegularPolygonPoints(t *testing.T) {
	for sides := 3; sides <= 12; sides++ {
		pts := RegularPolygonPoints(sides, 25, DefaultPolygonRotation)
		require.Len(t, pts, sides)

		center := Point{X: 25, Y: 25}
		for i, p := range pts {
			require.InDelta(t, 25, center.Distance(p), 1e-9, "sides=%d vertex=%d", sides, i)
		}
	}
}

func TestRegularPolygonSidesClamped(t *testing.T) {
	require.Len(t, RegularPolygonPoints(1, 10, 0), MinPolygonSides)
	require.Len(t, RegularPolygonPoints(99, 10, 0), MaxPolygonSides)
}

func TestPolygonVerticesLooseRange(t *testing.T) {
	require.Len(t, PolygonVertices(64, 10, 0), 64)
	require.Len(t, PolygonVertices(100, 10, 0), 64)
}

func TestPolygonVertexUpConvention(t *testing.T) {
	pts := PolygonVertices(6, 30, DefaultPolygonRotation)
	require.InDelta(t, 30, pts[0].X, 1e-9)
	require.InDelta(t, 0, pts[0].Y, 1e-9)
}
