package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrianglePointsCount(t *testing.T) {
	for _, mode := range []TriangleMode{TriangleIsosceles, TriangleEquilateral, TriangleScalene} {
		pts := TrianglePoints(TriangleSpec{Width: 120, Height: 80, Mode: mode, Orientation: TriangleDown})
		require.Len(t, pts, 3, "mode %s", mode)
	}
}

func TestTriangleIsosceles(t *testing.T) {
	pts := TrianglePoints(TriangleSpec{Width: 100, Height: 60, Mode: TriangleIsosceles, Orientation: TriangleDown})

	require.Equal(t, Point{X: 50, Y: 0}, pts[0], "apex at horizontal midpoint of top edge")
	require.Equal(t, Point{X: 100, Y: 60}, pts[1])
	require.Equal(t, Point{X: 0, Y: 60}, pts[2])
}

func TestTriangleEquilateralSidesEqual(t *testing.T) {
	boxes := []struct{ w, h float64 }{
		{100, 100},
		{100, 30},
		{30, 100},
		{250, 80},
		{1, 500},
	}

	for _, box := range boxes {
		pts := TrianglePoints(TriangleSpec{Width: box.w, Height: box.h, Mode: TriangleEquilateral, Orientation: TriangleDown})
		a := pts[0].Distance(pts[1])
		b := pts[1].Distance(pts[2])
		c := pts[2].Distance(pts[0])
		require.InDelta(t, a, b, 1e-9, "box %+v", box)
		require.InDelta(t, b, c, 1e-9, "box %+v", box)
	}
}

func TestTriangleEquilateralCentered(t *testing.T) {
	pts := TrianglePoints(TriangleSpec{Width: 200, Height: 50, Mode: TriangleEquilateral, Orientation: TriangleDown})

	bounds := BoundsOf(pts)
	require.InDelta(t, (200-bounds.Width)/2, bounds.X, 1e-9)
	require.InDelta(t, (50-bounds.Height)/2, bounds.Y, 1e-9)
}

func TestResolveEquilateralSizeIdempotent(t *testing.T) {
	base, height := ResolveEquilateralSize(173, 91)
	base2, height2 := ResolveEquilateralSize(base, height)

	require.InDelta(t, base, base2, 1e-9)
	require.InDelta(t, height, height2, 1e-9)
	require.InDelta(t, base*math.Sqrt(3)/2, height, 1e-9)
}

func TestTriangleOrientationMirrors(t *testing.T) {
	down := TrianglePoints(TriangleSpec{Width: 80, Height: 40, Mode: TriangleIsosceles, Orientation: TriangleDown})
	up := TrianglePoints(TriangleSpec{Width: 80, Height: 40, Mode: TriangleIsosceles, Orientation: TriangleUp})

	for i := range down {
		require.InDelta(t, down[i].X, up[i].X, 1e-9)
		require.InDelta(t, 40-down[i].Y, up[i].Y, 1e-9)
	}
}

func TestTriangleNegativeInputClamped(t *testing.T) {
	pts := TrianglePoints(TriangleSpec{Width: -10, Height: -5, Mode: TriangleIsosceles, Orientation: TriangleDown})
	require.Equal(t, Rect{}, BoundsOf(pts))
}
