package document

import "github.com/Nimsalcade/FigmaClone/internal/geometry"

// LoadSample fills the store with a small demo document: one of each of the
// headline shapes, laid out on a 1280x720 canvas. Used by the wasm demo and
// as a convenient fixture.
func (s *Store) LoadSample() {
	s.CreateRectangle(200, 200, 160, 100)
	s.CreateEllipse(460, 180, 140, 140)
	s.CreateTriangle(680, 200, 120, 100, geometry.TriangleEquilateral, geometry.TriangleDown)
	s.CreateStar(geometry.Point{X: 320, Y: 480}, 70, geometry.DefaultStarRotation, 5)
	s.CreatePolygon(geometry.Point{X: 560, Y: 480}, 60, geometry.DefaultPolygonRotation, 6)
	s.CreateRoundedRectangle(680, 420, 160, 110, 14)
	s.CreateArrow(geometry.Point{X: 220, Y: 360}, geometry.Point{X: 420, Y: 360}, geometry.ArrowOptions{
		HeadType: geometry.ArrowHeadTriangle,
		TailType: geometry.ArrowTailRound,
		HeadSize: 1.5,
	})
	s.CreateText(200, 120, "Untitled design")
}
