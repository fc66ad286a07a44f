package geometry

// ArrowHeadType selects the head shape of an arrow.
type ArrowHeadType string

const (
	ArrowHeadTriangle ArrowHeadType = "triangle"
	ArrowHeadDiamond  ArrowHeadType = "diamond"
	ArrowHeadCircle   ArrowHeadType = "circle"
)

// ArrowTailType selects the optional tail decoration of an arrow.
type ArrowTailType string

const (
	ArrowTailNone  ArrowTailType = "none"
	ArrowTailLine  ArrowTailType = "line"
	ArrowTailRound ArrowTailType = "round"
)

// ArrowOptions are the user-adjustable arrow parameters.
type ArrowOptions struct {
	HeadType   ArrowHeadType `json:"headType"`
	TailType   ArrowTailType `json:"tailType"`
	HeadSize   float64       `json:"headSize"`
	TailLength float64       `json:"tailLength"`
}

// minArrowFeature floors every derived arrow dimension so thin strokes still
// produce a visible head.
const minArrowFeature = 4.0

// ArrowParts is the multi-part decomposition of an arrow: a shaft segment,
// a head and an optional tail, all to be moved as a rigid group.
type ArrowParts struct {
	Shaft [2]Point

	HeadType ArrowHeadType
	// Head holds the polygon outline for triangle/diamond heads; circle
	// heads use HeadCenter and HeadRadius instead.
	Head       []Point
	HeadCenter Point
	HeadRadius float64

	TailType ArrowTailType
	// Tail holds the backward line segment for line tails; round tails use
	// TailCenter and TailRadius instead.
	Tail       [2]Point
	TailCenter Point
	TailRadius float64
}

// ComposeArrow builds an arrow of the given shaft length along the local +X
// axis, starting at the origin. The shaft is shortened so it never overlaps
// the head, and line tails extend backward past the origin.
func ComposeArrow(length, strokeWidth float64, opts ArrowOptions) ArrowParts {
	length = max(length, 0)
	unit := max(strokeWidth, 1) * max(opts.HeadSize, 0)
	headLen := max(minArrowFeature, 3*unit)
	headWidth := max(minArrowFeature, 3*unit)

	parts := ArrowParts{
		HeadType: opts.HeadType,
		TailType: opts.TailType,
	}

	tip := Point{X: length, Y: 0}
	shaftEnd := length

	switch opts.HeadType {
	case ArrowHeadDiamond:
		parts.Head = []Point{
			tip,
			{X: length - headLen/2, Y: -headWidth / 2},
			{X: length - headLen, Y: 0},
			{X: length - headLen/2, Y: headWidth / 2},
		}
		shaftEnd = length - headLen
	case ArrowHeadCircle:
		parts.HeadCenter = tip
		parts.HeadRadius = headWidth / 2
		shaftEnd = length - headWidth/2
	default: // triangle
		parts.Head = []Point{
			tip,
			{X: length - headLen, Y: -headWidth / 2},
			{X: length - headLen, Y: headWidth / 2},
		}
		shaftEnd = length - headLen
	}

	parts.Shaft = [2]Point{{X: 0, Y: 0}, {X: max(shaftEnd, 0), Y: 0}}

	switch opts.TailType {
	case ArrowTailLine:
		tail := max(opts.TailLength, 0)
		parts.Tail = [2]Point{{X: -tail, Y: 0}, {X: 0, Y: 0}}
	case ArrowTailRound:
		parts.TailCenter = Point{X: 0, Y: 0}
		parts.TailRadius = max(minArrowFeature/2, unit)
	}

	return parts
}

// ArrowBetween builds world-space arrow geometry between two endpoints by
// composing the local arrow and rigidly rotating it onto the segment.
func ArrowBetween(start, end Point, strokeWidth float64, opts ArrowOptions) ArrowParts {
	length := start.Distance(end)
	angle := start.Angle(end)
	local := ComposeArrow(length, strokeWidth, opts)

	m := Translate(start.X, start.Y).Multiply(Rotate(angle))
	mapPt := func(p Point) Point {
		x, y := m.TransformPoint(p.X, p.Y)
		return Point{X: x, Y: y}
	}

	world := ArrowParts{
		HeadType:   local.HeadType,
		TailType:   local.TailType,
		HeadRadius: local.HeadRadius,
		TailRadius: local.TailRadius,
	}
	world.Shaft = [2]Point{mapPt(local.Shaft[0]), mapPt(local.Shaft[1])}
	for _, p := range local.Head {
		world.Head = append(world.Head, mapPt(p))
	}
	world.HeadCenter = mapPt(local.HeadCenter)
	world.Tail = [2]Point{mapPt(local.Tail[0]), mapPt(local.Tail[1])}
	world.TailCenter = mapPt(local.TailCenter)

	return world
}

// ArrowPath flattens arrow parts into path commands for rendering. Circle
// parts become four-arc bezier circles.
func ArrowPath(parts ArrowParts) []PathCommand {
	var cmds []PathCommand

	cmds = append(cmds,
		M(parts.Shaft[0].X, parts.Shaft[0].Y),
		L(parts.Shaft[1].X, parts.Shaft[1].Y),
	)

	if len(parts.Head) > 0 {
		cmds = append(cmds, PolygonPath(parts.Head)...)
	} else if parts.HeadRadius > 0 {
		cmds = append(cmds, circleAt(parts.HeadCenter, parts.HeadRadius)...)
	}

	switch parts.TailType {
	case ArrowTailLine:
		cmds = append(cmds,
			M(parts.Tail[0].X, parts.Tail[0].Y),
			L(parts.Tail[1].X, parts.Tail[1].Y),
		)
	case ArrowTailRound:
		if parts.TailRadius > 0 {
			cmds = append(cmds, circleAt(parts.TailCenter, parts.TailRadius)...)
		}
	}

	return cmds
}

func circleAt(c Point, r float64) []PathCommand {
	cmds := EllipsePath(r, r)
	for i := range cmds {
		for j := 0; j+1 < len(cmds[i].Args); j += 2 {
			cmds[i].Args[j] += c.X - r
			cmds[i].Args[j+1] += c.Y - r
		}
	}
	return cmds
}
