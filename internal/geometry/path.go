package geometry

import (
	"encoding/json"
	"fmt"
)

// PathOp identifies a path segment operation.
type PathOp string

const (
	OpMove  PathOp = "M"
	OpLine  PathOp = "L"
	OpCubic PathOp = "C"
	OpQuad  PathOp = "Q"
	OpClose PathOp = "Z"
)

// PathCommand is a single typed path segment. On the wire it serializes to
// the Canvas2D-style array form: ["M", x, y], ["C", x1, y1, x2, y2, x, y], …
type PathCommand struct {
	Op   PathOp
	Args []float64
}

// M returns a move-to command.
func M(x, y float64) PathCommand { return PathCommand{Op: OpMove, Args: []float64{x, y}} }

// L returns a line-to command.
func L(x, y float64) PathCommand { return PathCommand{Op: OpLine, Args: []float64{x, y}} }

// C returns a cubic bezier command.
func C(x1, y1, x2, y2, x, y float64) PathCommand {
	return PathCommand{Op: OpCubic, Args: []float64{x1, y1, x2, y2, x, y}}
}

// Q returns a quadratic bezier command.
func Q(cx, cy, x, y float64) PathCommand {
	return PathCommand{Op: OpQuad, Args: []float64{cx, cy, x, y}}
}

// Z returns a close-path command.
func Z() PathCommand { return PathCommand{Op: OpClose} }

// MarshalJSON emits the array form expected by the Canvas2D frontend.
func (c PathCommand) MarshalJSON() ([]byte, error) {
	arr := make([]interface{}, 0, len(c.Args)+1)
	arr = append(arr, string(c.Op))
	for _, a := range c.Args {
		arr = append(arr, a)
	}
	return json.Marshal(arr)
}

// UnmarshalJSON parses the array form back into a typed command.
func (c *PathCommand) UnmarshalJSON(data []byte) error {
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) == 0 {
		return fmt.Errorf("empty path command")
	}
	op, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("path command op must be a string, got %T", arr[0])
	}
	c.Op = PathOp(op)
	c.Args = c.Args[:0]
	for _, v := range arr[1:] {
		n, ok := v.(float64)
		if !ok {
			return fmt.Errorf("path command argument must be a number, got %T", v)
		}
		c.Args = append(c.Args, n)
	}
	return nil
}

// PolygonPath converts a closed vertex list to path commands.
func PolygonPath(pts []Point) []PathCommand {
	if len(pts) == 0 {
		return nil
	}
	cmds := make([]PathCommand, 0, len(pts)+1)
	cmds = append(cmds, M(pts[0].X, pts[0].Y))
	for _, p := range pts[1:] {
		cmds = append(cmds, L(p.X, p.Y))
	}
	cmds = append(cmds, Z())
	return cmds
}

// RectPath returns the closed path of an axis-aligned rectangle at the origin.
func RectPath(w, h float64) []PathCommand {
	return []PathCommand{
		M(0, 0),
		L(w, 0),
		L(w, h),
		L(0, h),
		Z(),
	}
}

// Kappa is the cubic bezier circle-approximation constant
// k = 4 * (sqrt(2) - 1) / 3 ≈ 0.5523.
const Kappa = 0.5522847498

// EllipsePath returns four bezier curves approximating an ellipse of the
// given radii, centered at (rx, ry) so the path fits a box of 2rx by 2ry.
func EllipsePath(rx, ry float64) []PathCommand {
	kx, ky := rx*Kappa, ry*Kappa
	cx, cy := rx, ry
	return []PathCommand{
		M(cx+rx, cy),
		C(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry),
		C(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy),
		C(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry),
		C(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy),
		Z(),
	}
}

// PathBounds computes the axis-aligned bounding box of a path after applying
// the given transform. Bezier control points are included, which is a
// conservative approximation sufficient for selection and hit testing.
func PathBounds(path []PathCommand, m Matrix2D) Rect {
	var minX, minY, maxX, maxY float64
	first := true

	include := func(x, y float64) {
		wx, wy := m.TransformPoint(x, y)
		if first {
			minX, maxX = wx, wx
			minY, maxY = wy, wy
			first = false
			return
		}
		minX = min(minX, wx)
		maxX = max(maxX, wx)
		minY = min(minY, wy)
		maxY = max(maxY, wy)
	}

	for _, cmd := range path {
		switch cmd.Op {
		case OpMove, OpLine:
			if len(cmd.Args) >= 2 {
				include(cmd.Args[0], cmd.Args[1])
			}
		case OpQuad:
			for i := 0; i+1 < len(cmd.Args) && i < 4; i += 2 {
				include(cmd.Args[i], cmd.Args[i+1])
			}
		case OpCubic:
			for i := 0; i+1 < len(cmd.Args) && i < 6; i += 2 {
				include(cmd.Args[i], cmd.Args[i+1])
			}
		case OpClose:
			// no new points
		}
	}

	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
