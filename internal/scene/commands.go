package scene

import (
	"encoding/json"

	"github.com/Nimsalcade/FigmaClone/internal/document"
	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// DrawCommand is a single drawing operation for the frontend to execute on
// a Canvas2D context. Commands arrive in painter's order (back to front).
type DrawCommand struct {
	Op          string                 `json:"op"` // "path" or "text"
	ObjectID    string                 `json:"objectId,omitempty"`
	Transform   []float64              `json:"transform,omitempty"` // [a, b, c, d, e, f]
	Path        []geometry.PathCommand `json:"path,omitempty"`
	Fill        string                 `json:"fill,omitempty"`
	Stroke      string                 `json:"stroke,omitempty"`
	StrokeWidth float64                `json:"strokeWidth,omitempty"`
	Opacity     float64                `json:"opacity,omitempty"`
	Text        string                 `json:"text,omitempty"`
	Width       float64                `json:"width,omitempty"`  // text layout box
	Height      float64                `json:"height,omitempty"` // text layout box
}

// CompileDrawCommands flattens the graph into a draw command buffer.
// Transient previews paint last so they sit above committed shapes.
func CompileDrawCommands(g *Graph) []DrawCommand {
	if g == nil {
		return nil
	}

	var commands, previews []DrawCommand
	g.forEach(func(n *Node) {
		cmd, ok := compileNode(n)
		if !ok {
			return
		}
		if n.Transient {
			previews = append(previews, cmd)
		} else {
			commands = append(commands, cmd)
		}
	})
	return append(commands, previews...)
}

func compileNode(n *Node) (DrawCommand, bool) {
	if n == nil || !n.Visible {
		return DrawCommand{}, false
	}

	if n.Kind == document.ShapeText {
		return DrawCommand{
			Op:        "text",
			ObjectID:  n.ID,
			Transform: n.World.ToSlice(),
			Text:      n.Text,
			Fill:      n.Fill,
			Opacity:   n.Opacity,
			Width:     n.Width,
			Height:    n.Height,
		}, true
	}

	if len(n.Path) == 0 {
		return DrawCommand{}, false
	}
	return DrawCommand{
		Op:          "path",
		ObjectID:    n.ID,
		Transform:   n.World.ToSlice(),
		Path:        n.Path,
		Fill:        n.Fill,
		Stroke:      n.Stroke,
		StrokeWidth: n.StrokeWidth,
		Opacity:     n.Opacity,
	}, true
}

// DrawCommandsToJSON serializes a command buffer.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if len(commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTest returns the id of the topmost shape whose world bounds contain
// the point, or "". Previews are non-interactive and never hit.
func HitTest(g *Graph, x, y float64) string {
	if g == nil {
		return ""
	}
	// Front to back: reverse painter's order.
	for i := len(g.order) - 1; i >= 0; i-- {
		n := g.nodes[g.order[i]]
		if n == nil || !n.Visible || n.Transient {
			continue
		}
		if n.Bounds.IsEmpty() {
			continue
		}
		if n.Bounds.Contains(x, y) {
			return n.ID
		}
	}
	return ""
}

// SelectionBounds returns the combined world-space box of the given ids.
// Unknown ids are skipped.
func SelectionBounds(g *Graph, ids []string) geometry.Rect {
	if g == nil {
		return geometry.Rect{}
	}

	var result geometry.Rect
	first := true
	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok || n.Bounds.IsEmpty() {
			continue
		}
		if first {
			result = n.Bounds
			first = false
		} else {
			result = result.Union(n.Bounds)
		}
	}
	return result
}
