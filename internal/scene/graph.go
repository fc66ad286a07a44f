// Package scene holds the retained render state of the document: a flat
// graph of resolved nodes (path, style, world transform, bounds) kept in
// painter's order. The graph persists between frames and is incrementally
// reconciled against the document store by the Synchronizer.
package scene

import (
	"github.com/Nimsalcade/FigmaClone/internal/document"
	"github.com/Nimsalcade/FigmaClone/internal/geometry"
)

// Handle identifies a node in the graph. It is opaque to callers; the
// rendering adapter passes it back without looking inside.
type Handle struct {
	id string
}

// Valid reports whether the handle refers to anything.
func (h Handle) Valid() bool { return h.id != "" }

// Node is a resolved shape ready for rendering. All geometry is computed:
// the path is in local envelope space, the world transform places it on the
// canvas, and Bounds is the world-space axis-aligned box.
type Node struct {
	ID   string
	Kind document.ShapeType

	// Envelope state, mirrored from the document.
	X, Y, Width, Height float64
	Rotation            float64

	// Resolved style.
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Visible     bool

	Text string

	// Kind-specific parameters, mirrored so a node can be converted back
	// into a full document object without loss.
	Triangle    *document.TriangleParams
	Star        *document.StarParams
	Polygon     *document.PolygonParams
	RoundedRect *document.RoundedRectParams
	Arrow       *geometry.ArrowOptions

	// Transient nodes (draw previews) are skipped by hit testing and by
	// the store reconciliation loop.
	Transient bool

	// Render data.
	Path   []geometry.PathCommand
	World  geometry.Matrix2D
	Bounds geometry.Rect
}

// Graph is the retained scene graph: nodes by id plus an explicit painter's
// order (back to front).
type Graph struct {
	nodes map[string]*Node
	order []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// CreateRenderObject resolves a document object into a node, inserts it at
// the front of the paint order and returns its handle. An existing node
// with the same id is replaced in place, keeping its order slot.
func (g *Graph) CreateRenderObject(o *document.ShapeObject) Handle {
	node := buildNode(o)
	if _, ok := g.nodes[node.ID]; !ok {
		g.order = append(g.order, node.ID)
	}
	g.nodes[node.ID] = node
	return Handle{id: node.ID}
}

// RenderObjectToDocument converts a node back into a document object.
// Envelope, style and kind-specific parameters round-trip losslessly;
// metadata (timestamps, author) is not render state and comes back empty.
func (g *Graph) RenderObjectToDocument(h Handle) (*document.ShapeObject, bool) {
	n, ok := g.nodes[h.id]
	if !ok {
		return nil, false
	}
	o := &document.ShapeObject{
		ID:          n.ID,
		Type:        n.Kind,
		X:           n.X,
		Y:           n.Y,
		Width:       n.Width,
		Height:      n.Height,
		Rotation:    n.Rotation,
		Fill:        n.Fill,
		Stroke:      n.Stroke,
		StrokeWidth: n.StrokeWidth,
		Opacity:     n.Opacity,
		Text:        n.Text,
		Triangle:    n.Triangle,
		Star:        n.Star,
		Polygon:     n.Polygon,
		RoundedRect: n.RoundedRect,
		Arrow:       n.Arrow,
	}
	return o.Clone(), true
}

// Lookup returns the node for a handle.
func (g *Graph) Lookup(h Handle) (*Node, bool) {
	n, ok := g.nodes[h.id]
	return n, ok
}

// HandleFor returns the handle for an object id, if present.
func (g *Graph) HandleFor(id string) (Handle, bool) {
	if _, ok := g.nodes[id]; !ok {
		return Handle{}, false
	}
	return Handle{id: id}, true
}

// Remove deletes a node. Unknown ids are a no-op.
func (g *Graph) Remove(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of nodes, previews included.
func (g *Graph) Len() int { return len(g.nodes) }

// forEach visits nodes back to front.
func (g *Graph) forEach(fn func(*Node)) {
	for _, id := range g.order {
		fn(g.nodes[id])
	}
}
