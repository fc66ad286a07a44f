package scene

import (
	"sort"

	"github.com/Nimsalcade/FigmaClone/internal/document"
)

// previewID is the reserved graph id for the transient draw preview.
const previewID = "__preview__"

// Synchronizer owns the one-way reconciliation loop between the document
// store and the retained graph. It is the only writer of the graph; the
// feedback direction (scene → store) is guarded so the two directions can
// never chase each other.
type Synchronizer struct {
	store *document.Store
	graph *Graph

	// id → kind index for committed objects. Kept out of band so the
	// rendering adapter never needs to inspect node internals.
	kinds map[string]document.ShapeType

	// Suppresses NodeModified feedback while Sync writes the graph.
	updatingFromStore bool

	// Asks the host for a repaint. Optional.
	requestRender func()
}

// NewSynchronizer binds a store to a graph.
func NewSynchronizer(store *document.Store, graph *Graph) *Synchronizer {
	return &Synchronizer{
		store: store,
		graph: graph,
		kinds: make(map[string]document.ShapeType),
	}
}

// OnRenderRequested registers the repaint callback. Called after every
// graph write, including preview updates.
func (s *Synchronizer) OnRenderRequested(fn func()) { s.requestRender = fn }

// Graph exposes the synchronized graph for queries (hit test, bounds,
// draw-command compilation).
func (s *Synchronizer) Graph() *Graph { return s.graph }

// Sync reconciles the graph against the store: every document object is
// re-resolved, nodes whose object disappeared are removed, and transient
// previews are left alone. Paint order follows object creation time.
func (s *Synchronizer) Sync() {
	s.updatingFromStore = true
	defer func() { s.updatingFromStore = false }()

	type entry struct {
		id        string
		createdAt string
	}
	var live []entry
	s.store.ForEach(func(o *document.ShapeObject) {
		live = append(live, entry{id: o.ID, createdAt: o.CreatedAt})
	})
	sort.Slice(live, func(i, j int) bool {
		if live[i].createdAt != live[j].createdAt {
			return live[i].createdAt < live[j].createdAt
		}
		return live[i].id < live[j].id
	})

	seen := make(map[string]bool, len(live))
	for _, e := range live {
		o, ok := s.store.Get(e.id)
		if !ok {
			continue
		}
		s.graph.CreateRenderObject(o)
		s.kinds[o.ID] = o.Type
		seen[o.ID] = true
	}

	// Drop stale nodes. Previews are not store state and survive the pass.
	var stale []string
	s.graph.forEach(func(n *Node) {
		if !n.Transient && !seen[n.ID] {
			stale = append(stale, n.ID)
		}
	})
	for _, id := range stale {
		s.graph.Remove(id)
		delete(s.kinds, id)
	}

	s.repaint()
}

// NodeModified is the feedback listener the rendering adapter calls after
// the user manipulates a node directly (drag, resize, rotate). The node's
// envelope and style are written back to the store. Calls made while Sync
// is writing the graph are the synchronizer's own echoes and are dropped.
func (s *Synchronizer) NodeModified(h Handle) {
	if s.updatingFromStore {
		return
	}
	n, ok := s.graph.Lookup(h)
	if !ok || n.Transient {
		return
	}

	s.store.UpdateObject(n.ID, document.Patch{
		X:           &n.X,
		Y:           &n.Y,
		Width:       &n.Width,
		Height:      &n.Height,
		Rotation:    &n.Rotation,
		Fill:        &n.Fill,
		Stroke:      &n.Stroke,
		StrokeWidth: &n.StrokeWidth,
		Opacity:     &n.Opacity,
	})
	s.Sync()
}

// KindOf returns the shape kind of a committed object id.
func (s *Synchronizer) KindOf(id string) (document.ShapeType, bool) {
	k, ok := s.kinds[id]
	return k, ok
}

// ShowPreview installs or refreshes the transient draw preview. The
// preview never reaches the store and is skipped by Sync and hit testing.
func (s *Synchronizer) ShowPreview(o *document.ShapeObject) {
	s.updatingFromStore = true
	defer func() { s.updatingFromStore = false }()

	p := o.Clone()
	p.ID = previewID
	h := s.graph.CreateRenderObject(p)
	if n, ok := s.graph.Lookup(h); ok {
		n.Transient = true
	}
	s.repaint()
}

// ClearPreview removes the transient preview, if any.
func (s *Synchronizer) ClearPreview() {
	s.graph.Remove(previewID)
	s.repaint()
}

func (s *Synchronizer) repaint() {
	if s.requestRender != nil {
		s.requestRender()
	}
}
