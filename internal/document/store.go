package document

import (
	"fmt"
	"time"

	"github.com/Nimsalcade/FigmaClone/internal/geometry"
	"github.com/Nimsalcade/FigmaClone/internal/ids"
)

// Tool identifies the active canvas tool. Drawing tools share their name
// with the shape kind they create.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolHand   Tool = "hand"
)

// ToolFor returns the drawing tool for a shape kind.
func ToolFor(t ShapeType) Tool { return Tool(t) }

// IsDrawingTool reports whether the tool creates shapes on drag.
func IsDrawingTool(t Tool) bool {
	return t != ToolSelect && t != ToolHand && t != ""
}

// Recorder receives a history record request after every store mutation.
// The history engine is injected here so the store never imports it.
type Recorder interface {
	Record(label string)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(label string)

func (f RecorderFunc) Record(label string) { f(label) }

// pasteOffset is the fixed positional offset applied to duplicated and
// pasted objects.
const pasteOffset = 10.0

// Store holds the canonical map of shape objects, the selection and the
// active tool. All mutations run synchronously in the caller's goroutine;
// every mutating operation records a history entry, which is a hard
// contract for undo correctness.
type Store struct {
	objects    map[string]*ShapeObject
	selected   []string
	activeTool Tool
	clipboard  []*ShapeObject

	recorder Recorder
	now      func() time.Time
	newID    func() string
	author   string
}

// NewStore creates an empty document store. A nil recorder disables history
// recording (used by throwaway stores in tests).
func NewStore(recorder Recorder) *Store {
	return &Store{
		objects:    make(map[string]*ShapeObject),
		activeTool: ToolSelect,
		recorder:   recorder,
		now:        time.Now,
		newID:      ids.NewObjectID,
		author:     "local",
	}
}

// SetClock overrides the timestamp source.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// SetIDSource overrides the object id generator.
func (s *Store) SetIDSource(newID func() string) { s.newID = newID }

// SetAuthor sets the createdBy tag stamped on new objects.
func (s *Store) SetAuthor(author string) { s.author = author }

func (s *Store) record(label string) {
	if s.recorder != nil {
		s.recorder.Record(label)
	}
}

// Get returns the live object for an id. The caller must not mutate it;
// use UpdateObject instead.
func (s *Store) Get(id string) (*ShapeObject, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// Len returns the number of objects in the document.
func (s *Store) Len() int { return len(s.objects) }

// IDs returns all object ids (unordered).
func (s *Store) IDs() []string {
	out := make([]string, 0, len(s.objects))
	for id := range s.objects {
		out = append(out, id)
	}
	return out
}

// ForEach visits every live object. The callback must not mutate the store.
func (s *Store) ForEach(fn func(o *ShapeObject)) {
	for _, o := range s.objects {
		fn(o)
	}
}

// ActiveTool returns the current tool.
func (s *Store) ActiveTool() Tool { return s.activeTool }

// SetActiveTool switches the tool. Tool changes are not undoable.
func (s *Store) SetActiveTool(t Tool) { s.activeTool = t }

// AddObject inserts a shape, assigning its id and timestamps, and returns
// the id. Parameter blocks are reconciled against the envelope first.
func (s *Store) AddObject(o *ShapeObject) string {
	obj := o.Clone()
	if obj.ID == "" {
		obj.ID = s.newID()
	}
	if obj.Opacity == 0 {
		obj.Opacity = 1
	}
	ts := nowRFC3339(s.now)
	obj.CreatedAt = ts
	obj.UpdatedAt = ts
	if obj.CreatedBy == "" {
		obj.CreatedBy = s.author
	}
	obj.ReconcileParams()

	s.objects[obj.ID] = obj
	s.record(fmt.Sprintf("add %s", obj.Type))
	return obj.ID
}

// Patch is a partial update of a shape object. Nil fields are left
// untouched; parameter-block pointers replace the whole block.
type Patch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64

	Fill        *string
	Stroke      *string
	StrokeWidth *float64
	Opacity     *float64

	Text *string

	Triangle    *TriangleParams
	Star        *StarParams
	Polygon     *PolygonParams
	RoundedRect *RoundedRectParams
	Arrow       *geometry.ArrowOptions
}

// UpdateObject merges a patch into an object, bumps updatedAt and records.
// A missing id is a silent no-op: a deletion may race an in-flight update
// callback from the UI.
func (s *Store) UpdateObject(id string, p Patch) {
	o, ok := s.objects[id]
	if !ok {
		return
	}

	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil {
		o.Width = *p.Width
	}
	if p.Height != nil {
		o.Height = *p.Height
	}
	if p.Rotation != nil {
		o.Rotation = *p.Rotation
	}
	if p.Fill != nil {
		o.Fill = *p.Fill
	}
	if p.Stroke != nil {
		o.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		o.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		o.Opacity = *p.Opacity
	}
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.Triangle != nil {
		t := *p.Triangle
		o.Triangle = &t
	}
	if p.Star != nil {
		st := *p.Star
		o.Star = &st
	}
	if p.Polygon != nil {
		pg := *p.Polygon
		o.Polygon = &pg
	}
	if p.RoundedRect != nil {
		rr := *p.RoundedRect
		o.RoundedRect = &rr
	}
	if p.Arrow != nil {
		a := *p.Arrow
		o.Arrow = &a
	}

	o.ReconcileParams()
	o.UpdatedAt = nowRFC3339(s.now)
	s.record(fmt.Sprintf("update %s", o.Type))
}

// DeleteObject removes an object and prunes it from the selection. Missing
// ids are a no-op.
func (s *Store) DeleteObject(id string) {
	o, ok := s.objects[id]
	if !ok {
		return
	}
	delete(s.objects, id)
	s.selected = removeID(s.selected, id)
	s.record(fmt.Sprintf("delete %s", o.Type))
}

// SelectObjects replaces the selection, de-duplicating while preserving
// order (the first id is the primary selection). Unknown ids are dropped.
func (s *Store) SelectObjects(idList []string) {
	seen := make(map[string]bool, len(idList))
	next := make([]string, 0, len(idList))
	for _, id := range idList {
		if seen[id] {
			continue
		}
		if _, ok := s.objects[id]; !ok {
			continue
		}
		seen[id] = true
		next = append(next, id)
	}
	s.selected = next
	s.record("select")
}

// SelectAll selects every object.
func (s *Store) SelectAll() {
	s.SelectObjects(s.IDs())
}

// Selection returns a copy of the ordered selected ids.
func (s *Store) Selection() []string {
	return append([]string(nil), s.selected...)
}

// PrimarySelection returns the first selected id, or "".
func (s *Store) PrimarySelection() string {
	if len(s.selected) == 0 {
		return ""
	}
	return s.selected[0]
}

// DeleteSelected removes every selected object.
func (s *Store) DeleteSelected() {
	if len(s.selected) == 0 {
		return
	}
	for _, id := range s.selected {
		delete(s.objects, id)
	}
	n := len(s.selected)
	s.selected = nil
	s.record(fmt.Sprintf("delete %d objects", n))
}

// DuplicateSelected clones each selected object with a fixed positional
// offset and selects the new set. Returns the new ids.
func (s *Store) DuplicateSelected() []string {
	newIDs := s.cloneInto(s.selectedObjects())
	if len(newIDs) == 0 {
		return nil
	}
	s.selected = newIDs
	s.record(fmt.Sprintf("duplicate %d objects", len(newIDs)))
	return newIDs
}

// CopySelected snapshots the selected objects onto the internal clipboard.
func (s *Store) CopySelected() {
	s.clipboard = s.clipboard[:0]
	for _, o := range s.selectedObjects() {
		s.clipboard = append(s.clipboard, o.Clone())
	}
}

// Paste inserts the clipboard contents with the paste offset and selects
// the pasted objects. Returns the new ids.
func (s *Store) Paste() []string {
	newIDs := s.cloneInto(s.clipboard)
	if len(newIDs) == 0 {
		return nil
	}
	s.selected = newIDs
	s.record(fmt.Sprintf("paste %d objects", len(newIDs)))
	return newIDs
}

func (s *Store) selectedObjects() []*ShapeObject {
	out := make([]*ShapeObject, 0, len(s.selected))
	for _, id := range s.selected {
		if o, ok := s.objects[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) cloneInto(src []*ShapeObject) []string {
	ts := nowRFC3339(s.now)
	newIDs := make([]string, 0, len(src))
	for _, o := range src {
		c := o.Clone()
		c.ID = s.newID()
		c.X += pasteOffset
		c.Y += pasteOffset
		c.CreatedAt = ts
		c.UpdatedAt = ts
		c.CreatedBy = s.author
		s.objects[c.ID] = c
		newIDs = append(newIDs, c.ID)
	}
	return newIDs
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// --- History slice integration ---

func (s *Store) snapshotObjects() map[string]*ShapeObject {
	out := make(map[string]*ShapeObject, len(s.objects))
	for id, o := range s.objects {
		out[id] = o.Clone()
	}
	return out
}

// CaptureObjects deep-clones the object map for a history snapshot.
func (s *Store) CaptureObjects() interface{} {
	return s.snapshotObjects()
}

// ApplyObjects restores the object map from a history snapshot without
// recording.
func (s *Store) ApplyObjects(v interface{}) {
	snap, ok := v.(map[string]*ShapeObject)
	if !ok {
		return
	}
	s.objects = make(map[string]*ShapeObject, len(snap))
	for id, o := range snap {
		s.objects[id] = o.Clone()
	}
	// Drop selected ids that no longer resolve.
	kept := s.selected[:0]
	for _, id := range s.selected {
		if _, ok := s.objects[id]; ok {
			kept = append(kept, id)
		}
	}
	s.selected = kept
}

// CaptureSelection copies the selection for a history snapshot.
func (s *Store) CaptureSelection() interface{} {
	return s.Selection()
}

// ApplySelection restores the selection from a history snapshot without
// recording.
func (s *Store) ApplySelection(v interface{}) {
	snap, ok := v.([]string)
	if !ok {
		return
	}
	s.selected = append([]string(nil), snap...)
}
