// Package editor is the facade the transports drive: it wires the document
// store, history engine, viewport, scene synchronizer and draw-gesture
// controller into one headless editing session. All construction-time
// wiring is explicit; there are no package-level singletons.
package editor

import (
	"encoding/json"
	"log/slog"

	"github.com/Nimsalcade/FigmaClone/internal/document"
	"github.com/Nimsalcade/FigmaClone/internal/geometry"
	"github.com/Nimsalcade/FigmaClone/internal/history"
	"github.com/Nimsalcade/FigmaClone/internal/scene"
	"github.com/Nimsalcade/FigmaClone/internal/tool"
	"github.com/Nimsalcade/FigmaClone/internal/viewport"
)

// Editor owns one editing session. It is not safe for concurrent use; the
// transports serialize all calls onto a single goroutine, matching the
// single execution context the interaction model assumes.
type Editor struct {
	log *slog.Logger

	store *document.Store
	hist  *history.Engine
	view  *viewport.Viewport
	sync  *scene.Synchronizer
	tools *tool.Controller

	// Scene graph needs a rebuild before the next query.
	dirty bool
}

// Options configures construction. Zero values get sensible defaults.
type Options struct {
	Logger *slog.Logger
	Frames viewport.FrameScheduler
}

// New builds a fully wired editor: the store records every mutation into
// the history engine, the "objects", "selection" and "canvas" slices are
// registered, and the initial snapshot is written so the first user edit
// is undoable back to the empty document.
func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Editor{log: log}
	e.hist = history.NewEngine()
	e.store = document.NewStore(document.RecorderFunc(func(label string) {
		e.dirty = true
		e.hist.Record(label)
	}))

	e.hist.RegisterSlice("objects", history.Slice{
		Capture: e.store.CaptureObjects,
		Apply:   e.store.ApplyObjects,
	})
	e.hist.RegisterSlice("selection", history.Slice{
		Capture: e.store.CaptureSelection,
		Apply:   e.store.ApplySelection,
	})

	e.view = viewport.New(opts.Frames)
	e.view.RegisterHistory(e.hist)

	e.sync = scene.NewSynchronizer(e.store, scene.NewGraph())
	e.tools = tool.NewController(e.store, e.sync)

	e.hist.OnAction(func(a history.Action) {
		e.dirty = true
		log.Debug("history", "kind", a.Kind, "label", a.Label)
	})

	e.hist.Record("initial")
	return e
}

// Store exposes the document store for direct manipulation (tests, wasm
// bindings for property panels).
func (e *Editor) Store() *document.Store { return e.store }

// History exposes the history engine.
func (e *Editor) History() *history.Engine { return e.hist }

// Viewport exposes the camera store.
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// --- Commands ---

// SetTool switches the active tool, canceling any gesture in progress so a
// tool change mid-drag cannot commit with the wrong kind.
func (e *Editor) SetTool(name string) {
	e.tools.Cancel()
	e.store.SetActiveTool(document.Tool(name))
}

// ActiveTool returns the current tool name.
func (e *Editor) ActiveTool() string { return string(e.store.ActiveTool()) }

// PointerDown forwards a pointer press in screen coordinates. With a
// drawing tool active it starts a gesture; with the select tool it
// resolves the hit and updates the selection.
func (e *Editor) PointerDown(sx, sy float64, shift bool) {
	wx, wy := e.view.ToWorld(sx, sy)
	if document.IsDrawingTool(e.store.ActiveTool()) {
		e.tools.PointerDown(geometry.Point{X: wx, Y: wy}, shift)
		return
	}
	if e.store.ActiveTool() == document.ToolSelect {
		e.selectAt(wx, wy, shift)
	}
}

// PointerMove forwards a pointer move in screen coordinates.
func (e *Editor) PointerMove(sx, sy float64, shift bool) {
	wx, wy := e.view.ToWorld(sx, sy)
	e.tools.PointerMove(geometry.Point{X: wx, Y: wy}, shift)
}

// PointerUp forwards a pointer release and returns the id of the object a
// completed draw gesture created, or "".
func (e *Editor) PointerUp(sx, sy float64, shift bool) string {
	wx, wy := e.view.ToWorld(sx, sy)
	return e.tools.PointerUp(geometry.Point{X: wx, Y: wy}, shift)
}

// selectAt resolves a click into a selection change. Shift toggles the hit
// object in and out of the selection; a plain click replaces it; clicking
// empty canvas clears it.
func (e *Editor) selectAt(wx, wy float64, shift bool) {
	e.ensureSynced()
	hit := scene.HitTest(e.sync.Graph(), wx, wy)

	switch {
	case hit == "" && !shift:
		e.store.SelectObjects(nil)
	case hit == "":
		// Shift-click on empty canvas keeps the selection.
	case shift:
		current := e.store.Selection()
		toggled := make([]string, 0, len(current)+1)
		found := false
		for _, id := range current {
			if id == hit {
				found = true
				continue
			}
			toggled = append(toggled, id)
		}
		if !found {
			toggled = append(toggled, hit)
		}
		e.store.SelectObjects(toggled)
	default:
		e.store.SelectObjects([]string{hit})
	}
}

// Select replaces the selection.
func (e *Editor) Select(ids []string) { e.store.SelectObjects(ids) }

// SelectAll selects every object.
func (e *Editor) SelectAll() { e.store.SelectAll() }

// DeleteSelected removes the selected objects.
func (e *Editor) DeleteSelected() { e.store.DeleteSelected() }

// DuplicateSelected clones the selection with a small offset.
func (e *Editor) DuplicateSelected() []string { return e.store.DuplicateSelected() }

// CopySelected fills the clipboard from the selection.
func (e *Editor) CopySelected() { e.store.CopySelected() }

// Paste inserts the clipboard contents.
func (e *Editor) Paste() []string { return e.store.Paste() }

// Undo steps history back one entry.
func (e *Editor) Undo() { e.hist.Undo() }

// Redo steps history forward one entry.
func (e *Editor) Redo() { e.hist.Redo() }

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// --- Queries ---

// ensureSynced rebuilds the scene graph if any mutation happened since the
// last query.
func (e *Editor) ensureSynced() {
	if e.dirty {
		e.sync.Sync()
		e.dirty = false
	}
}

// Render reconciles the scene graph and returns the draw-command buffer as
// JSON, previews included.
func (e *Editor) Render() string {
	e.ensureSynced()
	out, err := scene.DrawCommandsToJSON(scene.CompileDrawCommands(e.sync.Graph()))
	if err != nil {
		e.log.Error("compile draw commands", "error", err)
		return "[]"
	}
	return out
}

// HitTest returns the topmost object id at a screen point, or "".
func (e *Editor) HitTest(sx, sy float64) string {
	e.ensureSynced()
	wx, wy := e.view.ToWorld(sx, sy)
	return scene.HitTest(e.sync.Graph(), wx, wy)
}

// Selection returns the selected ids.
func (e *Editor) Selection() []string { return e.store.Selection() }

// SelectionBounds returns the world-space box of the selection as JSON.
func (e *Editor) SelectionBounds() string {
	e.ensureSynced()
	bounds := scene.SelectionBounds(e.sync.Graph(), e.store.Selection())
	data, _ := json.Marshal(bounds)
	return string(data)
}

// ViewportState returns the camera state as JSON.
func (e *Editor) ViewportState() string {
	data, _ := json.Marshal(e.view.State())
	return string(data)
}

// FitToContent frames all objects inside the given screen size.
func (e *Editor) FitToContent(screenW, screenH float64) {
	e.ensureSynced()
	var all []string
	e.store.ForEach(func(o *document.ShapeObject) { all = append(all, o.ID) })
	e.view.FitToContent(scene.SelectionBounds(e.sync.Graph(), all), screenW, screenH)
}

// GetDocument serializes the document.
func (e *Editor) GetDocument() (string, error) {
	data, err := e.store.MarshalDocument()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadDocument replaces the document from JSON.
func (e *Editor) LoadDocument(data string) error {
	if err := e.store.LoadDocument([]byte(data)); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// LoadSample fills the document with one of each headline shape.
func (e *Editor) LoadSample() {
	e.store.LoadSample()
	e.dirty = true
}

// Close tears the session down: any in-flight gesture is dropped and the
// viewport's pending frame flush is canceled.
func (e *Editor) Close() {
	e.tools.Cancel()
	e.view.Close()
}
