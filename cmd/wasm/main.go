//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/Nimsalcade/FigmaClone/internal/editor"
)

var ed *editor.Editor

func main() {
	ed = editor.New(editor.Options{})

	// Create the editor API object
	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("setSelection", js.FuncOf(setSelection))
	api.Set("selectAll", js.FuncOf(selectAll))
	api.Set("deleteSelected", js.FuncOf(deleteSelected))
	api.Set("duplicateSelected", js.FuncOf(duplicateSelected))
	api.Set("copySelected", js.FuncOf(copySelected))
	api.Set("paste", js.FuncOf(paste))
	api.Set("undo", js.FuncOf(undo))
	api.Set("redo", js.FuncOf(redo))
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("pan", js.FuncOf(pan))
	api.Set("beginPan", js.FuncOf(beginPan))
	api.Set("endPan", js.FuncOf(endPan))
	api.Set("zoomAt", js.FuncOf(zoomAt))
	api.Set("setShowGrid", js.FuncOf(setShowGrid))
	api.Set("fitToContent", js.FuncOf(fitToContent))

	// --- Queries (frontend ← backend) ---
	api.Set("render", js.FuncOf(render))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getActiveTool", js.FuncOf(getActiveTool))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getViewport", js.FuncOf(getViewport))
	api.Set("getDocument", js.FuncOf(getDocument))
	api.Set("canUndo", js.FuncOf(canUndo))
	api.Set("canRedo", js.FuncOf(canRedo))

	// Register on global scope
	js.Global().Set("designEditor", api)

	// Signal that WASM is ready
	js.Global().Set("designEditorReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// pointerArgs pulls (x, y, shift) out of a JS call; shift is optional.
func pointerArgs(args []js.Value) (float64, float64, bool, bool) {
	if len(args) < 2 {
		return 0, 0, false, false
	}
	shift := false
	if len(args) > 2 && args[2].Type() == js.TypeBoolean {
		shift = args[2].Bool()
	}
	return args[0].Float(), args[1].Float(), shift, true
}

// --- Command Handlers ---

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetTool(args[0].String())
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	x, y, shift, ok := pointerArgs(args)
	if ok {
		ed.PointerDown(x, y, shift)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	x, y, shift, ok := pointerArgs(args)
	if ok {
		ed.PointerMove(x, y, shift)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	x, y, shift, ok := pointerArgs(args)
	if !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.PointerUp(x, y, shift))
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		ed.Select(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	ed.Select(ids)
	return nil
}

func selectAll(this js.Value, args []js.Value) interface{} {
	ed.SelectAll()
	return nil
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	ed.DeleteSelected()
	return nil
}

func duplicateSelected(this js.Value, args []js.Value) interface{} {
	ids := ed.DuplicateSelected()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func copySelected(this js.Value, args []js.Value) interface{} {
	ed.CopySelected()
	return nil
}

func paste(this js.Value, args []js.Value) interface{} {
	ids := ed.Paste()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func undo(this js.Value, args []js.Value) interface{} {
	ed.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	ed.Redo()
	return nil
}

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	if err := ed.LoadDocument(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	ed.LoadSample()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.Viewport().Pan(args[0].Float(), args[1].Float())
	return nil
}

func beginPan(this js.Value, args []js.Value) interface{} {
	ed.Viewport().BeginPan()
	return nil
}

func endPan(this js.Value, args []js.Value) interface{} {
	ed.Viewport().EndPan()
	return nil
}

func zoomAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	ed.Viewport().ZoomAt(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func setShowGrid(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.Viewport().SetShowGrid(args[0].Bool())
	return nil
}

func fitToContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.FitToContent(args[0].Float(), args[1].Float())
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.HitTest(args[0].Float(), args[1].Float()))
}

func getActiveTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.ActiveTool())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	ids := ed.Selection()
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(out)
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.SelectionBounds())
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.ViewportState())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	doc, err := ed.GetDocument()
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(doc)
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.CanRedo())
}
