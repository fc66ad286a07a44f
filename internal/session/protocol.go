package session

import "encoding/json"

// Message is the wire envelope in both directions. Replies echo the Seq of
// the command they answer; unsolicited pushes carry Seq 0.
type Message struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Command types (frontend → session).
const (
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeToolSet     = "tool.set"
	TypeUndo        = "undo"
	TypeRedo        = "redo"
	TypeSelect      = "select"
	TypeSelectAll   = "select.all"
	TypeDelete      = "selection.delete"
	TypeDuplicate   = "selection.duplicate"
	TypeCopy        = "clipboard.copy"
	TypePaste       = "clipboard.paste"
	TypeRender      = "render"
	TypeDocGet      = "document.get"
	TypeDocLoad     = "document.load"
	TypeDocSample   = "document.sample"
	TypeViewPan     = "viewport.pan"
	TypeViewZoom    = "viewport.zoom"
	TypeViewFit     = "viewport.fit"
	TypeViewGrid    = "viewport.grid"
	TypeExportSpec  = "export.spec"
)

// Reply types (session → frontend).
const (
	TypeWelcome  = "welcome"
	TypeError    = "error"
	TypeState    = "state"
	TypeFrame    = "frame"
	TypeDocument = "document"
	TypeCapture  = "capture"
)

// PointerPayload carries a pointer event in screen coordinates.
type PointerPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shift bool    `json:"shift,omitempty"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

type SelectPayload struct {
	IDs []string `json:"ids"`
}

type DocumentPayload struct {
	Document json.RawMessage `json:"document"`
}

type PanPayload struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	// Gesture phase: "begin", "move" (default) or "end".
	Phase string `json:"phase,omitempty"`
}

type ZoomPayload struct {
	Factor float64 `json:"factor"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type FitPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type GridPayload struct {
	Show bool `json:"show"`
}

type ExportSpecPayload struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixelRatio,omitempty"`
	Background string  `json:"background,omitempty"`
}

// WelcomePayload identifies the session to the frontend.
type WelcomePayload struct {
	SessionID string `json:"sessionId"`
}

// StatePayload is pushed after every state-changing command.
type StatePayload struct {
	Tool      string          `json:"tool"`
	Selection []string        `json:"selection"`
	CanUndo   bool            `json:"canUndo"`
	CanRedo   bool            `json:"canRedo"`
	Viewport  json.RawMessage `json:"viewport"`
	Bounds    json.RawMessage `json:"selectionBounds"`
	// Id of the object the last gesture created, if any.
	Created string `json:"created,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
