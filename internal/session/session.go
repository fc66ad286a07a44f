// Package session runs single-user editing sessions over WebSocket. Each
// connection gets its own editor; all commands for a session are handled
// on one goroutine so editor mutations never interleave.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/Nimsalcade/FigmaClone/internal/editor"
	"github.com/Nimsalcade/FigmaClone/internal/export"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 512 * 1024
)

// Session owns one connection and one editor. The read pump feeds inbound
// commands into the session goroutine; replies go out through the write
// pump.
type Session struct {
	ID string

	editor *editor.Editor
	conn   *websocket.Conn

	inbound chan *Message
	send    chan []byte

	log *slog.Logger
}

// NewSession binds a connection to a fresh editor.
func NewSession(id string, ed *editor.Editor, conn *websocket.Conn, log *slog.Logger) *Session {
	return &Session{
		ID:      id,
		editor:  ed,
		conn:    conn,
		inbound: make(chan *Message, 64),
		send:    make(chan []byte, 256),
		log:     log.With("session", id),
	}
}

// Run is the session loop: every command executes here, in order, against
// the session's editor. Exits when the read pump closes the inbound
// channel or the context is canceled.
func (s *Session) Run(ctx context.Context) {
	defer s.editor.Close()

	s.reply(TypeWelcome, 0, WelcomePayload{SessionID: s.ID})
	s.pushState("")

	for {
		select {
		case msg, ok := <-s.inbound:
			if !ok {
				return
			}
			s.handle(msg)
		case <-ctx.Done():
			return
		}
	}
}

// handle dispatches one command. Unknown types get an error reply rather
// than closing the connection.
func (s *Session) handle(msg *Message) {
	switch msg.Type {
	case TypePointerDown:
		var p PointerPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.PointerDown(p.X, p.Y, p.Shift)
		s.pushState("")
		s.pushFrame()

	case TypePointerMove:
		var p PointerPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.PointerMove(p.X, p.Y, p.Shift)
		s.pushFrame()

	case TypePointerUp:
		var p PointerPayload
		if !s.decode(msg, &p) {
			return
		}
		created := s.editor.PointerUp(p.X, p.Y, p.Shift)
		s.pushState(created)
		s.pushFrame()

	case TypeToolSet:
		var p ToolPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.SetTool(p.Tool)
		s.pushState("")

	case TypeUndo:
		s.editor.Undo()
		s.pushState("")
		s.pushFrame()

	case TypeRedo:
		s.editor.Redo()
		s.pushState("")
		s.pushFrame()

	case TypeSelect:
		var p SelectPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Select(p.IDs)
		s.pushState("")

	case TypeSelectAll:
		s.editor.SelectAll()
		s.pushState("")

	case TypeDelete:
		s.editor.DeleteSelected()
		s.pushState("")
		s.pushFrame()

	case TypeDuplicate:
		s.editor.DuplicateSelected()
		s.pushState("")
		s.pushFrame()

	case TypeCopy:
		s.editor.CopySelected()
		s.pushState("")

	case TypePaste:
		s.editor.Paste()
		s.pushState("")
		s.pushFrame()

	case TypeRender:
		s.pushFrame()

	case TypeDocGet:
		doc, err := s.editor.GetDocument()
		if err != nil {
			s.fail(msg.Seq, err)
			return
		}
		s.reply(TypeDocument, msg.Seq, json.RawMessage(doc))

	case TypeDocLoad:
		var p DocumentPayload
		if !s.decode(msg, &p) {
			return
		}
		if err := s.editor.LoadDocument(string(p.Document)); err != nil {
			s.fail(msg.Seq, err)
			return
		}
		s.pushState("")
		s.pushFrame()

	case TypeDocSample:
		s.editor.LoadSample()
		s.pushState("")
		s.pushFrame()

	case TypeViewPan:
		var p PanPayload
		if !s.decode(msg, &p) {
			return
		}
		switch p.Phase {
		case "begin":
			s.editor.Viewport().BeginPan()
			s.editor.Viewport().Pan(p.DX, p.DY)
		case "end":
			s.editor.Viewport().Pan(p.DX, p.DY)
			s.editor.Viewport().EndPan()
		default:
			s.editor.Viewport().Pan(p.DX, p.DY)
		}
		s.pushState("")

	case TypeViewZoom:
		var p ZoomPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Viewport().ZoomAt(p.Factor, p.X, p.Y)
		s.pushState("")

	case TypeViewFit:
		var p FitPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.FitToContent(p.Width, p.Height)
		s.pushState("")

	case TypeViewGrid:
		var p GridPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Viewport().SetShowGrid(p.Show)
		s.pushState("")

	case TypeExportSpec:
		var p ExportSpecPayload
		if !s.decode(msg, &p) {
			return
		}
		spec, err := export.NewCaptureSpec(s.editor.Viewport().Matrix(), p.Width, p.Height, p.PixelRatio, p.Background)
		if err != nil {
			s.fail(msg.Seq, err)
			return
		}
		s.reply(TypeCapture, msg.Seq, spec)

	default:
		s.log.Warn("unknown message type", "type", msg.Type)
		s.reply(TypeError, msg.Seq, ErrorPayload{Message: "unknown message type: " + msg.Type})
	}
}

// pushFrame sends the current draw-command buffer.
func (s *Session) pushFrame() {
	s.reply(TypeFrame, 0, json.RawMessage(s.editor.Render()))
}

// pushState sends the editor state summary.
func (s *Session) pushState(created string) {
	s.reply(TypeState, 0, StatePayload{
		Tool:      s.editor.ActiveTool(),
		Selection: s.editor.Selection(),
		CanUndo:   s.editor.CanUndo(),
		CanRedo:   s.editor.CanRedo(),
		Viewport:  json.RawMessage(s.editor.ViewportState()),
		Bounds:    json.RawMessage(s.editor.SelectionBounds()),
		Created:   created,
	})
}

func (s *Session) decode(msg *Message, into interface{}) bool {
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		s.log.Warn("invalid payload", "type", msg.Type, "error", err)
		s.reply(TypeError, msg.Seq, ErrorPayload{Message: "invalid payload for " + msg.Type})
		return false
	}
	return true
}

func (s *Session) fail(seq int64, err error) {
	s.log.Warn("command failed", "error", err)
	s.reply(TypeError, seq, ErrorPayload{Message: err.Error()})
}

func (s *Session) reply(msgType string, seq int64, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal reply", "type", msgType, "error", err)
		return
	}
	data, err := json.Marshal(Message{Type: msgType, Seq: seq, Payload: raw})
	if err != nil {
		s.log.Error("marshal envelope", "type", msgType, "error", err)
		return
	}

	select {
	case s.send <- data:
	default:
		s.log.Warn("send buffer full, dropping message", "type", msgType)
	}
}

// ReadPump reads commands off the socket into the session loop. Returns on
// close or error; closing inbound ends Run.
func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		close(s.inbound)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			s.log.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warn("invalid message", "error", err)
			continue
		}

		select {
		case s.inbound <- &msg:
		case <-ctx.Done():
			return
		}
	}
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case data, ok := <-s.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.log.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
