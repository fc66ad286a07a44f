package session

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Nimsalcade/FigmaClone/internal/editor"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ed := editor.New(editor.Options{Logger: log})
	t.Cleanup(ed.Close)
	return NewSession("sess_test", ed, nil, log)
}

// recv pops the next queued outbound message. Replies are buffered, so
// tests can drive handle directly without a socket.
func recv(t *testing.T, s *Session) *Message {
	t.Helper()
	select {
	case data := <-s.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	default:
		t.Fatal("no outbound message queued")
		return nil
	}
}

func drain(s *Session) {
	for {
		select {
		case <-s.send:
		default:
			return
		}
	}
}

func send(t *testing.T, s *Session, msgType string, seq int64, payload interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	s.handle(&Message{Type: msgType, Seq: seq, Payload: raw})
}

func decodeState(t *testing.T, msg *Message) StatePayload {
	t.Helper()
	require.Equal(t, TypeState, msg.Type)
	var st StatePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &st))
	return st
}

func decodeFrame(t *testing.T, msg *Message) []map[string]interface{} {
	t.Helper()
	require.Equal(t, TypeFrame, msg.Type)
	var cmds []map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &cmds))
	return cmds
}

func TestSessionDrawRectangle(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeToolSet, 0, ToolPayload{Tool: "rectangle"})
	st := decodeState(t, recv(t, s))
	require.Equal(t, "rectangle", st.Tool)

	send(t, s, TypePointerDown, 0, PointerPayload{X: 100, Y: 100})
	drain(s)
	send(t, s, TypePointerMove, 0, PointerPayload{X: 200, Y: 180})
	drain(s)
	send(t, s, TypePointerUp, 0, PointerPayload{X: 200, Y: 180})

	st = decodeState(t, recv(t, s))
	require.NotEmpty(t, st.Created)
	require.True(t, st.CanUndo)

	cmds := decodeFrame(t, recv(t, s))
	require.Len(t, cmds, 1)
	require.Equal(t, st.Created, cmds[0]["objectId"])
}

func TestSessionUndoRedo(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeToolSet, 0, ToolPayload{Tool: "ellipse"})
	send(t, s, TypePointerDown, 0, PointerPayload{X: 0, Y: 0})
	send(t, s, TypePointerUp, 0, PointerPayload{X: 50, Y: 50})
	drain(s)

	send(t, s, TypeUndo, 0, nil)
	st := decodeState(t, recv(t, s))
	require.False(t, st.CanUndo)
	require.True(t, st.CanRedo)
	require.Empty(t, decodeFrame(t, recv(t, s)))

	send(t, s, TypeRedo, 0, nil)
	st = decodeState(t, recv(t, s))
	require.True(t, st.CanUndo)
	require.False(t, st.CanRedo)
	require.Len(t, decodeFrame(t, recv(t, s)), 1)
}

func TestSessionSelectionCommands(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeDocSample, 0, nil)
	drain(s)

	send(t, s, TypeSelectAll, 0, nil)
	st := decodeState(t, recv(t, s))
	require.Len(t, st.Selection, 8)

	send(t, s, TypeDelete, 0, nil)
	st = decodeState(t, recv(t, s))
	require.Empty(t, st.Selection)
	require.Empty(t, decodeFrame(t, recv(t, s)))
}

func TestSessionDocumentRoundTrip(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeToolSet, 0, ToolPayload{Tool: "rectangle"})
	send(t, s, TypePointerDown, 0, PointerPayload{X: 10, Y: 10})
	send(t, s, TypePointerUp, 0, PointerPayload{X: 90, Y: 90})
	drain(s)

	send(t, s, TypeDocGet, 3, nil)
	doc := recv(t, s)
	require.Equal(t, TypeDocument, doc.Type)
	require.Equal(t, int64(3), doc.Seq)

	send(t, s, TypeDocLoad, 4, DocumentPayload{Document: doc.Payload})
	decodeState(t, recv(t, s))
	require.Len(t, decodeFrame(t, recv(t, s)), 1)
}

func TestSessionDocLoadInvalid(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeDocLoad, 9, DocumentPayload{Document: json.RawMessage(`[1,2]`)})
	msg := recv(t, s)
	require.Equal(t, TypeError, msg.Type)
	require.Equal(t, int64(9), msg.Seq)
}

func TestSessionViewportCommands(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeViewPan, 0, PanPayload{DX: 40, DY: 20})
	st := decodeState(t, recv(t, s))

	var view struct {
		X, Y, Scale float64
	}
	require.NoError(t, json.Unmarshal(st.Viewport, &view))
	require.Equal(t, 40.0, view.X)
	require.Equal(t, 20.0, view.Y)

	send(t, s, TypeViewZoom, 0, ZoomPayload{Factor: 2, X: 40, Y: 20})
	st = decodeState(t, recv(t, s))
	require.NoError(t, json.Unmarshal(st.Viewport, &view))
	require.Equal(t, 2.0, view.Scale)
}

func TestSessionExportSpec(t *testing.T) {
	s := newTestSession(t)

	send(t, s, TypeExportSpec, 5, ExportSpecPayload{Width: 800, Height: 600})
	msg := recv(t, s)
	require.Equal(t, TypeCapture, msg.Type)
	require.Equal(t, int64(5), msg.Seq)

	var spec struct {
		Width, Height, PixelRatio float64
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &spec))
	require.Equal(t, 800.0, spec.Width)
	require.Equal(t, 1.0, spec.PixelRatio)
}

func TestSessionUnknownType(t *testing.T) {
	s := newTestSession(t)

	s.handle(&Message{Type: "nope", Seq: 7})
	msg := recv(t, s)
	require.Equal(t, TypeError, msg.Type)
	require.Equal(t, int64(7), msg.Seq)

	var e ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &e))
	require.Contains(t, e.Message, "unknown message type")
}

func TestSessionInvalidPayload(t *testing.T) {
	s := newTestSession(t)

	s.handle(&Message{Type: TypePointerDown, Seq: 2, Payload: json.RawMessage(`"x"`)})
	msg := recv(t, s)
	require.Equal(t, TypeError, msg.Type)

	var e ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &e))
	require.Contains(t, e.Message, "invalid payload")
}

func TestManagerOriginParsing(t *testing.T) {
	m := NewManager("http://localhost:5173, https://app.example.com", 25, nil)
	require.Equal(t, []string{"localhost:5173", "app.example.com"}, m.origins)
	require.Equal(t, 25, m.historyLimit)
	require.Zero(t, m.Len())
}
