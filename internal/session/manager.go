package session

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/Nimsalcade/FigmaClone/internal/editor"
	"github.com/Nimsalcade/FigmaClone/internal/ids"
)

// Manager accepts WebSocket connections and tracks the live sessions so
// shutdown can close them cleanly. Sessions share nothing: each gets its
// own editor and its own goroutine.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	origins      []string
	historyLimit int
	log          *slog.Logger
}

// NewManager builds a manager. allowedOrigins is the comma-separated
// origin list from config; historyLimit overrides the per-session undo
// depth when positive.
func NewManager(allowedOrigins string, historyLimit int, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		if o != "" {
			origins = append(origins, o)
		}
	}

	return &Manager{
		sessions:     make(map[string]*Session),
		origins:      origins,
		historyLimit: historyLimit,
		log:          log,
	}
}

// HandleWebSocket upgrades the request and runs the session until the
// connection drops.
func (m *Manager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: m.origins,
	})
	if err != nil {
		m.log.Error("websocket accept", "error", err)
		return
	}

	id := ids.NewSessionID()
	ed := editor.New(editor.Options{Logger: m.log.With("session", id)})
	// Anonymous author tag for objects created in this session
	ed.Store().SetAuthor("anon-" + uuid.New().String()[:8])
	if m.historyLimit > 0 {
		ed.History().SetMaxEntries(m.historyLimit)
	}

	sess := NewSession(id, ed, conn, m.log)
	m.add(sess)
	defer m.remove(sess)

	ctx := r.Context()
	go sess.WritePump(ctx)
	go sess.Run(ctx)
	sess.ReadPump(ctx)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll tells every session the server is going away. Called on
// graceful shutdown before the HTTP listener stops.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	m.log.Info("sessions closed", "count", len(sessions))
}

func (m *Manager) add(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.log.Info("session started", "session", s.ID)
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
	m.log.Info("session ended", "session", s.ID)
}
