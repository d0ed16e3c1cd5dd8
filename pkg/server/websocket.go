package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/loomkit/loom/pkg/middleware"
)

// Frame is one message pushed to a live session.
type Frame struct {
	// Type discriminates the frame: "fragment" carries markup for a
	// placeholder, "reload" asks the client to refetch the page.
	Type string `json:"type"`

	// ID is the placeholder identifier a fragment frame attaches to.
	ID string `json:"id,omitempty"`

	// HTML is the fragment markup.
	HTML string `json:"html,omitempty"`
}

// FragmentFrame builds a frame delivering deferred markup to a live
// client.
func FragmentFrame(id, html string) Frame {
	return Frame{Type: "fragment", ID: id, HTML: html}
}

// Session is one live WebSocket connection.
type Session struct {
	id   uint64
	conn *websocket.Conn
	cfg  *Config
	log  *slog.Logger

	send chan Frame
	done chan struct{}
	once sync.Once
}

// ID returns the session's hub-unique identifier.
func (s *Session) ID() uint64 {
	return s.id
}

// Send queues a frame for delivery. Returns false when the session is
// closed or its send buffer is full.
func (s *Session) Send(frame Frame) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// Close terminates the session. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// writeLoop serializes all writes to the connection: queued frames and
// heartbeat pings.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case frame := <-s.send:
			payload, err := json.Marshal(frame)
			if err != nil {
				s.log.Error("frame marshal failed", "session", s.id, "err", err)
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				middleware.RecordWebSocketError("write")
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				middleware.RecordWebSocketError("ping")
				return
			}

		case <-s.done:
			return
		}
	}
}

// readLoop consumes client messages. Live sessions are push-only, so
// inbound traffic is limited to control frames; anything else is drained
// to keep pong handling alive.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(64 * 1024)
	s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				middleware.RecordWebSocketError("read")
			}
			return
		}
	}
}

// Hub tracks live sessions and fans frames out to them.
type Hub struct {
	cfg *Config
	log *slog.Logger

	mu       sync.RWMutex
	sessions map[uint64]*Session
	nextID   atomic.Uint64
}

func newHub(cfg *Config, log *slog.Logger) *Hub {
	return &Hub{
		cfg:      cfg,
		log:      log,
		sessions: make(map[uint64]*Session),
	}
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast sends a frame to every connected session. Sessions with full
// buffers are skipped rather than blocked on.
func (h *Hub) Broadcast(frame Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, session := range h.sessions {
		session.Send(frame)
	}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
	middleware.RecordSessionStart()
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	_, present := h.sessions[s.id]
	delete(h.sessions, s.id)
	h.mu.Unlock()
	if present {
		middleware.RecordSessionEnd()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// serveLive upgrades the request and runs the session loops until the
// connection drops.
func (s *Server) serveLive(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  s.cfg.ReadBufferSize,
		WriteBufferSize: s.cfg.WriteBufferSize,
		CheckOrigin:     s.cfg.CheckOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		middleware.RecordWebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	session := &Session{
		id:   s.hub.nextID.Add(1),
		conn: conn,
		cfg:  s.cfg,
		log:  s.logger,
		send: make(chan Frame, 64),
		done: make(chan struct{}),
	}

	s.hub.add(session)
	defer s.hub.remove(session)

	go session.writeLoop()
	session.readLoop()
}
