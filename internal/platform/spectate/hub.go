// Package spectate broadcasts a running snake game to websocket viewers.
//
// Hub implements runner.Renderer, so it is added next to the terminal
// renderer. Every message is a JSON object with a one-letter "t" field:
// "w" welcome, "f" frame, "c" clock, "o" game over.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/runner"
)

// Path is where viewers connect.
const Path = "/ws"

// Message types.
const (
	MsgWelcome  = "w"
	MsgFrame    = "f"
	MsgClock    = "c"
	MsgGameOver = "o"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

// WelcomeMsg is sent once on connect.
type WelcomeMsg struct {
	Type   string `json:"t"`
	ID     string `json:"id"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

// FrameMsg is one board state.
type FrameMsg struct {
	Type       string       `json:"t"`
	Tick       uint64       `json:"n"`
	State      string       `json:"s"`
	Snake      [][2]int     `json:"b"` // Head first
	Food       [2]int       `json:"f"`
	Pulse      float64      `json:"p"`
	Particles  [][3]float64 `json:"px,omitempty"` // x, y, alpha in pixels
	Score      int          `json:"sc"`
	HighScore  int          `json:"hi"`
	IntervalMs int64        `json:"iv"`
}

// ClockMsg carries the MM:SS session time.
type ClockMsg struct {
	Type    string `json:"t"`
	Elapsed string `json:"e"`
}

// GameOverMsg ends a run.
type GameOverMsg struct {
	Type      string `json:"t"`
	Score     int    `json:"sc"`
	HighScore int    `json:"hi"`
	ElapsedMs int64  `json:"ms"`
	BoardFull bool   `json:"full,omitempty"`
}

func cellPair(c core.Cell) [2]int {
	return [2]int{c.X, c.Y}
}

// NewFrameMsg converts a snapshot to its wire form.
func NewFrameMsg(snap snake.Snapshot) FrameMsg {
	msg := FrameMsg{
		Type:       MsgFrame,
		Tick:       snap.Tick,
		State:      snap.State.String(),
		Snake:      make([][2]int, len(snap.Snake)),
		Food:       cellPair(snap.Food),
		Pulse:      snap.FoodPulse,
		Score:      snap.Score,
		HighScore:  snap.HighScore,
		IntervalMs: snap.Interval.Milliseconds(),
	}
	for i, c := range snap.Snake {
		msg.Snake[i] = cellPair(c)
	}
	for _, p := range snap.Particles {
		msg.Particles = append(msg.Particles, [3]float64{p.X, p.Y, p.Alpha})
	}
	return msg
}

var upgrader = websocket.Upgrader{
	// Viewers are read-only, so any origin may watch
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
}

// viewer is one connected spectator.
type viewer struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() {
		close(v.send)
	})
}

// Hub fans game messages out to every viewer. Slow viewers miss messages
// instead of slowing the game.
type Hub struct {
	logger *log.Logger
	board  core.Bounds

	mu      sync.Mutex
	viewers map[string]*viewer
	last    []byte // Latest frame, sent to new viewers
	closed  bool
}

// NewHub creates a hub for a board of the given size.
func NewHub(board core.Bounds, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		logger:  logger,
		board:   board,
		viewers: make(map[string]*viewer),
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// RenderFrame implements runner.Renderer.
func (h *Hub) RenderFrame(snap snake.Snapshot) {
	data, ok := h.encode(NewFrameMsg(snap))
	if !ok {
		return
	}
	h.mu.Lock()
	h.last = data
	h.mu.Unlock()
	h.broadcast(data)
}

// RenderClock implements runner.Renderer.
func (h *Hub) RenderClock(elapsed string) {
	if data, ok := h.encode(ClockMsg{Type: MsgClock, Elapsed: elapsed}); ok {
		h.broadcast(data)
	}
}

// RenderGameOver implements runner.Renderer.
func (h *Hub) RenderGameOver(over runner.GameOver) {
	data, ok := h.encode(GameOverMsg{
		Type:      MsgGameOver,
		Score:     over.Score,
		HighScore: over.HighScore,
		ElapsedMs: over.Elapsed.Milliseconds(),
		BoardFull: over.BoardFull,
	})
	if ok {
		h.broadcast(data)
	}
}

func (h *Hub) encode(msg any) ([]byte, bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot encode spectator message", "error", err)
		return nil, false
	}
	return data, true
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.viewers {
		select {
		case v.send <- data:
		default:
			h.logger.Debug("spectator lagging, message dropped", "viewer", v.id)
		}
	}
}

// ServeHTTP upgrades the request and streams messages until the viewer
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	v := &viewer{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	welcome, _ := h.encode(WelcomeMsg{Type: MsgWelcome, ID: v.id, Width: h.board.W, Height: h.board.H})
	v.send <- welcome

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		ws.Close()
		return
	}
	if h.last != nil {
		v.send <- h.last
	}
	h.viewers[v.id] = v
	h.mu.Unlock()
	h.logger.Info("spectator connected", "viewer", v.id, "remote", r.RemoteAddr)

	go h.writeLoop(v)
	h.readLoop(v)
}

// readLoop discards incoming data and returns when the viewer goes away.
func (h *Hub) readLoop(v *viewer) {
	defer h.remove(v)
	for {
		if _, _, err := v.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("spectator read error", "viewer", v.id, "error", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.ws.Close()
	for data := range v.send {
		v.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("spectator write failed", "viewer", v.id, "error", err)
			return
		}
	}
	v.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
		time.Now().Add(writeTimeout))
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	_, ok := h.viewers[v.id]
	delete(h.viewers, v.id)
	h.mu.Unlock()
	// Close stops the writer, which closes the socket and ends readLoop
	v.close()
	if ok {
		h.logger.Info("spectator disconnected", "viewer", v.id)
	}
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	viewers := h.viewers
	h.viewers = make(map[string]*viewer)
	h.mu.Unlock()

	for _, v := range viewers {
		v.close()
	}
}

// Server serves a hub over HTTP.
type Server struct {
	hub    *Hub
	srv    *http.Server
	logger *log.Logger
}

// NewServer creates a server for the hub on addr.
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	return &Server{
		hub:    hub,
		logger: logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start listens in the background. Errors after startup are logged.
func (s *Server) Start() {
	s.logger.Info("spectator feed listening", "address", s.srv.Addr, "path", Path)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("spectator server error", "error", err)
		}
	}()
}

// Shutdown disconnects viewers and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
