package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/runner"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + Path
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readMsg(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return msg
}

func waitViewers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", hub.Count(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(core.Bounds{W: 20, H: 20}, nil)
	srv := httptest.NewServer(NewServer("", hub, nil).srv.Handler)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func TestWelcomeAndBroadcast(t *testing.T) {
	hub, srv := newTestServer(t)
	ws := dial(t, srv)

	welcome := readMsg(t, ws)
	if welcome["t"] != MsgWelcome || welcome["w"] != float64(20) || welcome["h"] != float64(20) {
		t.Fatalf("welcome = %v", welcome)
	}
	if id, _ := welcome["id"].(string); id == "" {
		t.Fatal("welcome has no viewer id")
	}
	waitViewers(t, hub, 1)

	g := snake.New(snake.DefaultConfig(), 1)
	g.Start()
	hub.RenderFrame(g.Snapshot())
	hub.RenderClock("00:03")
	hub.RenderGameOver(runner.GameOver{Score: 30, HighScore: 50, Elapsed: 3 * time.Second})

	frame := readMsg(t, ws)
	if frame["t"] != MsgFrame || frame["s"] != "running" {
		t.Fatalf("frame = %v", frame)
	}
	body, _ := frame["b"].([]any)
	if len(body) != 3 {
		t.Fatalf("snake length = %d, want 3", len(body))
	}
	if head, _ := body[0].([]any); len(head) != 2 || head[0] != float64(5) || head[1] != float64(5) {
		t.Fatalf("head = %v", body[0])
	}
	if frame["iv"] != float64(150) {
		t.Errorf("interval = %v, want 150", frame["iv"])
	}

	clock := readMsg(t, ws)
	if clock["t"] != MsgClock || clock["e"] != "00:03" {
		t.Fatalf("clock = %v", clock)
	}

	over := readMsg(t, ws)
	if over["t"] != MsgGameOver || over["sc"] != float64(30) || over["hi"] != float64(50) || over["ms"] != float64(3000) {
		t.Fatalf("game over = %v", over)
	}
	if _, ok := over["full"]; ok {
		t.Error("board_full should be omitted when false")
	}
}

func TestLateViewerGetsLastFrame(t *testing.T) {
	hub, srv := newTestServer(t)

	g := snake.New(snake.DefaultConfig(), 1)
	g.Start()
	g.Tick()
	hub.RenderFrame(g.Snapshot())

	ws := dial(t, srv)
	readMsg(t, ws) // welcome
	frame := readMsg(t, ws)
	if frame["t"] != MsgFrame || frame["n"] != float64(1) {
		t.Fatalf("replayed frame = %v", frame)
	}
	waitViewers(t, hub, 1)
}

func TestViewerDisconnect(t *testing.T) {
	hub, srv := newTestServer(t)
	ws := dial(t, srv)
	readMsg(t, ws)
	waitViewers(t, hub, 1)

	ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
	waitViewers(t, hub, 0)

	// Broadcasting with nobody listening is fine
	hub.RenderClock("00:01")
}

func TestCloseDisconnectsViewers(t *testing.T) {
	hub, srv := newTestServer(t)
	ws := dial(t, srv)
	readMsg(t, ws)
	waitViewers(t, hub, 1)

	hub.Close()
	if hub.Count() != 0 {
		t.Fatalf("viewers after close = %d", hub.Count())
	}

	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Fatal("expected the connection to close")
	}
}

func TestSlowViewerDoesNotBlock(t *testing.T) {
	hub, srv := newTestServer(t)
	ws := dial(t, srv)
	readMsg(t, ws)
	waitViewers(t, hub, 1)

	// Nobody reads, so the send buffer fills and messages are dropped
	done := make(chan struct{})
	go func() {
		for range sendBuffer * 20 {
			hub.RenderClock("00:00")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a slow viewer")
	}
}

func TestNewFrameMsgParticles(t *testing.T) {
	snap := snake.Snapshot{
		State:     snake.StateRunning,
		Snake:     []core.Cell{{X: 1, Y: 2}},
		Food:      core.Cell{X: 3, Y: 4},
		Particles: []snake.Particle{{X: 10.5, Y: 20, Alpha: 0.5}},
		Interval:  70 * time.Millisecond,
	}
	msg := NewFrameMsg(snap)
	if msg.Food != [2]int{3, 4} || msg.Snake[0] != [2]int{1, 2} {
		t.Fatalf("cells = %v %v", msg.Snake, msg.Food)
	}
	if len(msg.Particles) != 1 || msg.Particles[0] != [3]float64{10.5, 20, 0.5} {
		t.Fatalf("particles = %v", msg.Particles)
	}
	if msg.IntervalMs != 70 {
		t.Fatalf("interval = %d", msg.IntervalMs)
	}
}
