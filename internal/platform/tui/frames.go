package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/runner"
)

// frameMsg carries a new board snapshot.
type frameMsg snake.Snapshot

// clockMsg carries the MM:SS session time.
type clockMsg string

// overMsg carries the end-of-run summary with the final board.
type overMsg struct {
	over  runner.GameOver
	final snake.Snapshot
}

// FrameRenderer implements runner.Renderer by handing messages to a Bubble
// Tea program. Frames and clock updates are dropped when the program lags;
// the game over message is always delivered unless the renderer is closed.
type FrameRenderer struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	last snake.Snapshot
}

// NewFrameRenderer creates an open renderer.
func NewFrameRenderer() *FrameRenderer {
	return &FrameRenderer{
		ch:   make(chan tea.Msg, 8),
		done: make(chan struct{}),
	}
}

// RenderFrame implements runner.Renderer.
func (f *FrameRenderer) RenderFrame(snap snake.Snapshot) {
	f.mu.Lock()
	f.last = snap
	f.mu.Unlock()
	f.offer(frameMsg(snap))
}

// RenderClock implements runner.Renderer.
func (f *FrameRenderer) RenderClock(elapsed string) {
	f.offer(clockMsg(elapsed))
}

// RenderGameOver implements runner.Renderer. It blocks until the message is
// taken or the renderer is closed.
func (f *FrameRenderer) RenderGameOver(over runner.GameOver) {
	f.mu.Lock()
	final := f.last
	f.mu.Unlock()

	select {
	case f.ch <- overMsg{over: over, final: final}:
	case <-f.done:
	}
}

func (f *FrameRenderer) offer(msg tea.Msg) {
	select {
	case <-f.done:
	case f.ch <- msg:
	default:
	}
}

// Wait returns a command that delivers the next message. The model issues
// it again after every delivery.
func (f *FrameRenderer) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-f.ch:
			return msg
		case <-f.done:
			return nil
		}
	}
}

// Close releases any blocked RenderGameOver and stops Wait.
func (f *FrameRenderer) Close() {
	f.once.Do(func() { close(f.done) })
}
