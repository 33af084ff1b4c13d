package runner

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type finishedGame struct {
	score    int
	duration time.Duration
}

// scoreWriter performs persistence off the scheduler thread. High scores
// use a single slot so only the latest value is written; finished games
// are queued. Failures are logged and dropped.
type scoreWriter struct {
	scores  HighScoreStore
	history HistoryRecorder
	board   string
	session string
	logger  *log.Logger

	mu       sync.Mutex
	pending  int
	hasScore bool
	games    []finishedGame
	closed   bool

	wake chan struct{}
	done chan struct{}
}

func newScoreWriter(scores HighScoreStore, history HistoryRecorder, board, session string, logger *log.Logger) *scoreWriter {
	w := &scoreWriter{
		scores:  scores,
		history: history,
		board:   board,
		session: session,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *scoreWriter) setHighScore(score int) {
	if w.scores == nil {
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Debug("high score dropped", "score", score, "error", errWriterClosed)
		return
	}
	w.pending = score
	w.hasScore = true
	w.signal()
	w.mu.Unlock()
}

func (w *scoreWriter) record(score int, duration time.Duration) {
	if w.history == nil {
		return
	}
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Debug("finished game dropped", "score", score, "error", errWriterClosed)
		return
	}
	w.games = append(w.games, finishedGame{score: score, duration: duration})
	w.signal()
	w.mu.Unlock()
}

// signal must be called with mu held.
func (w *scoreWriter) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *scoreWriter) run() {
	defer close(w.done)
	for range w.wake {
		for w.flush() {
		}
	}
}

// flush writes whatever is pending and reports whether it wrote anything.
func (w *scoreWriter) flush() bool {
	w.mu.Lock()
	score, hasScore := w.pending, w.hasScore
	w.hasScore = false
	games := w.games
	w.games = nil
	w.mu.Unlock()

	if !hasScore && len(games) == 0 {
		return false
	}
	if hasScore {
		if err := w.scores.WriteHighScore(w.board, score); err != nil {
			w.logger.Warn("could not save high score", "board", w.board, "score", score, "error", err)
		}
	}
	for _, g := range games {
		if err := w.history.RecordGame(w.session, w.board, g.score, g.duration); err != nil {
			w.logger.Warn("could not record game", "board", w.board, "score", g.score, "error", err)
		}
	}
	return true
}

// close writes anything still pending and waits for the writer to exit.
func (w *scoreWriter) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.wake)
	w.mu.Unlock()
	<-w.done
	w.flush()
}
