// Package runner drives a snake game in real time. It owns the tick and
// clock drivers, routes game events to renderers and persistence, and keeps
// every mutation of the game on the scheduler thread.
package runner

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/sched"
)

// GameOver is the end-of-run summary handed to renderers.
type GameOver struct {
	Score     int
	HighScore int
	Elapsed   time.Duration
	BoardFull bool
}

// Renderer presents game state. Calls are made from the scheduler thread
// and must not block.
type Renderer interface {
	RenderFrame(snap snake.Snapshot)
	RenderClock(elapsed string)
	RenderGameOver(over GameOver)
}

// HighScoreStore persists the best score per board.
type HighScoreStore interface {
	ReadHighScore(board string) (int, error)
	WriteHighScore(board string, score int) error
}

// HistoryRecorder stores finished games.
type HistoryRecorder interface {
	RecordGame(sessionID, board string, score int, duration time.Duration) error
}

// Options configures a Runner.
type Options struct {
	Game snake.Config
	Seed int64

	// Scheduler runs all callbacks. If nil the runner starts and owns a
	// sched.Loop.
	Scheduler sched.Scheduler
	Renderer  Renderer

	// Both are optional.
	Scores  HighScoreStore
	History HistoryRecorder

	Logger    *log.Logger
	Now       func() time.Time
	SessionID string
}

// Runner connects a snake.Game to a scheduler, renderers and persistence.
type Runner struct {
	game      *snake.Game
	timer     snake.Timer
	sched     sched.Scheduler
	ownLoop   *sched.Loop
	tick      *sched.Driver
	clock     *sched.Driver
	render    Renderer
	history   HistoryRecorder
	writer    *scoreWriter
	logger    *log.Logger
	now       func() time.Time
	session   string
	closeOnce sync.Once
}

// New creates a runner with an idle game. The stored high score is read
// here; a failed read is logged and the game starts from zero.
func New(opts Options) *Runner {
	r := &Runner{
		game:    snake.New(opts.Game, opts.Seed),
		sched:   opts.Scheduler,
		render:  opts.Renderer,
		history: opts.History,
		logger:  opts.Logger,
		now:     opts.Now,
		session: opts.SessionID,
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.session == "" {
		r.session = uuid.NewString()
	}
	if r.render == nil {
		r.render = Renderers(nil)
	}
	if r.sched == nil {
		r.ownLoop = sched.NewLoop()
		r.sched = r.ownLoop
	}
	r.tick = sched.NewDriver(r.sched, r.onTick)
	r.clock = sched.NewDriver(r.sched, r.onClock)

	board := r.game.BoardID()
	if opts.Scores != nil {
		high, err := opts.Scores.ReadHighScore(board)
		if err != nil {
			r.logger.Warn("could not read high score, starting from 0", "board", board, "error", err)
		} else {
			r.game.SetHighScore(high)
		}
	}
	r.writer = newScoreWriter(opts.Scores, r.history, board, r.session, r.logger)
	return r
}

// SessionID returns the id recorded with finished games.
func (r *Runner) SessionID() string {
	return r.session
}

// Show renders the current state without changing it.
func (r *Runner) Show() {
	r.sched.Post(func() {
		r.render.RenderFrame(r.game.Snapshot())
		r.render.RenderClock(r.timer.String())
	})
}

// Start begins a new game. It is ignored while a game is running.
func (r *Runner) Start() {
	r.sched.Post(r.start)
}

// Input queues a direction for the next tick.
func (r *Runner) Input(d snake.Direction) {
	r.sched.Post(func() {
		if err := r.game.SetPendingDirection(d); err != nil {
			r.logger.Debug("input dropped", "direction", d, "error", err)
		}
	})
}

// Close stops the drivers, flushes pending writes and, if the runner owns
// its loop, stops it. With an injected scheduler Close must not race with
// its callbacks.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		if r.ownLoop != nil {
			r.ownLoop.Close()
		} else {
			r.tick.Stop()
			r.clock.Stop()
		}
		r.writer.close()
	})
}

func (r *Runner) start() {
	if r.game.State() == snake.StateRunning {
		return
	}
	r.dispatch(r.game.Start())
	if r.game.State() != snake.StateRunning {
		return
	}
	r.render.RenderFrame(r.game.Snapshot())
	r.render.RenderClock(r.timer.String())
}

func (r *Runner) onTick() {
	events := r.game.Tick()
	r.dispatch(events)
	if r.game.State() == snake.StateRunning {
		r.render.RenderFrame(r.game.Snapshot())
	}
}

func (r *Runner) onClock() {
	r.timer.Update(r.now())
	r.render.RenderClock(r.timer.String())
}

func (r *Runner) dispatch(events []snake.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case snake.Started:
			r.timer.Start(r.now())
			r.clock.Restart(time.Second)
			r.tick.Restart(e.Interval)
			r.logger.Info("game started", "session", r.session, "board", r.game.BoardID(), "interval", e.Interval)
		case snake.SpeedChanged:
			r.tick.Restart(e.Interval)
			r.logger.Debug("speed changed", "interval", e.Interval)
		case snake.HighScore:
			r.writer.setHighScore(e.Score)
		case snake.FoodEaten:
			r.logger.Debug("food eaten", "x", e.At.X, "y", e.At.Y, "score", e.Score)
		case snake.GameOver:
			r.gameOver(e)
		}
	}
}

// gameOver stops both drivers before anything else so no further tick or
// clock callback can run for this game.
func (r *Runner) gameOver(e snake.GameOver) {
	r.tick.Stop()
	r.clock.Stop()
	r.timer.Stop()

	over := GameOver{
		Score:     e.Score,
		HighScore: r.game.HighScore(),
		Elapsed:   r.timer.Elapsed(),
		BoardFull: e.BoardFull,
	}
	r.render.RenderFrame(r.game.Snapshot())
	r.render.RenderGameOver(over)
	r.logger.Info("game over", "session", r.session, "score", over.Score, "elapsed", over.Elapsed, "board_full", over.BoardFull)

	r.writer.record(over.Score, over.Elapsed)
}

// Renderers fans every call out to each renderer in order.
type Renderers []Renderer

func (rs Renderers) RenderFrame(snap snake.Snapshot) {
	for _, r := range rs {
		r.RenderFrame(snap)
	}
}

func (rs Renderers) RenderClock(elapsed string) {
	for _, r := range rs {
		r.RenderClock(elapsed)
	}
}

func (rs Renderers) RenderGameOver(over GameOver) {
	for _, r := range rs {
		r.RenderGameOver(over)
	}
}

var errWriterClosed = errors.New("runner: score writer closed")
