// Package snake implements the classic single-player snake simulation.
// The Game type is a pure state machine: Start and Tick mutate state and
// return events, and the caller owns timing, rendering and persistence.
package snake

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State represents the game loop state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

var (
	// ErrReversal is returned when a direction change would turn the snake
	// back into its own neck.
	ErrReversal = errors.New("snake: reversal rejected")
	// ErrNotRunning is returned for input outside a running game.
	ErrNotRunning = errors.New("snake: game not running")
)

// Food pulse animation.
const (
	pulseStep   = 0.1
	pulsePeriod = 2 * math.Pi
)

// particleSeedSalt separates the particle RNG stream from the food stream.
const particleSeedSalt = 0x5eed

// startBody is the fixed starting snake, head first, heading right.
var startBody = []core.Cell{
	{X: 5, Y: 5},
	{X: 4, Y: 5},
	{X: 3, Y: 5},
}

// Config holds the simulation parameters.
type Config struct {
	Grid         core.Grid
	BaseInterval time.Duration // Tick interval at game start
	IntervalStep time.Duration // Interval reduction per food
	MinInterval  time.Duration // Speed floor
	FoodPoints   int           // Score per food
	Particles    ParticleConfig
}

// DefaultConfig returns the classic 400x400 canvas with 20px cells.
func DefaultConfig() Config {
	return Config{
		Grid:         core.NewGrid(400, 400, 20),
		BaseInterval: 150 * time.Millisecond,
		IntervalStep: 5 * time.Millisecond,
		MinInterval:  50 * time.Millisecond,
		FoodPoints:   10,
		Particles: ParticleConfig{
			Enabled: true,
			Count:   10,
			Spread:  8,
			Decay:   0.02,
			Color:   "#00ff88",
		},
	}
}

// Validate checks that the config can run a game.
func (c Config) Validate() error {
	b := c.Grid.Bounds()
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("snake: cell size must be positive, got %d", c.Grid.CellSize)
	}
	for _, seg := range startBody {
		if !b.Contains(seg) || !b.Contains(seg.Add(1, 0)) {
			return fmt.Errorf("snake: board %dx%d too small for the starting snake", b.W, b.H)
		}
	}
	if c.MinInterval <= 0 || c.BaseInterval < c.MinInterval {
		return fmt.Errorf("snake: intervals must satisfy 0 < min (%s) <= base (%s)", c.MinInterval, c.BaseInterval)
	}
	if c.IntervalStep < 0 {
		return fmt.Errorf("snake: interval step must not be negative, got %s", c.IntervalStep)
	}
	if c.FoodPoints <= 0 {
		return fmt.Errorf("snake: food points must be positive, got %d", c.FoodPoints)
	}
	return nil
}

// Game implements the snake state machine.
type Game struct {
	cfg    Config
	bounds core.Bounds
	rng    *rand.Rand
	state  State
	tick   uint64

	// Snake state
	snake     []core.Cell // Head at index 0
	direction Direction   // Applied on the last tick
	nextDir   Direction   // Pending, latched at the next tick

	food      core.Cell
	foodPulse float64

	score     int
	highScore int
	interval  time.Duration

	particles *Particles
}

// New creates an idle game. The seed drives food placement and particles.
func New(cfg Config, seed int64) *Game {
	return &Game{
		cfg:       cfg,
		bounds:    cfg.Grid.Bounds(),
		rng:       rand.New(rand.NewSource(seed)),
		state:     StateIdle,
		interval:  cfg.BaseInterval,
		particles: NewParticles(cfg.Particles, seed^particleSeedSalt),
	}
}

// BoardID identifies the board size, so high scores from different boards
// are kept apart.
func (g *Game) BoardID() string {
	return BoardID(g.bounds)
}

// BoardID formats a board size as "WxH".
func BoardID(b core.Bounds) string {
	return fmt.Sprintf("%dx%d", b.W, b.H)
}

// SetHighScore seeds the high score, typically from persistence at startup.
// Negative values are treated as zero.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(score, 0)
}

// Start resets the game and begins a new run. It is also the restart.
func (g *Game) Start() []Event {
	g.snake = append(g.snake[:0], startBody...)
	g.direction = DirRight
	g.nextDir = DirRight
	g.score = 0
	g.interval = g.cfg.BaseInterval
	g.tick = 0
	g.particles.Clear()
	g.state = StateRunning

	if err := g.placeFood(); err != nil {
		g.state = StateOver
		return []Event{GameOver{Score: g.score, BoardFull: true}}
	}

	return []Event{Started{Interval: g.interval}}
}

// SetPendingDirection queues the direction for the next tick.
// A reversal of the applied direction is rejected and the pending direction
// is left as it was.
func (g *Game) SetPendingDirection(d Direction) error {
	if g.state != StateRunning {
		return ErrNotRunning
	}
	if d == g.direction.Opposite() {
		return ErrReversal
	}
	g.nextDir = d
	return nil
}

// Tick advances the simulation by one move. It is a no-op unless running.
func (g *Game) Tick() []Event {
	if g.state != StateRunning {
		return nil
	}
	g.tick++

	g.direction = g.nextDir
	dx, dy := g.direction.Delta()
	head := g.snake[0].Add(dx, dy)

	if !g.bounds.Contains(head) || containsCell(g.snake, head) {
		g.state = StateOver
		return []Event{GameOver{Score: g.score}}
	}

	g.snake = append(g.snake, core.Cell{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	var events []Event
	if head == g.food {
		events = g.eat()
		if g.state == StateOver {
			return events
		}
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	g.particles.Advance()
	g.foodPulse = math.Mod(g.foodPulse+pulseStep, pulsePeriod)
	return events
}

// eat handles the head landing on food. The tail is kept.
func (g *Game) eat() []Event {
	eatenAt := g.food
	g.score += g.cfg.FoodPoints

	var events []Event
	if g.score > g.highScore {
		g.highScore = g.score
		events = append(events, HighScore{Score: g.score})
	}

	g.particles.Spawn(eatenAt, g.cfg.Grid)

	if err := g.placeFood(); err != nil {
		g.state = StateOver
		return append(events, GameOver{Score: g.score, BoardFull: true})
	}

	if g.interval > g.cfg.MinInterval && g.cfg.IntervalStep > 0 {
		g.interval = max(g.interval-g.cfg.IntervalStep, g.cfg.MinInterval)
		events = append(events, SpeedChanged{Interval: g.interval})
	}

	return append(events, FoodEaten{At: eatenAt, Score: g.score})
}

// placeFood puts food on a free cell and restarts its pulse.
func (g *Game) placeFood() error {
	food, err := PlaceFood(g.rng, g.snake, g.bounds)
	if err != nil {
		return err
	}
	g.food = food
	g.foodPulse = 0
	return nil
}

// State returns the game loop state.
func (g *Game) State() State {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// HighScore returns the best score known to this game.
func (g *Game) HighScore() int {
	return g.highScore
}

// Interval returns the current tick interval.
func (g *Game) Interval() time.Duration {
	return g.interval
}

// Bounds returns the board size in cells.
func (g *Game) Bounds() core.Bounds {
	return g.bounds
}

// Grid returns the canvas grid.
func (g *Game) Grid() core.Grid {
	return g.cfg.Grid
}
