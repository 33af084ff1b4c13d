package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the complete game state for rendering and determinism
// testing. It shares no memory with the Game, so it may cross goroutines.
type Snapshot struct {
	Tick      uint64
	State     State
	Snake     []core.Cell // Head first
	Direction Direction
	Food      core.Cell
	FoodPulse float64 // Phase in [0, 2π)
	Particles []Particle
	Score     int
	HighScore int
	Interval  time.Duration
	Bounds    core.Bounds
	Grid      core.Grid
}

// Snapshot returns a deep copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	body := make([]core.Cell, len(g.snake))
	copy(body, g.snake)

	return Snapshot{
		Tick:      g.tick,
		State:     g.state,
		Snake:     body,
		Direction: g.direction,
		Food:      g.food,
		FoodPulse: g.foodPulse,
		Particles: g.particles.Snapshot(),
		Score:     g.score,
		HighScore: g.highScore,
		Interval:  g.interval,
		Bounds:    g.bounds,
		Grid:      g.cfg.Grid,
	}
}

// Head returns the head cell, or false for an empty snake.
func (s Snapshot) Head() (core.Cell, bool) {
	if len(s.Snake) == 0 {
		return core.Cell{}, false
	}
	return s.Snake[0], true
}
