package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Event is something the shell must react to after a Start or Tick.
// The concrete types below are the complete set.
type Event interface {
	isEvent()
}

// Started is emitted by Start. The tick driver must be restarted at Interval
// and the session timer reset.
type Started struct {
	Interval time.Duration
}

// FoodEaten is emitted when the head lands on food.
type FoodEaten struct {
	At    core.Cell // Former food position
	Score int       // Score after eating
}

// HighScore is emitted when the score passes the stored high score.
type HighScore struct {
	Score int
}

// SpeedChanged is emitted when the tick interval shrinks.
type SpeedChanged struct {
	Interval time.Duration
}

// GameOver is emitted on the terminal transition.
type GameOver struct {
	Score     int
	BoardFull bool // Snake filled the board; no cell was left for food
}

func (Started) isEvent()      {}
func (FoodEaten) isEvent()    {}
func (HighScore) isEvent()    {}
func (SpeedChanged) isEvent() {}
func (GameOver) isEvent()     {}
