// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Speed     SpeedConfig     `yaml:"speed"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Particles ParticlesConfig `yaml:"particles"`
	Theme     ThemeConfig     `yaml:"theme"`
}

// BoardConfig defines the canvas and its cell grid. The board is
// canvas_width/cell_size by canvas_height/cell_size cells.
type BoardConfig struct {
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`
	CellSize     int `yaml:"cell_size"`
}

// SpeedConfig defines the tick interval ramp, in milliseconds.
type SpeedConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	StepMs         int `yaml:"step_ms"` // Reduction per food, 0 disables the ramp
	MinIntervalMs  int `yaml:"min_interval_ms"`
}

// ScoringConfig defines the score rules.
type ScoringConfig struct {
	FoodPoints int `yaml:"food_points"`
}

// ParticlesConfig defines the particle burst thrown out when food is eaten.
type ParticlesConfig struct {
	Enabled bool    `yaml:"enabled"`
	Count   int     `yaml:"count"`
	Spread  float64 `yaml:"spread"`
	Decay   float64 `yaml:"decay"` // Alpha lost per tick
	Color   string  `yaml:"color"`
}

// ThemeConfig selects the initial color theme.
type ThemeConfig struct {
	Name string `yaml:"name"` // "dark" or "light"
}

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// GameConfig converts the YAML config into simulation parameters.
func (c SnakeConfig) GameConfig() snake.Config {
	return snake.Config{
		Grid:         core.NewGrid(c.Board.CanvasWidth, c.Board.CanvasHeight, c.Board.CellSize),
		BaseInterval: time.Duration(c.Speed.BaseIntervalMs) * time.Millisecond,
		IntervalStep: time.Duration(c.Speed.StepMs) * time.Millisecond,
		MinInterval:  time.Duration(c.Speed.MinIntervalMs) * time.Millisecond,
		FoodPoints:   c.Scoring.FoodPoints,
		Particles: snake.ParticleConfig{
			Enabled: c.Particles.Enabled,
			Count:   c.Particles.Count,
			Spread:  c.Particles.Spread,
			Decay:   c.Particles.Decay,
			Color:   c.Particles.Color,
		},
	}
}

// Validate rejects configs the game cannot run with.
func (c SnakeConfig) Validate() error {
	if err := c.GameConfig().Validate(); err != nil {
		return err
	}
	if c.Particles.Enabled {
		if c.Particles.Count < 0 {
			return fmt.Errorf("config: particles.count must not be negative, got %d", c.Particles.Count)
		}
		if c.Particles.Decay <= 0 {
			return fmt.Errorf("config: particles.decay must be positive, got %v", c.Particles.Decay)
		}
		if !hexColor.MatchString(c.Particles.Color) {
			return fmt.Errorf("config: particles.color must be #rrggbb, got %q", c.Particles.Color)
		}
	}
	switch c.Theme.Name {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("config: theme.name must be %q or %q, got %q", ThemeDark, ThemeLight, c.Theme.Name)
	}
	return nil
}
