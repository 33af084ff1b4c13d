package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration: a 400x400
// canvas of 20px cells, 150ms ticks ramping down by 5ms per food to 50ms.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			CanvasWidth:  400,
			CanvasHeight: 400,
			CellSize:     20,
		},
		Speed: SpeedConfig{
			BaseIntervalMs: 150,
			StepMs:         5,
			MinIntervalMs:  50,
		},
		Scoring: ScoringConfig{
			FoodPoints: 10,
		},
		Particles: ParticlesConfig{
			Enabled: true,
			Count:   10,
			Spread:  8,
			Decay:   0.02,
			Color:   "#00ff88",
		},
		Theme: ThemeConfig{
			Name: ThemeDark,
		},
	}
}
