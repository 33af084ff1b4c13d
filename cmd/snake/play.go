package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/platform/spectate"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start a game of snake in this terminal.

Controls:
  Arrows/WASD/hjkl  - Steer
  Enter/Space       - Start, or play again after game over
  T                 - Toggle dark/light theme
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slow start, gentle ramp
  normal - Config values (150ms, -5ms per food, 50ms floor by default)
  hard   - Fast start, steep ramp
  fixed  - No speed ramp

Examples:
  snake play
  snake play --difficulty easy
  snake play --config ./my-snake.yaml
  snake play --spectate :8080   # watch at ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file
	logFile := flagLogFile
	if logFile == "" {
		logFile = logging.DefaultFile
	}
	logger, closeLog, err := logging.New(logging.Options{File: logFile, Level: flagLogLevel, Prefix: "snake"})
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game := cfg.GameConfig()
	opts := tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Theme:  cfg.Theme.Name,
		Logger: logger,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
	} else {
		defer store.Close()
		opts.Scores = store
		opts.History = store
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(game.Grid.Bounds(), logger)
		srv := spectate.NewServer(flagSpectate, hub, logger)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("spectator shutdown", "error", err)
			}
		}()
		opts.Spectator = hub
	}

	return tui.Run(opts)
}
