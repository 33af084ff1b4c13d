package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show scores for a board",
	Long: `Display the score history for a board. The board defaults to the
size from the current config, e.g. 20x20.

In a terminal an interactive table is shown; left/right switches boards.
When stdout is not a terminal, or with --plain, a text table is printed.

Examples:
  snake scores
  snake scores 30x20
  snake scores --plain --limit 5
  snake scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to print in plain mode")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text table even in a terminal")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the board")
}

func runScores(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	exitOnError("loading config", err)

	board := snake.BoardID(cfg.GameConfig().Grid.Bounds())
	if len(args) == 1 {
		board = args[0]
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	exitOnError("opening scores database", err)
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(board); err != nil {
			store.Close()
			exitOnError("clearing scores", err)
		}
		fmt.Printf("Cleared scores for board %s\n", board)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, board, width, height); err != nil {
			store.Close()
			exitOnError("running scoreboard", err)
		}
		return
	}

	scores, err := store.TopScores(board, flagScoresLimit)
	if err != nil {
		store.Close()
		exitOnError("retrieving scores", err)
	}
	fmt.Print(tui.PlainScores(board, scores))

	if len(scores) == 0 {
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	// Show summary
	fmt.Println()
	if best, err := store.HighScore(board); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.GetGameStats(board); err == nil {
		fmt.Printf("Games: %d  Avg score: %.1f  Avg time: %s\n",
			stats.GamesCount, stats.AvgScore, snake.FormatElapsed(stats.AvgDuration))
	}
}
