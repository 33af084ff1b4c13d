// Package tui provides the Bubble Tea front end for the snake game,
// locally and over SSH via Wish.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/runner"
)

// screenshotHelp is the key summary written under the board in screenshots.
const screenshotHelp = "arrows/wasd move  enter start  t theme  q quit"

// Options configures a game model.
type Options struct {
	Game      snake.Config
	Runtime   core.RuntimeConfig
	Theme     string // "dark" or "light"
	Scores    runner.HighScoreStore
	History   runner.HistoryRecorder
	Spectator runner.Renderer // Optional extra renderer
	Logger    *log.Logger
	SessionID string

	// ScreenshotDir defaults to ~/.snake/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	runner   *runner.Runner
	frames   *FrameRenderer
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	screen   *core.Screen
	width    int
	height   int
	theme    Theme
	particle string
	logger   *log.Logger

	snap     snake.Snapshot
	clock    string
	over     *runner.GameOver
	status   string
	shotDir  string
	quitting bool
}

// NewModel creates the model and its runner. Call Close when the program
// exits.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	frames := NewFrameRenderer()
	renderers := runner.Renderers{frames}
	if opts.Spectator != nil {
		renderers = append(renderers, opts.Spectator)
	}

	r := runner.New(runner.Options{
		Game:      opts.Game,
		Seed:      cfg.Seed,
		Renderer:  renderers,
		Scores:    opts.Scores,
		History:   opts.History,
		Logger:    logger,
		SessionID: opts.SessionID,
	})

	keys := DefaultKeyMap()
	m := Model{
		runner:   r,
		frames:   frames,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		help:     help.New(),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		theme:    ThemeByName(opts.Theme, opts.Game.Particles.Color),
		particle: opts.Game.Particles.Color,
		logger:   logger,
		clock:    snake.FormatElapsed(0),
		shotDir:  opts.ScreenshotDir,
	}
	m.help.Width = cfg.ScreenW
	r.Show()
	return m
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return m.frames.Wait()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.snap = snake.Snapshot(msg)
		if m.snap.State == snake.StateRunning {
			m.over = nil
		}
		return m, m.frames.Wait()

	case clockMsg:
		m.clock = string(msg)
		return m, m.frames.Wait()

	case overMsg:
		over := msg.over
		m.over = &over
		m.snap = msg.final
		m.snap.State = snake.StateOver
		m.clock = snake.FormatElapsed(over.Elapsed)
		return m, m.frames.Wait()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.mapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionStart:
		if m.snap.State != snake.StateRunning {
			m.status = ""
			m.runner.Start()
		}
	case core.ActionTheme:
		m.theme = m.theme.Toggle(m.particle)
	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.status = "screenshot failed"
		} else {
			m.status = "saved " + path
		}
	default:
		if d, ok := DirectionFor(action); ok && m.snap.State == snake.StateRunning {
			m.runner.Input(d)
		}
	}
	return m, nil
}

// saveScreenshot writes the current board as plain text.
func (m Model) saveScreenshot() (string, error) {
	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	needW, needH := snake.RequiredSize(m.snap.Bounds)
	shot := core.NewScreen(max(needW, 60), needH+1)
	snake.Render(shot, m.snap, snake.HUD{Elapsed: m.clock, Help: screenshotHelp})

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(shot.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Reserve the last row for help when the board still fits without it
	_, needH := snake.RequiredSize(m.snap.Bounds)
	showHelp := m.height > needH
	if showHelp {
		m.screen.Resize(m.width, m.height-1)
	} else {
		m.screen.Resize(m.width, m.height)
	}

	snake.Render(m.screen, m.snap, snake.HUD{Elapsed: m.clock})
	out := RenderScreen(m.screen, m.theme)
	if !showHelp {
		return out
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return out + "\n" + footer
}

// Close stops the runner and releases the frame channel.
func (m Model) Close() {
	m.frames.Close()
	m.runner.Close()
}

// Run starts a local Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
