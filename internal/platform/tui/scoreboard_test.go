package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeScores map[string][]storage.ScoreEntry

func (f fakeScores) Boards() ([]string, error) {
	var boards []string
	for _, b := range []string{"10x10", "20x20"} {
		if _, ok := f[b]; ok {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

func (f fakeScores) TopScores(board string, limit int) ([]storage.ScoreEntry, error) {
	return f[board], nil
}

func testScores() fakeScores {
	played := time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)
	return fakeScores{
		"10x10": {{Score: 40, Duration: 20 * time.Second, CreatedAt: played}},
		"20x20": {
			{Score: 120, Duration: 95 * time.Second, CreatedAt: played},
			{Score: 30, Duration: 12 * time.Second, CreatedAt: played},
		},
	}
}

func TestScoreboardSelectsPreferredBoard(t *testing.T) {
	m := NewScoreboardModel(testScores(), "20x20", 100, 30)
	if m.boards[m.cursor] != "20x20" || len(m.scores) != 2 {
		t.Fatalf("selected %s with %d scores, expected 20x20 with 2", m.boards[m.cursor], len(m.scores))
	}

	view := m.View()
	if !strings.Contains(view, "SNAKE HIGH SCORES - 20x20") || !strings.Contains(view, "01:35") {
		t.Errorf("view missing board title or duration:\n%s", view)
	}
}

func TestScoreboardSwitchBoards(t *testing.T) {
	m := NewScoreboardModel(testScores(), "20x20", 60, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.boards[m.cursor] != "10x10" || len(m.scores) != 1 {
		t.Errorf("after tab: %s with %d scores", m.boards[m.cursor], len(m.scores))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.boards[m.cursor] != "20x20" {
		t.Errorf("after shift+tab: %s", m.boards[m.cursor])
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(ScoreboardModel)
	if cmd == nil || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "20x20", 100, 30)
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}

func TestPlainScores(t *testing.T) {
	out := PlainScores("20x20", testScores()["20x20"])
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("PlainScores produced %d lines, expected 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "#1") || !strings.Contains(lines[2], "120") || !strings.Contains(lines[2], "01:35") {
		t.Errorf("first row = %q", lines[2])
	}

	if !strings.Contains(PlainScores("5x5", nil), "no scores recorded") {
		t.Error("empty board should say no scores")
	}
}
