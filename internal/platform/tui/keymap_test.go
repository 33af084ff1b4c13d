package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"w", runeKey('w'), core.ActionUp},
		{"a", runeKey('a'), core.ActionLeft},
		{"s", runeKey('s'), core.ActionDown},
		{"d", runeKey('d'), core.ActionRight},
		{"k", runeKey('k'), core.ActionUp},
		{"j", runeKey('j'), core.ActionDown},
		{"h", runeKey('h'), core.ActionLeft},
		{"l", runeKey('l'), core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"theme", runeKey('t'), core.ActionTheme},
		{"screenshot", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %s, expected %s", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		action core.Action
		want   snake.Direction
		ok     bool
	}{
		{core.ActionUp, snake.DirUp, true},
		{core.ActionDown, snake.DirDown, true},
		{core.ActionLeft, snake.DirLeft, true},
		{core.ActionRight, snake.DirRight, true},
		{core.ActionStart, 0, false},
		{core.ActionQuit, 0, false},
	}
	for _, tc := range tests {
		got, ok := DirectionFor(tc.action)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("DirectionFor(%s) = %s, %v", tc.action, got, ok)
		}
		if ok != tc.action.IsDirectional() {
			t.Errorf("%s: DirectionFor and IsDirectional disagree", tc.action)
		}
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("ShortHelp() is empty")
	}
	n := 0
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	if n != 8 {
		t.Errorf("FullHelp() lists %d bindings, expected 8", n)
	}
}
