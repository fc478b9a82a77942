package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m tea.Model, key string) tea.Model {
	t.Helper()

	var msg tea.KeyMsg

	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	next, _ := m.Update(msg)

	return next
}

func TestMenuSelectsFirstItem(t *testing.T) {
	m := press(t, NewMainMenu(), "enter")

	model, ok := m.(MainMenuModel)
	require.True(t, ok)
	assert.Equal(t, ActionBackup, model.Choice())
}

func TestMenuNavigatesToRestore(t *testing.T) {
	m := press(t, NewMainMenu(), "down")
	m = press(t, m, "enter")

	model, ok := m.(MainMenuModel)
	require.True(t, ok)
	assert.Equal(t, ActionRestore, model.Choice())
}

func TestMenuSelectsExit(t *testing.T) {
	m := tea.Model(NewMainMenu())
	for i := 0; i < 3; i++ {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")

	model, ok := m.(MainMenuModel)
	require.True(t, ok)
	assert.Equal(t, ActionExit, model.Choice())
}

func TestMenuQuitReturnsEmptyChoice(t *testing.T) {
	m := press(t, NewMainMenu(), "ctrl+c")

	model, ok := m.(MainMenuModel)
	require.True(t, ok)
	assert.Empty(t, model.Choice())
}
