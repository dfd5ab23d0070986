package assess

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/myrjola/biosecure/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	c := risk.DefaultCatalog()
	engine, err := c.Engine(testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	return NewModel(context.Background(), c.Title, engine)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

//nolint:exhaustruct,gochecknoglobals // test keys
var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	retry = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
)

func TestModel_walkthrough(t *testing.T) {
	m := newTestModel(t)
	require.Contains(t, m.View(), "Question 1 of 10")

	m = press(t, m, down, down, enter)
	require.Contains(t, m.View(), "Question 2 of 10")
	require.Equal(t, "mixed", m.session.Answers["farm_type"])

	// Going back restores the cursor to the given answer.
	m = press(t, m, left)
	require.Contains(t, m.View(), "Question 1 of 10")
	require.Equal(t, 2, m.cursor)

	for range 10 {
		m = press(t, m, enter)
	}
	report, done := m.Report()
	require.True(t, done)
	// Mixed farm scores 4 and the first option of every other question scores 1.
	require.Equal(t, 13, report.TotalScore)
	require.Equal(t, risk.TierLow, report.Tier)
	require.Contains(t, m.View(), "Immediate actions")

	m = press(t, m, retry)
	_, done = m.Report()
	require.False(t, done)
	require.Contains(t, m.View(), "Question 1 of 10")
	require.Empty(t, m.session.Answers)
}

func TestModel_quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}) //nolint:exhaustruct // key only
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}
