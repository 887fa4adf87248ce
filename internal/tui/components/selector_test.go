package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func options(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

func press(t *testing.T, s Selector, keys ...tea.KeyMsg) Selector {
	t.Helper()
	for _, k := range keys {
		m, _ := s.Update(k)
		var ok bool
		s, ok = m.(Selector)
		require.True(t, ok)
	}
	return s
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSelector_StartsAllChecked(t *testing.T) {
	s := NewSelector("Files", options("a.txt", "b.txt"))
	assert.Equal(t, 2, s.CheckedCount())
	assert.Equal(t, []string{"a.txt", "b.txt"}, s.Values())
}

func TestSelector_ToggleAndSubmit(t *testing.T) {
	s := NewSelector("Files", options("a.txt", "b.txt", "c.txt"))

	s = press(t, s, keyDown, keySpace, keyEnter)

	assert.True(t, s.Submitted())
	assert.False(t, s.Cancelled())
	assert.Equal(t, []string{"a.txt", "c.txt"}, s.Values())
}

func TestSelector_AllAndNone(t *testing.T) {
	s := NewSelector("Files", options("a.txt", "b.txt"))

	s = press(t, s, runeKey('n'))
	assert.Equal(t, 0, s.CheckedCount())
	assert.Empty(t, s.Values())

	s = press(t, s, runeKey('a'))
	assert.Equal(t, 2, s.CheckedCount())
}

func TestSelector_CursorBounds(t *testing.T) {
	s := NewSelector("Files", options("a.txt", "b.txt"))

	s = press(t, s, keyUp, keyUp)
	assert.Equal(t, 0, s.cursor)

	s = press(t, s, keyDown, keyDown, keyDown)
	assert.Equal(t, 1, s.cursor)
}

func TestSelector_Cancel(t *testing.T) {
	s := NewSelector("Files", options("a.txt"))

	m, cmd := s.Update(keyEsc)
	s = m.(Selector)

	assert.True(t, s.Cancelled())
	assert.NotNil(t, cmd)
	assert.Nil(t, s.Values())
}

func TestSelector_EmptyOptions(t *testing.T) {
	s := NewSelector("Files", nil)
	s = press(t, s, keySpace, keyDown, keyEnter)
	assert.Empty(t, s.Values())
}

func TestSelector_ViewScrolls(t *testing.T) {
	var values []string
	for i := 0; i < 20; i++ {
		values = append(values, fmt.Sprintf("file%02d.txt", i))
	}
	s := NewSelector("Files", options(values...)).WithHeight(5)

	view := s.View()
	assert.Contains(t, view, "file00.txt")
	assert.NotContains(t, view, "file05.txt")
	assert.Contains(t, view, "1-5 of 20")

	for i := 0; i < 7; i++ {
		s = press(t, s, keyDown)
	}
	view = s.View()
	assert.Contains(t, view, "file07.txt")
	assert.NotContains(t, view, "file02.txt")
	assert.Contains(t, view, "4-8 of 20")
}

func TestSelector_ViewMarksChecked(t *testing.T) {
	s := NewSelector("Pick files", options("a.txt", "b.txt"))
	s = press(t, s, keyDown, keySpace)

	view := s.View()
	assert.Contains(t, view, "Pick files")
	assert.Contains(t, view, "[x] a.txt")
	assert.Contains(t, view, "[ ] b.txt")
	assert.True(t, strings.Contains(view, "1 selected"))

	s = s.WithShowHelp(false)
	assert.NotContains(t, s.View(), "selected")
}
