package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option represents a selectable option in the selector.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector is a checklist: every option can be toggled on or off, and
// enter submits the checked set.
type Selector struct {
	title     string
	options   []Option
	checked   []bool
	cursor    int
	offset    int
	height    int
	showHelp  bool
	keyMap    selectorKeyMap
	styles    selectorStyles
	submitted bool
	cancelled bool
}

type selectorKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

type selectorStyles struct {
	Title       lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Unchecked   lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
}

func defaultSelectorStyles() selectorStyles {
	return selectorStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Unchecked:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(6),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

func defaultSelectorKeyMap() selectorKeyMap {
	return selectorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "none"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// NewSelector creates a selector with every option checked.
func NewSelector(title string, options []Option) Selector {
	checked := make([]bool, len(options))
	for i := range checked {
		checked[i] = true
	}
	return Selector{
		title:    title,
		options:  options,
		checked:  checked,
		height:   15,
		showHelp: true,
		keyMap:   defaultSelectorKeyMap(),
		styles:   defaultSelectorStyles(),
	}
}

// WithHeight sets how many options are visible at once.
func (s Selector) WithHeight(height int) Selector {
	if height > 0 {
		s.height = height
	}
	return s
}

// WithShowHelp enables or disables the help text.
func (s Selector) WithShowHelp(show bool) Selector {
	s.showHelp = show
	return s
}

// Init implements tea.Model.
func (s Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, s.keyMap.Down):
			if s.cursor < len(s.options)-1 {
				s.cursor++
			}
		case key.Matches(msg, s.keyMap.Toggle):
			if len(s.checked) > 0 {
				s.checked[s.cursor] = !s.checked[s.cursor]
			}
		case key.Matches(msg, s.keyMap.All):
			s.setAll(true)
		case key.Matches(msg, s.keyMap.None):
			s.setAll(false)
		case key.Matches(msg, s.keyMap.Submit):
			s.submitted = true
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Quit):
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Height > 8 {
			s.height = msg.Height - 8
		}
	}
	s.scroll()
	return s, nil
}

func (s *Selector) setAll(v bool) {
	checked := make([]bool, len(s.checked))
	for i := range checked {
		checked[i] = v
	}
	s.checked = checked
}

func (s *Selector) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.height {
		s.offset = s.cursor - s.height + 1
	}
}

// View implements tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render(s.title))
	b.WriteString("\n\n")

	end := min(s.offset+s.height, len(s.options))
	for i := s.offset; i < end; i++ {
		opt := s.options[i]

		cursor := "  "
		if i == s.cursor {
			cursor = s.styles.Cursor.Render("> ")
		}

		box, style := "[ ]", s.styles.Unchecked
		if s.checked[i] {
			box, style = "[x]", s.styles.Checked
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(box + " " + opt.Label))
		b.WriteString("\n")

		if opt.Description != "" {
			b.WriteString(s.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}

	if len(s.options) > s.height {
		b.WriteString(s.styles.Help.Render(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.options))))
		b.WriteString("\n")
	}

	if s.showHelp {
		b.WriteString(s.styles.Help.Render(fmt.Sprintf("\n%d selected • ↑/↓ navigate • space toggle • a all • n none • enter confirm • q quit", s.CheckedCount())))
	}

	return b.String()
}

// CheckedCount returns how many options are currently checked.
func (s Selector) CheckedCount() int {
	n := 0
	for _, c := range s.checked {
		if c {
			n++
		}
	}
	return n
}

// Values returns the values of the checked options in display order.
// A cancelled selector returns nil.
func (s Selector) Values() []string {
	if s.cancelled {
		return nil
	}
	out := make([]string, 0, len(s.options))
	for i, opt := range s.options {
		if s.checked[i] {
			out = append(out, opt.Value)
		}
	}
	return out
}

// Cancelled returns true if the user cancelled the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user confirmed the selection.
func (s Selector) Submitted() bool {
	return s.submitted
}
