package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/prepdir/internal/tui/components"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// FileSelector lets the user pick which changed files to write back.
type FileSelector struct {
	title   string
	options []tea.ProgramOption
}

// NewFileSelector creates a selector that takes over the terminal.
func NewFileSelector() *FileSelector {
	return &FileSelector{
		title:   "Select files to write",
		options: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// SelectFiles shows a checklist of paths, all checked initially.
// Quitting the checklist returns prepdir.ErrApprovalDenied.
func (s *FileSelector) SelectFiles(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	opts := make([]components.Option, 0, len(paths))
	for _, p := range paths {
		opts = append(opts, components.Option{Label: p, Value: p})
	}

	selector := components.NewSelector(fmt.Sprintf("%s (%d changed)", s.title, len(paths)), opts)
	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, s.options...)
	p := tea.NewProgram(selector, programOpts...)

	model, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("file selector failed: %w", err)
	}

	result := model.(components.Selector)
	if result.Cancelled() {
		return nil, fmt.Errorf("file selection cancelled: %w", prepdir.ErrApprovalDenied)
	}
	return result.Values(), nil
}

var _ prepdir.FileSelector = (*FileSelector)(nil)

// ProgressDisplay prints one-line status updates.
type ProgressDisplay struct {
	out         io.Writer
	interactive bool
}

// NewProgressDisplay writes to stderr, styled when interactive.
func NewProgressDisplay() *ProgressDisplay {
	return &ProgressDisplay{out: os.Stderr, interactive: IsInteractive()}
}

func (p *ProgressDisplay) Start(message string) {
	if !p.interactive {
		fmt.Fprintln(p.out, message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", SymbolSpinner, message)
}

func (p *ProgressDisplay) Success(message string) {
	fmt.Fprintf(p.out, "%s\n", SuccessStyle.Render(SymbolCheck+" "+message))
}

func (p *ProgressDisplay) Warn(message string) {
	fmt.Fprintf(p.out, "%s\n", WarningStyle.Render(SymbolWarning+" "+message))
}

func (p *ProgressDisplay) Error(message string) {
	fmt.Fprintf(p.out, "%s\n", ErrorStyle.Render(SymbolCross+" "+message))
}
