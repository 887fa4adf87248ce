package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func scriptedSelector(input string) *FileSelector {
	return &FileSelector{
		title: "Select files to write",
		options: []tea.ProgramOption{
			tea.WithInput(strings.NewReader(input)),
			tea.WithOutput(io.Discard),
		},
	}
}

func TestFileSelector_EnterKeepsAll(t *testing.T) {
	got, err := scriptedSelector("\r").SelectFiles(context.Background(), []string{"a.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, got)
}

func TestFileSelector_QuitDenies(t *testing.T) {
	_, err := scriptedSelector("q").SelectFiles(context.Background(), []string{"a.txt"})
	assert.ErrorIs(t, err, prepdir.ErrApprovalDenied)
}

func TestFileSelector_NoPaths(t *testing.T) {
	got, err := scriptedSelector("").SelectFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProgressDisplay(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressDisplay{out: &buf}

	p.Start("Scanning")
	p.Success("Wrote prepped_dir.txt")
	p.Warn("Skipped 2 files")
	p.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "Scanning\n")
	assert.Contains(t, out, SymbolCheck+" Wrote prepped_dir.txt")
	assert.Contains(t, out, SymbolWarning+" Skipped 2 files")
	assert.Contains(t, out, SymbolCross+" boom")
	assert.NotContains(t, out, SymbolSpinner)

	buf.Reset()
	p.interactive = true
	p.Start("Scanning")
	assert.Equal(t, SymbolSpinner+" Scanning\n", buf.String())
}
