package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/internal/tui"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// TextWriter renders results for a terminal.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// WriteValidation implements Writer.
func (w *TextWriter) WriteValidation(path string, res *prepdir.ValidationResult) error {
	var sb strings.Builder

	if res.IsValid {
		sb.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("%s %s is a valid prepdir document", tui.SymbolCheck, path)))
	} else {
		sb.WriteString(tui.ErrorStyle.Render(fmt.Sprintf("%s %s is not a valid prepdir document", tui.SymbolCross, path)))
	}
	sb.WriteString("\n\n")

	field := func(name, value string) {
		sb.WriteString(tui.SubtitleStyle.Render(fmt.Sprintf("  %-10s", name)))
		sb.WriteString(" " + value + "\n")
	}
	field("Generated", res.Creation.Date)
	field("Creator", res.Creation.Creator)
	field("Version", res.Creation.Version)
	if res.BaseDirectory != "" {
		field("Base dir", res.BaseDirectory)
	}
	field("Scrubbing", scrubSummary(res.Scrub))
	field("Files", fmt.Sprintf("%d", len(res.FileOrder)))

	if len(res.FileOrder) > 0 {
		sb.WriteString("\n")
		for _, f := range res.FileOrder {
			sb.WriteString(tui.MutedStyle.Render("  "+tui.SymbolBullet+" ") + f + "\n")
		}
	}

	w.writeIssues(&sb, res.Issues)

	return w.writeString(sb.String())
}

func (w *TextWriter) writeIssues(sb *strings.Builder, issues []prepdir.Issue) {
	if len(issues) == 0 {
		return
	}
	sb.WriteString("\n")
	for _, i := range issues {
		style, label := tui.WarningStyle, "WARN "
		if i.Severity == prepdir.SeverityError {
			style, label = tui.ErrorStyle, "ERROR"
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", style.Render(label), issueLocation(i), i.Message))
	}
}

// WriteApply implements Writer.
func (w *TextWriter) WriteApply(rep services.ApplyReport) error {
	var sb strings.Builder

	if len(rep.Files) == 0 {
		sb.WriteString(tui.MutedStyle.Render("No files to apply.") + "\n")
		return w.writeString(sb.String())
	}

	for _, f := range rep.Files {
		var line string
		switch f.Status {
		case services.StatusWritten, services.StatusWouldWrite:
			line = tui.SuccessStyle.Render(fmt.Sprintf("%s %-11s", tui.SymbolCheck, f.Status)) + " " + f.Path
		case services.StatusSkipped:
			line = tui.MutedStyle.Render(fmt.Sprintf("%s %-11s", tui.SymbolBullet, f.Status)) + " " + f.Path
		default:
			line = tui.ErrorStyle.Render(fmt.Sprintf("%s %-11s", tui.SymbolCross, f.Status)) + " " + f.Path
		}
		if f.Reason != "" {
			line += tui.MutedStyle.Render(" (" + f.Reason + ")")
		}
		if f.Err != nil {
			line += ": " + f.Err.Error()
		}
		sb.WriteString(line + "\n")
	}

	verb := "written"
	if rep.DryRun {
		verb = "would be written"
	}
	sb.WriteString(fmt.Sprintf("\n%d %s, %d skipped, %d failed\n", rep.Written, verb, rep.Skipped, rep.Failed))

	return w.writeString(sb.String())
}
