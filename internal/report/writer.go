package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Format selects a report writer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown}

// ParseFormat accepts a format name, case-insensitively. "md" is an alias for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected text, json or markdown): %w", s, prepdir.ErrInvalidInput)
}

// Writer renders results to its output.
type Writer interface {
	// WriteValidation renders the result of validating the document at path.
	WriteValidation(path string, res *prepdir.ValidationResult) error

	// WriteApply renders the outcome of an apply run.
	WriteApply(rep services.ApplyReport) error
}

// NewWriter returns the writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	}
	return nil, fmt.Errorf("unknown report format %q: %w", format, prepdir.ErrInvalidInput)
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

func (w baseWriter) writeString(s string) error {
	_, err := io.WriteString(w.output, s)
	return err
}

func status(res *prepdir.ValidationResult) string {
	if res.IsValid {
		return "valid"
	}
	return "invalid"
}

func scrubSummary(p prepdir.ScrubPolicy) string {
	if !p.Active() {
		return "none"
	}
	var kinds []string
	if p.Hyphenated {
		kinds = append(kinds, "hyphenated")
	}
	if p.Hyphenless {
		kinds = append(kinds, "hyphen-less")
	}
	target := "unique placeholders"
	if !p.UniquePlaceholders {
		target = p.ReplacementUUID
		if target == "" {
			target = "fixed UUID"
		}
	}
	return strings.Join(kinds, ", ") + " → " + target
}

func issueLocation(i prepdir.Issue) string {
	if i.Line == 0 {
		return "document"
	}
	return fmt.Sprintf("line %d", i.Line)
}
