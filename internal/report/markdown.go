package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// MarkdownWriter renders results as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteValidation implements Writer.
func (w *MarkdownWriter) WriteValidation(path string, res *prepdir.ValidationResult) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Validation: " + path)
	md.PlainText("")

	rows := [][]string{
		{"Status", status(res)},
		{"Generated", res.Creation.Date},
		{"Creator", res.Creation.Creator},
		{"Version", res.Creation.Version},
	}
	if res.BaseDirectory != "" {
		rows = append(rows, []string{"Base directory", "`" + res.BaseDirectory + "`"})
	}
	rows = append(rows,
		[]string{"Scrubbing", scrubSummary(res.Scrub)},
		[]string{"Files", strconv.Itoa(len(res.FileOrder))},
	)
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	switch {
	case !res.IsValid:
		md.Cautionf("%d error(s) found. The document cannot be applied as is.", len(res.Errors))
	case len(res.Warnings) > 0:
		md.Warningf("Valid, with %d warning(s).", len(res.Warnings))
	default:
		md.Tip("No issues found.")
	}
	md.PlainText("")

	if len(res.FileOrder) > 0 {
		md.H2("Files")
		md.PlainText("")
		files := make([]string, 0, len(res.FileOrder))
		for _, f := range res.FileOrder {
			files = append(files, "`"+f+"`")
		}
		md.BulletList(files...)
		md.PlainText("")
	}

	if len(res.Issues) > 0 {
		md.H2("Issues")
		md.PlainText("")
		issueRows := make([][]string, 0, len(res.Issues))
		for _, i := range res.Issues {
			issueRows = append(issueRows, []string{i.Severity.String(), issueLocation(i), i.Message})
		}
		md.Table(markdown.TableSet{Header: []string{"Severity", "Location", "Message"}, Rows: issueRows})
		md.PlainText("")
	}

	return md.Build()
}

// WriteApply implements Writer.
func (w *MarkdownWriter) WriteApply(rep services.ApplyReport) error {
	md := markdown.NewMarkdown(w.output)

	title := "Apply"
	if rep.DryRun {
		title = "Apply (dry run)"
	}
	md.H1(title)
	md.PlainText("")

	if len(rep.Files) == 0 {
		md.PlainText("No files to apply.")
		return md.Build()
	}

	rows := make([][]string, 0, len(rep.Files))
	for _, f := range rep.Files {
		detail := f.Reason
		if f.Err != nil {
			detail = f.Err.Error()
		}
		rows = append(rows, []string{"`" + f.Path + "`", string(f.Status), detail})
	}
	md.Table(markdown.TableSet{Header: []string{"File", "Status", "Detail"}, Rows: rows})
	md.PlainText("")
	md.PlainTextf("Written: %d, skipped: %d, failed: %d", rep.Written, rep.Skipped, rep.Failed)

	return md.Build()
}
