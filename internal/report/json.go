package report

import (
	"encoding/json"
	"io"

	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// JSONWriter renders results as indented JSON.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

type validationJSON struct {
	File          string              `json:"file"`
	IsValid       bool                `json:"is_valid"`
	Creation      prepdir.Creation    `json:"creation"`
	BaseDirectory string              `json:"base_directory,omitempty"`
	Scrub         prepdir.ScrubPolicy `json:"scrub"`
	Files         []string            `json:"files"`
	Errors        []string            `json:"errors"`
	Warnings      []string            `json:"warnings"`
	Issues        []prepdir.Issue     `json:"issues"`
}

type applyFileJSON struct {
	services.FileOutcome
	Error string `json:"error,omitempty"`
}

type applyJSON struct {
	Files   []applyFileJSON `json:"files"`
	Written int             `json:"written"`
	Skipped int             `json:"skipped"`
	Failed  int             `json:"failed"`
	DryRun  bool            `json:"dry_run"`
}

// WriteValidation implements Writer. File contents are left out.
func (w *JSONWriter) WriteValidation(path string, res *prepdir.ValidationResult) error {
	files := res.FileOrder
	if files == nil {
		files = []string{}
	}
	return w.encode(validationJSON{
		File:          path,
		IsValid:       res.IsValid,
		Creation:      res.Creation,
		BaseDirectory: res.BaseDirectory,
		Scrub:         res.Scrub,
		Files:         files,
		Errors:        nonNil(res.Errors),
		Warnings:      nonNil(res.Warnings),
		Issues:        res.Issues,
	})
}

// WriteApply implements Writer.
func (w *JSONWriter) WriteApply(rep services.ApplyReport) error {
	out := applyJSON{
		Files:   make([]applyFileJSON, 0, len(rep.Files)),
		Written: rep.Written,
		Skipped: rep.Skipped,
		Failed:  rep.Failed,
		DryRun:  rep.DryRun,
	}
	for _, f := range rep.Files {
		entry := applyFileJSON{FileOutcome: f}
		if f.Err != nil {
			entry.Error = f.Err.Error()
		}
		out.Files = append(out.Files, entry)
	}
	return w.encode(out)
}

func (w *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
