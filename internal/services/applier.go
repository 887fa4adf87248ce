package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vvka-141/prepdir/internal/document"
	"github.com/vvka-141/prepdir/internal/filelock"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/retry"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// ApplyStatus is the outcome for one file.
type ApplyStatus string

const (
	StatusWritten    ApplyStatus = "written"
	StatusWouldWrite ApplyStatus = "would write"
	StatusSkipped    ApplyStatus = "skipped"
	StatusFailed     ApplyStatus = "failed"
)

// ApplyRequest describes one apply run.
type ApplyRequest struct {
	// Edited is the document whose contents are written back.
	Edited *document.Document

	// Original, when set, limits the run to entries that differ from it.
	Original *document.Document

	// Mapping restores placeholders. Nil falls back to Edited.Mapping,
	// then Original.Mapping.
	Mapping *uuidscrub.Mapping

	// Selector optionally narrows the candidates interactively.
	Selector prepdir.FileSelector

	// Approver confirms the write. Required unless DryRun.
	Approver prepdir.Approver

	DryRun           bool
	IgnoreWhitespace bool
}

// FileOutcome records what happened to one entry.
type FileOutcome struct {
	Path         string      `json:"path"`
	AbsolutePath string      `json:"absolute_path"`
	Status       ApplyStatus `json:"status"`
	Reason       string      `json:"reason,omitempty"`
	Err          error       `json:"-"`
}

// ApplyReport summarizes an apply run.
type ApplyReport struct {
	Files   []FileOutcome `json:"files"`
	Written int           `json:"written"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
	DryRun  bool          `json:"dry_run"`
}

func (r *ApplyReport) add(o FileOutcome) {
	r.Files = append(r.Files, o)
	switch o.Status {
	case StatusWritten, StatusWouldWrite:
		r.Written++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Err joins every per-file failure under prepdir.ErrApplyFailed, or returns nil.
func (r ApplyReport) Err() error {
	if r.Failed == 0 {
		return nil
	}
	errs := []error{fmt.Errorf("%d file(s) could not be written: %w", r.Failed, prepdir.ErrApplyFailed)}
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return errors.Join(errs...)
}

// Applier writes edited document contents back to disk.
type Applier struct {
	logger prepdir.Logger
	write  func(path string, data []byte) error
	retry  *retry.Executor
}

// NewApplier creates an applier writing through locked atomic renames.
// Transient write errors such as a busy file are retried a few times.
func NewApplier(logger prepdir.Logger) *Applier {
	logger = logging.OrNull(logger)
	executor := retry.NewExecutor(retry.NewFileErrorClassifier(), retry.NewExponentialBackoff(3)).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("Write attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
	return &Applier{logger: logger, write: filelock.LockAndWrite, retry: executor}
}

// Apply selects, approves, restores and writes the candidate entries.
// A denied approval returns prepdir.ErrApprovalDenied. A failure on one file
// is recorded in the report and does not stop the others; callers use
// ApplyReport.Err to surface them.
func (a *Applier) Apply(ctx context.Context, req ApplyRequest) (ApplyReport, error) {
	report := ApplyReport{DryRun: req.DryRun}
	if req.Edited == nil {
		return report, fmt.Errorf("edited document is required: %w", prepdir.ErrInvalidInput)
	}
	if !req.DryRun && req.Approver == nil {
		return report, fmt.Errorf("approver is required unless dry run: %w", prepdir.ErrInvalidInput)
	}

	candidates := a.candidates(req)
	if len(candidates) == 0 {
		a.logger.Info("No changes to apply")
		return report, nil
	}

	candidates, err := a.selectFiles(ctx, req.Selector, candidates)
	if err != nil {
		return report, err
	}
	if len(candidates) == 0 {
		a.logger.Info("No files selected")
		return report, nil
	}

	if !req.DryRun {
		approved, err := req.Approver.RequestApproval(ctx, relativePaths(candidates))
		if err != nil {
			return report, fmt.Errorf("approval failed: %w", err)
		}
		if !approved {
			return report, fmt.Errorf("writing %d file(s) was not approved: %w", len(candidates), prepdir.ErrApprovalDenied)
		}
	}

	mapping := req.Mapping
	if mapping == nil {
		mapping = req.Edited.Mapping
	}
	if mapping == nil && req.Original != nil {
		mapping = req.Original.Mapping
	}

	for _, entry := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.add(a.applyOne(ctx, entry, mapping, req.DryRun))
	}
	return report, nil
}

func (a *Applier) candidates(req ApplyRequest) []prepdir.FileEntry {
	if req.Original == nil {
		return req.Edited.Files()
	}
	return document.ChangedFiles(req.Original, req.Edited, document.ChangeOptions{IgnoreWhitespace: req.IgnoreWhitespace})
}

func (a *Applier) selectFiles(ctx context.Context, selector prepdir.FileSelector, candidates []prepdir.FileEntry) ([]prepdir.FileEntry, error) {
	if selector == nil {
		return candidates, nil
	}
	chosen, err := selector.SelectFiles(ctx, relativePaths(candidates))
	if err != nil {
		return nil, fmt.Errorf("file selection failed: %w", err)
	}
	keep := make(map[string]bool, len(chosen))
	for _, p := range chosen {
		keep[p] = true
	}
	var out []prepdir.FileEntry
	for _, e := range candidates {
		if keep[e.RelativePath] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *Applier) applyOne(ctx context.Context, entry prepdir.FileEntry, mapping *uuidscrub.Mapping, dryRun bool) FileOutcome {
	outcome := FileOutcome{Path: entry.RelativePath, AbsolutePath: entry.AbsolutePath}

	if !entry.Applicable() {
		outcome.Status = StatusSkipped
		outcome.Reason = "binary or unreadable file"
		a.logger.Verbose("Skipping %s (%s)", entry.RelativePath, outcome.Reason)
		return outcome
	}

	content, err := uuidscrub.Restore(entry.Content, mapping, entry.IsScrubbed)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("cannot restore UUIDs: %w", err)
		a.logger.Error("Failed to restore %s: %v", entry.RelativePath, err)
		return outcome
	}

	if dryRun {
		outcome.Status = StatusWouldWrite
		a.logger.Info("Would write %s", entry.RelativePath)
		return outcome
	}

	err = a.retry.Execute(ctx, func(context.Context) error {
		return a.write(entry.AbsolutePath, []byte(content))
	})
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		a.logger.Error("Failed to write %s: %v", entry.RelativePath, err)
		return outcome
	}
	outcome.Status = StatusWritten
	a.logger.Info("Wrote %s", entry.RelativePath)
	return outcome
}

func relativePaths(entries []prepdir.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelativePath)
	}
	return out
}
