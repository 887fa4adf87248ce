package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/prepdir/internal/checksum"
	"github.com/vvka-141/prepdir/internal/document"
	"github.com/vvka-141/prepdir/internal/files/exclude"
	"github.com/vvka-141/prepdir/internal/files/filesystem"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Skip reasons recorded in prepdir.ScanResult.Skipped.
const (
	ReasonOutputFile   = "output file"
	ReasonExtension    = "extension not selected"
	ReasonExcluded     = "excluded by configuration"
	ReasonGenerated    = "prepdir-generated file"
	ReasonMissing      = "does not exist"
	ReasonNotFile      = "not a file"
	ReasonOutsideBase  = "outside base directory"
	ReasonWalkError    = "cannot be traversed"
	ReasonDirectoryRef = "symlink to a directory"
)

// Scrubber applies UUID scrubbing to entry contents. One Session is shared
// by every file of a scan so placeholders stay consistent across files.
type Scrubber struct {
	Options uuidscrub.Options
	Session *uuidscrub.Session
}

func (s *Scrubber) apply(content string) (uuidscrub.Result, error) {
	if s.Session == nil {
		s.Session = uuidscrub.NewSession()
	}
	return uuidscrub.Scrub(content, s.Options, s.Session)
}

// Scanner discovers files and turns them into prepdir.FileEntry values.
// Contents are read concurrently; entries are built and scrubbed
// sequentially in traversal order.
type Scanner struct {
	fsProvider  filesystem.FileSystemProvider
	logger      prepdir.Logger
	scrub       *Scrubber
	concurrency int
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner(logger prepdir.Logger) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, logger prepdir.Logger) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider:  fsProvider,
		logger:      logging.OrNull(logger),
		concurrency: prepdir.DefaultReadConcurrency,
	}
}

// WithScrubber enables UUID scrubbing. A nil scrubber disables it.
func (s *Scanner) WithScrubber(scrub *Scrubber) *Scanner {
	s.scrub = scrub
	return s
}

// WithConcurrency bounds concurrent reads; values below 1 mean 1.
func (s *Scanner) WithConcurrency(n int) *Scanner {
	if n < 1 {
		n = 1
	}
	s.concurrency = n
	return s
}

type candidate struct {
	rel  string
	abs  string
	file filesystem.File

	raw     []byte
	readErr error
}

type selection struct {
	opts      prepdir.ScanOptions
	matcher   *exclude.Matcher
	outputAbs string
	result    prepdir.ScanResult
}

func (sel *selection) skip(rel, reason string) {
	sel.result.Skipped = append(sel.result.Skipped, prepdir.SkippedFile{Path: rel, Reason: reason})
}

// Scan implements prepdir.FileScanner.
func (s *Scanner) Scan(ctx context.Context, opts prepdir.ScanOptions) (prepdir.ScanResult, error) {
	if opts.BaseDir == "" {
		return prepdir.ScanResult{}, fmt.Errorf("base directory is required: %w", prepdir.ErrInvalidInput)
	}
	info, err := s.fsProvider.Stat(opts.BaseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return prepdir.ScanResult{}, fmt.Errorf("directory %s: %w", opts.BaseDir, prepdir.ErrDirectoryNotFound)
		}
		return prepdir.ScanResult{}, fmt.Errorf("failed to stat %s: %w", opts.BaseDir, err)
	}
	if !info.IsDir() {
		return prepdir.ScanResult{}, fmt.Errorf("%s is not a directory: %w", opts.BaseDir, prepdir.ErrInvalidInput)
	}

	sel := &selection{opts: opts}
	if !opts.IgnoreExclusions {
		sel.matcher, err = exclude.New(opts.ExcludeDirs, opts.ExcludeFiles)
		if err != nil {
			return prepdir.ScanResult{}, err
		}
	}
	if opts.OutputFile != "" {
		sel.outputAbs = opts.OutputFile
		if !filepath.IsAbs(sel.outputAbs) {
			if abs, err := filepath.Abs(sel.outputAbs); err == nil {
				sel.outputAbs = abs
			}
		}
		sel.outputAbs = filepath.Clean(sel.outputAbs)
	}

	var candidates []*candidate
	if len(opts.SpecificFiles) > 0 {
		candidates = s.collectSpecific(sel)
	} else {
		candidates, err = s.collectWalk(ctx, sel)
		if err != nil {
			return prepdir.ScanResult{}, err
		}
	}

	if err := s.readAll(ctx, candidates); err != nil {
		return prepdir.ScanResult{}, err
	}

	for _, c := range candidates {
		if !opts.IncludePrepdirFiles && c.readErr == nil && document.IsGenerated(string(c.raw)) {
			s.logger.Verbose("Skipping file: %s (%s)", c.rel, ReasonGenerated)
			sel.skip(c.rel, ReasonGenerated)
			continue
		}
		entry, err := BuildEntry(c.rel, c.abs, c.raw, c.readErr, s.scrub)
		if err != nil {
			return prepdir.ScanResult{}, fmt.Errorf("failed to process %s: %w", c.rel, err)
		}
		if entry.Error != "" {
			s.logger.Warn("Failed to read %s: %s", c.rel, entry.Error)
		}
		sel.result.Entries = append(sel.result.Entries, entry)
	}
	return sel.result, nil
}

func (s *Scanner) collectWalk(ctx context.Context, sel *selection) ([]*candidate, error) {
	dir, err := s.fsProvider.Open(sel.opts.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var out []*candidate
	err = dir.Walk(func(f filesystem.File, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if f == nil || f.RelativePath() == "." {
				return fmt.Errorf("error walking %s: %w", sel.opts.BaseDir, walkErr)
			}
			s.logger.Warn("Skipping %s: %v", f.RelativePath(), walkErr)
			sel.skip(f.RelativePath(), ReasonWalkError)
			if info := f.Info(); info != nil && info.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := f.RelativePath()
		if rel == "." {
			return nil
		}
		info := f.Info()
		if info.IsDir() {
			if sel.matcher.ExcludesDir(rel, f.Path()) {
				s.logger.Verbose("Skipping directory: %s (%s)", rel, ReasonExcluded)
				return fs.SkipDir
			}
			return nil
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			if target, err := s.fsProvider.Stat(f.Path()); err == nil && target.IsDir() {
				sel.skip(rel, ReasonDirectoryRef)
				return nil
			}
		} else if !info.Mode().IsRegular() {
			sel.skip(rel, ReasonNotFile)
			return nil
		}

		if reason := s.filter(sel, rel, f.Path(), true); reason != "" {
			s.logger.Verbose("Skipping file: %s (%s)", rel, reason)
			sel.skip(rel, reason)
			return nil
		}
		out = append(out, &candidate{rel: rel, abs: f.Path(), file: f})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scanner) collectSpecific(sel *selection) []*candidate {
	base := filepath.Clean(sel.opts.BaseDir)
	seen := make(map[string]bool, len(sel.opts.SpecificFiles))

	var out []*candidate
	for _, given := range sel.opts.SpecificFiles {
		abs := given
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(base, abs)
		}
		abs = filepath.Clean(abs)

		info, err := s.fsProvider.Stat(abs)
		if err != nil {
			s.logger.Warn("File '%s' does not exist", given)
			sel.skip(given, ReasonMissing)
			continue
		}
		if info.IsDir() {
			s.logger.Warn("'%s' is not a file", given)
			sel.skip(given, ReasonNotFile)
			continue
		}

		rel, err := filepath.Rel(base, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			s.logger.Warn("Skipping '%s' (%s)", given, ReasonOutsideBase)
			sel.skip(given, ReasonOutsideBase)
			continue
		}
		rel = filepath.ToSlash(rel)
		if seen[rel] {
			continue
		}
		seen[rel] = true

		if reason := s.filter(sel, rel, abs, false); reason != "" {
			s.logger.Info("Skipping file '%s' (%s)", given, reason)
			sel.skip(rel, reason)
			continue
		}
		out = append(out, &candidate{rel: rel, abs: abs})
	}
	return out
}

// filter returns the reason a file is left out, or "" to keep it.
// Explicitly listed files bypass the extension filter.
func (s *Scanner) filter(sel *selection, rel, abs string, checkExtension bool) string {
	if sel.outputAbs != "" && filepath.Clean(abs) == sel.outputAbs {
		return ReasonOutputFile
	}
	if checkExtension && !hasExtension(rel, sel.opts.Extensions) {
		return ReasonExtension
	}
	if sel.matcher.Excludes(rel, abs) {
		return ReasonExcluded
	}
	return ""
}

func hasExtension(rel string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" && strings.HasSuffix(rel, "."+ext) {
			return true
		}
	}
	return false
}

// readAll fills raw/readErr of every candidate. Read failures are recorded,
// not returned; only cancellation aborts.
func (s *Scanner) readAll(ctx context.Context, candidates []*candidate) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if c.file != nil {
				c.raw, c.readErr = c.file.ReadContent()
			} else {
				c.raw, c.readErr = s.fsProvider.ReadFile(c.abs)
			}
			return nil
		})
	}
	return g.Wait()
}

// BuildEntry turns raw file bytes into an entry. Read failures and non-UTF-8
// content become placeholder text; otherwise content is scrubbed when scrub is set.
func BuildEntry(relPath, absPath string, raw []byte, readErr error, scrub *Scrubber) (prepdir.FileEntry, error) {
	entry := prepdir.FileEntry{
		RelativePath: filepath.ToSlash(relPath),
		AbsolutePath: absPath,
	}

	switch {
	case readErr != nil:
		entry.Error = readErr.Error()
		entry.Content = fmt.Sprintf(prepdir.ReadErrorContentFormat, entry.Error)
	case !utf8.Valid(raw):
		entry.IsBinary = true
		entry.Content = prepdir.BinaryContentPlaceholder
	default:
		entry.Content = string(raw)
		if scrub != nil {
			res, err := scrub.apply(entry.Content)
			if err != nil {
				return prepdir.FileEntry{}, err
			}
			entry.Content = res.Content
			entry.IsScrubbed = res.Scrubbed
		}
	}

	entry.Checksum = checksum.New().CalculateRaw([]byte(entry.Content))
	if err := entry.Validate(); err != nil {
		return prepdir.FileEntry{}, err
	}
	return entry, nil
}

// Verify Scanner implements the interface at compile time
var _ prepdir.FileScanner = (*Scanner)(nil)
