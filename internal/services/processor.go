package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/vvka-141/prepdir/internal/document"
	"github.com/vvka-141/prepdir/internal/files/filesystem"
	"github.com/vvka-141/prepdir/internal/files/scanner"
	"github.com/vvka-141/prepdir/internal/filelock"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// DateFormat is the timestamp layout written into document headers.
const DateFormat = "2006-01-02T15:04:05.000000"

// ProcessorOptions carries the collaborators of a Processor. Zero values
// select the OS filesystem, a null logger and the wall clock.
type ProcessorOptions struct {
	FS      filesystem.FileSystemProvider
	Logger  prepdir.Logger
	Version string
	Now     func() time.Time

	// FallbackReplacementUUID replaces an invalid GenerateConfig.ReplacementUUID.
	// Empty means prepdir.DefaultReplacementUUID.
	FallbackReplacementUUID string
}

// Output is one generated document together with the state needed to save it.
type Output struct {
	Content string
	Header  document.Header
	Entries []prepdir.FileEntry
	Skipped []prepdir.SkippedFile

	// Session holds the placeholder mapping built while scrubbing.
	Session *uuidscrub.Session
}

// Processor generates prepped documents for one configuration.
// Thread-Safety: NOT safe for concurrent Generate() calls on the same instance.
type Processor struct {
	cfg     prepdir.GenerateConfig
	fs      filesystem.FileSystemProvider
	logger  prepdir.Logger
	version string
	now     func() time.Time
}

// NewProcessor validates cfg and resolves its paths. An invalid replacement
// UUID is logged and replaced by the fallback rather than failing.
func NewProcessor(cfg prepdir.GenerateConfig, opts ProcessorOptions) (*Processor, error) {
	logger := logging.OrNull(opts.Logger)

	if cfg.ReplacementUUID != "" && !prepdir.IsHyphenatedUUID(cfg.ReplacementUUID) {
		fallback := opts.FallbackReplacementUUID
		if !prepdir.IsHyphenatedUUID(fallback) {
			fallback = prepdir.DefaultReplacementUUID
		}
		logger.Error("Invalid replacement UUID '%s'; using '%s' instead", cfg.ReplacementUUID, fallback)
		cfg.ReplacementUUID = fallback
	}
	if cfg.ReplacementUUID == "" {
		cfg.ReplacementUUID = prepdir.DefaultReplacementUUID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.Directory, err)
	}
	cfg.Directory = dir

	if cfg.OutputFile != "" {
		out, err := filepath.Abs(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", cfg.OutputFile, err)
		}
		cfg.OutputFile = out
	}

	fsProvider := opts.FS
	if fsProvider == nil {
		fsProvider = filesystem.NewOSFileSystem()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	version := opts.Version
	if version == "" {
		version = prepdir.UnknownValue
	}

	return &Processor{
		cfg:     cfg,
		fs:      fsProvider,
		logger:  logger,
		version: version,
		now:     now,
	}, nil
}

// Config returns the resolved configuration.
func (p *Processor) Config() prepdir.GenerateConfig {
	return p.cfg
}

// Generate scans the configured directory and renders the document.
func (p *Processor) Generate(ctx context.Context) (*Output, error) {
	policy := p.cfg.ScrubPolicy()
	session := uuidscrub.NewSession()

	s := scanner.NewScannerWithFS(p.fs, p.logger)
	if policy.Active() {
		s.WithScrubber(&scanner.Scrubber{
			Options: uuidscrub.Options{
				ScrubHyphenated:       p.cfg.ScrubHyphenated,
				ScrubHyphenless:       p.cfg.ScrubHyphenless,
				ReplacementUUID:       p.cfg.ReplacementUUID,
				UseUniquePlaceholders: p.cfg.UseUniquePlaceholders,
				Verbose:               p.cfg.Verbose,
				Logger:                p.logger,
			},
			Session: session,
		})
	}

	p.logger.Verbose("Scanning %s", p.cfg.Directory)
	result, err := s.Scan(ctx, prepdir.ScanOptions{
		BaseDir:             p.cfg.Directory,
		Extensions:          p.cfg.Extensions,
		SpecificFiles:       p.cfg.SpecificFiles,
		ExcludeDirs:         p.cfg.ExcludeDirs,
		ExcludeFiles:        p.cfg.ExcludeFiles,
		IgnoreExclusions:    p.cfg.IgnoreExclusions,
		IncludePrepdirFiles: p.cfg.IncludePrepdirFiles,
		OutputFile:          p.cfg.OutputFile,
	})
	if err != nil {
		return nil, err
	}

	header := document.Header{
		Date:          p.now().Format(DateFormat),
		Creator:       prepdir.ToolName,
		Version:       p.version,
		BaseDirectory: p.cfg.Directory,
		Scrub:         policy,
	}
	empty := document.NoFilesMessage(p.cfg.Extensions, len(p.cfg.SpecificFiles) > 0)
	content := document.Render(header, result.Entries, empty)

	for _, e := range result.Entries {
		if !e.Applicable() {
			continue
		}
		if lines := document.MarkerLines(e.Content); len(lines) > 0 {
			p.logger.Warn("%s has %d line(s) that look like file markers (first at line %d); they will not survive validation or apply",
				e.RelativePath, len(lines), lines[0])
		}
	}

	p.logger.Verbose("Collected %d file(s), skipped %d", len(result.Entries), len(result.Skipped))
	return &Output{
		Content: content,
		Header:  header,
		Entries: result.Entries,
		Skipped: result.Skipped,
		Session: session,
	}, nil
}

// Save writes out to path (the configured output file when empty) and, when
// unique placeholders produced a mapping, the mapping sidecar next to it.
// It returns the sidecar path, or "" when none was written.
func (p *Processor) Save(out *Output, path string) (string, error) {
	if out == nil {
		return "", fmt.Errorf("nothing to save: %w", prepdir.ErrInvalidInput)
	}
	if path == "" {
		path = p.cfg.OutputFile
	}
	if path == "" {
		path = prepdir.DefaultOutputFile
	}

	if err := filelock.LockAndWrite(path, []byte(out.Content)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	p.logger.Info("Wrote %s", path)

	if !p.cfg.UseUniquePlaceholders || out.Session == nil || out.Session.Mapping.Len() == 0 {
		return "", nil
	}

	mappingPath := MappingPath(path)
	var buf bytes.Buffer
	if err := uuidscrub.WriteMapping(&buf, out.Session.Mapping); err != nil {
		return "", err
	}
	if err := filelock.LockAndWrite(mappingPath, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", mappingPath, err)
	}
	p.logger.Info("Wrote UUID mapping (%d placeholder(s)) to %s", out.Session.Mapping.Len(), mappingPath)
	return mappingPath, nil
}

// MappingPath returns the mapping sidecar path for a document path.
func MappingPath(documentPath string) string {
	return documentPath + prepdir.MappingFileSuffix
}
