package prepdir

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// FileEntry is one file captured in, or recovered from, a prepped document.
// Relative paths use forward slashes regardless of platform.
type FileEntry struct {
	// RelativePath is the path inside the base directory: "src/main.go"
	RelativePath string

	// AbsolutePath is the resolved location on disk
	AbsolutePath string

	// Content is the text written between the file's markers. For binary or
	// unreadable files it holds a placeholder message instead.
	Content string

	// IsScrubbed is true when at least one UUID in Content was replaced.
	IsScrubbed bool

	// IsBinary is true when the file is not valid UTF-8.
	IsBinary bool

	// Error is the read failure message, empty when the file was read.
	Error string

	// Checksum is the SHA-256 of Content
	Checksum string
}

// Validate checks the path invariants of the entry.
func (e *FileEntry) Validate() error {
	var errs []error

	if e.RelativePath == "" {
		errs = append(errs, fmt.Errorf("relative path is required: %w", ErrInvalidInput))
	} else if filepath.IsAbs(e.RelativePath) || strings.HasPrefix(e.RelativePath, "/") {
		errs = append(errs, fmt.Errorf("relative path %q must not be absolute: %w", e.RelativePath, ErrInvalidInput))
	}

	if e.AbsolutePath != "" && !filepath.IsAbs(e.AbsolutePath) {
		errs = append(errs, fmt.Errorf("absolute path %q must be absolute: %w", e.AbsolutePath, ErrInvalidInput))
	}

	return errors.Join(errs...)
}

// Applicable reports whether the entry carries real file content that can be written back.
func (e *FileEntry) Applicable() bool {
	return !e.IsBinary && e.Error == ""
}

// Creation describes who generated a prepped document and when.
// Fields the document does not declare are set to UnknownValue.
type Creation struct {
	Date    string `json:"date"`
	Creator string `json:"creator"`
	Version string `json:"version"`
}

// Severity classifies a validation issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns a human-readable string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is a single validation error or warning with the line it came from.
// Line is 1-based; 0 means the issue concerns the document as a whole.
type Issue struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// ValidationResult is the outcome of checking a prepped document.
// IsValid is true exactly when Errors is empty; warnings never affect it.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Issues   []Issue  `json:"issues"`

	// Files maps relative path to recovered content (joined by "\n", no trailing newline).
	Files map[string]string `json:"files"`

	// FileOrder lists the keys of Files in the order their blocks completed.
	FileOrder []string `json:"file_order"`

	Creation      Creation    `json:"creation"`
	BaseDirectory string      `json:"base_directory,omitempty"`
	Scrub         ScrubPolicy `json:"scrub"`
}

// NewValidationResult returns an empty result with unknown creation metadata.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Issues:   []Issue{},
		Files:    map[string]string{},
		Creation: Creation{
			Date:    UnknownValue,
			Creator: UnknownValue,
			Version: UnknownValue,
		},
	}
}

// AddError records an error found at line.
func (r *ValidationResult) AddError(line int, msg string) {
	r.Errors = append(r.Errors, msg)
	r.Issues = append(r.Issues, Issue{Severity: SeverityError, Line: line, Message: msg})
	r.IsValid = false
}

// AddWarning records a warning found at line.
func (r *ValidationResult) AddWarning(line int, msg string) {
	r.Warnings = append(r.Warnings, msg)
	r.Issues = append(r.Issues, Issue{Severity: SeverityWarning, Line: line, Message: msg})
}

// SetFile stores the content of a completed or truncated block.
func (r *ValidationResult) SetFile(path, content string) {
	if _, exists := r.Files[path]; !exists {
		r.FileOrder = append(r.FileOrder, path)
	}
	r.Files[path] = content
}

// Finalize derives IsValid from the recorded errors.
func (r *ValidationResult) Finalize() {
	r.IsValid = len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise ErrValidationFailed joined with every error.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors)+1)
	errs = append(errs, ErrValidationFailed)
	for _, msg := range r.Errors {
		errs = append(errs, errors.New(msg))
	}
	return errors.Join(errs...)
}

// ScrubPolicy describes how UUIDs were scrubbed when a document was generated.
// It is announced by "Note:" lines in the document header.
type ScrubPolicy struct {
	Hyphenated         bool   `json:"hyphenated"`
	Hyphenless         bool   `json:"hyphenless"`
	UniquePlaceholders bool   `json:"unique_placeholders"`
	ReplacementUUID    string `json:"replacement_uuid,omitempty"`
}

var placeholderPattern = regexp.MustCompile(regexp.QuoteMeta(PlaceholderPrefix) + `\d+`)

// Active reports whether any UUID kind is scrubbed.
func (p ScrubPolicy) Active() bool {
	return p.Hyphenated || p.Hyphenless
}

// Notes renders the header lines announcing the policy.
func (p ScrubPolicy) Notes() []string {
	var notes []string
	if p.Hyphenated {
		notes = append(notes, "Note: Valid (hyphenated) UUIDs in file contents will be scrubbed and replaced with "+p.target(p.ReplacementUUID)+".")
	}
	if p.Hyphenless {
		notes = append(notes, "Note: Valid hyphen-less UUIDs in file contents will be scrubbed and replaced with "+p.target(strings.ReplaceAll(p.ReplacementUUID, "-", ""))+".")
	}
	return notes
}

func (p ScrubPolicy) target(replacement string) string {
	if p.UniquePlaceholders {
		return "unique placeholders (e.g., " + PlaceholderPrefix + "n)"
	}
	return "'" + replacement + "'"
}

// Marks reports whether content carries tokens this policy would have produced.
func (p ScrubPolicy) Marks(content string) bool {
	if !p.Active() {
		return false
	}
	if p.UniquePlaceholders {
		return placeholderPattern.MatchString(content)
	}
	if p.ReplacementUUID == "" {
		return false
	}
	if p.Hyphenated && strings.Contains(content, p.ReplacementUUID) {
		return true
	}
	return p.Hyphenless && strings.Contains(content, strings.ReplaceAll(p.ReplacementUUID, "-", ""))
}

// IsHyphenatedUUID reports whether s is exactly one UUID in 8-4-4-4-12 form.
func IsHyphenatedUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// GenerateConfig contains all parameters needed to produce a prepped document.
type GenerateConfig struct {
	// Directory is the base directory to prepare
	Directory string

	// Extensions restricts included files (without dot); empty includes all
	Extensions []string

	// SpecificFiles lists files to include instead of walking Directory
	SpecificFiles []string

	// OutputFile is the document path; it is excluded from the listing
	OutputFile string

	// Exclusion glob patterns
	ExcludeDirs  []string
	ExcludeFiles []string

	IgnoreExclusions    bool
	IncludePrepdirFiles bool

	// UUID scrubbing
	ScrubHyphenated       bool
	ScrubHyphenless       bool
	ReplacementUUID       string
	UseUniquePlaceholders bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the GenerateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if c.Directory == "" {
		errs = append(errs, fmt.Errorf("Directory is required: %w", ErrInvalidConfig))
	}

	if c.ReplacementUUID != "" && !IsHyphenatedUUID(c.ReplacementUUID) {
		errs = append(errs, fmt.Errorf("ReplacementUUID %q is not a valid UUID: %w", c.ReplacementUUID, ErrInvalidConfig))
	}

	for _, ext := range c.Extensions {
		if strings.ContainsAny(ext, `/\`) {
			errs = append(errs, fmt.Errorf("extension %q must not contain path separators: %w", ext, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// ScrubPolicy returns the policy announced for documents generated with this config.
func (c *GenerateConfig) ScrubPolicy() ScrubPolicy {
	return ScrubPolicy{
		Hyphenated:         c.ScrubHyphenated,
		Hyphenless:         c.ScrubHyphenless,
		UniquePlaceholders: c.UseUniquePlaceholders,
		ReplacementUUID:    c.ReplacementUUID,
	}
}
