package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/prepdir/internal/checksum"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// readErrorPrefix starts the placeholder written for unreadable files.
var readErrorPrefix, _, _ = strings.Cut(prepdir.ReadErrorContentFormat, "%s")

// Document is a parsed prepped document with entries resolved against its base directory.
type Document struct {
	Creation      prepdir.Creation
	BaseDirectory string
	Scrub         prepdir.ScrubPolicy

	// Entries are keyed by absolute path; Order keeps document order.
	Entries map[string]prepdir.FileEntry
	Order   []string

	// Mapping restores scrubbed placeholders. Set by the caller when a
	// mapping sidecar is available.
	Mapping *uuidscrub.Mapping

	Warnings []string
}

// ParseOptions controls base directory resolution.
type ParseOptions struct {
	// ExpectedBaseDir, when set, must contain the declared base directory.
	// It is used as the base when the document declares none.
	ExpectedBaseDir string

	// HighestBaseDir, when set, must contain the base directory and every entry.
	HighestBaseDir string
}

// Parse validates text and resolves its entries. Invalid documents fail with
// prepdir.ErrInvalidDocument wrapping every validation error.
func Parse(text string, opts ParseOptions) (*Document, error) {
	res := Validate(text)
	if !res.IsValid {
		return nil, fmt.Errorf("%w: %w", prepdir.ErrInvalidDocument, res.Err())
	}

	doc := &Document{
		Creation: res.Creation,
		Scrub:    res.Scrub,
		Entries:  make(map[string]prepdir.FileEntry, len(res.Files)),
		Warnings: res.Warnings,
	}

	base, warning, err := resolveBaseDir(res.BaseDirectory, opts.ExpectedBaseDir)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		doc.Warnings = append(doc.Warnings, warning)
	}
	doc.BaseDirectory = base

	var highest string
	if opts.HighestBaseDir != "" {
		highest, err = filepath.Abs(opts.HighestBaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", opts.HighestBaseDir, err)
		}
		if !within(base, highest) {
			return nil, fmt.Errorf("base directory %s is outside %s: %w", base, highest, prepdir.ErrPathEscape)
		}
	}

	calc := checksum.New()
	for _, rel := range res.FileOrder {
		abs, err := resolveEntryPath(base, rel)
		if err != nil {
			return nil, err
		}
		if highest != "" && !within(abs, highest) {
			return nil, fmt.Errorf("%s resolves outside %s: %w", rel, highest, prepdir.ErrPathEscape)
		}

		content := res.Files[rel]
		entry := prepdir.FileEntry{
			RelativePath: rel,
			AbsolutePath: abs,
			Content:      content,
			Checksum:     calc.CalculateRaw([]byte(content)),
		}
		switch {
		case content == prepdir.BinaryContentPlaceholder:
			entry.IsBinary = true
		case strings.HasPrefix(content, readErrorPrefix) && strings.HasSuffix(content, "]"):
			entry.Error = strings.TrimSuffix(strings.TrimPrefix(content, readErrorPrefix), "]")
		default:
			entry.IsScrubbed = res.Scrub.Marks(content)
		}
		doc.Entries[abs] = entry
		doc.Order = append(doc.Order, abs)
	}

	return doc, nil
}

// Files returns the entries in document order.
func (d *Document) Files() []prepdir.FileEntry {
	out := make([]prepdir.FileEntry, 0, len(d.Order))
	for _, abs := range d.Order {
		out = append(out, d.Entries[abs])
	}
	return out
}

// resolveBaseDir picks the base directory and returns a warning when it had to fall back.
func resolveBaseDir(declared, expected string) (string, string, error) {
	var expectedAbs string
	if expected != "" {
		abs, err := filepath.Abs(expected)
		if err != nil {
			return "", "", fmt.Errorf("failed to resolve %s: %w", expected, err)
		}
		expectedAbs = abs
	}

	if declared == "" {
		if expectedAbs == "" {
			return "", "", fmt.Errorf("cannot determine base directory: document declares none: %w", prepdir.ErrInvalidDocument)
		}
		return expectedAbs, fmt.Sprintf("No base directory declared; using '%s'", expectedAbs), nil
	}

	declaredAbs, err := filepath.Abs(declared)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve %s: %w", declared, err)
	}
	if expectedAbs != "" && !within(declaredAbs, expectedAbs) {
		return "", "", fmt.Errorf("document base directory %s is not within %s: %w", declaredAbs, expectedAbs, prepdir.ErrBaseDirMismatch)
	}
	return declaredAbs, "", nil
}

func resolveEntryPath(base, rel string) (string, error) {
	if rel == "" || strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("entry path %q must be relative: %w", rel, prepdir.ErrPathEscape)
	}
	abs := filepath.Join(base, filepath.FromSlash(rel))
	if !within(abs, base) {
		return "", fmt.Errorf("entry path %q escapes %s: %w", rel, base, prepdir.ErrPathEscape)
	}
	return abs, nil
}

// within reports whether path is root or inside it. Both must be absolute.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ChangeOptions controls how entries are compared.
type ChangeOptions struct {
	// IgnoreWhitespace compares normalized checksums.
	IgnoreWhitespace bool
}

// ChangedFiles returns entries of edited that are missing from original or
// whose content differs, in edited's order.
func ChangedFiles(original, edited *Document, opts ChangeOptions) []prepdir.FileEntry {
	calc := checksum.New()
	var changed []prepdir.FileEntry
	for _, abs := range edited.Order {
		e := edited.Entries[abs]
		o, ok := original.Entries[abs]
		if ok && calc.Equal(o.Content, e.Content, opts.IgnoreWhitespace) {
			continue
		}
		changed = append(changed, e)
	}
	return changed
}

// IsGenerated reports whether content starts with a header written by prepdir.
func IsGenerated(content string) bool {
	first, _, _ := strings.Cut(strings.TrimLeft(content, " \t\r\n"), "\n")
	m := generatedRegex.FindStringSubmatch(strings.TrimSpace(first))
	return m != nil && strings.HasPrefix(m[2], prepdir.ToolName)
}
