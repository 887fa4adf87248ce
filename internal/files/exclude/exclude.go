// Package exclude decides which directories and files a scan leaves out.
//
// Patterns are globs in doublestar syntax ('*', '?', '[...]', '**').
// A leading "~/" expands to the user's home directory and trailing slashes
// are ignored.
package exclude

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

type pattern struct {
	raw  string
	glob string
	// pathLike patterns also match against relative and absolute paths.
	pathLike bool
}

// Matcher holds compiled directory and file exclusion patterns.
// A nil Matcher excludes nothing.
type Matcher struct {
	dirs  []pattern
	files []pattern
}

// New compiles the patterns. Invalid globs fail with prepdir.ErrInvalidConfig.
func New(dirPatterns, filePatterns []string) (*Matcher, error) {
	home, _ := os.UserHomeDir()

	dirs, err := compile(dirPatterns, home)
	if err != nil {
		return nil, err
	}
	files, err := compile(filePatterns, home)
	if err != nil {
		return nil, err
	}
	return &Matcher{dirs: dirs, files: files}, nil
}

func compile(raw []string, home string) ([]pattern, error) {
	out := make([]pattern, 0, len(raw))
	for _, r := range raw {
		glob := strings.TrimSpace(r)
		if glob == "" {
			continue
		}
		if home != "" && (glob == "~" || strings.HasPrefix(glob, "~/")) {
			glob = filepath.ToSlash(home) + strings.TrimPrefix(glob, "~")
		}
		glob = strings.TrimRight(glob, "/")
		if glob == "" || !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", r, prepdir.ErrInvalidConfig)
		}
		out = append(out, pattern{
			raw:      r,
			glob:     glob,
			pathLike: strings.Contains(glob, "/") || strings.Contains(glob, "**"),
		})
	}
	return out, nil
}

// ExcludesDir reports whether a directory, given by its slash-separated path
// relative to the scan root and its absolute path, is excluded. Any excluded
// component or parent excludes the whole subtree.
func (m *Matcher) ExcludesDir(rel, abs string) bool {
	if m == nil || rel == "." || rel == "" {
		return false
	}
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		prefix := strings.Join(parts[:i+1], "/")
		for _, p := range m.dirs {
			if match(p.glob, part) || match(p.glob, prefix) {
				return true
			}
		}
	}
	absSlash := filepath.ToSlash(abs)
	for _, p := range m.dirs {
		if p.pathLike && match(p.glob, absSlash) {
			return true
		}
	}
	return false
}

// ExcludesFile reports whether a file matches a file pattern. Directory
// patterns are not consulted; see Excludes.
func (m *Matcher) ExcludesFile(rel, abs string) bool {
	if m == nil {
		return false
	}
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	absSlash := filepath.ToSlash(abs)
	for _, p := range m.files {
		if match(p.glob, base) {
			return true
		}
		if p.pathLike && (match(p.glob, rel) || match(p.glob, absSlash)) {
			return true
		}
	}
	return false
}

// Excludes reports whether a file is excluded by a file pattern or by any
// of its parent directories.
func (m *Matcher) Excludes(rel, abs string) bool {
	if m.ExcludesFile(rel, abs) {
		return true
	}
	dir := rel
	absDir := abs
	for {
		i := strings.LastIndex(dir, "/")
		if i < 0 {
			return false
		}
		dir = dir[:i]
		absDir = filepath.Dir(absDir)
		if m.ExcludesDir(dir, absDir) {
			return true
		}
	}
}

func match(glob, name string) bool {
	ok, err := doublestar.Match(glob, name)
	return err == nil && ok
}
