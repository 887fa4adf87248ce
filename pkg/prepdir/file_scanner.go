package prepdir

import "context"

// FileScanner defines the interface for discovering files to include in a prepped document.
type FileScanner interface {
	// Scan walks the base directory (or the listed files) and returns entries
	// in traversal order. Unreadable files become entries carrying an Error.
	Scan(ctx context.Context, opts ScanOptions) (ScanResult, error)
}

// ScanOptions controls which files a scan includes.
type ScanOptions struct {
	// BaseDir is the absolute directory all relative paths are computed against.
	BaseDir string

	// Extensions restricts files to these extensions (without dot). Empty means all.
	Extensions []string

	// SpecificFiles lists files to include instead of walking BaseDir.
	SpecificFiles []string

	// ExcludeDirs and ExcludeFiles are glob patterns.
	ExcludeDirs  []string
	ExcludeFiles []string

	// IgnoreExclusions disables ExcludeDirs and ExcludeFiles.
	IgnoreExclusions bool

	// IncludePrepdirFiles keeps files that are themselves prepped documents.
	IncludePrepdirFiles bool

	// OutputFile is the document being generated; it is never included.
	OutputFile string
}

// ScanResult contains the results of a scan.
type ScanResult struct {
	Entries []FileEntry

	// Skipped lists relative paths that were excluded, with the reason.
	Skipped []SkippedFile
}

// SkippedFile records a file the scan decided not to include.
type SkippedFile struct {
	Path   string
	Reason string
}
