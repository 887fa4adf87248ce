package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is one entry met during a walk: a regular file, a directory or a symlink.
type File interface {
	// Path returns the absolute path
	Path() string

	// RelativePath returns the slash-separated path from the walked root ("." for the root)
	RelativePath() string

	// Info returns file metadata. It may be nil when the walk reports an error.
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// WalkFunc is called for every entry in lexical order, parents before children.
// A walk error is passed together with the entry it concerns, when known.
// Returning fs.SkipDir for a directory skips its contents; any other error stops the walk.
type WalkFunc func(f File, err error) error

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order
	Walk(fn WalkFunc) error
}

// FileSystemProvider gives read access to a tree of files
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
