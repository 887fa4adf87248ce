package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

type embedFile struct {
	fsys    fs.FS
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.absPath)
}

type embedDirectory struct {
	fsys    fs.FS
	absPath string
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn WalkFunc) error {
	return fs.WalkDir(d.fsys, d.absPath, func(filePath string, entry fs.DirEntry, walkErr error) error {
		rel := "."
		if filePath != d.absPath {
			rel = strings.TrimPrefix(filePath, d.absPath+"/")
			if d.absPath == "." {
				rel = filePath
			}
		}
		file := &embedFile{fsys: d.fsys, absPath: filePath, relPath: rel}

		if walkErr != nil {
			return fn(file, walkErr)
		}
		info, err := entry.Info()
		if err != nil {
			return fn(file, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}
		file.info = info
		return fn(file, nil)
	})
}

// EmbedFileSystem implements FileSystemProvider over a read-only fs.FS,
// typically an embed.FS compiled into the binary.
type EmbedFileSystem struct {
	fsys fs.FS
	root string
}

// NewEmbedFileSystem wraps fsys. Relative paths resolve against root, a
// slash-separated directory inside fsys ("." for the top).
func NewEmbedFileSystem(fsys fs.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{fsys: fsys, root: path.Clean(root)}
}

// resolve maps a caller path to a valid fs.FS path. Leading slashes are dropped.
func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || p == "." {
		return efs.root
	}
	if strings.HasPrefix(p, "/") {
		return path.Clean(strings.TrimLeft(p, "/"))
	}
	return path.Join(efs.root, p)
}

// Open implements FileSystemProvider.Open
func (efs *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := efs.resolve(openPath)
	info, err := fs.Stat(efs.fsys, absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &embedDirectory{fsys: efs.fsys, absPath: absPath}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := fs.ReadFile(efs.fsys, efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.fsys, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}
