package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	absPath string
	relPath string
	content []byte
	readErr error
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.content, nil
}

type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn WalkFunc) error {
	entries := d.fs.entriesUnder(d.absPath)

	var skipped []string
	for _, entry := range entries {
		if isUnderAny(entry.absPath, skipped) {
			continue
		}

		rel := "."
		if entry.absPath != d.absPath {
			rel = strings.TrimPrefix(entry.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
		}
		view := &memoryFile{absPath: entry.absPath, relPath: rel, content: entry.content, readErr: entry.readErr, info: entry.info}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()
			callbackErr = fn(view, nil)
		}()

		if errors.Is(callbackErr, fs.SkipDir) {
			if entry.info.IsDir() {
				if entry.absPath == d.absPath {
					return nil
				}
				skipped = append(skipped, entry.absPath)
			}
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func isUnderAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider in memory, for tests.
// Paths use forward slashes.
type MemoryFileSystem struct {
	files map[string]*memoryFile
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newMemoryDir(root)
	return mfs
}

func newMemoryDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
		},
	}
}

// Root returns the root directory path.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a text file. Relative paths are placed under the root.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileBytes(filePath, []byte(content))
}

// AddFileBytes adds a file with arbitrary content.
func (mfs *MemoryFileSystem) AddFileBytes(filePath string, content []byte) {
	mfs.add(filePath, content, nil)
}

// AddUnreadableFile adds a file whose content cannot be read.
func (mfs *MemoryFileSystem) AddUnreadableFile(filePath string, readErr error) {
	mfs.add(filePath, nil, readErr)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)
	if _, exists := mfs.files[absPath]; !exists {
		mfs.files[absPath] = newMemoryDir(absPath)
	}
	mfs.ensureParents(absPath)
}

func (mfs *MemoryFileSystem) add(filePath string, content []byte, readErr error) {
	absPath := mfs.resolve(filePath)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		content: content,
		readErr: readErr,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureParents(absPath)
}

func (mfs *MemoryFileSystem) ensureParents(p string) {
	for dir := path.Dir(p); dir != p && mfs.contains(dir); p, dir = dir, path.Dir(dir) {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = newMemoryDir(dir)
		}
	}
}

func (mfs *MemoryFileSystem) contains(p string) bool {
	return p == mfs.root || strings.HasPrefix(p, strings.TrimSuffix(mfs.root, "/")+"/")
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// entriesUnder returns basePath and everything below it, sorted by path
// component so a directory's children follow it directly.
func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryFile {
	prefix := strings.TrimSuffix(basePath, "/") + "/"
	var entries []*memoryFile
	for p, file := range mfs.files {
		if p == basePath || strings.HasPrefix(p, prefix) {
			entries = append(entries, file)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return lessByComponent(entries[i].absPath, entries[j].absPath)
	})
	return entries
}

// lessByComponent orders "a/b" before "a.txt", matching filepath.WalkDir.
func lessByComponent(a, b string) bool {
	pa, pb := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
	}
	if !file.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.ReadContent()
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return file.info, nil
}
