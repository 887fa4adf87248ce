// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The scanner walks directories through FileSystemProvider so traversal can
// be tested in memory and the bundled configuration can be read from the
// binary the same way files are read from disk.
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: in-memory trees for tests
//   - EmbedFileSystem: read-only fs.FS trees such as embed.FS
//
// All walks visit entries in lexical order with parents before children,
// and honor fs.SkipDir.
package filesystem
