// Package scanner discovers the files that go into a prepped document.
//
// The scanner package is responsible for:
//   - Walking a directory tree in lexical order, pruning excluded directories
//   - Filtering by extension, exclusion patterns and the output file itself
//   - Resolving an explicit list of files instead of walking
//   - Reading contents concurrently and building entries in traversal order
//   - Scrubbing UUIDs with one session shared across all files
//
// The scanner is filesystem-agnostic through the
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
