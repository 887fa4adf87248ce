// Package files groups the file handling used to build a listing.
//
//   - filesystem: filesystem abstraction (OS, in-memory and fs.FS backed)
//   - exclude: glob-based exclusion of directories and files
//   - scanner: directory traversal, content reading and UUID scrubbing
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/prepdir/internal/files/filesystem"
//	    "github.com/vvka-141/prepdir/internal/files/scanner"
//	)
//
//	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
//	result, err := s.Scan(ctx, prepdir.ScanOptions{BaseDir: dir})
package files
