package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// BenchmarkScan benchmarks scanning and scrubbing on the real filesystem.
func BenchmarkScan(b *testing.B) {
	tempDir := b.TempDir()
	for i := 0; i < 50; i++ {
		content := fmt.Sprintf("id: 123e4567-e89b-12d3-a456-4266141740%02d\nname: item %d\n", i, i)
		if err := os.WriteFile(filepath.Join(tempDir, fmt.Sprintf("file%02d.yaml", i)), []byte(content), 0644); err != nil {
			b.Fatal(err)
		}
	}

	ctx := context.Background()
	opts := prepdir.ScanOptions{BaseDir: tempDir}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := NewScanner(nil).WithScrubber(&Scrubber{
			Options: uuidscrub.Options{ScrubHyphenated: true, UseUniquePlaceholders: true},
		})
		if _, err := s.Scan(ctx, opts); err != nil {
			b.Fatal(err)
		}
	}
}
