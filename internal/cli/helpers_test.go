package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/prepdir/internal/config"
	"github.com/vvka-141/prepdir/internal/report"
	"github.com/vvka-141/prepdir/internal/tui"
)

const testUUID = "123e4567-e89b-12d3-a456-426614174000"

// resetFlags restores every command's flag variables and isolates the test
// from the user's config files and terminal.
func resetFlags(t *testing.T) *bytes.Buffer {
	t.Helper()
	generateFlags = generateFlagValues{}
	applyFlags = applyFlagValues{format: string(report.FormatText)}
	validateFormat = string(report.FormatText)
	initForce = false

	t.Setenv(config.EnvSkipConfigFiles, "true")
	t.Setenv(tui.EnvNonInteractive, "1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	return &out
}

// writeTree creates files under a new temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
