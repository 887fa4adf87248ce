package exclude

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func TestMatcher_ExcludesDir(t *testing.T) {
	m, err := New([]string{".git", "node_modules/", "*.egg-info", "build/cache", "**/tmp"}, nil)
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{".git", true},
		{"node_modules", true},
		{"web/node_modules", true},
		{"web/node_modules/pkg", true},
		{"prepdir.egg-info", true},
		{"build/cache", true},
		{"build/cache/x", true},
		{"build", false},
		{"src/tmp", true},
		{"src", false},
		{"gitignored", false},
		{".", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := m.ExcludesDir(tt.rel, filepath.Join("/root/proj", tt.rel)); got != tt.want {
				t.Errorf("ExcludesDir(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatcher_ExcludesFile(t *testing.T) {
	m, err := New(nil, []string{"*.pyc", ".env", "LICENSE", ".prepdir/config.yaml", "**/*.log", "docs/*.md"})
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{"a.pyc", true},
		{"pkg/mod/a.pyc", true},
		{".env", true},
		{"sub/.env", true},
		{".envrc", false},
		{"LICENSE", true},
		{".prepdir/config.yaml", true},
		{"other/config.yaml", false},
		{"app.log", true},
		{"var/log/app.log", true},
		{"docs/readme.md", true},
		{"docs/deep/readme.md", false},
		{"main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			if got := m.ExcludesFile(tt.rel, filepath.Join("/root/proj", tt.rel)); got != tt.want {
				t.Errorf("ExcludesFile(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatcher_HomeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	m, err := New(nil, []string{"~/.prepdir/config.yaml"})
	require.NoError(t, err)

	abs := filepath.Join(home, ".prepdir", "config.yaml")
	assert.True(t, m.ExcludesFile(".prepdir/config.yaml", abs))
	assert.False(t, m.ExcludesFile("proj/.prepdir/config.yaml", "/elsewhere/proj/.prepdir/config.yaml"))
}

func TestMatcher_Excludes(t *testing.T) {
	m, err := New([]string{"vendor"}, []string{"*.bak"})
	require.NoError(t, err)

	assert.True(t, m.Excludes("vendor/lib/x.go", "/p/vendor/lib/x.go"))
	assert.True(t, m.Excludes("src/old.bak", "/p/src/old.bak"))
	assert.False(t, m.Excludes("src/x.go", "/p/src/x.go"))
	assert.False(t, m.Excludes("x.go", "/p/x.go"))
}

func TestMatcher_Nil(t *testing.T) {
	var m *Matcher
	assert.False(t, m.ExcludesDir("a", "/a"))
	assert.False(t, m.ExcludesFile("a", "/a"))
	assert.False(t, m.Excludes("a/b", "/a/b"))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"}, nil)
	require.ErrorIs(t, err, prepdir.ErrInvalidConfig)
}
