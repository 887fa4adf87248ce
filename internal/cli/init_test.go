package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/prepdir/internal/config"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func TestRunInit(t *testing.T) {
	out := resetFlags(t)
	path := filepath.Join(t.TempDir(), ".prepdir", "config.yaml")

	require.NoError(t, runInit(initCmd, []string{path}))
	assert.Contains(t, out.String(), "Created "+path)

	bundled, err := config.Bundled()
	require.NoError(t, err)
	assert.Equal(t, string(bundled), readString(t, path))

	err = runInit(initCmd, []string{path})
	assert.ErrorIs(t, err, prepdir.ErrInvalidInput)

	initForce = true
	assert.NoError(t, runInit(initCmd, []string{path}))
}

func TestInitCmd_ArgsValidation(t *testing.T) {
	if err := initCmd.Args(initCmd, []string{"a", "b"}); err == nil {
		t.Fatal("Expected error for too many args")
	}
}
