package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

const validDocument = "File listing generated 2024-05-06T07:08:09 by prepdir version 1.2.3\n" +
	"Base directory is '/project'\n" +
	"=-=-=-=-=-=-=-= Begin File: 'a.txt' =-=-=-=-=-=-=-=\n" +
	"alpha\n" +
	"=-=-=-=-=-=-=-= End File: 'a.txt' =-=-=-=-=-=-=-=\n"

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateCmd_ArgsValidation(t *testing.T) {
	err := validateCmd.Args(validateCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	if code := prepdir.ExitCodeForError(err); code != prepdir.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", prepdir.ExitUsageError, code, err)
	}
}

func TestRunValidate_Valid(t *testing.T) {
	out := resetFlags(t)
	path := writeDoc(t, validDocument)

	require.NoError(t, runValidate(validateCmd, []string{path}))
	assert.Contains(t, out.String(), "is a valid prepdir document")
	assert.Contains(t, out.String(), "a.txt")
}

func TestRunValidate_Invalid(t *testing.T) {
	out := resetFlags(t)
	path := writeDoc(t, "=== Begin File: 'a.txt' ===\nno footer\n")

	err := runValidate(validateCmd, []string{path})
	require.Error(t, err)
	assert.ErrorIs(t, err, prepdir.ErrValidationFailed)
	assert.Equal(t, prepdir.ExitValidationFailed, prepdir.ExitCodeForError(err))
	assert.Contains(t, out.String(), "has no matching footer")
}

func TestRunValidate_JSON(t *testing.T) {
	out := resetFlags(t)
	validateFormat = "json"
	path := writeDoc(t, validDocument)

	require.NoError(t, runValidate(validateCmd, []string{path}))

	var got struct {
		File    string   `json:"file"`
		IsValid bool     `json:"is_valid"`
		Files   []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, path, got.File)
	assert.True(t, got.IsValid)
	assert.Equal(t, []string{"a.txt"}, got.Files)
}

func TestRunValidate_Markdown(t *testing.T) {
	out := resetFlags(t)
	validateFormat = "md"

	require.NoError(t, runValidate(validateCmd, []string{writeDoc(t, validDocument)}))
	assert.Contains(t, out.String(), "# Validation: ")
}

func TestRunValidate_Errors(t *testing.T) {
	resetFlags(t)
	validateFormat = "xml"
	err := runValidate(validateCmd, []string{writeDoc(t, validDocument)})
	assert.ErrorIs(t, err, prepdir.ErrInvalidInput)

	resetFlags(t)
	err = runValidate(validateCmd, []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestExecute_Validate(t *testing.T) {
	out := resetFlags(t)
	path := writeDoc(t, validDocument)

	rootCmd.SetArgs([]string{"validate", path, "--format", "text"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "is a valid prepdir document")
}
