package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestValidate_SingleFile(t *testing.T) {
	res := Validate("=== Begin File: 'test.txt' ===\ncontent\n=== End File: 'test.txt' ===\n")

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, map[string]string{"test.txt": "content"}, res.Files)
	assert.Equal(t, []string{msgMissingHeader}, res.Warnings)
	assert.Equal(t, prepdir.Creation{Date: "unknown", Creator: "unknown", Version: "unknown"}, res.Creation)
}

func TestValidate_FullHeader(t *testing.T) {
	doc := lines(
		"File listing generated 2025-06-26T12:15:00.123456 by prepdir version 0.14.1 (pip install prepdir)",
		"Base directory is '/home/me/project'",
		"Note: Valid (hyphenated) UUIDs in file contents will be scrubbed and replaced with unique placeholders (e.g., PLACEHOLDER_n).",
		"=-=-=-=-=-=-=-= Begin File: 'a.py' =-=-=-=-=-=-=-=",
		"print('hi')",
		"=-=-=-=-=-=-=-= End File: 'a.py' =-=-=-=-=-=-=-=",
	)
	res := Validate(doc)

	require.True(t, res.IsValid, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, prepdir.Creation{Date: "2025-06-26T12:15:00.123456", Creator: "prepdir", Version: "0.14.1"}, res.Creation)
	assert.Equal(t, "/home/me/project", res.BaseDirectory)
	assert.Equal(t, prepdir.ScrubPolicy{Hyphenated: true, UniquePlaceholders: true}, res.Scrub)
	assert.Equal(t, "print('hi')", res.Files["a.py"])
}

func TestValidate_ForeignCreator(t *testing.T) {
	doc := lines(
		"File listing generated 2025-06-26 01:02 by Grok 3",
		"--- Begin File: 'x' ---",
		"--- End File: 'x' ---",
	)
	res := Validate(doc)

	require.True(t, res.IsValid)
	assert.Equal(t, prepdir.Creation{Date: "2025-06-26 01:02", Creator: "Grok 3", Version: "unknown"}, res.Creation)
}

func TestValidate_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t\n"} {
		res := Validate(in)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"File is empty."}, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Empty(t, res.Files)
	}
}

func TestValidate_NoBeginMarkers(t *testing.T) {
	res := Validate("File listing generated 2025-06-26 12:00:00 by prepdir\nNo files found.\n")

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{msgNoBegin}, res.Errors)
	assert.Empty(t, res.Files)
}

func TestValidate_LenientDelimiters(t *testing.T) {
	doc := lines(
		"File listing generated 2025-06-26 12:00:00 by prepdir",
		"-=-=-= Begin File: 'a.txt' ==========",
		"alpha",
		"--- End File: 'a.txt' =-=",
		"===Begin File:'b.txt'===",
		"beta",
		"=== End File: 'b.txt' ---",
	)
	res := Validate(doc)

	require.True(t, res.IsValid, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"}, res.Files)
	assert.Equal(t, []string{"a.txt", "b.txt"}, res.FileOrder)
}

func TestValidate_MismatchedFooter(t *testing.T) {
	doc := lines(
		"=== Begin File: 'a.txt' ===",
		"one",
		"=== End File: 'b.txt' ===",
		"two",
		"=== End File: 'a.txt' ===",
	)
	res := Validate(doc)

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Footer for 'b.txt' does not match open header 'a.txt'."}, res.Errors)
	assert.Equal(t, "one\ntwo", res.Files["a.txt"], "mismatched footer line is discarded and the header stays open")
}

func TestValidate_FooterWithoutHeader(t *testing.T) {
	res := Validate(lines("=== Begin File: 'a' ===", "x", "=== End File: 'a' ===", "=== End File: 'a' ==="))

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Footer for 'a' without matching header."}, res.Errors)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, 4, res.Issues[0].Line)
}

func TestValidate_UnclosedHeader(t *testing.T) {
	res := Validate(lines("=== Begin File: 'a.txt' ===", "partial", "content"))

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Header for 'a.txt' has no matching footer."}, res.Errors)
	assert.Equal(t, "partial\ncontent", res.Files["a.txt"])
}

func TestValidate_NestedBeginIsContent(t *testing.T) {
	res := Validate(lines(
		"=== Begin File: 'outer.md' ===",
		"=== Begin File: 'inner.md' ===",
		"text",
		"=== End File: 'outer.md' ===",
	))

	require.True(t, res.IsValid, res.Errors)
	assert.Equal(t, "=== Begin File: 'inner.md' ===\ntext", res.Files["outer.md"])
	assert.NotContains(t, res.Files, "inner.md")
}

func TestValidate_MalformedMarkersAreNotBuffered(t *testing.T) {
	res := Validate(lines(
		"=== Begin File: 'a.txt' ===",
		"keep",
		"=== End File: a.txt ===",
		"Extra =-=-= Begin File: 'file3.txt' =-=-=",
		"=== End File: 'a.txt' ===",
	))

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Malformed footer", "Malformed header"}, res.Errors)
	assert.Equal(t, "keep", res.Files["a.txt"])
	assert.Equal(t, 3, res.Issues[0].Line)
	assert.Equal(t, 4, res.Issues[1].Line)
}

func TestValidate_DuplicateEntryWarns(t *testing.T) {
	res := Validate(lines(
		"File listing generated 2025-06-26 12:00:00 by prepdir",
		"=== Begin File: 'a' ===", "first", "=== End File: 'a' ===",
		"=== Begin File: 'a' ===", "second", "=== End File: 'a' ===",
	))

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Duplicate entry for 'a'")
	assert.Equal(t, "second", res.Files["a"])
	assert.Equal(t, []string{"a"}, res.FileOrder)
}

func TestValidate_CRLFDocument(t *testing.T) {
	doc := "File listing generated 2025-06-26 12:00:00 by prepdir\r\n" +
		"=== Begin File: 'a.txt' ===\r\n" +
		"line1\r\n" +
		"line2\r\n" +
		"=== End File: 'a.txt' ===\r\n"
	res := Validate(doc)

	require.True(t, res.IsValid, res.Errors)
	assert.Equal(t, "line1\r\nline2\r", res.Files["a.txt"])
}

func TestValidate_EmptyFileContent(t *testing.T) {
	res := Validate(lines("=== Begin File: 'empty' ===", "=== End File: 'empty' ==="))
	require.True(t, res.IsValid)
	content, ok := res.Files["empty"]
	assert.True(t, ok)
	assert.Equal(t, "", content)
}

func TestValidate_HeaderOnlyBeforeFirstMarker(t *testing.T) {
	res := Validate(lines(
		"=== Begin File: 'a' ===",
		"x",
		"=== End File: 'a' ===",
		"File listing generated 2025-06-26 12:00:00 by prepdir",
		"Base directory is '/late'",
	))

	assert.True(t, res.IsValid)
	assert.Equal(t, []string{msgMissingHeader}, res.Warnings)
	assert.Empty(t, res.BaseDirectory)
}

func TestValidate_PathContainingOtherToken(t *testing.T) {
	res := Validate(lines(
		"=== Begin File: 'Begin File: x' ===",
		"c",
		"=== End File: 'Begin File: x' ===",
	))

	require.True(t, res.IsValid, res.Errors)
	assert.Equal(t, map[string]string{"Begin File: x": "c"}, res.Files)
}
