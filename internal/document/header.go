package document

import (
	"regexp"
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

const generatedPrefix = "File listing generated"

var (
	// generatedRegex matches
	//   File listing generated <date> [by <creator>[ version <version>][ (<tool> install ...)]]
	// The date and the "by" clause are both optional.
	generatedRegex = regexp.MustCompile(
		`^File listing generated` +
			`(?: (\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?)?(?:Z|[+-]\d{2}:?\d{2})?))?` +
			`(?: by (.+?)(?: version (\S+))?(?: \([\w.-]+ install [^)]*\))?)?\s*$`)

	baseDirRegex = regexp.MustCompile(`^Base directory is '(.*)'\s*$`)

	policyNoteRegex = regexp.MustCompile(
		`^Note: Valid (\(hyphenated\)|hyphen-less) UUIDs in file contents will be scrubbed and replaced with (?:(unique placeholders)|'([0-9a-fA-F-]*)')`)
)

// headerInfo collects metadata found before the first marker.
type headerInfo struct {
	found     bool
	creation  prepdir.Creation
	baseDir   string
	hasPolicy bool
	policy    prepdir.ScrubPolicy
}

// parseHeaderLine folds one pre-marker line into h.
func (h *headerInfo) parseHeaderLine(line string) {
	line = strings.TrimSpace(line)

	if !h.found {
		if m := generatedRegex.FindStringSubmatch(line); m != nil {
			h.found = true
			h.creation = prepdir.Creation{
				Date:    orUnknown(m[1]),
				Creator: orUnknown(strings.TrimSpace(m[2])),
				Version: orUnknown(m[3]),
			}
			return
		}
	}

	if h.baseDir == "" {
		if m := baseDirRegex.FindStringSubmatch(line); m != nil {
			h.baseDir = m[1]
			return
		}
	}

	if m := policyNoteRegex.FindStringSubmatch(line); m != nil {
		h.hasPolicy = true
		if m[1] == "(hyphenated)" {
			h.policy.Hyphenated = true
		} else {
			h.policy.Hyphenless = true
		}
		if m[2] != "" {
			h.policy.UniquePlaceholders = true
		} else if prepdir.IsHyphenatedUUID(m[3]) {
			h.policy.ReplacementUUID = m[3]
		} else if h.policy.ReplacementUUID == "" && len(m[3]) == 32 {
			h.policy.ReplacementUUID = hyphenate(m[3])
		}
	}
}

// hyphenate turns 32 hex characters into 8-4-4-4-12 form.
func hyphenate(hex string) string {
	return hex[0:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:32]
}

func orUnknown(s string) string {
	if s == "" {
		return prepdir.UnknownValue
	}
	return s
}

// Header is the metadata written at the top of a rendered document.
type Header struct {
	Date          string
	Creator       string
	Version       string
	BaseDirectory string
	Scrub         prepdir.ScrubPolicy
}

// Lines renders the header as document lines.
func (h Header) Lines() []string {
	creator := h.Creator
	if creator == "" {
		creator = prepdir.ToolName
	}
	generated := generatedPrefix + " " + h.Date + " by " + creator
	if h.Version != "" {
		generated += " version " + h.Version
	}
	if creator == prepdir.ToolName {
		generated += " (" + prepdir.InstallHint + ")"
	}

	lines := []string{generated, "Base directory is '" + h.BaseDirectory + "'"}
	return append(lines, h.Scrub.Notes()...)
}
