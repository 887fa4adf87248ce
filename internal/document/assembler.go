package document

import (
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Delimiter surrounds marker tokens in rendered documents.
const Delimiter = "=-=-=-=-=-=-=-="

// BeginMarker returns the line opening the block for path.
func BeginMarker(path string) string {
	return Delimiter + " " + beginToken + " '" + path + "' " + Delimiter
}

// EndMarker returns the line closing the block for path.
func EndMarker(path string) string {
	return Delimiter + " " + endToken + " '" + path + "' " + Delimiter
}

// NoFilesMessage explains an empty listing.
func NoFilesMessage(extensions []string, specificFiles bool) string {
	switch {
	case specificFiles:
		return "No valid or accessible files found from the provided list."
	case len(extensions) > 0:
		return "No files with extension(s) " + strings.Join(extensions, ", ") + " found."
	default:
		return "No files found."
	}
}

// MarkerLines returns the 1-based lines of content that a re-read would not keep
// verbatim: malformed markers and end markers. Such content does not round trip.
func MarkerLines(content string) []int {
	var out []int
	for i, line := range strings.Split(content, "\n") {
		m, status := ParseMarker(line)
		if status == Malformed || (status == WellFormed && m.Kind == MarkerEnd) {
			out = append(out, i+1)
		}
	}
	return out
}

// Render writes the header followed by one block per entry, in the given order.
// When entries is empty, emptyMessage (or a default) is written instead of blocks.
// Entries whose content has MarkerLines do not re-read verbatim.
func Render(h Header, entries []prepdir.FileEntry, emptyMessage string) string {
	var b strings.Builder
	for _, line := range h.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if len(entries) == 0 {
		if emptyMessage == "" {
			emptyMessage = NoFilesMessage(nil, false)
		}
		b.WriteString(emptyMessage)
		b.WriteByte('\n')
		return b.String()
	}

	for _, e := range entries {
		b.WriteString(BeginMarker(e.RelativePath))
		b.WriteByte('\n')
		b.WriteString(e.Content)
		b.WriteByte('\n')
		b.WriteString(EndMarker(e.RelativePath))
		b.WriteByte('\n')
	}
	return b.String()
}
