package document

import (
	"fmt"
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

const (
	msgEmpty          = "File is empty."
	msgNoBegin        = "No begin file patterns found!"
	msgMissingHeader  = "Missing or invalid file listing header"
	msgMalformedBegin = "Malformed header"
	msgMalformedEnd   = "Malformed footer"
)

// Validate scans a prepped document once, top to bottom, and reports every
// structural problem it finds. Contents of files whose blocks close (or are
// cut off by the end of the text) are returned in the result's Files.
func Validate(text string) *prepdir.ValidationResult {
	res := prepdir.NewValidationResult()
	if strings.TrimSpace(text) == "" {
		res.AddError(0, msgEmpty)
		res.Finalize()
		return res
	}

	s := &lineScanner{res: res}
	for i, line := range splitLines(text) {
		s.consume(i+1, line)
	}
	s.finish()
	return res
}

// splitLines splits on "\n", dropping the empty element after a final newline.
// A trailing "\r" stays on the line so content keeps its original line endings.
func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// lineScanner is the parser state machine: closed, or open on one file.
type lineScanner struct {
	res    *prepdir.ValidationResult
	header headerInfo

	seenMarker bool
	sawBegin   bool

	open     bool
	openPath string
	openLine int
	buf      []string
}

func (s *lineScanner) consume(lineNo int, line string) {
	marker, status := ParseMarker(line)
	switch status {
	case Malformed:
		if marker.Kind == MarkerBegin {
			s.res.AddError(lineNo, msgMalformedBegin)
		} else {
			s.res.AddError(lineNo, msgMalformedEnd)
		}
		return
	case WellFormed:
		s.seenMarker = true
		if marker.Kind == MarkerBegin {
			s.begin(lineNo, marker, line)
		} else {
			s.end(lineNo, marker)
		}
		return
	}

	if s.open {
		s.buf = append(s.buf, line)
		return
	}
	if !s.seenMarker {
		s.header.parseHeaderLine(line)
	}
}

func (s *lineScanner) begin(lineNo int, m Marker, line string) {
	s.sawBegin = true
	if s.open {
		// Nested begin markers are file content.
		s.buf = append(s.buf, line)
		return
	}
	s.open = true
	s.openPath = m.Path
	s.openLine = lineNo
	s.buf = s.buf[:0]
}

func (s *lineScanner) end(lineNo int, m Marker) {
	switch {
	case !s.open:
		s.res.AddError(lineNo, fmt.Sprintf("Footer for '%s' without matching header.", m.Path))
	case m.Path != s.openPath:
		s.res.AddError(lineNo, fmt.Sprintf("Footer for '%s' does not match open header '%s'.", m.Path, s.openPath))
	default:
		s.store(lineNo)
		s.open = false
	}
}

func (s *lineScanner) store(lineNo int) {
	if _, dup := s.res.Files[s.openPath]; dup {
		s.res.AddWarning(lineNo, fmt.Sprintf("Duplicate entry for '%s'; keeping the later block.", s.openPath))
	}
	s.res.SetFile(s.openPath, strings.Join(s.buf, "\n"))
}

func (s *lineScanner) finish() {
	if s.open {
		s.res.AddError(s.openLine, fmt.Sprintf("Header for '%s' has no matching footer.", s.openPath))
		s.store(s.openLine)
		s.open = false
	}

	if !s.sawBegin {
		s.res.AddError(0, msgNoBegin)
	}

	if s.header.found {
		s.res.Creation = s.header.creation
	} else {
		s.res.AddWarning(1, msgMissingHeader)
	}
	s.res.BaseDirectory = s.header.baseDir
	if s.header.hasPolicy {
		s.res.Scrub = s.header.policy
	}

	s.res.Finalize()
}
