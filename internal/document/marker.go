package document

import "strings"

const (
	beginToken = "Begin File:"
	endToken   = "End File:"

	minDelimiterRun = 3
)

// MarkerKind distinguishes begin and end markers.
type MarkerKind int

const (
	MarkerBegin MarkerKind = iota + 1
	MarkerEnd
)

// MarkerStatus is the outcome of recognizing a line.
type MarkerStatus int

const (
	// NotMarker means the line mentions neither token.
	NotMarker MarkerStatus = iota
	// WellFormed means the line is a complete marker.
	WellFormed
	// Malformed means the line mentions a token but breaks the marker grammar.
	Malformed
)

// Marker is a recognized begin or end line.
type Marker struct {
	Kind MarkerKind
	Path string
}

// ParseMarker recognizes lines of the form
//
//	<run> [ws] Begin File: [ws] '<path>' [ws] <run>
//
// where each run is three or more characters from {'=', '-'} in any order.
// For malformed lines the returned Marker still reports which token was seen.
func ParseMarker(line string) (Marker, MarkerStatus) {
	line = strings.TrimSpace(line)

	// The earlier token decides the kind; the other may be part of the path.
	kind, token := MarkerBegin, beginToken
	idx := strings.Index(line, beginToken)
	if endIdx := strings.Index(line, endToken); endIdx >= 0 && (idx < 0 || endIdx < idx) {
		kind, token, idx = MarkerEnd, endToken, endIdx
	}
	if idx < 0 {
		return Marker{}, NotMarker
	}

	m := Marker{Kind: kind}

	if !IsDelimiterRun(strings.TrimSpace(line[:idx])) {
		return m, Malformed
	}

	rest := line[idx+len(token):]
	runStart := len(rest)
	for runStart > 0 && isDelimiterChar(rest[runStart-1]) {
		runStart--
	}
	if !IsDelimiterRun(rest[runStart:]) {
		return m, Malformed
	}

	quoted := strings.TrimSpace(rest[:runStart])
	if len(quoted) < 3 || quoted[0] != '\'' || quoted[len(quoted)-1] != '\'' {
		return m, Malformed
	}

	m.Path = quoted[1 : len(quoted)-1]
	return m, WellFormed
}

// IsDelimiterRun reports whether s consists only of '=' and '-' and is at least three long.
func IsDelimiterRun(s string) bool {
	if len(s) < minDelimiterRun {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDelimiterChar(s[i]) {
			return false
		}
	}
	return true
}

func isDelimiterChar(b byte) bool {
	return b == '=' || b == '-'
}
