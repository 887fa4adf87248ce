package uuidscrub

import (
	"regexp"
	"sort"
)

// Kind identifies the textual form of a detected UUID.
type Kind int

const (
	KindHyphenated Kind = iota
	KindHyphenless
)

// String returns a human-readable string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHyphenated:
		return "hyphenated"
	case KindHyphenless:
		return "hyphen-less"
	default:
		return "unknown"
	}
}

// Match is one UUID occurrence. Start and End are byte offsets.
type Match struct {
	Value string
	Start int
	End   int
	Kind  Kind
}

// DetectOptions enables each detector independently.
type DetectOptions struct {
	Hyphenated bool
	Hyphenless bool
}

var (
	hyphenatedPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	hexRunPattern     = regexp.MustCompile(`[0-9a-fA-F]+`)
)

const hyphenlessLength = 32

// Detect returns every UUID in text, ordered by position.
// Hyphen-less matches never overlap hyphenated ones.
func Detect(text string, opts DetectOptions) []Match {
	var matches []Match
	if opts.Hyphenated {
		matches = append(matches, detectHyphenated(text)...)
	}
	if opts.Hyphenless {
		for _, m := range detectHyphenless(text) {
			if !overlapsAny(m, matches) {
				matches = append(matches, m)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// detectHyphenated finds 8-4-4-4-12 UUIDs that are not glued to a word character.
func detectHyphenated(text string) []Match {
	var matches []Match
	pos := 0
	for pos < len(text) {
		loc := hyphenatedPattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (start > 0 && isWordByte(text[start-1])) || (end < len(text) && isWordByte(text[end])) {
			pos = start + 1
			continue
		}
		matches = append(matches, Match{Value: text[start:end], Start: start, End: end, Kind: KindHyphenated})
		pos = end
	}
	return matches
}

// detectHyphenless finds maximal hex runs of exactly 32 characters.
func detectHyphenless(text string) []Match {
	var matches []Match
	for _, loc := range hexRunPattern.FindAllStringIndex(text, -1) {
		if loc[1]-loc[0] != hyphenlessLength {
			continue
		}
		matches = append(matches, Match{Value: text[loc[0]:loc[1]], Start: loc[0], End: loc[1], Kind: KindHyphenless})
	}
	return matches
}

func overlapsAny(m Match, others []Match) bool {
	for _, o := range others {
		if m.Start < o.End && o.Start < m.End {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
