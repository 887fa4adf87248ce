package uuidscrub

import (
	"fmt"
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// Session carries scrubbing state across every file of one run.
// Counter is the number of the next placeholder to mint.
type Session struct {
	Mapping *Mapping
	Counter int
}

// NewSession returns a session with an empty mapping and Counter 1.
func NewSession() *Session {
	return &Session{Mapping: NewMapping(), Counter: 1}
}

// ResumeSession continues from an existing mapping and counter.
func ResumeSession(m *Mapping, counter int) *Session {
	s := &Session{Mapping: m, Counter: counter}
	s.normalize()
	return s
}

func (s *Session) normalize() {
	if s.Mapping == nil {
		s.Mapping = NewMapping()
	}
	if s.Counter < 1 {
		s.Counter = 1
	}
}

// Options controls a single Scrub call.
type Options struct {
	ScrubHyphenated bool
	ScrubHyphenless bool

	// ReplacementUUID is used when UseUniquePlaceholders is false.
	// Empty means prepdir.DefaultReplacementUUID.
	ReplacementUUID string

	UseUniquePlaceholders bool

	// Verbose logs every replacement through Logger.
	Verbose bool
	Logger  prepdir.Logger
}

// Result is the outcome of a Scrub call. Mapping and counter are read from Session.
type Result struct {
	Content      string
	Scrubbed     bool
	Replacements int
	Session      *Session
}

// Scrub replaces UUIDs in content with tokens recorded in session.
// A nil session starts a fresh one, returned in Result.Session.
func Scrub(content string, opts Options, session *Session) (Result, error) {
	replacement := opts.ReplacementUUID
	if replacement == "" {
		replacement = prepdir.DefaultReplacementUUID
	} else if !prepdir.IsHyphenatedUUID(replacement) {
		return Result{}, fmt.Errorf("replacement UUID %q is not a valid hyphenated UUID: %w", replacement, prepdir.ErrInvalidInput)
	}

	if session == nil {
		session = NewSession()
	}
	session.normalize()

	res := Result{Content: content, Session: session}
	matches := Detect(content, DetectOptions{Hyphenated: opts.ScrubHyphenated, Hyphenless: opts.ScrubHyphenless})
	if len(matches) == 0 {
		return res, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		token, err := session.tokenFor(m, replacement, opts.UseUniquePlaceholders, content)
		if err != nil {
			return Result{}, err
		}
		b.WriteString(content[last:m.Start])
		b.WriteString(token)
		last = m.End
		if opts.Verbose && opts.Logger != nil {
			opts.Logger.Verbose("Scrubbed %s UUID %s -> %s", m.Kind, m.Value, token)
		}
	}
	b.WriteString(content[last:])

	res.Content = b.String()
	res.Scrubbed = true
	res.Replacements = len(matches)
	return res, nil
}

// tokenFor reuses the token of a known original, otherwise assigns a new one.
// A new placeholder never occurs literally in content, so restoring cannot
// rewrite text that was there before scrubbing.
func (s *Session) tokenFor(m Match, replacement string, unique bool, content string) (string, error) {
	if tok, ok := s.Mapping.TokenFor(m.Value); ok {
		return tok, nil
	}

	if unique {
		for {
			tok := fmt.Sprintf("%s%d", prepdir.PlaceholderPrefix, s.Counter)
			s.Counter++
			if s.Mapping.Has(tok) || strings.Contains(content, tok) {
				continue
			}
			return tok, s.Mapping.Add(tok, m.Value)
		}
	}

	tok := replacement
	if m.Kind == KindHyphenless {
		tok = strings.ReplaceAll(replacement, "-", "")
	}
	// Only the first original scrubbed to a fixed token is recorded.
	if !s.Mapping.Has(tok) {
		if err := s.Mapping.Add(tok, m.Value); err != nil {
			return "", err
		}
	}
	return tok, nil
}
