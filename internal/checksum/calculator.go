package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Calculator is an interface for computing content checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	// Normalization makes checksums resilient to whitespace-only edits.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Convert CRLF and lone CR line endings to LF
//  2. Strip trailing spaces and tabs from every line
//  3. Drop trailing blank lines
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

// Equal reports whether a and b have the same checksum, optionally after normalization.
func (c SHA256) Equal(a, b string, normalized bool) bool {
	if normalized {
		return c.CalculateNormalized([]byte(a)) == c.CalculateNormalized([]byte(b))
	}
	return c.CalculateRaw([]byte(a)) == c.CalculateRaw([]byte(b))
}

// Normalize applies the normalization rules to content.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
