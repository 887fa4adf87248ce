package tui

import (
	"os"

	"golang.org/x/term"
)

// EnvNonInteractive forces non-interactive mode when set to "1".
const EnvNonInteractive = "PREPDIR_NON_INTERACTIVE"

// Mode represents the interaction mode for prepdir.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "non-interactive"
}

// DetectMode determines whether prepdir should prompt the user.
//
// Returns ModeNonInteractive if:
//   - PREPDIR_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stdout is not a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv(EnvNonInteractive) == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	// The selector renders to stdout.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
