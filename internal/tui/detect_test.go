package tui

import (
	"testing"
)

func clearModeEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvNonInteractive, "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")
}

func TestDetectMode_PREPDIR_NON_INTERACTIVE(t *testing.T) {
	clearModeEnv(t)
	t.Setenv(EnvNonInteractive, "1")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %s, want non-interactive", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	clearModeEnv(t)
	t.Setenv("CI", "true")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %s, want non-interactive", got)
	}
}

func TestDetectMode_NO_COLOR(t *testing.T) {
	clearModeEnv(t)
	t.Setenv("NO_COLOR", "1")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %s, want non-interactive", got)
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdin/stdout are not terminals
	clearModeEnv(t)

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %s, want non-interactive (no terminal in test)", got)
	}
	if IsInteractive() {
		t.Error("IsInteractive() = true in test environment, want false")
	}
}

func TestDetectMode_WrongOverrideValue(t *testing.T) {
	// Only "1" triggers the override; "true" falls through to the terminal check.
	clearModeEnv(t)
	t.Setenv(EnvNonInteractive, "true")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %s, want non-interactive (no terminal)", got)
	}
}

func TestMode_String(t *testing.T) {
	if ModeInteractive.String() != "interactive" {
		t.Errorf("ModeInteractive.String() = %q", ModeInteractive.String())
	}
	if ModeNonInteractive.String() != "non-interactive" {
		t.Errorf("ModeNonInteractive.String() = %q", ModeNonInteractive.String())
	}
}
