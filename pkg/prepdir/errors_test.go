package prepdir_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, prepdir.ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), prepdir.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), prepdir.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), prepdir.ExitUsageError},
		{"invalid argument", errors.New(`invalid argument "abc" for "--format"`), prepdir.ExitUsageError},
		{"general error", errors.New("something went wrong"), prepdir.ExitGeneralError},
		{"invalid config", fmt.Errorf("load: %w", prepdir.ErrInvalidConfig), prepdir.ExitConfigError},
		{"invalid input", fmt.Errorf("scrub: %w", prepdir.ErrInvalidInput), prepdir.ExitConfigError},
		{"validation failed", errors.Join(prepdir.ErrValidationFailed, errors.New("File is empty.")), prepdir.ExitValidationFailed},
		{"invalid document", fmt.Errorf("parse: %w", prepdir.ErrInvalidDocument), prepdir.ExitValidationFailed},
		{"approval denied", prepdir.ErrApprovalDenied, prepdir.ExitApprovalDenied},
		{"apply failed", fmt.Errorf("2 files: %w", prepdir.ErrApplyFailed), prepdir.ExitApplyFailed},
		{"invalid state", prepdir.ErrInvalidState, prepdir.ExitApplyFailed},
		{"directory not found", prepdir.ErrDirectoryNotFound, prepdir.ExitDirectoryNotFound},
		{"base dir mismatch", prepdir.ErrBaseDirMismatch, prepdir.ExitPathRejected},
		{"path escape", prepdir.ErrPathEscape, prepdir.ExitPathRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepdir.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
