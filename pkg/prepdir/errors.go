package prepdir

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := uuidscrub.Scrub(content, opts, session)
//	if errors.Is(err, prepdir.ErrInvalidInput) {
//	    // Handle a malformed replacement UUID
//	}
var (
	// ErrInvalidInput indicates a caller passed an argument that violates a precondition,
	// such as a replacement UUID that is not a hyphenated UUID.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates an operation was attempted on inconsistent state,
	// such as restoring scrubbed content without a mapping.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDocument indicates a prepped document could not be parsed into entries.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrValidationFailed indicates a document was checked and reported errors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrBaseDirMismatch indicates a document declares a base directory outside the expected one.
	ErrBaseDirMismatch = errors.New("base directory mismatch")

	// ErrPathEscape indicates a file path resolves outside the permitted base directory.
	ErrPathEscape = errors.New("path outside allowed base directory")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrDirectoryNotFound indicates the directory to prepare does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrApplyFailed indicates one or more files could not be written back.
	ErrApplyFailed = errors.New("apply failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidInput):
		return ExitConfigError
	case errors.Is(err, ErrValidationFailed), errors.Is(err, ErrInvalidDocument):
		return ExitValidationFailed
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrApplyFailed), errors.Is(err, ErrInvalidState):
		return ExitApplyFailed
	case errors.Is(err, ErrDirectoryNotFound):
		return ExitDirectoryNotFound
	case errors.Is(err, ErrBaseDirMismatch), errors.Is(err, ErrPathEscape):
		return ExitPathRejected
	}

	// Cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.HasPrefix(errStr, "required flag") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	return ExitGeneralError
}
