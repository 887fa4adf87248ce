package prepdir

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Operation completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or arguments
	ExitValidationFailed  = 11 // Document has structural errors
	ExitApprovalDenied    = 12 // User denied writing files
	ExitApplyFailed       = 13 // One or more files could not be written
	ExitDirectoryNotFound = 14 // Directory to prepare does not exist
	ExitPathRejected      = 15 // Base directory mismatch or path escape
)

const (
	// ToolName is the creator name written into generated headers.
	ToolName = "prepdir"

	// InstallHint is the parenthesized install instruction in generated headers.
	InstallHint = "go install github.com/vvka-141/prepdir/cmd/prepdir@latest"

	// DefaultReplacementUUID is substituted for UUIDs when unique placeholders are off.
	DefaultReplacementUUID = "00000000-0000-0000-0000-000000000000"

	// DefaultOutputFile is the document written when no output path is given.
	DefaultOutputFile = "prepped_dir.txt"

	// MappingFileSuffix is appended to the output path for the placeholder mapping sidecar.
	MappingFileSuffix = ".uuid-map.yaml"

	// PlaceholderPrefix starts every unique placeholder token, e.g. PLACEHOLDER_1.
	PlaceholderPrefix = "PLACEHOLDER_"

	// BinaryContentPlaceholder replaces the content of files that are not valid UTF-8.
	BinaryContentPlaceholder = "[Binary file or encoding not currently supported by prepdir]"

	// ReadErrorContentFormat is the content of files that could not be read.
	ReadErrorContentFormat = "[Error reading file: %s]"

	// UnknownValue fills creation metadata that a document does not declare.
	UnknownValue = "unknown"

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 3 * time.Second

	// DefaultReadConcurrency bounds concurrent file reads during traversal.
	DefaultReadConcurrency = 8
)
