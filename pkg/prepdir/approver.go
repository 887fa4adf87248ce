package prepdir

import "context"

// Approver handles user interaction before files on disk are overwritten.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type "yes" for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before writing the listed files.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - paths: Slash-separated paths, relative to the base directory, of the files about to be written
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, paths []string) (bool, error)
}

// FileSelector narrows a set of candidate files down to the ones the user wants.
type FileSelector interface {
	SelectFiles(ctx context.Context, paths []string) ([]string, error)
}
