package ui

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

//go:embed assets/overwrite.txt
var overwriteBanner string

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It lists the files, displays a countdown and approves afterwards;
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose   bool
	countdown time.Duration
	output    io.Writer
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) prepdir.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		countdown: prepdir.DefaultForceApprovalCountdown,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after it.
func (a *ForcedApprover) RequestApproval(ctx context.Context, paths []string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprint(a.output, overwriteBanner)
	writeFileList(a.output, paths, a.verbose)

	for i := int(a.countdown.Seconds()); i > 0; i-- {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.output)
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rWriting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with %d file(s)...                                  \n", len(paths))
	return true, nil
}

// writeFileList prints the files about to be written. Long lists are
// truncated unless verbose.
func writeFileList(w io.Writer, paths []string, verbose bool) {
	const shortList = 10

	fmt.Fprintf(w, "\n%d file(s) will be overwritten:\n", len(paths))
	for i, p := range paths {
		if !verbose && i == shortList {
			fmt.Fprintf(w, "  ... and %d more\n", len(paths)-shortList)
			break
		}
		fmt.Fprintf(w, "  %s\n", p)
	}
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ prepdir.Approver = (*ForcedApprover)(nil)
