package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/prepdir/pkg/prepdir"
)

// ConfirmWord must be typed to approve an interactive write.
const ConfirmWord = "yes"

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It lists the files and asks the user to type
// "yes" before anything is overwritten.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover on stdin/stderr.
func NewInteractiveApprover(verbose bool) prepdir.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to type "yes" to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, paths []string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: You are about to overwrite %d file(s) on disk\n", len(paths))
	writeFileList(a.output, paths, a.verbose)
	fmt.Fprintf(a.output, "\nTo confirm, type '%s' and press Enter: ", ConfirmWord)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if strings.EqualFold(input, ConfirmWord) {
			fmt.Fprintln(a.output, "✓ Confirmed. Writing files...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' does not match '%s'. Nothing was written.\n", input, ConfirmWord)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ prepdir.Approver = (*InteractiveApprover)(nil)
