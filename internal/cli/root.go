package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const asciiLogo = `                              _ _
 _ __  _ __ ___ _ __   __| (_)_ __
| '_ \| '__/ _ \ '_ \ / _' | | '__|
| |_) | | |  __/ |_) | (_| | | |
| .__/|_|  \___| .__/ \__,_|_|_|
|_|            |_|`

var rootCmd = &cobra.Command{
	Use:   "prepdir [directory]",
	Short: "Prepare a directory's files as one reviewable text document",
	Long: asciiLogo + `

prepdir walks a directory and writes the contents of every included file into a
single plain-text document, each file framed by Begin/End markers. The document
can be pasted into a review or an AI assistant, edited, validated, and applied
back to disk.

UUIDs in file contents are scrubbed by default. With --use-unique-placeholders
each distinct UUID becomes PLACEHOLDER_n and the mapping is saved next to the
output so 'prepdir apply' can restore the originals.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or arguments
  11 - Document failed validation
  12 - User denied writing files
  13 - One or more files could not be written
  14 - Directory not found
  15 - Base directory mismatch or path outside the base directory`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runGenerate,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
