package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/report"
	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a file is a well-formed prepdir document",
	Long: `Validate parses a prepdir document the same way 'apply' does and reports
every structural problem with its line number.

The check is lenient: marker lines may use any run of '=' or '-' characters and
a missing generation header is only a warning. Unbalanced, mismatched or
malformed Begin/End markers are errors.

Examples:
  prepdir validate prepped_dir.txt
  prepdir validate edited.txt --format json
  prepdir validate edited.txt --format markdown > review.md`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateFormat string

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFormat, "format", string(report.FormatText),
		"Report format: text, json or markdown")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := report.ParseFormat(validateFormat)
	if err != nil {
		return err
	}
	writer, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	res, err := services.NewValidator(nil, logger).ValidateFile(path)
	if err != nil {
		return err
	}

	if err := writer.WriteValidation(path, res); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !res.IsValid {
		return fmt.Errorf("%s has %d error(s): %w", path, len(res.Errors), prepdir.ErrValidationFailed)
	}
	return nil
}
