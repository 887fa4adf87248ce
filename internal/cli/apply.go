package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/prepdir/internal/document"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/report"
	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/internal/tui"
	"github.com/vvka-141/prepdir/internal/ui"
	"github.com/vvka-141/prepdir/internal/uuidscrub"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

var applyCmd = &cobra.Command{
	Use:   "apply <edited-file>",
	Short: "Write the files of an edited prepdir document back to disk",
	Long: `Apply parses an edited prepdir document and writes its files back under the
document's base directory.

With --original only the files that are new or differ from the original
document are written; without it every file in the document is written.
Placeholders such as PLACEHOLDER_1 are restored from the UUID mapping saved
next to the document (<file>.uuid-map.yaml), next to the original, or from
--mapping.

Writing requires confirmation: type 'yes' at the prompt, or pass --force for a
short cancellable countdown instead. Binary and unreadable entries are never
written.

Examples:
  # Preview what would change
  prepdir apply edited.txt --original prepped_dir.txt --dry-run

  # Pick files interactively, then confirm
  prepdir apply edited.txt --original prepped_dir.txt --select

  # CI: no prompt
  prepdir apply edited.txt --original prepped_dir.txt --force --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

type applyFlagValues struct {
	original         string
	mapping          string
	baseDir          string
	dryRun           bool
	force            bool
	selectFiles      bool
	ignoreWhitespace bool
	format           string
}

var applyFlags applyFlagValues

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applyFlags.original, "original", "",
		"The unedited document; only files that differ from it are written")
	applyCmd.Flags().StringVar(&applyFlags.mapping, "mapping", "",
		"UUID mapping file (default: the sidecar of the edited or original document)")
	applyCmd.Flags().StringVar(&applyFlags.baseDir, "base-dir", "",
		"Directory the document's base directory must be inside\n"+
			"Also used as the base when the document declares none")
	applyCmd.Flags().BoolVar(&applyFlags.dryRun, "dry-run", false,
		"Show what would be written without touching any file")
	applyCmd.Flags().BoolVar(&applyFlags.force, "force", false,
		"Skip the confirmation prompt (a short countdown still allows Ctrl+C)")
	applyCmd.Flags().BoolVar(&applyFlags.selectFiles, "select", false,
		"Choose the files to write from an interactive checklist")
	applyCmd.Flags().BoolVar(&applyFlags.ignoreWhitespace, "ignore-whitespace", false,
		"Treat files that differ only in whitespace as unchanged")
	applyCmd.Flags().StringVar(&applyFlags.format, "format", string(report.FormatText),
		"Report format: text, json or markdown")
}

// buildApplyRequest loads the documents and mapping and picks the interaction
// implementations for the flags.
func buildApplyRequest(editedPath string, verbose bool, logger prepdir.Logger) (services.ApplyRequest, error) {
	validator := services.NewValidator(nil, logger)
	opts := document.ParseOptions{ExpectedBaseDir: applyFlags.baseDir, HighestBaseDir: applyFlags.baseDir}

	edited, err := validator.Load(editedPath, opts)
	if err != nil {
		return services.ApplyRequest{}, err
	}
	req := services.ApplyRequest{
		Edited:           edited,
		DryRun:           applyFlags.dryRun,
		IgnoreWhitespace: applyFlags.ignoreWhitespace,
	}

	if applyFlags.original != "" {
		original, err := validator.Load(applyFlags.original, opts)
		if err != nil {
			return services.ApplyRequest{}, err
		}
		req.Original = original
	}

	if applyFlags.mapping != "" {
		m, err := loadExplicitMapping(validator, applyFlags.mapping)
		if err != nil {
			return services.ApplyRequest{}, err
		}
		req.Mapping = m
	}

	if applyFlags.selectFiles {
		if !tui.IsInteractive() {
			return services.ApplyRequest{}, fmt.Errorf("--select needs an interactive terminal: %w", prepdir.ErrInvalidInput)
		}
		req.Selector = tui.NewFileSelector()
	}

	if !applyFlags.dryRun {
		if applyFlags.force {
			req.Approver = ui.NewForcedApprover(verbose)
		} else {
			req.Approver = ui.NewInteractiveApprover(verbose)
		}
	}
	return req, nil
}

func loadExplicitMapping(v *services.Validator, path string) (*uuidscrub.Mapping, error) {
	m, err := v.LoadMapping(path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("mapping file %s not found: %w", path, prepdir.ErrInvalidInput)
	}
	return m, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	format, err := report.ParseFormat(applyFlags.format)
	if err != nil {
		return err
	}
	writer, err := report.NewWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	req, err := buildApplyRequest(args[0], verbose, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	rep, err := services.NewApplier(logger).Apply(ctx, req)
	if err != nil {
		return err
	}

	if err := writer.WriteApply(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return rep.Err()
}
