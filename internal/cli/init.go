package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/prepdir/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Init writes prepdir's bundled default configuration so it can be edited.

Without a path the file is created at .prepdir/config.yaml in the current
directory, which takes precedence over ~/.prepdir/config.yaml.

Examples:
  prepdir init
  prepdir init ~/.prepdir/config.yaml
  prepdir init --force           # Replace an existing file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.LocalConfigPath
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.Init(path, initForce); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
