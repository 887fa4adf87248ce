package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/prepdir/internal/config"
	"github.com/vvka-141/prepdir/internal/logging"
	"github.com/vvka-141/prepdir/internal/services"
	"github.com/vvka-141/prepdir/internal/tui"
	"github.com/vvka-141/prepdir/pkg/prepdir"
)

type generateFlagValues struct {
	extensions          []string
	files               []string
	output              string
	configPath          string
	all                 bool
	includePrepdirFiles bool
	noScrub             bool
	noScrubHyphenated   bool
	scrubHyphenless     bool
	replacementUUID     string
	uniquePlaceholders  bool
	stdout              bool
}

var generateFlags generateFlagValues

func init() {
	f := rootCmd.Flags()

	f.StringSliceVarP(&generateFlags.extensions, "extensions", "e", nil,
		"Only include files with these extensions (without dot)\n"+
			"Example: -e go,md or -e go -e md")
	f.StringSliceVarP(&generateFlags.files, "files", "f", nil,
		"Include exactly these files (relative to the directory) instead of walking it\n"+
			"Exclusions and the extension filter do not apply")
	f.StringVarP(&generateFlags.output, "output", "o", "",
		"Output document path (default from config, usually prepped_dir.txt)")
	f.StringVar(&generateFlags.configPath, "config", "",
		"Config file to use instead of .prepdir/config.yaml and ~/.prepdir/config.yaml")
	f.BoolVar(&generateFlags.all, "all", false,
		"Ignore exclusion patterns and include every file")
	f.BoolVar(&generateFlags.includePrepdirFiles, "include-prepdir-files", false,
		"Include earlier prepdir output documents")
	f.BoolVar(&generateFlags.noScrub, "no-scrub-uuids", false,
		"Do not scrub any UUIDs")
	f.BoolVar(&generateFlags.noScrubHyphenated, "no-scrub-hyphenated-uuids", false,
		"Do not scrub hyphenated UUIDs")
	f.BoolVar(&generateFlags.scrubHyphenless, "scrub-hyphenless-uuids", false,
		"Also scrub hyphen-less (32 hex digit) UUIDs")
	f.StringVar(&generateFlags.replacementUUID, "replacement-uuid", "",
		"UUID substituted for scrubbed UUIDs when unique placeholders are off\n"+
			"An invalid value is reported and the configured UUID is used instead")
	f.BoolVar(&generateFlags.uniquePlaceholders, "use-unique-placeholders", false,
		"Replace each distinct UUID with PLACEHOLDER_n and save the mapping\n"+
			"next to the output as <output>.uuid-map.yaml")
	f.BoolVar(&generateFlags.stdout, "stdout", false,
		"Print the document instead of writing the output file")
}

// buildGenerateConfig merges the loaded configuration with CLI flags.
// Flags win over PREPDIR_* variables, which win over config files.
// The second return value is the configured replacement UUID, used when
// --replacement-uuid is invalid.
func buildGenerateConfig(cmd *cobra.Command, args []string, cfg *config.Config) (prepdir.GenerateConfig, string) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	gc := prepdir.GenerateConfig{
		Directory:             dir,
		Extensions:            cfg.DefaultExtensions,
		SpecificFiles:         generateFlags.files,
		OutputFile:            cfg.DefaultOutputFile,
		ExcludeDirs:           cfg.Exclude.Directories,
		ExcludeFiles:          cfg.Exclude.Files,
		IgnoreExclusions:      cfg.IgnoreExclusions || generateFlags.all,
		IncludePrepdirFiles:   cfg.IncludePrepdirFiles || generateFlags.includePrepdirFiles,
		ScrubHyphenated:       cfg.ScrubHyphenatedUUIDs,
		ScrubHyphenless:       cfg.ScrubHyphenlessUUIDs || generateFlags.scrubHyphenless,
		ReplacementUUID:       cfg.ReplacementUUID,
		UseUniquePlaceholders: cfg.UseUniquePlaceholders || generateFlags.uniquePlaceholders,
		Verbose:               cfg.Verbose || getVerboseFlag(cmd),
	}

	if len(generateFlags.extensions) > 0 {
		gc.Extensions = generateFlags.extensions
	}
	if generateFlags.output != "" {
		gc.OutputFile = generateFlags.output
	}
	if gc.OutputFile == "" {
		gc.OutputFile = prepdir.DefaultOutputFile
	}
	if generateFlags.noScrubHyphenated {
		gc.ScrubHyphenated = false
	}
	if generateFlags.noScrub {
		gc.ScrubHyphenated = false
		gc.ScrubHyphenless = false
	}
	if generateFlags.replacementUUID != "" {
		gc.ReplacementUUID = generateFlags.replacementUUID
	}

	return gc, cfg.ReplacementUUID
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, source, err := config.Load(config.LoadOptions{CustomPath: generateFlags.configPath})
	if err != nil {
		return err
	}

	gc, fallback := buildGenerateConfig(cmd, args, cfg)
	logger := logging.NewConsoleLogger(gc.Verbose)
	logger.Verbose("Using config: %s", source)

	processor, err := services.NewProcessor(gc, services.ProcessorOptions{
		Logger:                  logger,
		Version:                 resolvedVersion(),
		FallbackReplacementUUID: fallback,
	})
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	progress := tui.NewProgressDisplay()
	if !generateFlags.stdout {
		progress.Start(fmt.Sprintf("Preparing %s", processor.Config().Directory))
	}

	out, err := processor.Generate(ctx)
	if err != nil {
		return err
	}

	if generateFlags.stdout {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out.Content)
		return err
	}

	if len(out.Skipped) > 0 {
		logger.Verbose("Skipped %d path(s)", len(out.Skipped))
	}

	mappingPath, err := processor.Save(out, "")
	if err != nil {
		return err
	}

	progress.Success(fmt.Sprintf("%d file(s) written to %s", len(out.Entries), processor.Config().OutputFile))
	if mappingPath != "" {
		progress.Success(fmt.Sprintf("UUID mapping saved to %s", mappingPath))
	}
	if len(out.Entries) == 0 {
		progress.Warn("No files matched")
	}
	return nil
}
