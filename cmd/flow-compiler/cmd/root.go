package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/delivery-flow/internal/config"
	"github.com/oshokin/delivery-flow/internal/service/compile"
	"github.com/oshokin/delivery-flow/internal/service/inspect"
	"github.com/oshokin/delivery-flow/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// outputDir overrides the configured output directory.
	outputDir string
	// mergePolicy overrides the configured merge policy.
	mergePolicy string
	// logLevel overrides the configured log level.
	logLevel string
	// parallel compiles categories concurrently.
	parallel bool
	// toStdout streams the documents to stdout.
	toStdout bool

	// rootCmd represents the base command.
	rootCmd = &cobra.Command{
		Use:   "flow-compiler",
		Short: "Compile alarm definitions into delivery-flow documents.",
		Long: `Compiles alarm definitions into one delivery-flow document per category
(NurseCalls, Clinicals, Orders).

Definitions are read from a YAML file or an Excel workbook. Settings come from
a YAML configuration file; command line flags override them.`,
		SilenceUsage: true,
	}

	// compileCmd compiles an input file.
	compileCmd = &cobra.Command{
		Use:   "compile [input-file]",
		Short: "Compile an input file into delivery-flow documents.",
		Long: `Reads alarm definitions, merges equal records, parses recipient directives
and writes <Category>.json documents into the output directory.

Supported inputs: .yaml, .yml, .xlsx, .xlsm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &compile.Options{
				ConfigPath:  configPath,
				InputPath:   args[0],
				OutputDir:   outputDir,
				MergePolicy: mergePolicy,
				LogLevel:    logLevel,
				Parallel:    parallel,
			}

			if toStdout {
				options.Stdout = cmd.OutOrStdout()
			}

			return compile.Run(ctx, options)
		},
	}

	// directiveCmd shows how recipient directives are interpreted.
	directiveCmd = &cobra.Command{
		Use:   "directive <text>...",
		Short: "Show how recipient directives are parsed.",
		Long: `Parses each argument as recipient text and prints every destination it yields
with its kind, name and validity against the configured roles and groups.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := &inspect.Options{
				ConfigPath: configPath,
				Directives: args,
				Out:        cmd.OutOrStdout(),
			}

			return inspect.Run(cmd.Context(), options)
		},
	}
)

// Execute runs the flow-compiler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")

	compileCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides output_dir)")
	compileCmd.Flags().
		StringVar(&mergePolicy, "merge-policy", "", "none, by_config_group or across_config_group (overrides merge_policy)")
	compileCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	compileCmd.Flags().BoolVar(&parallel, "parallel", false, "compile categories concurrently")
	compileCmd.Flags().BoolVar(&toStdout, "stdout", false, "print documents to stdout instead of writing files")

	rootCmd.AddCommand(compileCmd, directiveCmd)
}
