package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stackvity/stack-packager/internal/cli"
	"github.com/stackvity/stack-packager/internal/cli/config"
	"github.com/stackvity/stack-packager/pkg/packager"
)

var (
	// These are set during build time using -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Flags persistent across commands.
	cfgFile string
	verbose bool
)

// rootCmd is the base command: resolve the manifest and build the installer.
var rootCmd = &cobra.Command{
	Use:   "stack-packager",
	Short: "Builds a Windows installer for a project described by package.toml.",
	Long: `stack-packager reads a project manifest (package.toml), resolves the
packaging parameters from overrides, the [package.metadata.installer] table,
and the top-level [package] fields, then compiles and links the installer
with the WiX toolchain.

Use --dry-run to print the resolved plan without invoking any tool.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		opts, logger, err := config.LoadAndValidate(cfgFile, verbose, cmd.Flags())
		if err != nil {
			return err
		}

		// Verbose interactive runs want to see tool output alongside the
		// debug log unless capture was requested explicitly.
		if verbose && term.IsTerminal(int(os.Stderr.Fd())) && !cmd.Flags().Changed("nocapture") {
			opts.CaptureOutput = false
		}

		return cli.Run(ctx, opts, logger)
	},
}

// Execute runs the root command. Cobra prints the error; the exit code
// signals failure to callers.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init registers the root command flags.
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is to search . and $HOME/.config/stack-packager/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Path to the project manifest or its directory (default is the working directory)")

	// Resolution overrides. An empty value means the manifest decides. The
	// version override cannot be named "version" without shadowing Cobra's
	// --version handling.
	rootCmd.Flags().String("name", "", "Override the product name")
	rootCmd.Flags().String("install-version", "", "Override the semantic version used for the installer")
	rootCmd.Flags().String("culture", "", "Culture for localized resources (e.g. en-US)")
	rootCmd.Flags().StringP("locale", "l", "", "Path to a localization file linked into the installer")
	rootCmd.Flags().StringP("output", "o", "", "Destination path for the installer, or a directory when it ends with a path separator")
	rootCmd.Flags().StringArrayP("include", "I", []string{}, "Additional source file to compile (can be specified multiple times; replaces manifest includes)")
	rootCmd.Flags().StringArrayP("compiler-arg", "C", []string{}, "Extra argument passed to the compiler (can be specified multiple times)")
	rootCmd.Flags().StringArrayP("linker-arg", "L", []string{}, "Extra argument passed to the linker (can be specified multiple times)")

	// Profile flags.
	rootCmd.Flags().Bool("dbg-build", false, "Package the debug build of the project binary")
	rootCmd.Flags().Bool("dbg-name", false, "Append -debug to the installer file name")
	rootCmd.Flags().Bool("no-build", false, "Skip the project build stage")

	// Toolchain and run behavior.
	rootCmd.Flags().StringP("bin-path", "b", "", "Directory containing the compiler and linker applications")
	rootCmd.Flags().Bool("nocapture", !packager.DefaultCaptureOutput, "Show compiler and linker output instead of hiding it")
	rootCmd.Flags().Bool("dry-run", false, "Resolve and print the plan without invoking any tool")
	rootCmd.Flags().String("output-format", string(packager.DefaultOutputFormat), `Plan format for --dry-run ("text", "json", "yaml")`)
}
