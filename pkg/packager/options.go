package packager

import "log/slog"

// Options holds everything the orchestration layer needs for one run. The
// knobs here (output capture, toolchain location, dry-run) deliberately live
// outside Configuration so the resolved record stays a pure function of
// (Overrides, Manifest) and identical inputs always resolve identically.
type Options struct {
	// ManifestPath points at package.toml or its directory; empty means the
	// current working directory.
	ManifestPath string
	// BinPath is an explicit toolchain bin folder; empty means the runner
	// falls back to the ToolchainPathKey environment variable and PATH.
	BinPath string
	// CaptureOutput discards toolchain output instead of inheriting the
	// console.
	CaptureOutput bool
	// DryRun resolves and prints the plan without invoking the toolchain.
	DryRun bool
	// OutputFormat selects the plan rendering for DryRun.
	OutputFormat OutputFormat
	// Verbose enables debug logging.
	Verbose bool
	// ConfigFilePath records the loaded config file, for reporting.
	ConfigFilePath string

	Overrides Overrides

	// Logger is the logging backend handed down to the resolver and runner.
	Logger slog.Handler
}
