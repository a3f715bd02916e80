// Package cli orchestrates a packaging run: manifest loading, parameter
// resolution, and either the dry-run plan report or the full toolchain
// pipeline.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/stackvity/stack-packager/internal/cli/runner"
	"github.com/stackvity/stack-packager/pkg/packager"
)

// Run executes one packaging run with the loaded options. In dry-run mode the
// resolved plan is written to stdout and no tool is invoked; otherwise the
// build, compile, and link stages run in order.
func Run(ctx context.Context, opts packager.Options, logger *slog.Logger) error {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		manifestPath = cwd
	}
	manifest, err := packager.LoadManifest(manifestPath)
	if err != nil {
		logger.Error("Cannot load manifest", slog.Any("error", err))
		return err
	}
	logger.Debug("Manifest loaded", slog.String("path", manifest.Path()))

	cfg, err := packager.NewResolver(manifest, opts.Overrides, opts.Logger).Resolve()
	if err != nil {
		logger.Error("Cannot resolve configuration", slog.Any("error", err))
		return err
	}

	if opts.DryRun {
		return packager.NewPlan(cfg).Render(os.Stdout, opts.OutputFormat)
	}

	tools := runner.New(opts.BinPath, opts.CaptureOutput, opts.Logger)
	if err := tools.BuildProject(ctx, cfg); err != nil {
		logger.Error("Build stage failed", slog.Any("error", err))
		return err
	}
	if err := tools.Compile(ctx, cfg); err != nil {
		logger.Error("Compile stage failed", slog.Any("error", err))
		return err
	}
	if err := tools.Link(ctx, cfg); err != nil {
		logger.Error("Link stage failed", slog.Any("error", err))
		return err
	}

	logger.Info("Installer created",
		slog.String("installer", cfg.InstallerPath),
		slog.String("version", cfg.EncodedVersion))
	return nil
}
