// Package runner drives the external toolchain for a resolved configuration:
// the optional project build, the compile stage, and the link stage. Tool
// processes run through the Executor interface so tests can observe the exact
// argument vectors without spawning processes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/stackvity/stack-packager/pkg/packager"
)

// Sentinel errors returned by the run stages. Wrapped errors carry stage and
// tool detail; callers match with errors.Is.
var (
	// ErrToolNotFound indicates a toolchain application could not be located
	// or started.
	ErrToolNotFound = errors.New("toolchain application not found")
	// ErrToolchain indicates a toolchain application started but exited
	// unsuccessfully.
	ErrToolchain = errors.New("toolchain execution failed")
)

// Executor runs one external process to completion. dir is the working
// directory; empty means inherit.
type Executor interface {
	Run(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error
}

// execRunner is the os/exec backed Executor used outside of tests.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Toolchain executes the packaging stages against a resolved configuration.
type Toolchain struct {
	binPath string
	capture bool
	exec    Executor
	logger  *slog.Logger
}

// New creates a Toolchain. binPath optionally names the directory holding the
// compiler and linker; when empty the toolchain environment variable and then
// the system path are consulted. capture hides tool output when true.
func New(binPath string, capture bool, handler slog.Handler) *Toolchain {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return &Toolchain{
		binPath: binPath,
		capture: capture,
		exec:    execRunner{},
		logger:  slog.New(handler).With(slog.String("component", "runner")),
	}
}

// SetExecutor swaps the process executor. Intended for tests.
func (t *Toolchain) SetExecutor(e Executor) { t.exec = e }

// stdio returns the writers tool processes inherit, honoring output capture.
func (t *Toolchain) stdio() (io.Writer, io.Writer) {
	if t.capture {
		return io.Discard, io.Discard
	}
	return os.Stdout, os.Stderr
}

// BuildProject runs the manifest-declared build command in the manifest
// directory. The stage is skipped, with a warning, when building is disabled
// or no build command is declared.
func (t *Toolchain) BuildProject(ctx context.Context, cfg *packager.Configuration) error {
	if cfg.SkipBuild {
		t.logger.Warn("Skipping build stage", slog.String("reason", "builds disabled"))
		return nil
	}
	if len(cfg.BuildCommand) == 0 {
		t.logger.Warn("Skipping build stage", slog.String("reason", "no build-command declared"))
		return nil
	}
	t.logger.Debug("Building project",
		slog.Any("command", cfg.BuildCommand),
		slog.String("profile", string(cfg.Profile)))
	stdout, stderr := t.stdio()
	dir := filepath.Dir(cfg.ManifestPath)
	if err := t.exec.Run(ctx, dir, cfg.BuildCommand[0], cfg.BuildCommand[1:], stdout, stderr); err != nil {
		return stageError("build", cfg.BuildCommand[0], err)
	}
	return nil
}

// Compile runs the compiler over every source file, producing object files
// under the configured object directory.
func (t *Toolchain) Compile(ctx context.Context, cfg *packager.Configuration) error {
	compiler, err := t.locate(packager.CompilerApp)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Clean(cfg.ObjectDir), 0o755); err != nil {
		return fmt.Errorf("cannot create %q: %w", cfg.ObjectDir, err)
	}
	args := []string{
		"-dProfile=" + string(cfg.Profile),
		"-dVersion=" + cfg.EncodedVersion,
		"-dPlatform=" + string(cfg.Platform),
		"-ext", "WixUtilExtension",
		"-o", cfg.ObjectDir,
	}
	args = append(args, cfg.CompilerArgs...)
	args = append(args, cfg.Sources...)
	t.logger.Debug("Compiling sources",
		slog.String("compiler", compiler),
		slog.Int("sources", len(cfg.Sources)),
		slog.String("objects", cfg.ObjectDir))
	stdout, stderr := t.stdio()
	if err := t.exec.Run(ctx, "", compiler, args, stdout, stderr); err != nil {
		return stageError("compile", compiler, err)
	}
	return nil
}

// Link runs the linker over the compiled object files, producing the final
// installer at the configured destination.
func (t *Toolchain) Link(ctx context.Context, cfg *packager.Configuration) error {
	linker, err := t.locate(packager.LinkerApp)
	if err != nil {
		return err
	}
	objects, err := packager.DiscoverObjects(cfg.ObjectDir)
	if err != nil {
		return err
	}
	var args []string
	if cfg.LocalePath != "" {
		args = append(args, "-loc", cfg.LocalePath)
	}
	args = append(args,
		"-spdb",
		"-ext", "WixUIExtension",
		"-ext", "WixUtilExtension",
		"-cultures:"+string(cfg.Culture),
		"-out", cfg.InstallerPath,
		"-b", filepath.Dir(cfg.ManifestPath),
	)
	args = append(args, cfg.LinkerArgs...)
	args = append(args, objects...)
	t.logger.Debug("Linking installer",
		slog.String("linker", linker),
		slog.Int("objects", len(objects)),
		slog.String("installer", cfg.InstallerPath))
	stdout, stderr := t.stdio()
	if err := t.exec.Run(ctx, "", linker, args, stdout, stderr); err != nil {
		return stageError("link", linker, err)
	}
	return nil
}

// locate resolves a toolchain application: an explicit bin path first, then
// the toolchain environment variable's bin folder, then the bare name for the
// system path to resolve. A set environment root that lacks the binary is an
// error rather than a silent fallback.
func (t *Toolchain) locate(app string) (string, error) {
	name := app
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if t.binPath != "" {
		candidate := filepath.Join(t.binPath, name)
		if _, err := os.Stat(candidate); err != nil {
			return "", fmt.Errorf("%w: %q", ErrToolNotFound, candidate)
		}
		return candidate, nil
	}
	if root := os.Getenv(packager.ToolchainPathKey); root != "" {
		candidate := filepath.Join(root, packager.BinFolderName, name)
		if _, err := os.Stat(candidate); err != nil {
			return "", fmt.Errorf("%w: %q (from the %s environment variable)",
				ErrToolNotFound, candidate, packager.ToolchainPathKey)
		}
		return candidate, nil
	}
	return name, nil
}

// stageError wraps a process failure with stage context, preserving exit
// codes and distinguishing a missing tool from a failing one.
func stageError(stage, tool string, err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s stage: %s exited with code %d", ErrToolchain, stage, tool, exitErr.ExitCode())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s: install the toolchain or point --bin-path at its bin directory", ErrToolNotFound, tool)
	}
	return fmt.Errorf("%w: %s stage: %s: %v", ErrToolchain, stage, tool, err)
}
