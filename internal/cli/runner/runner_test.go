package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/stack-packager/pkg/packager"
)

// mockExecutor records tool invocations without spawning processes.
type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Run(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	return m.Called(ctx, dir, name, args, stdout, stderr).Error(0)
}

func newTestToolchain(binPath string) (*Toolchain, *mockExecutor) {
	t := New(binPath, true, nil)
	m := &mockExecutor{}
	t.SetExecutor(m)
	return t, m
}

func testConfig(t *testing.T) *packager.Configuration {
	t.Helper()
	dir := t.TempDir()
	return &packager.Configuration{
		Name:           "widget",
		EncodedVersion: "1.2.3.65535",
		Culture:        packager.CultureEnUs,
		Sources:        []string{filepath.Join(dir, "wix", "main.wxs")},
		ObjectDir:      filepath.Join(dir, "target", "wix") + string(os.PathSeparator),
		InstallerPath:  filepath.Join(dir, "target", "wix", "widget-1.2.3-x86_64.msi"),
		Platform:       packager.PlatformX64,
		Profile:        packager.ProfileRelease,
		ManifestPath:   filepath.Join(dir, packager.ManifestFileName),
	}
}

func TestBuildProject(t *testing.T) {
	t.Run("RunsDeclaredCommand", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.BuildCommand = []string{"make", "release"}

		exec.On("Run", mock.Anything, filepath.Dir(cfg.ManifestPath), "make", []string{"release"}, mock.Anything, mock.Anything).Return(nil)
		require.NoError(t, tc.BuildProject(context.Background(), cfg))
		exec.AssertExpectations(t)
	})

	t.Run("SkippedWhenDisabled", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.BuildCommand = []string{"make"}
		cfg.SkipBuild = true

		require.NoError(t, tc.BuildProject(context.Background(), cfg))
		exec.AssertNotCalled(t, "Run")
	})

	t.Run("SkippedWithoutCommand", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		require.NoError(t, tc.BuildProject(context.Background(), testConfig(t)))
		exec.AssertNotCalled(t, "Run")
	})

	t.Run("FailurePropagates", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.BuildCommand = []string{"make"}

		exec.On("Run", mock.Anything, mock.Anything, "make", mock.Anything, mock.Anything, mock.Anything).
			Return(assert.AnError)
		err := tc.BuildProject(context.Background(), cfg)
		assert.ErrorIs(t, err, ErrToolchain)
	})
}

func TestCompile(t *testing.T) {
	t.Run("ArgumentVector", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.CompilerArgs = []string{"-nologo"}

		exec.On("Run", mock.Anything, "", packager.CompilerApp, mock.MatchedBy(func(args []string) bool {
			want := []string{
				"-dProfile=release",
				"-dVersion=1.2.3.65535",
				"-dPlatform=x64",
				"-ext", "WixUtilExtension",
				"-o", cfg.ObjectDir,
				"-nologo",
				cfg.Sources[0],
			}
			return assert.ObjectsAreEqual(want, args)
		}), mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, tc.Compile(context.Background(), cfg))
		exec.AssertExpectations(t)

		// Created before the compiler runs.
		info, err := os.Stat(filepath.Clean(cfg.ObjectDir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MissingExplicitBinPath", func(t *testing.T) {
		tc, _ := newTestToolchain(filepath.Join(t.TempDir(), "absent"))
		err := tc.Compile(context.Background(), testConfig(t))
		assert.ErrorIs(t, err, ErrToolNotFound)
	})
}

func TestLink(t *testing.T) {
	writeObject := func(t *testing.T, cfg *packager.Configuration) string {
		t.Helper()
		dir := filepath.Clean(cfg.ObjectDir)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		obj := filepath.Join(dir, "main.wixobj")
		require.NoError(t, os.WriteFile(obj, []byte("x"), 0o644))
		return obj
	}

	t.Run("ArgumentVector", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.LinkerArgs = []string{"-sval"}
		obj := writeObject(t, cfg)

		exec.On("Run", mock.Anything, "", packager.LinkerApp, mock.MatchedBy(func(args []string) bool {
			want := []string{
				"-spdb",
				"-ext", "WixUIExtension",
				"-ext", "WixUtilExtension",
				"-cultures:en-US",
				"-out", cfg.InstallerPath,
				"-b", filepath.Dir(cfg.ManifestPath),
				"-sval",
				obj,
			}
			return assert.ObjectsAreEqual(want, args)
		}), mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, tc.Link(context.Background(), cfg))
		exec.AssertExpectations(t)
	})

	t.Run("LocaleFlagLeads", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		cfg := testConfig(t)
		cfg.LocalePath = "de-de.wxl"
		writeObject(t, cfg)

		exec.On("Run", mock.Anything, "", packager.LinkerApp, mock.MatchedBy(func(args []string) bool {
			return len(args) >= 2 && args[0] == "-loc" && args[1] == "de-de.wxl"
		}), mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, tc.Link(context.Background(), cfg))
		exec.AssertExpectations(t)
	})

	t.Run("NoObjects", func(t *testing.T) {
		tc, exec := newTestToolchain("")
		err := tc.Link(context.Background(), testConfig(t))
		assert.ErrorIs(t, err, packager.ErrNoSources)
		exec.AssertNotCalled(t, "Run")
	})
}

func TestLocate(t *testing.T) {
	t.Run("ExplicitBinPath", func(t *testing.T) {
		bin := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(bin, packager.CompilerApp), []byte("x"), 0o755))

		tc, _ := newTestToolchain(bin)
		path, err := tc.locate(packager.CompilerApp)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(bin, packager.CompilerApp), path)
	})

	t.Run("EnvironmentRoot", func(t *testing.T) {
		root := t.TempDir()
		bin := filepath.Join(root, packager.BinFolderName)
		require.NoError(t, os.MkdirAll(bin, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(bin, packager.LinkerApp), []byte("x"), 0o755))
		t.Setenv(packager.ToolchainPathKey, root)

		tc, _ := newTestToolchain("")
		path, err := tc.locate(packager.LinkerApp)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(bin, packager.LinkerApp), path)
	})

	t.Run("EnvironmentRootMissingBinary", func(t *testing.T) {
		t.Setenv(packager.ToolchainPathKey, t.TempDir())

		tc, _ := newTestToolchain("")
		_, err := tc.locate(packager.CompilerApp)
		require.ErrorIs(t, err, ErrToolNotFound)
		assert.Contains(t, err.Error(), packager.ToolchainPathKey)
	})

	t.Run("FallsBackToBareName", func(t *testing.T) {
		t.Setenv(packager.ToolchainPathKey, "")
		tc, _ := newTestToolchain("")
		path, err := tc.locate(packager.CompilerApp)
		require.NoError(t, err)
		assert.Equal(t, packager.CompilerApp, path)
	})
}
