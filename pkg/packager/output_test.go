package packager

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstallerFilename(t *testing.T) {
	assert.Equal(t, "widget-1.2.3-x86_64.msi",
		installerFilename("widget", "1.2.3", PlatformX64, false))
	assert.Equal(t, "widget-1.2.3-i686.msi",
		installerFilename("widget", "1.2.3", PlatformX86, false))
	assert.Equal(t, "widget-1.2.3-x86_64-debug.msi",
		installerFilename("widget", "1.2.3", PlatformX64, true))
}

func TestResolveInstallerPath(t *testing.T) {
	manifestDir := t.TempDir()
	const filename = "widget-1.2.3-x86_64.msi"

	t.Run("DefaultLocation", func(t *testing.T) {
		got := resolveInstallerPath("", filename, manifestDir)
		want := filepath.Join(manifestDir, TargetFolderName, SourceFolderName, filename)
		assert.Equal(t, want, got)
	})

	t.Run("TrailingSeparatorAppendsFilename", func(t *testing.T) {
		got := resolveInstallerPath("out/", filename, manifestDir)
		assert.Equal(t, filepath.Join("out", filename), got)

		got = resolveInstallerPath(`out\`, filename, manifestDir)
		assert.Equal(t, filepath.Join("out", filename), got)
	})

	t.Run("ExistingDirectoryAppendsFilename", func(t *testing.T) {
		dir := t.TempDir()
		got := resolveInstallerPath(dir, filename, manifestDir)
		assert.Equal(t, filepath.Join(dir, filename), got)
	})

	t.Run("FilePathUsedVerbatim", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom.msi")
		got := resolveInstallerPath(custom, filename, manifestDir)
		assert.Equal(t, custom, got)
	})
}

func TestObjectDestination(t *testing.T) {
	dir := t.TempDir()
	got := objectDestination(dir)
	assert.Equal(t, filepath.Join(dir, TargetFolderName, SourceFolderName), filepath.Clean(got))
	assert.True(t, endsWithSeparator(got), "object destination must keep its trailing separator")
}
