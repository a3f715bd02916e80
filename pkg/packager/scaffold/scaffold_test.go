package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/stack-packager/pkg/packager"
)

func manifestFor(t *testing.T, content string) *packager.Manifest {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, packager.ManifestFileName), []byte(content), 0o644))
	m, err := packager.LoadManifest(dir)
	require.NoError(t, err)
	return m
}

const fullManifest = `
[package]
name = "widget"
version = "0.4.1"
authors = ["Jo Doe <jo@example.com>", "Sam Smith"]
description = "A fine widget."
homepage = "https://widget.example.com"
repository = "https://example.com/widget.git"
`

func TestGenerate(t *testing.T) {
	m := manifestFor(t, fullManifest)
	dest, err := Generate(m, Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Dir(), packager.SourceFolderName, "main.wxs"), dest)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Name='widget'")
	assert.Contains(t, content, "Manufacturer='Jo Doe'")
	assert.Contains(t, content, "Description='A fine widget.'")
	assert.Contains(t, content, "https://widget.example.com")
	assert.Contains(t, content, "widget.exe")
	assert.NotContains(t, content, "{{", "all template actions must be rendered")
	// Generated GUIDs are uppercase and never repeat.
	upgrade := content[strings.Index(content, "UpgradeCode='")+len("UpgradeCode='"):]
	upgrade = upgrade[:36]
	assert.Equal(t, strings.ToUpper(upgrade), upgrade)
}

func TestGenerateRefusesOverwrite(t *testing.T) {
	m := manifestFor(t, fullManifest)
	_, err := Generate(m, Options{})
	require.NoError(t, err)

	_, err = Generate(m, Options{})
	assert.ErrorIs(t, err, packager.ErrInvalidValue)

	_, err = Generate(m, Options{Force: true})
	assert.NoError(t, err)
}

func TestGenerateOverrides(t *testing.T) {
	m := manifestFor(t, fullManifest)
	out := filepath.Join(t.TempDir(), "custom.wxs")
	dest, err := Generate(m, Options{
		ProductName:  "Widget Pro",
		Manufacturer: "Acme Corp",
		HelpURL:      "https://support.example.com",
		Output:       out,
	})
	require.NoError(t, err)
	assert.Equal(t, out, dest)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Name='Widget Pro'")
	assert.Contains(t, content, "Manufacturer='Acme Corp'")
	assert.Contains(t, content, "https://support.example.com")
}

func TestGenerateMissingAuthors(t *testing.T) {
	m := manifestFor(t, `
[package]
name = "widget"
version = "0.4.1"
`)
	_, err := Generate(m, Options{})
	assert.ErrorIs(t, err, packager.ErrMissingField)
}

func TestGenerateEULA(t *testing.T) {
	t.Run("ExplicitMustExist", func(t *testing.T) {
		m := manifestFor(t, fullManifest)
		_, err := Generate(m, Options{EULAPath: filepath.Join(t.TempDir(), "absent.rtf")})
		assert.ErrorIs(t, err, packager.ErrNotFound)
	})

	t.Run("RTFLicenseFileBecomesEULA", func(t *testing.T) {
		m := manifestFor(t, fullManifest+`license-file = "License.rtf"`+"\n")
		require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), "License.rtf"), []byte("{\\rtf1}"), 0o644))

		dest, err := Generate(m, Options{})
		require.NoError(t, err)
		raw, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "WixUILicenseRtf")
	})

	t.Run("PlainLicenseFileIsNotEULA", func(t *testing.T) {
		m := manifestFor(t, fullManifest+`license-file = "LICENSE"`+"\n")
		require.NoError(t, os.WriteFile(filepath.Join(m.Dir(), "LICENSE"), []byte("MIT"), 0o644))

		dest, err := Generate(m, Options{})
		require.NoError(t, err)
		raw, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "WixUILicenseRtf")
		assert.Contains(t, string(raw), "Id='License'")
	})
}

func TestStripEmail(t *testing.T) {
	assert.Equal(t, "Jo Doe", stripEmail("Jo Doe <jo@example.com>"))
	assert.Equal(t, "Sam Smith", stripEmail("Sam Smith"))
	assert.Equal(t, "", stripEmail("<only@example.com>"))
}
