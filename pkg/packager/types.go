package packager

import "runtime"

// Platform identifies the processor architecture the installer targets. It is
// derived from the build environment and cannot be overridden.
type Platform string

// Constants representing the supported target platforms.
const (
	PlatformX86 Platform = "x86"
	PlatformX64 Platform = "x64"
)

// DetectPlatform maps the runtime architecture onto a toolchain platform.
func DetectPlatform() Platform {
	if runtime.GOARCH == "amd64" {
		return PlatformX64
	}
	return PlatformX86
}

// Arch returns the architecture token used in derived installer file names.
// This differs from the platform define passed to the compiler.
func (p Platform) Arch() string {
	if p == PlatformX64 {
		return "x86_64"
	}
	return "i686"
}

// Profile selects the build profile define passed to the compiler and, when a
// build-command is declared, documents which variant of the binary is packaged.
type Profile string

const (
	ProfileRelease Profile = "release"
	ProfileDebug   Profile = "debug"
)

// OutputFormat defines how the resolved plan is rendered by --dry-run.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)
