package packager

// Constants naming the on-disk layout and the external toolchain applications.
// The compiler and linker are located by the runner at execution time; the
// folder and extension constants drive source discovery and the derived
// destination paths.
const (
	// ManifestFileName is the project manifest searched for when a directory
	// (or nothing) is given instead of a file path.
	ManifestFileName = "package.toml"

	// SourceFolderName is the directory beside the manifest that is scanned
	// for installer source files. The same name is reused for the toolchain
	// output subdirectory under TargetFolderName.
	SourceFolderName = "wix"
	// TargetFolderName is the build output directory beside the manifest.
	TargetFolderName = "target"

	// SourceFileExtension identifies installer source documents.
	SourceFileExtension = ".wxs"
	// ObjectFileExtension identifies compiled object files consumed by the linker.
	ObjectFileExtension = ".wixobj"
	// InstallerFileExtension is the extension of the final artifact.
	InstallerFileExtension = ".msi"

	// CompilerApp and LinkerApp name the toolchain binaries.
	CompilerApp = "candle"
	LinkerApp   = "light"
	// ToolchainPathKey is the environment variable created by the toolchain
	// installer; it points at the install root containing BinFolderName.
	ToolchainPathKey = "WIX"
	// BinFolderName is the folder under the toolchain install root that holds
	// the compiler and linker applications.
	BinFolderName = "bin"
)

// Default values applied when neither the caller nor the manifest decides.
const (
	// DefaultCulture selects the language resources linked into the installer.
	DefaultCulture = CultureEnUs
	// DefaultCaptureOutput hides toolchain output unless --nocapture is given.
	DefaultCaptureOutput = true
	// DefaultOutputFormat is the plan rendering used by --dry-run.
	DefaultOutputFormat = OutputFormatText
	// DefaultVerbose is the default state for verbose logging.
	DefaultVerbose = false
)

// metadataTableKeys is the path of the packaging table inside the manifest.
var metadataTableKeys = []string{"package", "metadata", "installer"}

// Keys recognized inside the [package.metadata.installer] table.
const (
	metaKeyCulture      = "culture"
	metaKeyLocale       = "locale"
	metaKeyOutput       = "output"
	metaKeyInclude      = "include"
	metaKeyCompilerArgs = "compiler-args"
	metaKeyLinkerArgs   = "linker-args"
	metaKeyName         = "name"
	metaKeyVersion      = "version"
	metaKeyDebugBuild   = "dbg-build"
	metaKeyDebugName    = "dbg-name"
	metaKeySkipBuild    = "no-build"
	metaKeyBuildCommand = "build-command"
)
