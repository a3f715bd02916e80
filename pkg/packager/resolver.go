package packager

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Configuration is the fully resolved parameter set for one packaging run.
// It is immutable once returned by Resolve: every field carries a definite
// value or its defined default, so downstream stages never consult the
// manifest or overrides again.
type Configuration struct {
	Name           string
	Version        SemanticVersion
	EncodedVersion string
	Culture        Culture
	LocalePath     string // empty when no localization file is linked
	Sources        []string
	CompilerArgs   []string
	LinkerArgs     []string
	ObjectDir      string
	InstallerPath  string
	Platform       Platform
	Profile        Profile
	DebugName      bool
	SkipBuild      bool
	BuildCommand   []string // empty when the manifest declares none
	ManifestPath   string
}

// Resolver applies the fixed per-parameter precedence: explicit override,
// packaging metadata table, top-level package field (name and version only),
// hardcoded default. The first present source wins; later sources are not
// consulted.
type Resolver struct {
	manifest  *Manifest
	overrides Overrides
	platform  Platform
	logger    *slog.Logger
}

// NewResolver creates a Resolver over a loaded manifest. A nil handler falls
// back to the process default logger.
func NewResolver(manifest *Manifest, overrides Overrides, handler slog.Handler) *Resolver {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &Resolver{
		manifest:  manifest,
		overrides: overrides,
		platform:  DetectPlatform(),
		logger:    slog.New(handler).With(slog.String("component", "resolver")),
	}
}

// Resolve produces the Configuration. Parameters are resolved in a fixed
// order and the first failure aborts the run; later steps depend on earlier
// values, so the order is not reorderable.
func (r *Resolver) Resolve() (*Configuration, error) {
	name, err := r.resolveName()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Resolved product name", slog.String("name", name))

	version, err := r.resolveVersion()
	if err != nil {
		return nil, err
	}
	encoded, err := EncodeVersion(version)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Resolved version",
		slog.String("semantic", version.String()),
		slog.String("encoded", encoded))

	culture, err := r.resolveCulture()
	if err != nil {
		return nil, err
	}
	locale, err := r.resolveLocale()
	if err != nil {
		return nil, err
	}

	debugBuild := r.resolveBool(r.overrides.DebugBuild, metaKeyDebugBuild)
	debugName := r.resolveBool(r.overrides.DebugName, metaKeyDebugName)
	skipBuild := r.resolveBool(r.overrides.SkipBuild, metaKeySkipBuild)
	profile := ProfileRelease
	if debugBuild {
		profile = ProfileDebug
	}

	sources, err := r.resolveSources()
	if err != nil {
		return nil, err
	}

	buildCommand, _ := r.manifest.MetaStrSlice(metaKeyBuildCommand)

	cfg := &Configuration{
		Name:           name,
		Version:        version,
		EncodedVersion: encoded,
		Culture:        culture,
		LocalePath:     locale,
		Sources:        sources,
		CompilerArgs:   r.resolveArgs(r.overrides.CompilerArgs, metaKeyCompilerArgs),
		LinkerArgs:     r.resolveArgs(r.overrides.LinkerArgs, metaKeyLinkerArgs),
		ObjectDir:      objectDestination(r.manifest.Dir()),
		InstallerPath:  r.resolveInstaller(name, version.String(), debugName),
		Platform:       r.platform,
		Profile:        profile,
		DebugName:      debugName,
		SkipBuild:      skipBuild,
		BuildCommand:   buildCommand,
		ManifestPath:   r.manifest.Path(),
	}
	r.logger.Debug("Configuration resolved",
		slog.String("installer", cfg.InstallerPath),
		slog.Int("sources", len(cfg.Sources)),
		slog.String("platform", string(cfg.Platform)),
		slog.String("profile", string(cfg.Profile)))
	return cfg, nil
}

func (r *Resolver) resolveName() (string, error) {
	if r.overrides.Name != "" {
		return r.overrides.Name, nil
	}
	if name, ok := r.manifest.MetaStr(metaKeyName); ok {
		return name, nil
	}
	if name, ok := r.manifest.PackageStr("name"); ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: name", ErrMissingField)
}

func (r *Resolver) resolveVersion() (SemanticVersion, error) {
	if r.overrides.Version != "" {
		return ParseVersion(r.overrides.Version)
	}
	if text, ok := r.manifest.MetaStr(metaKeyVersion); ok {
		return ParseVersion(text)
	}
	if text, ok := r.manifest.PackageStr("version"); ok {
		return ParseVersion(text)
	}
	return SemanticVersion{}, fmt.Errorf("%w: version", ErrMissingField)
}

func (r *Resolver) resolveCulture() (Culture, error) {
	if r.overrides.Culture != "" {
		return ParseCulture(r.overrides.Culture)
	}
	if text, ok := r.manifest.MetaStr(metaKeyCulture); ok {
		return ParseCulture(text)
	}
	return DefaultCulture, nil
}

// resolveLocale returns the localization file path, validating that whichever
// origin supplied it names an existing file.
func (r *Resolver) resolveLocale() (string, error) {
	candidate := r.overrides.Locale
	if candidate == "" {
		meta, ok := r.manifest.MetaStr(metaKeyLocale)
		if !ok {
			return "", nil
		}
		candidate = meta
	}
	if err := validateSourceFile(candidate); err != nil {
		return "", err
	}
	return candidate, nil
}

// resolveBool is the shared precedence for the profile flags: an explicit
// true wins, otherwise the metadata table decides, otherwise false.
func (r *Resolver) resolveBool(override bool, key string) bool {
	if override {
		return true
	}
	value, ok := r.manifest.MetaBool(key)
	return ok && value
}

// resolveArgs picks the pass-through argument list for one toolchain stage.
func (r *Resolver) resolveArgs(override []string, key string) []string {
	if len(override) > 0 {
		return override
	}
	args, _ := r.manifest.MetaStrSlice(key)
	return args
}

// resolveSources assembles the source set: the source folder beside the
// manifest is scanned, then either the explicit include list or the
// metadata-declared one (never both) is validated and appended. The final
// set must be non-empty.
func (r *Resolver) resolveSources() ([]string, error) {
	dir := filepath.Join(r.manifest.Dir(), SourceFolderName)
	sources := scanSourceDir(dir, SourceFileExtension)
	declared := r.overrides.Includes
	if len(declared) == 0 {
		declared, _ = r.manifest.MetaStrSlice(metaKeyInclude)
	}
	for _, path := range declared {
		if err := validateSourceFile(path); err != nil {
			return nil, err
		}
	}
	sources = append(sources, declared...)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: nothing under %q and no include entries", ErrNoSources, dir)
	}
	return sources, nil
}

func (r *Resolver) resolveInstaller(name, version string, debugName bool) string {
	filename := installerFilename(name, version, r.platform, debugName)
	candidate := r.overrides.Output
	if candidate == "" {
		candidate, _ = r.manifest.MetaStr(metaKeyOutput)
	}
	return resolveInstallerPath(candidate, filename, r.manifest.Dir())
}
