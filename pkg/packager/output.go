package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// installerFilename derives the default artifact name:
// {name}-{version}-{arch}[-debug]{ext}.
func installerFilename(name, version string, platform Platform, debugName bool) string {
	if debugName {
		return fmt.Sprintf("%s-%s-%s-debug%s", name, version, platform.Arch(), InstallerFileExtension)
	}
	return fmt.Sprintf("%s-%s-%s%s", name, version, platform.Arch(), InstallerFileExtension)
}

// resolveInstallerPath applies the directory-vs-filename branch to a resolved
// destination: a candidate ending in a path separator or naming an existing
// directory receives the derived filename, any other candidate is used
// verbatim. An empty candidate falls back to the build output location
// beside the manifest.
func resolveInstallerPath(candidate, filename, manifestDir string) string {
	if candidate == "" {
		return filepath.Join(manifestDir, TargetFolderName, SourceFolderName, filename)
	}
	if endsWithSeparator(candidate) {
		// The trailing separator may be the foreign style; it must not
		// survive into the joined path as part of the directory name.
		return filepath.Join(strings.TrimRight(candidate, `/\`), filename)
	}
	if isDir(candidate) {
		return filepath.Join(candidate, filename)
	}
	return candidate
}

// endsWithSeparator accepts both separator styles; destinations declared in
// the manifest may use either regardless of the host.
func endsWithSeparator(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// objectDestination is where compiled object files land. The trailing
// separator is part of the compiler's -o contract: without it the value is
// treated as a file name instead of a directory.
func objectDestination(manifestDir string) string {
	return filepath.Join(manifestDir, TargetFolderName, SourceFolderName) + string(os.PathSeparator)
}
