package packager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// scanSourceDir lists regular files in dir carrying the given extension.
// Entries that cannot be read are skipped silently and a missing or
// unreadable directory yields an empty set; discovery failures surface later
// as ErrNoSources when nothing else supplies sources.
func scanSourceDir(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths
}

// ValidateFile ensures path names an existing regular file, distinguishing a
// missing entry from a directory.
func ValidateFile(path string) error {
	return validateSourceFile(path)
}

// validateSourceFile ensures path names an existing regular file,
// distinguishing a missing entry from a directory.
func validateSourceFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %q: %v", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotAFile, path)
	}
	return nil
}

// DiscoverObjects returns the compiled object files under objDir for the
// linker stage. The compile stage must have produced at least one.
func DiscoverObjects(objDir string) ([]string, error) {
	objects := scanSourceDir(filepath.Clean(objDir), ObjectFileExtension)
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: no %s files under %q", ErrNoSources, ObjectFileExtension, objDir)
	}
	return objects, nil
}
