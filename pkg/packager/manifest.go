package packager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the read-only view over a project's package.toml. The document
// is decoded once into a string-to-variant tree (table, array, string, bool,
// integer) and never mutated; all nested lookups go through the typed
// accessors below so table traversal stays in one place.
type Manifest struct {
	path string
	root map[string]interface{}
}

// LoadManifest reads and decodes the manifest at path. When path names a
// directory, ManifestFileName inside it is used.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot resolve manifest path %q: %v", ErrManifest, path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q does not exist", ErrManifest, abs)
		}
		return nil, fmt.Errorf("%w: cannot access %q: %v", ErrManifest, abs, err)
	}
	if info.IsDir() {
		abs = filepath.Join(abs, ManifestFileName)
	}
	root := map[string]interface{}{}
	if _, err := toml.DecodeFile(abs, &root); err != nil {
		return nil, fmt.Errorf("%w: cannot decode %q: %v", ErrManifest, abs, err)
	}
	return &Manifest{path: abs, root: root}, nil
}

// Path returns the absolute path of the decoded manifest file.
func (m *Manifest) Path() string { return m.path }

// Dir returns the directory containing the manifest. Derived default paths
// (source folder, build output) are anchored here.
func (m *Manifest) Dir() string { return filepath.Dir(m.path) }

// table walks nested tables by key, returning nil when any segment is absent
// or not a table.
func (m *Manifest) table(keys ...string) map[string]interface{} {
	node := m.root
	for _, key := range keys {
		child, ok := node[key].(map[string]interface{})
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// lookup returns the raw value at the key path. A value present with an
// unexpected type is reported by the typed accessors as absent, matching the
// "first present value wins" contract: a mistyped entry falls through to the
// next source rather than failing resolution.
func (m *Manifest) lookup(keys ...string) (interface{}, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	parent := m.table(keys[:len(keys)-1]...)
	if parent == nil {
		return nil, false
	}
	value, ok := parent[keys[len(keys)-1]]
	return value, ok
}

// Str returns the string at the key path, with ok reporting presence.
func (m *Manifest) Str(keys ...string) (string, bool) {
	value, ok := m.lookup(keys...)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Bool returns the boolean at the key path, with ok reporting presence.
func (m *Manifest) Bool(keys ...string) (bool, bool) {
	value, ok := m.lookup(keys...)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// StrSlice returns the string array at the key path. An array containing a
// non-string element is treated as absent.
func (m *Manifest) StrSlice(keys ...string) ([]string, bool) {
	value, ok := m.lookup(keys...)
	if !ok {
		return nil, false
	}
	raw, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// PackageStr returns a top-level [package] field.
func (m *Manifest) PackageStr(key string) (string, bool) {
	return m.Str("package", key)
}

// PackageStrSlice returns a top-level [package] string array field.
func (m *Manifest) PackageStrSlice(key string) ([]string, bool) {
	return m.StrSlice("package", key)
}

// metaPath builds the full key path of an entry in the packaging table.
func metaPath(key string) []string {
	return append(append([]string{}, metadataTableKeys...), key)
}

// MetaStr returns a string from the packaging metadata table.
func (m *Manifest) MetaStr(key string) (string, bool) {
	return m.Str(metaPath(key)...)
}

// MetaBool returns a boolean from the packaging metadata table.
func (m *Manifest) MetaBool(key string) (bool, bool) {
	return m.Bool(metaPath(key)...)
}

// MetaStrSlice returns a string array from the packaging metadata table.
func (m *Manifest) MetaStrSlice(key string) ([]string, bool) {
	return m.StrSlice(metaPath(key)...)
}
