package packager

import "errors"

// --- Exported Error Variables ---
// These errors represent the categories of failure the resolution core can
// report. Callers can check against these using errors.Is; every returned
// error wraps exactly one of them with path or value context.

var (
	// ErrManifest indicates the project manifest could not be located, read,
	// or decoded as a TOML document.
	ErrManifest = errors.New("invalid project manifest")

	// ErrMissingField indicates a required parameter (name, version) has no
	// value in any source and no default exists. The wrapped message names
	// the field.
	ErrMissingField = errors.New("missing manifest field")

	// ErrInvalidValue indicates a malformed value for a parameter that parses
	// its input, such as an unrecognized culture or an unparsable semantic
	// version.
	ErrInvalidValue = errors.New("invalid value")

	// ErrOverflow indicates a numeric pre-release identifier exceeds the
	// maximum encodable value. The top of each encoded byte is reserved for
	// alphabetic identifiers, so numbers stop at 229.
	ErrOverflow = errors.New("pre-release value overflow")

	// ErrInvalidIdentifier indicates an alphanumeric pre-release identifier
	// whose first character is not an ASCII letter and therefore has no
	// defined encoding.
	ErrInvalidIdentifier = errors.New("invalid pre-release identifier")

	// ErrNotFound indicates a path that must reference an existing file does
	// not exist. The wrapped message reports the originating path.
	ErrNotFound = errors.New("path does not exist")

	// ErrNotAFile indicates a path names a directory where a file is
	// required. The wrapped message reports the originating path.
	ErrNotAFile = errors.New("path is not a file")

	// ErrNoSources indicates source discovery produced an empty set: nothing
	// under the source folder and no explicit or declared include entries.
	ErrNoSources = errors.New("no installer source files")
)
