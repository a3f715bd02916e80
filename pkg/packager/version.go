package packager

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is one dot-separated pre-release token. Exactly one variant is
// active: when Numeric is true the token is the integer in Value, otherwise
// Text holds the alphanumeric form. The type is owned here so the encoder
// does not depend on any external semantic-version parser.
type Identifier struct {
	Numeric bool
	Value   uint64
	Text    string
}

func (i Identifier) String() string {
	if i.Numeric {
		return strconv.FormatUint(i.Value, 10)
	}
	return i.Text
}

// SemanticVersion is the owned semantic version model. Build metadata (the
// part after '+') is parsed and discarded; it never affects encoding.
type SemanticVersion struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease []Identifier
}

// String renders the version without build metadata.
func (v SemanticVersion) String() string {
	core := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.Prerelease) == 0 {
		return core
	}
	parts := make([]string, len(v.Prerelease))
	for i, id := range v.Prerelease {
		parts[i] = id.String()
	}
	return core + "-" + strings.Join(parts, ".")
}

// ParseVersion parses "major.minor.patch[-pre][+meta]". The three core fields
// and numeric pre-release identifiers reject leading zeros.
func ParseVersion(text string) (SemanticVersion, error) {
	var v SemanticVersion
	rest := text
	if at := strings.IndexByte(rest, '+'); at >= 0 {
		rest = rest[:at]
	}
	core := rest
	if at := strings.IndexByte(rest, '-'); at >= 0 {
		core = rest[:at]
		pre := rest[at+1:]
		if pre == "" {
			return v, fmt.Errorf("%w: empty pre-release in version %q", ErrInvalidValue, text)
		}
		for _, token := range strings.Split(pre, ".") {
			id, err := parseIdentifier(token)
			if err != nil {
				return v, fmt.Errorf("%w: version %q: %v", ErrInvalidValue, text, err)
			}
			v.Prerelease = append(v.Prerelease, id)
		}
	}
	fields := strings.Split(core, ".")
	if len(fields) != 3 {
		return v, fmt.Errorf("%w: version %q must have a major.minor.patch core", ErrInvalidValue, text)
	}
	var err error
	if v.Major, err = parseNumericField(fields[0]); err != nil {
		return v, fmt.Errorf("%w: version %q: %v", ErrInvalidValue, text, err)
	}
	if v.Minor, err = parseNumericField(fields[1]); err != nil {
		return v, fmt.Errorf("%w: version %q: %v", ErrInvalidValue, text, err)
	}
	if v.Patch, err = parseNumericField(fields[2]); err != nil {
		return v, fmt.Errorf("%w: version %q: %v", ErrInvalidValue, text, err)
	}
	return v, nil
}

// parseNumericField parses a core version field: digits only, no leading zero.
func parseNumericField(field string) (uint64, error) {
	if field == "" {
		return 0, fmt.Errorf("empty version field")
	}
	if len(field) > 1 && field[0] == '0' {
		return 0, fmt.Errorf("version field %q has a leading zero", field)
	}
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("version field %q is not a non-negative integer", field)
	}
	return n, nil
}

// parseIdentifier classifies one pre-release token. All-digit tokens are
// numeric (leading zeros rejected); anything else must consist of ASCII
// letters, digits, and hyphens.
func parseIdentifier(token string) (Identifier, error) {
	if token == "" {
		return Identifier{}, fmt.Errorf("empty pre-release identifier")
	}
	numeric := true
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9':
		case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '-':
			numeric = false
		default:
			return Identifier{}, fmt.Errorf("pre-release identifier %q contains %q", token, c)
		}
	}
	if !numeric {
		return Identifier{Text: token}, nil
	}
	if len(token) > 1 && token[0] == '0' {
		return Identifier{}, fmt.Errorf("numeric pre-release identifier %q has a leading zero", token)
	}
	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return Identifier{}, fmt.Errorf("numeric pre-release identifier %q out of range", token)
	}
	return Identifier{Numeric: true, Value: n}, nil
}

const (
	// letterBase is the first byte value reserved for alphabetic identifiers.
	// Numeric identifiers occupy [0, letterBase-1], letters occupy
	// [letterBase, 255], so the two ranges cannot collide.
	letterBase = 256 - 26
	// maxNumericIdentifier is the largest encodable numeric identifier.
	maxNumericIdentifier = letterBase - 1
	// releaseBuildValue marks a version without pre-release identifiers.
	releaseBuildValue = 65535
)

// EncodeVersion funnels a semantic version into the dot-separated four-field
// numeric form the toolchain compiler accepts. Major, minor, and patch pass
// through unchanged; the toolchain owns their upper limit, so it is not
// enforced here. The fourth field packs the first two pre-release
// identifiers, or releaseBuildValue when there are none.
func EncodeVersion(v SemanticVersion) (string, error) {
	build, err := buildField(v.Prerelease)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, build), nil
}

// buildField packs the first two pre-release identifiers into a 16-bit value:
// identifier 0 is the high byte, identifier 1 the low byte. Identifiers past
// the second are ignored.
func buildField(pre []Identifier) (uint16, error) {
	if len(pre) == 0 {
		return releaseBuildValue, nil
	}
	hi, err := identifierByte(pre[0])
	if err != nil {
		return 0, err
	}
	value := hi << 8
	if len(pre) >= 2 {
		lo, err := identifierByte(pre[1])
		if err != nil {
			return 0, err
		}
		value |= lo
	}
	return value, nil
}

// identifierByte maps one identifier onto its byte: numeric values directly,
// alphabetic identifiers by the case-insensitive offset of their first letter
// from 'a' shifted into the reserved letter range.
func identifierByte(id Identifier) (uint16, error) {
	if id.Numeric {
		if id.Value > maxNumericIdentifier {
			return 0, fmt.Errorf("%w: pre-release value %d exceeds the maximum %d", ErrOverflow, id.Value, maxNumericIdentifier)
		}
		return uint16(id.Value), nil
	}
	switch c := id.Text[0]; {
	case c >= 'A' && c <= 'Z':
		return uint16(c-'A') + letterBase, nil
	case c >= 'a' && c <= 'z':
		return uint16(c-'a') + letterBase, nil
	default:
		return 0, fmt.Errorf("%w: pre-release identifier %q must start with an alphabetic letter (a-z or A-Z)", ErrInvalidIdentifier, id.Text)
	}
}
