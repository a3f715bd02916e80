package packager

import (
	"fmt"
	"strings"
)

// Culture is a locale identifier selecting the language resources linked into
// the installer. Values are canonical tags from the toolchain's supported set.
type Culture string

// CultureEnUs is the default culture.
const CultureEnUs Culture = "en-US"

// supportedCultures is the set of cultures the toolchain's UI extension ships
// language resources for.
var supportedCultures = []Culture{
	"ar-SA", "bg-BG", "ca-ES", "cs-CZ", "da-DK", "de-DE", "el-GR", "en-US",
	"es-ES", "et-EE", "fi-FI", "fr-FR", "he-IL", "hi-IN", "hr-HR", "hu-HU",
	"it-IT", "ja-JP", "kk-KZ", "ko-KR", "lt-LT", "lv-LV", "nb-NO", "nl-NL",
	"pl-PL", "pt-BR", "pt-PT", "ro-RO", "ru-RU", "sk-SK", "sl-SI",
	"sr-Latn-CS", "sv-SE", "th-TH", "tr-TR", "uk-UA", "zh-CN", "zh-HK",
	"zh-TW",
}

var cultureIndex = func() map[string]Culture {
	idx := make(map[string]Culture, len(supportedCultures))
	for _, c := range supportedCultures {
		idx[strings.ToLower(string(c))] = c
	}
	return idx
}()

// ParseCulture matches text against the supported culture set,
// case-insensitively, and returns the canonical form.
func ParseCulture(text string) (Culture, error) {
	if c, ok := cultureIndex[strings.ToLower(text)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: unrecognized culture %q", ErrInvalidValue, text)
}
