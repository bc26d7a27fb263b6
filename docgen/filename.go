package docgen

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxFilenameBase bounds the sanitized base name length.
const maxFilenameBase = 120

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// SanitizeFilename makes a name safe for a Content-Disposition attachment:
// diacritics stripped, whitespace collapsed to underscores, everything
// outside [A-Za-z0-9._-] removed, runs of underscores collapsed, and the
// result truncated to a bounded length.
func SanitizeFilename(name string) string {
	stripped, _, err := transform.String(diacriticStripper, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range stripped {
		switch {
		case r == '.' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case unicode.IsSpace(r) || r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			// dropped
		}
	}

	out := strings.Trim(b.String(), "_")
	if len(out) > maxFilenameBase {
		out = strings.Trim(out[:maxFilenameBase], "_.")
	}
	if out == "" {
		out = "documento"
	}
	return out
}
