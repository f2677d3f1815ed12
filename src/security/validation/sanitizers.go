// backend/src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// SanitizeHeaderValue trims and strips unprintable characters from a user-supplied
// column name, such as one given in a generic column mapping.
func SanitizeHeaderValue(s string) string {
	return strings.TrimSpace(StripUnprintable(s))
}
