package utils

import (
	"strings"
	"unicode"
)

// Slugify turns arbitrary text into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed into single hyphens, no leading or
// trailing hyphen. Deterministic, same input always yields the same slug.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
