// Package slug derives URL anchor identifiers from heading text.
package slug

import (
	"strings"
	"unicode"
)

// Make maps every maximal run of non-alphanumeric characters to a single
// hyphen and lowercases letters. Runs at either end produce no hyphen.
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range s {
		if !isAlphanumeric(r) {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
