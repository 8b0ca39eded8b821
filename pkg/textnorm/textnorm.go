// Package textnorm folds answer text into a canonical comparison form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases, trims surrounding whitespace and strips combining
// diacritical marks, so "Ľúbiť " becomes "lubit". It is total: empty input
// yields an empty string.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

	// NFD splits accented letters into base letter + combining mark; dropping
	// the marks (category Mn) leaves the plain Latin letter.
	decomposed := norm.NFD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold lower-cases and trims without touching diacritics. Both forms of a
// candidate answer are accepted during matching.
func Fold(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
