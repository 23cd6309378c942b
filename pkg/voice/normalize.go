// Package voice resolves transcribed voice commands against a pantry
// inventory: text normalization, plural folding, intent/unit/category
// classification, and fuzzy item matching. Every function is total —
// malformed input maps to a documented default, never an error.
package voice

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText folds a spoken string into matchable form: accents
// stripped (á, ã, ç → a, a, c), lowercased, every run outside [a-z0-9]
// collapsed to a single space, trimmed. Idempotent.
func NormalizeText(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// tokens splits a string into normalized, singularized tokens.
func tokens(s string) []string {
	normalized := NormalizeText(s)
	if normalized == "" {
		return nil
	}
	parts := strings.Fields(normalized)
	for i, p := range parts {
		parts[i] = SingularizeToken(p)
	}
	return parts
}
