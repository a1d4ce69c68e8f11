// Package textnorm folds free text so rule engines can compare it without
// tripping over accents, case or stray whitespace.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ordinals rewrites ordinal indicators before accent stripping; NFD leaves
// them intact because they are not combining marks.
var ordinals = strings.NewReplacer("º", "o", "°", "o", "ª", "a")

// Fold lower-cases s, strips diacritics, rewrites ordinal indicators and
// collapses whitespace runs. "  Seleção   Brasileira " folds to
// "selecao brasileira".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain keeps per-call state, so build one for every call.
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripAccents, ordinals.Replace(s))
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Equal reports whether a and b fold to the same text.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Contains reports whether the folded haystack contains the folded needle.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}

// ContainsAny reports whether haystack contains any of the needles.
func ContainsAny(haystack string, needles ...string) bool {
	h := Fold(haystack)
	if h == "" {
		return false
	}
	for _, needle := range needles {
		if n := Fold(needle); n != "" && strings.Contains(h, n) {
			return true
		}
	}
	return false
}

// Join folds and joins the non-empty parts with a single space. Engines use
// it to search several fields at once.
func Join(parts ...string) string {
	folded := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := Fold(p); f != "" {
			folded = append(folded, f)
		}
	}
	return strings.Join(folded, " ")
}
