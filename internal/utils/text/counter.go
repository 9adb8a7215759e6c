// Package text provides small rune-aware string helpers shared by the
// content use cases (slugs, excerpts, character counting).
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
//	CountRunes("señal")  // 5
//	CountRunes("")       // 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens s to at most max runes, cutting at the last word boundary
// and appending an ellipsis when something was removed.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}

	cut := string(r[:max])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(cut, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}

// Slugify turns a title into a lowercase ASCII slug: accents are removed and
// every run of non-alphanumerics becomes a single hyphen.
//
//	Slugify("Sesión Ordinaria: 2024")  // "sesion-ordinaria-2024"
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	b.Grow(len(plain))
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
