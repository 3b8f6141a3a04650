// Package slug turns category names into URL-safe identifiers.
//
// The rule folds accents by NFKD decomposition followed by dropping every
// non-ASCII rune, lowercases, strips anything that is not a word character,
// whitespace or hyphen, collapses runs of whitespace and hyphens into a
// single hyphen and finally trims leading and trailing hyphens and
// underscores. "Acessórios" and "acessorios" therefore share a slug.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// \s here also covers \v and the ASCII separators \x1c-\x1f.
	nonWord   = regexp.MustCompile(`[^A-Za-z0-9_\t\n\v\f\r \x1c-\x1f-]`)
	separator = regexp.MustCompile(`[\t\n\v\f\r \x1c-\x1f-]+`)
)

func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

// Make returns the slug for s.
func Make(s string) string {
	folded, _, err := transform.String(asciiFold(), s)
	if err != nil {
		folded = s
	}
	folded = nonWord.ReplaceAllString(strings.ToLower(folded), "")
	folded = separator.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-_")
}
