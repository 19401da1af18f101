package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mpnTransformer strips diacritics and normalizes to NFKC so supplier
// variants of the same part number compare equal.
var mpnTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFKC,
)

// CanonicalMPN normalizes a manufacturer part number for identity
// comparison: Unicode-folded, diacritics stripped, upper-cased, with
// separators and whitespace removed. Supplier APIs disagree on dashes and
// spacing inside the same MPN.
func CanonicalMPN(mpn string) string {
	folded, _, err := transform.String(mpnTransformer, mpn)
	if err != nil {
		folded = mpn
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r == '-' || r == '_' || r == '.' || r == '/' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// CanonicalManufacturer normalizes a manufacturer name for comparison:
// diacritics stripped, lower-cased, corporate suffixes and punctuation
// trimmed.
func CanonicalManufacturer(name string) string {
	folded, _, err := transform.String(mpnTransformer, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(strings.TrimSpace(folded))
	for _, suffix := range []string{", inc.", ", inc", " inc.", " inc", " corp.", " corp", " corporation", " ltd.", " ltd", " gmbh", " co."} {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.Trim(s, " .,")
	return s
}
