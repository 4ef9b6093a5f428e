package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeText strips diacritics, lowercases and trims a string so header
// and cell matching is insensitive to accents and casing ("Matrícula" and
// "matricula" are the same column).
func normalizeText(s string) string {
	// A fresh chain per call: transform.Transformer carries state and is
	// not safe for concurrent reuse.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
