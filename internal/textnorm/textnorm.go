// Package textnorm normalizes chat text before dictionary lookups and field
// extraction. Chat clients routinely smuggle in zero-width joiners, BOMs and
// decomposed accents; everything downstream assumes NFC with none of that.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var clean = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))

// Clean recomposes the string to NFC and strips invisible format characters.
func Clean(s string) string {
	out, _, err := transform.String(clean, s)
	if err != nil {
		return s
	}
	return out
}

// FoldKey prepares a raw key token for alias lookup: Clean, lowercase,
// whitespace collapsed to single spaces.
func FoldKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(Clean(s))), " ")
}
