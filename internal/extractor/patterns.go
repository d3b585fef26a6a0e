package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Units recognized after a number as a weight/volume/portion marker.
// Longer alternatives come first so "гр" is not eaten as "г"+letter.
const unitsAlt = `гр|г|кг|мг|мл|л|kg|gr|g|mg|ml|l|oz|шт|pcs|pieces|piece|pc|dona|ta`

var (
	// Number + unit. RE2 has no \b for non-ASCII letters, so matches are
	// boundary-checked in code (see findWeightToken).
	weightRE = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:` + unitsAlt + `)`)

	// A line that is just a price: digits with thousand separators, optional
	// currency suffix.
	priceLineRE = regexp.MustCompile(`(?i)^\s*\d[\d\s.,]{1,}\d\s*(?:сум|sum|som|so'm|uzs)?\s*$`)

	// 17 consecutive digits anywhere: the product tax code.
	productCodeRE = regexp.MustCompile(`\b\d{17}\b`)

	// "label — price" variant line. The label is any non-empty prefix.
	pairRE = regexp.MustCompile(`^(.+?)\s*[—–-]\s*(\d[\d\s.,]*\d)\s*$`)

	// "key: value" / "key - value" / "key — value".
	labeledRE = regexp.MustCompile(`^\s*([^:—–-]{2,40}?)\s*[:—–-]\s*(.+?)\s*$`)

	// "key:" with nothing after it (block header form).
	headerOnlyRE = regexp.MustCompile(`^\s*([^:—–-]{2,40}?)\s*[:—–-]\s*$`)

	// Calorie markers that terminate a composition block.
	calorieStopRE = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:ккал|калл|кал|kcal|cal)(?:$|[^\p{L}])`)

	// Inline digit runs considered price-like during the unstructured fallback.
	inlineDigitsRE = regexp.MustCompile(`\d[\d\s.,]{2,}\d`)

	nonDigitRE = regexp.MustCompile(`\D`)
	numberRE   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// digitsToInt strips every non-digit and parses the rest, accepting only
// plausible price magnitudes (3 to 9 digits). "9.000" -> 9000.
func digitsToInt(s string) (int, bool) {
	digits := nonDigitRE.ReplaceAllString(s, "")
	if len(digits) < 3 || len(digits) > 9 {
		return 0, false
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// findWeightToken returns the first "number unit" token in s, or "". RE2 word
// boundaries only cover ASCII, so the Cyrillic unit boundaries are checked in
// code: the number must not follow a letter/digit and the unit must not run
// into a following letter ("450 гр" matches, "450 грамм" does not because no
// listed unit ends at a boundary there).
func findWeightToken(s string) string {
	for _, loc := range weightRE.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:start])
			if isWordRune(prev) {
				continue
			}
		}
		if end < len(s) {
			next, _ := utf8.DecodeRuneInString(s[end:])
			if unicode.IsLetter(next) {
				continue
			}
		}
		return strings.TrimSpace(s[start:end])
	}
	return ""
}

func hasWeightToken(s string) bool {
	return findWeightToken(s) != ""
}

// normalizeWeightValue canonicalizes a labeled weight value to
// "<number> <unit>". A bare number defaults to grams: "450" -> "450 г".
func normalizeWeightValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if w := findWeightToken(raw); w != "" {
		return w
	}
	if m := numberRE.FindString(raw); m != "" {
		return m + " г"
	}
	return ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
