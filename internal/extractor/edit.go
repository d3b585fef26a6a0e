package extractor

import (
	"strings"

	"github.com/tezkor/menu-tracker/constants"
)

// IsClearToken reports whether the operator's input means "clear this field".
func IsClearToken(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "—", "-":
		return true
	}
	return false
}

// ParsePriceLines re-parses multi-line operator input as "label - number"
// pairs, one per line. Unparseable lines are discarded, never reported:
// partial data beats aborting the edit.
func ParsePriceLines(input string) []PriceVariant {
	var variants []PriceVariant
	for _, line := range strings.Split(input, "\n") {
		left, right, found := strings.Cut(line, "-")
		if !found {
			continue
		}
		digits := nonDigitRE.ReplaceAllString(right, "")
		if digits == "" || len(digits) > 9 {
			continue
		}
		price := 0
		for _, r := range digits {
			price = price*10 + int(r-'0')
		}
		variants = append(variants, PriceVariant{
			Label: strings.TrimSpace(left),
			Price: price,
		})
	}
	return variants
}

// ApplyEdit rewrites one field of the record from raw operator input.
//
// A clear token resets the field to absent; for the price field it also drops
// the whole variant list but leaves weight alone. Structured input for the
// price field goes through ParsePriceLines and recomputes the scalar minimum
// while forcing weight absent. Any other field takes the trimmed text
// verbatim.
func ApplyEdit(rec *Record, field constants.FieldID, input string) {
	if IsClearToken(input) {
		switch field {
		case constants.FieldPrice:
			rec.Price = nil
			rec.Variants = nil
		case constants.FieldName:
			rec.Name = ""
		case constants.FieldComposition:
			rec.Composition = ""
		case constants.FieldWeight:
			rec.Weight = ""
		case constants.FieldIKPU:
			rec.ProductCode = ""
		}
		rec.clearSource(field)
		return
	}

	text := strings.TrimSpace(input)
	switch field {
	case constants.FieldPrice:
		rec.Variants = ParsePriceLines(input)
		if len(rec.Variants) > 0 {
			min := rec.Variants[0].Price
			for _, v := range rec.Variants[1:] {
				if v.Price < min {
					min = v.Price
				}
			}
			rec.Price = intPtr(min)
		} else {
			rec.Price = nil
		}
		rec.Weight = ""
		rec.clearSource(constants.FieldWeight)
	case constants.FieldName:
		rec.Name = text
	case constants.FieldComposition:
		rec.Composition = text
	case constants.FieldWeight:
		rec.Weight = text
	case constants.FieldIKPU:
		rec.ProductCode = text
	}
	rec.setSource(field, constants.SourceManualEdit)
}
