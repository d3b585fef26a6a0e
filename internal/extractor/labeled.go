package extractor

import (
	"strings"

	"github.com/tezkor/menu-tracker/constants"
	"github.com/tezkor/menu-tracker/internal/textnorm"
)

// extractLabeledFields pulls "key <sep> value" and "key value" pairs out of
// the lines. A composition header with no value ("Состав", "Состав:") is
// consumed as a block marker and produces nothing. Lines matching neither form
// are returned as the remaining pool.
//
// When the same key appears twice the later line wins.
func (e *Engine) extractLabeledFields(lines []string) (map[constants.FieldID]string, []string) {
	labeled := make(map[constants.FieldID]string)
	var remaining []string

	for _, line := range lines {
		// 1) key: value / key - value
		if m := labeledRE.FindStringSubmatch(line); m != nil {
			if field, ok := e.dict.Canonical(m[1]); ok {
				labeled[field] = strings.TrimSpace(m[2])
				continue
			}
		}

		// Header form "key:" with an empty value. Only the composition header
		// is a block marker; anything else stays in the pool.
		if m := headerOnlyRE.FindStringSubmatch(line); m != nil {
			if field, ok := e.dict.Canonical(m[1]); ok && field == constants.FieldComposition {
				continue
			}
		}

		// 2) key value (no separator), only when the first whitespace token
		// is a known synonym. A lone "состав" is a block header again.
		trimmed := strings.TrimSpace(line)
		tokens := strings.Fields(trimmed)
		if len(tokens) > 0 && e.dict.IsAlias(tokens[0]) {
			if field, ok := e.dict.Canonical(tokens[0]); ok {
				if field == constants.FieldComposition && len(tokens) == 1 {
					continue
				}
				if len(tokens) >= 2 {
					labeled[field] = strings.TrimSpace(trimmed[len(tokens[0]):])
					continue
				}
			}
		}

		remaining = append(remaining, line)
	}

	return labeled, remaining
}

// keywordPrefixed reports whether the folded line starts with a known synonym
// immediately followed by a separator ("цена:", "вес —").
func (e *Engine) keywordPrefixed(low string) bool {
	low = strings.TrimLeft(low, " \t")
	for _, a := range e.dict.AllAliases() {
		if !strings.HasPrefix(low, a) {
			continue
		}
		rest := strings.TrimLeft(low[len(a):], " \t")
		if rest != "" && strings.ContainsRune(":—–-", rune(rest[0])) {
			return true
		}
	}
	return false
}

// keywordSpacePrefixed reports whether the folded line is "synonym value..."
// with at least one token after the synonym ("цена 9000").
func (e *Engine) keywordSpacePrefixed(low string) bool {
	parts := strings.Fields(low)
	return len(parts) >= 2 && e.dict.IsAlias(parts[0])
}

// collectBlock gathers the lines following a composition header up to the next
// recognized keyword line. Handles "Состав:", "Состав :" and a bare "Состав";
// an inline rest after the colon is kept as the block's first line.
func (e *Engine) collectBlock(lines []string, header constants.FieldID) []string {
	var result []string
	collecting := false

	aliases := e.dict.Aliases(header)

	for _, line := range lines {
		low := textnorm.FoldKey(line)

		isHeader := false
		for _, a := range aliases {
			if strings.HasPrefix(low, a) {
				rest := strings.TrimLeft(low[len(a):], " \t")
				if strings.HasPrefix(rest, ":") {
					isHeader = true
					collecting = true
					if _, after, found := strings.Cut(line, ":"); found {
						if after = strings.TrimSpace(after); after != "" {
							result = append(result, after)
						}
					}
					break
				}
			}
			if low == a {
				isHeader = true
				collecting = true
				break
			}
		}
		if isHeader {
			continue
		}

		if collecting {
			if e.keywordPrefixed(low) {
				break
			}
			if e.keywordSpacePrefixed(low) {
				break
			}
			result = append(result, line)
		}
	}

	return result
}

// compositionFromLines joins alphabetic lines into a ", "-separated
// composition, stopping at a product code, a variant line, a bare price line,
// a calorie marker, or (when stopOnKeys) any other labeled attribute.
func (e *Engine) compositionFromLines(lines []string, stopOnKeys bool) string {
	var ingredients []string

	for _, line := range lines {
		low := textnorm.FoldKey(line)
		if low == "" {
			continue
		}

		if productCodeRE.MatchString(line) {
			break
		}
		if pairRE.MatchString(line) {
			break
		}
		if priceLineRE.MatchString(line) {
			break
		}
		if calorieStopRE.MatchString(line) {
			break
		}
		if stopOnKeys && (e.keywordPrefixed(low) || e.keywordSpacePrefixed(low)) {
			break
		}

		if containsLetter(line) {
			ingredients = append(ingredients, strings.TrimSpace(line))
		}
	}

	return strings.Join(ingredients, ", ")
}
