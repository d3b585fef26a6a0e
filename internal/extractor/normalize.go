package extractor

import (
	"strings"

	"github.com/tezkor/menu-tracker/internal/textnorm"
)

// NormalizeTexts flattens raw message fragments into an ordered list of
// trimmed, non-empty lines. Fragments are NFC-cleaned so downstream regexes
// see one canonical spelling.
func NormalizeTexts(texts []string) []string {
	var lines []string
	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, line := range strings.Split(textnorm.Clean(text), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}
