package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	disallowedCharsRe = regexp.MustCompile(`[^\w\s.$:]`)
)

// NormalizeText cleans raw receipt text for pattern matching: lowercase,
// whitespace runs collapsed within each line, characters outside the word/
// whitespace/period/colon/currency class stripped, currency symbol removed,
// split into trimmed non-empty lines. Blank input is a fatal error.
func NormalizeText(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("the receipt text is empty or blank")
	}

	text = strings.ToLower(text)
	text = disallowedCharsRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "$", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = horizontalSpaceRe.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
