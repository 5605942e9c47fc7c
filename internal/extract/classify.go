package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedLine holds the fields recovered from one receipt line while it is
// being processed. Absent optional fields stay nil.
type ParsedLine struct {
	Text            string
	ItemName        string
	Quantity        *int
	UnitPrice       *float64
	TotalPrice      *float64
	ConfidenceScore float64
}

// itemPatterns is the ordered candidate list, most specific first. The
// first pattern that matches a line wins and classification stops there.
var itemPatterns = []*regexp.Regexp{
	// quantity x name, unit price and total price ("2 x coffee 3.50 7.00")
	regexp.MustCompile(`(?i)(?P<quantity>\d+)\s*x\s+(?P<name>[a-z0-9\s&\-'.]+?)\s+(?P<unit_price>\d+\.\d{2})\s+(?P<price>\d+\.\d{2})`),

	// quantity, name and total price ("2 coffee 7.00")
	regexp.MustCompile(`(?i)(?P<quantity>\d+)\s+(?P<name>[a-z0-9\s&\-'.]+?)\s+(?P<price>\d+\.\d{2})`),

	// name and total price ("coffee 3.50")
	regexp.MustCompile(`(?i)(?P<name>[a-z0-9\s&\-'.]+?)\s+(?P<price>\d+\.\d{2})`),
}

// Classifier matches receipt lines against a fixed ordered pattern list.
// The pattern set is compiled once; instances are safe for concurrent use.
type Classifier struct {
	patterns []*regexp.Regexp
}

// NewClassifier creates a new line classifier.
func NewClassifier() *Classifier {
	return &Classifier{patterns: itemPatterns}
}

// Classify runs every line through the pattern list. Lines matching no
// pattern are dropped; this is not an error.
func (c *Classifier) Classify(lines []string) []ParsedLine {
	var parsed []ParsedLine
	for _, line := range lines {
		if pl, ok := c.classifyLine(line); ok {
			parsed = append(parsed, pl)
		}
	}
	return parsed
}

// classifyLine tries the patterns in order and captures the fields of the
// first match. Numeric parse failures are field-local: a bad quantity does
// not invalidate a good price.
func (c *Classifier) classifyLine(line string) (ParsedLine, bool) {
	pl := ParsedLine{Text: line}
	for _, pattern := range c.patterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		for gi, group := range pattern.SubexpNames() {
			if gi == 0 || gi >= len(match) || match[gi] == "" {
				continue
			}
			switch group {
			case "name":
				pl.ItemName = strings.TrimSpace(match[gi])
			case "quantity":
				if qty, err := strconv.Atoi(match[gi]); err == nil {
					pl.Quantity = &qty
				}
			case "unit_price":
				if unit, err := strconv.ParseFloat(match[gi], 64); err == nil {
					pl.UnitPrice = &unit
				}
			case "price":
				if price, err := strconv.ParseFloat(match[gi], 64); err == nil {
					pl.TotalPrice = &price
				}
			}
		}
		return pl, true
	}
	return pl, false
}
