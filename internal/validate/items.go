package validate

import (
	"regexp"
	"strings"

	"github.com/mkravets/billsplit/internal/model"
)

var (
	innerSpaceRe    = regexp.MustCompile(`\s+`)
	ordinalPrefixRe = regexp.MustCompile(`^\d+[.)\-]\s*`)
)

// Items drops malformed extractions and canonicalizes the names of the
// survivors. Items with a blank name or a non-positive price are removed
// silently; this is item-level recovery, not an error.
func Items(items []*model.ExtractedItem) []*model.ExtractedItem {
	var valid []*model.ExtractedItem
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		if item.TotalPrice <= 0 {
			continue
		}
		item.Name = CleanName(item.Name)
		valid = append(valid, item)
	}
	return valid
}

// CleanName canonicalizes an item name: trims, collapses internal
// whitespace, strips a single leading ordinal or bullet prefix like "1.",
// "2)" or "3-", and title-cases the words.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = innerSpaceRe.ReplaceAllString(name, " ")
	name = ordinalPrefixRe.ReplaceAllString(name, "")
	return TitleCase(name)
}

// TitleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
