package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mkravets/billsplit/internal/model"
)

// chargeConfidence is the fixed score for keyword-detected charges.
const chargeConfidence = 0.9

// chargePattern ties a keyword-family regex to the charge name it produces.
type chargePattern struct {
	re   *regexp.Regexp
	name string
}

// chargePatterns are scanned in order over the whole normalized text, not
// per line, because charge phrasing spans lines differently than items do.
var chargePatterns = []chargePattern{
	{regexp.MustCompile(`(?i)(?:tip|gratuity)\s*(?::|$|\s)\s*(?P<amount>\d+\.\d{2})`), "Tip"},
	{regexp.MustCompile(`(?i)(?:service\s*(?:charge|fee))\s*(?::|$|\s)\s*(?P<amount>\d+\.\d{2})`), "Service Charge"},
	{regexp.MustCompile(`(?i)(?:delivery\s*(?:charge|fee))\s*(?::|$|\s)\s*(?P<amount>\d+\.\d{2})`), "Delivery Fee"},
}

// ChargeExtractor finds tip, service and delivery charges by whole-text
// keyword scanning. The pattern set is fixed at construction; instances are
// safe for concurrent use.
type ChargeExtractor struct {
	patterns []chargePattern
}

// NewChargeExtractor creates a new special-charge extractor.
func NewChargeExtractor() *ChargeExtractor {
	return &ChargeExtractor{patterns: chargePatterns}
}

// Extract returns one special-charge item per non-overlapping keyword match
// anywhere in the text. Recurring phrases yield recurring charges; no
// deduplication is applied.
func (e *ChargeExtractor) Extract(text string) []*model.ExtractedItem {
	var charges []*model.ExtractedItem
	for _, p := range e.patterns {
		for _, match := range p.re.FindAllStringSubmatch(text, -1) {
			amount, err := strconv.ParseFloat(match[len(match)-1], 64)
			if err != nil {
				continue
			}
			item, err := model.NewExtractedItem(p.name, amount, chargeConfidence)
			if err != nil {
				continue
			}
			item.IsSpecialCharge = true
			charges = append(charges, item)
		}
	}
	return charges
}

// chargeKeywords backs ChargeName for text that matched outside the
// dedicated patterns.
var chargeKeywords = []struct {
	name     string
	keywords []string
}{
	{"Tip", []string{"tip", "gratuity"}},
	{"Service Charge", []string{"service fee", "service charge", "service"}},
	{"Delivery Fee", []string{"delivery fee", "delivery charge", "delivery"}},
}

// ChargeName classifies a piece of text into a charge category by keyword
// family, falling back to "Other Charge".
func ChargeName(text string) string {
	lower := strings.ToLower(text)
	for _, family := range chargeKeywords {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.name
			}
		}
	}
	return "Other Charge"
}
