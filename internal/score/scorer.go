package score

import (
	"regexp"

	"github.com/mkravets/billsplit/internal/extract"
)

// Plausible price bounds for a single receipt line.
const (
	minPlausiblePrice = 0.01
	maxPlausiblePrice = 1000.00
)

var alphaRunRe = regexp.MustCompile(`[a-zA-Z]{3,}`)

// Scorer computes extraction confidence for classified lines. It is
// stateless and safe for concurrent use.
type Scorer struct{}

// NewScorer creates a new confidence scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score calculates the confidence for one classified line from field
// completeness and plausibility:
//
//   - name present:                     +0.30
//   - total price present:              +0.30
//   - quantity present:                 +0.15
//   - unit price present:               +0.15
//   - name has a run of 3+ letters:     +0.10, else -0.10
//   - price within [0.01, 1000.00]:     +0.10, else -0.10
//
// The result is clamped to [0, 1]. Downstream threshold checks depend on
// this exact table.
func (s *Scorer) Score(line extract.ParsedLine) float64 {
	total := 0.0

	if line.ItemName != "" {
		total += 0.3
	}
	if line.TotalPrice != nil {
		total += 0.3
	}
	if line.Quantity != nil {
		total += 0.15
	}
	if line.UnitPrice != nil {
		total += 0.15
	}

	if line.ItemName != "" && alphaRunRe.MatchString(line.ItemName) {
		total += 0.1
	} else {
		total -= 0.1
	}

	if line.TotalPrice != nil && *line.TotalPrice >= minPlausiblePrice && *line.TotalPrice <= maxPlausiblePrice {
		total += 0.1
	} else {
		total -= 0.1
	}

	return clamp(total)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
