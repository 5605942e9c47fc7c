package model

import "fmt"

// Splittable is the capability the allocator works against: anything with a
// name, a per-person price, and a participant list can be allocated.
// Both ExtractedItem and Expense satisfy it.
type Splittable interface {
	Label() string
	PricePerPerson() float64
	Participants() []string
}

// Expense is the flattened, legacy-compatible view of a cost line: the
// participant list is supplied directly instead of accumulated through
// assignment operations. It comes from the tabular reader.
type Expense struct {
	ItemName        string   `json:"item_name"`
	TotalPrice      float64  `json:"total_price"`
	PeopleIncluded  []string `json:"people_included"`
	Quantity        *int     `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	IsSpecialCharge bool     `json:"is_special_charge"`
}

// NewExpense validates the fields and derives the unit price when the
// quantity is known.
func NewExpense(name string, totalPrice float64, people []string) (*Expense, error) {
	e := &Expense{
		ItemName:       name,
		TotalPrice:     totalPrice,
		PeopleIncluded: people,
	}
	if err := e.normalize(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Expense) normalize() error {
	if e.TotalPrice < 0 {
		return fmt.Errorf("total price cannot be negative")
	}
	if e.ConfidenceScore != nil && (*e.ConfidenceScore < 0 || *e.ConfidenceScore > 1) {
		return fmt.Errorf("confidence score must be between 0 and 1")
	}
	if e.Quantity != nil && *e.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if e.UnitPrice != nil && *e.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}
	if e.Quantity != nil && e.UnitPrice == nil {
		unit := e.TotalPrice / float64(*e.Quantity)
		e.UnitPrice = &unit
	}
	return nil
}

// Label returns the expense name.
func (e *Expense) Label() string {
	return e.ItemName
}

// Participants returns the people included in this expense.
func (e *Expense) Participants() []string {
	return e.PeopleIncluded
}

// PricePerPerson returns the cost split evenly across the included people,
// or 0 when the list is empty.
func (e *Expense) PricePerPerson() float64 {
	if len(e.PeopleIncluded) == 0 {
		return 0
	}
	return e.TotalPrice / float64(len(e.PeopleIncluded))
}

// IsHighConfidence reports whether the extraction confidence meets the
// threshold. Manually entered expenses carry no score and are always
// considered high confidence.
func (e *Expense) IsHighConfidence(threshold float64) bool {
	if e.ConfidenceScore == nil {
		return true
	}
	return *e.ConfidenceScore >= threshold
}
