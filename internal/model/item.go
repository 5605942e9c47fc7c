package model

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultConfidenceThreshold is the cutoff above which an extraction is
// considered reliable enough to present without review.
const DefaultConfidenceThreshold = 0.8

// ExtractedItem represents one priced line recovered from receipt text,
// together with the extraction confidence and the people assigned to it.
type ExtractedItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	TotalPrice      float64  `json:"total_price"`
	Quantity        *int     `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	ConfidenceScore float64  `json:"confidence_score"`
	IsSpecialCharge bool     `json:"is_special_charge"`
	AssignedPeople  []string `json:"assigned_people"`
}

// NewExtractedItem validates the fields and derives the missing price
// component: unit price from total/quantity, or total from quantity*unit.
func NewExtractedItem(name string, totalPrice float64, confidence float64) (*ExtractedItem, error) {
	item := &ExtractedItem{
		ID:              uuid.NewString(),
		Name:            name,
		TotalPrice:      totalPrice,
		ConfidenceScore: confidence,
	}
	if err := item.Derive(); err != nil {
		return nil, err
	}
	return item, nil
}

// Derive enforces the field invariants and fills the derived prices. Call
// it again after setting Quantity or UnitPrice directly.
func (i *ExtractedItem) Derive() error {
	if i.TotalPrice < 0 {
		return fmt.Errorf("total price cannot be negative")
	}
	if i.ConfidenceScore < 0 || i.ConfidenceScore > 1 {
		return fmt.Errorf("confidence score must be between 0 and 1")
	}
	if i.Quantity != nil && *i.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if i.UnitPrice != nil && *i.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}
	if i.Quantity != nil && i.UnitPrice == nil {
		unit := i.TotalPrice / float64(*i.Quantity)
		i.UnitPrice = &unit
	}
	if i.Quantity != nil && i.UnitPrice != nil && i.TotalPrice == 0 {
		i.TotalPrice = float64(*i.Quantity) * *i.UnitPrice
	}
	return nil
}

// PricePerPerson returns this item's cost split evenly across the assigned
// people, or 0 when nobody is assigned.
func (i *ExtractedItem) PricePerPerson() float64 {
	if len(i.AssignedPeople) == 0 {
		return 0
	}
	return i.TotalPrice / float64(len(i.AssignedPeople))
}

// Label returns the item name.
func (i *ExtractedItem) Label() string {
	return i.Name
}

// Participants returns the people assigned to this item.
func (i *ExtractedItem) Participants() []string {
	return i.AssignedPeople
}

// AddPerson assigns a person to this item. Duplicates are suppressed;
// insertion order is preserved.
func (i *ExtractedItem) AddPerson(name string) {
	for _, p := range i.AssignedPeople {
		if p == name {
			return
		}
	}
	i.AssignedPeople = append(i.AssignedPeople, name)
}

// RemovePerson removes a person from this item's assignment.
func (i *ExtractedItem) RemovePerson(name string) {
	for idx, p := range i.AssignedPeople {
		if p == name {
			i.AssignedPeople = append(i.AssignedPeople[:idx], i.AssignedPeople[idx+1:]...)
			return
		}
	}
}

// IsHighConfidence reports whether the extraction confidence meets the
// threshold.
func (i *ExtractedItem) IsHighConfidence(threshold float64) bool {
	return i.ConfidenceScore >= threshold
}
