package model

import (
	"fmt"
	"math"
)

// Receipt aggregates everything known about one processed receipt: the
// extracted items in discovery order, the participant list, the declared
// total, the average extraction confidence, and any diagnostics collected
// while parsing.
type Receipt struct {
	Items                []*ExtractedItem `json:"items"`
	Participants         []string         `json:"participants"`
	TotalAmount          float64          `json:"total_amount"`
	ExtractionConfidence float64          `json:"extraction_confidence"`
	Filename             string           `json:"filename,omitempty"`
	ProcessingErrors     []string         `json:"processing_errors,omitempty"`
}

// NewReceipt wraps the given items into an aggregate, deriving the total
// amount and the mean extraction confidence from the items.
func NewReceipt(items []*ExtractedItem) *Receipt {
	r := &Receipt{Items: items}
	r.recalculate()
	return r
}

// Validate checks the aggregate-level invariants.
func (r *Receipt) Validate() error {
	if r.TotalAmount < 0 {
		return fmt.Errorf("total amount cannot be negative")
	}
	if r.ExtractionConfidence < 0 || r.ExtractionConfidence > 1 {
		return fmt.Errorf("extraction confidence must be between 0 and 1")
	}
	return nil
}

// CalculatedTotal sums the item totals.
func (r *Receipt) CalculatedTotal() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.TotalPrice
	}
	return total
}

// UnassignedItems returns the items with nobody assigned.
func (r *Receipt) UnassignedItems() []*ExtractedItem {
	var items []*ExtractedItem
	for _, item := range r.Items {
		if len(item.AssignedPeople) == 0 {
			items = append(items, item)
		}
	}
	return items
}

// SpecialCharges returns the tip/service/delivery items.
func (r *Receipt) SpecialCharges() []*ExtractedItem {
	var items []*ExtractedItem
	for _, item := range r.Items {
		if item.IsSpecialCharge {
			items = append(items, item)
		}
	}
	return items
}

// RegularItems returns the purchased goods, excluding special charges.
func (r *Receipt) RegularItems() []*ExtractedItem {
	var items []*ExtractedItem
	for _, item := range r.Items {
		if !item.IsSpecialCharge {
			items = append(items, item)
		}
	}
	return items
}

// AddItem appends an item and refreshes the derived totals.
func (r *Receipt) AddItem(item *ExtractedItem) {
	r.Items = append(r.Items, item)
	r.recalculate()
}

// RemoveItem removes the item with the given ID. It reports whether an item
// was found and removed.
func (r *Receipt) RemoveItem(itemID string) bool {
	for idx, item := range r.Items {
		if item.ID == itemID {
			r.Items = append(r.Items[:idx], r.Items[idx+1:]...)
			r.recalculate()
			return true
		}
	}
	return false
}

// ItemByID returns the item with the given ID, or nil.
func (r *Receipt) ItemByID(itemID string) *ExtractedItem {
	for _, item := range r.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// AddParticipant adds a participant, preserving insertion order and
// suppressing duplicates.
func (r *Receipt) AddParticipant(name string) {
	for _, p := range r.Participants {
		if p == name {
			return
		}
	}
	r.Participants = append(r.Participants, name)
}

// RemoveParticipant removes a participant and their assignments from every
// item.
func (r *Receipt) RemoveParticipant(name string) {
	for idx, p := range r.Participants {
		if p == name {
			r.Participants = append(r.Participants[:idx], r.Participants[idx+1:]...)
			for _, item := range r.Items {
				item.RemovePerson(name)
			}
			return
		}
	}
}

// PersonTotal returns the amount owed by one participant across all items.
func (r *Receipt) PersonTotal(name string) float64 {
	var total float64
	for _, item := range r.Items {
		for _, p := range item.AssignedPeople {
			if p == name {
				total += item.PricePerPerson()
				break
			}
		}
	}
	return total
}

// PersonItems returns the items assigned to one participant.
func (r *Receipt) PersonItems(name string) []*ExtractedItem {
	var items []*ExtractedItem
	for _, item := range r.Items {
		for _, p := range item.AssignedPeople {
			if p == name {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// TotalsMismatch reports whether the item sum differs from the declared
// total by more than the 0.01 tolerance.
func (r *Receipt) TotalsMismatch() bool {
	return math.Abs(r.CalculatedTotal()-r.TotalAmount) > 0.01
}

// ValidateAssignments checks the receipt is ready for allocation and
// returns the problems found.
func (r *Receipt) ValidateAssignments() []string {
	var errs []string
	if len(r.Participants) == 0 {
		errs = append(errs, "no participants defined")
	}
	if unassigned := r.UnassignedItems(); len(unassigned) > 0 {
		errs = append(errs, fmt.Sprintf("%d items have no people assigned", len(unassigned)))
	}
	if r.TotalsMismatch() {
		errs = append(errs, fmt.Sprintf("item total (%.2f) doesn't match receipt total (%.2f)",
			r.CalculatedTotal(), r.TotalAmount))
	}
	return errs
}

func (r *Receipt) recalculate() {
	if len(r.Items) == 0 {
		r.TotalAmount = 0
		r.ExtractionConfidence = 0
		return
	}
	r.TotalAmount = r.CalculatedTotal()
	var confidence float64
	for _, item := range r.Items {
		confidence += item.ConfidenceScore
	}
	r.ExtractionConfidence = confidence / float64(len(r.Items))
}
