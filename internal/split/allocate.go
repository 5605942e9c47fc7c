// Package split turns participant-assigned cost lines into per-person
// ledgers and checks that the ledger totals reconcile with the receipt
// total.
package split

import (
	"math"

	"github.com/mkravets/billsplit/internal/model"
)

// Tolerance is the allowed absolute difference when comparing totals.
const Tolerance = 0.01

// Allocate computes how much each participant owes across the given cost
// lines. Each line's price is split evenly among its participants; lines
// with nobody assigned contribute nothing and appear in no ledger. A fresh
// ledger map is allocated per call.
func Allocate(expenses []model.Splittable) map[string]*model.Person {
	people := make(map[string]*model.Person)

	for _, expense := range expenses {
		perPerson := expense.PricePerPerson()
		for _, name := range expense.Participants() {
			person, ok := people[name]
			if !ok {
				person = model.NewPerson(name)
				people[name] = person
			}
			person.AddExpense(expense.Label(), perPerson)
		}
	}

	return people
}

// AllocateReceipt allocates a receipt's items across its assignments.
func AllocateReceipt(r *model.Receipt) map[string]*model.Person {
	expenses := make([]model.Splittable, len(r.Items))
	for i, item := range r.Items {
		expenses[i] = item
	}
	return Allocate(expenses)
}

// Reconciliation reports whether the sum of all ledger totals matches the
// declared receipt total. Unassigned items are the only legitimate source
// of mismatch: when every item has at least one assignee, the sums agree
// up to floating-point rounding.
type Reconciliation struct {
	ReceiptTotal    float64 `json:"receipt_total"`
	PersonTotalsSum float64 `json:"person_totals_sum"`
	Valid           bool    `json:"is_valid"`
	Difference      float64 `json:"difference"`
}

// Reconcile compares the declared total against the sum of the given
// ledgers. A mismatch is reported, never returned as an error.
func Reconcile(receiptTotal float64, people map[string]*model.Person) Reconciliation {
	var sum float64
	for _, person := range people {
		sum += person.TotalOwed
	}

	return Reconciliation{
		ReceiptTotal:    receiptTotal,
		PersonTotalsSum: sum,
		Valid:           math.Abs(receiptTotal-sum) <= Tolerance,
		Difference:      receiptTotal - sum,
	}
}

// ReconcileReceipt allocates the receipt and reconciles the result against
// its declared total.
func ReconcileReceipt(r *model.Receipt) Reconciliation {
	return Reconcile(r.TotalAmount, AllocateReceipt(r))
}
