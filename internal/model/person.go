package model

import "sort"

// Person is one ledger entry produced by an allocation run: a running total
// owed and the set of item names that contributed to it. Ledgers are created
// lazily during allocation and never persist beyond one run.
type Person struct {
	Name      string
	TotalOwed float64
	Items     map[string]struct{}
}

// NewPerson creates an empty ledger for the named participant.
func NewPerson(name string) *Person {
	return &Person{
		Name:  name,
		Items: make(map[string]struct{}),
	}
}

// AddExpense charges this person the given share for the named item.
func (p *Person) AddExpense(itemName string, amount float64) {
	p.TotalOwed += amount
	p.Items[itemName] = struct{}{}
}

// ItemNames returns the names of the items this person is charged for,
// sorted alphabetically.
func (p *Person) ItemNames() []string {
	names := make([]string, 0, len(p.Items))
	for name := range p.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
