// Package tabular reads the legacy delimited expense table consumed by the
// standalone aggregator.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mkravets/billsplit/internal/model"
)

// requiredColumns are the headers every expense table must carry.
var requiredColumns = []string{"ItemName", "TotalPrice", "PeopleIncluded"}

// ReadExpenses reads expenses from a CSV file. A missing required column is
// a whole-file error; a non-numeric TotalPrice is a per-row error naming
// the offending item.
func ReadExpenses(path string) ([]*model.Expense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expense file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseExpenses(f)
}

// ParseExpenses reads expenses from CSV data.
func ParseExpenses(r io.Reader) ([]*model.Expense, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("expense file is missing required headers: %s",
				strings.Join(requiredColumns, ", "))
		}
	}

	var expenses []*model.Expense
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		name := record[columns["ItemName"]]
		rawPrice := record[columns["TotalPrice"]]
		totalPrice, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid total price: %s for item %s", rawPrice, name)
		}

		// PeopleIncluded is a whitespace-separated name list in one field.
		people := strings.Fields(record[columns["PeopleIncluded"]])

		expense, err := model.NewExpense(name, totalPrice, people)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", name, err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}
