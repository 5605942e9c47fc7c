package cli

import (
	"fmt"
	"os"

	"github.com/mkravets/billsplit/internal/model"
	"github.com/mkravets/billsplit/internal/pipeline"
	"github.com/mkravets/billsplit/internal/split"
	"github.com/mkravets/billsplit/internal/tabular"
	"github.com/spf13/cobra"
)

var declaredTotal float64

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <csvfile>",
	Short: "Split a table of expenses into per-person ledgers",
	Long: `Split reads a delimited expense table with the required columns
ItemName, TotalPrice and PeopleIncluded (a whitespace-separated name
list in one field) and prints how much each person owes.

Example:
  billsplit split expenses.csv
  billsplit split expenses.csv --total 42.50`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().Float64Var(&declaredTotal, "total", 0, "declared receipt total to reconcile against (default: sum of items)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	expenses, err := tabular.ReadExpenses(args[0])
	if err != nil {
		return err
	}

	splittables := make([]model.Splittable, len(expenses))
	var itemSum float64
	for i, expense := range expenses {
		splittables[i] = expense
		itemSum += expense.TotalPrice
	}

	people := split.Allocate(splittables)

	fmt.Print(pipeline.FormatLedger(people))

	total := declaredTotal
	if total == 0 {
		total = itemSum
	}
	rec := split.Reconcile(total, people)
	fmt.Print(pipeline.FormatReconciliation(rec))

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d expenses, %d people\n", len(expenses), len(people))
	}

	return nil
}
