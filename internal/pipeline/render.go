package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mkravets/billsplit/internal/model"
	"github.com/mkravets/billsplit/internal/split"
)

// Renderer writes receipt reports to disk and formats ledger summaries.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the receipt as indented JSON.
func (r *Renderer) RenderJSON(receipt *model.Receipt, path string) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable receipt report.
func (r *Renderer) RenderMarkdown(receipt *model.Receipt, path string) error {
	var b strings.Builder

	title := "Receipt"
	if receipt.Filename != "" {
		title = receipt.Filename
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Total: %.2f\n", receipt.TotalAmount)
	fmt.Fprintf(&b, "- Extraction confidence: %.2f\n", receipt.ExtractionConfidence)
	fmt.Fprintf(&b, "- Items: %d (%d special charges)\n\n", len(receipt.Items), len(receipt.SpecialCharges()))

	b.WriteString("| Item | Qty | Unit | Total | Confidence |\n")
	b.WriteString("|------|-----|------|-------|------------|\n")
	for _, item := range receipt.Items {
		qty, unit := "-", "-"
		if item.Quantity != nil {
			qty = fmt.Sprintf("%d", *item.Quantity)
		}
		if item.UnitPrice != nil {
			unit = fmt.Sprintf("%.2f", *item.UnitPrice)
		}
		name := item.Name
		if item.IsSpecialCharge {
			name += " *"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %.2f |\n", name, qty, unit, item.TotalPrice, item.ConfidenceScore)
	}
	b.WriteString("\n\\* special charge\n")

	if len(receipt.ProcessingErrors) > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, diag := range receipt.ProcessingErrors {
			fmt.Fprintf(&b, "- %s\n", diag)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\ngenerated by billsplit\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}

// RenderReport writes the JSON report and, when mdPath is set, the Markdown
// report.
func (r *Renderer) RenderReport(receipt *model.Receipt, jsonPath, mdPath string, verbose bool) error {
	if err := r.RenderJSON(receipt, jsonPath); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", jsonPath)
	}
	if mdPath != "" {
		if err := r.RenderMarkdown(receipt, mdPath); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", mdPath)
		}
	}
	return nil
}

// FormatLedger renders per-person totals sorted by name, each with the
// amount owed to two decimal places and the sorted item names charged.
func FormatLedger(people map[string]*model.Person) string {
	names := make([]string, 0, len(people))
	for name := range people {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		person := people[name]
		fmt.Fprintf(&b, "%s owes %.2f for: %s\n",
			person.Name, person.TotalOwed, strings.Join(person.ItemNames(), ", "))
	}
	return b.String()
}

// FormatReconciliation renders the outcome of a total-reconciliation check.
func FormatReconciliation(rec split.Reconciliation) string {
	if rec.Valid {
		return fmt.Sprintf("totals reconcile: receipt %.2f, ledgers %.2f\n",
			rec.ReceiptTotal, rec.PersonTotalsSum)
	}
	return fmt.Sprintf("totals do NOT reconcile: receipt %.2f, ledgers %.2f, difference %+.2f\n",
		rec.ReceiptTotal, rec.PersonTotalsSum, rec.Difference)
}
