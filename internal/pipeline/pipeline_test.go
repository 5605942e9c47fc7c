package pipeline

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/mkravets/billsplit/internal/model"
)

const sampleReceipt = `Corner Coffee Shop
2 Coffee $7.00
1 x Muffin $3.50 $3.50
Tip: $2.00
`

func newTestPipeline(cacheEnabled bool) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = cacheEnabled
	return NewPipeline(cfg)
}

func TestParseText_FullReceipt(t *testing.T) {
	p := newTestPipeline(false)

	receipt, err := p.ParseText(sampleReceipt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(receipt.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d: %+v", len(receipt.Items), receipt.Items)
	}

	// Line items in discovery order, then special charges.
	wantNames := []string{"Coffee", "Muffin", "Tip"}
	for i, name := range wantNames {
		if receipt.Items[i].Name != name {
			t.Errorf("Item %d = %q, want %q", i, receipt.Items[i].Name, name)
		}
	}

	coffee := receipt.Items[0]
	if coffee.Quantity == nil || *coffee.Quantity != 2 {
		t.Errorf("Coffee quantity = %v, want 2", coffee.Quantity)
	}
	if math.Abs(coffee.TotalPrice-7.00) > 0.01 {
		t.Errorf("Coffee total = %v, want 7.00", coffee.TotalPrice)
	}
	if coffee.UnitPrice == nil || math.Abs(*coffee.UnitPrice-3.50) > 0.01 {
		t.Errorf("Coffee unit price = %v, want 3.50", coffee.UnitPrice)
	}
	if !coffee.IsHighConfidence(model.DefaultConfidenceThreshold) {
		t.Errorf("Coffee confidence = %v, want >= 0.8", coffee.ConfidenceScore)
	}

	tip := receipt.Items[2]
	if !tip.IsSpecialCharge {
		t.Error("Expected Tip to be a special charge")
	}
	if math.Abs(tip.TotalPrice-2.00) > 0.01 {
		t.Errorf("Tip total = %v, want 2.00", tip.TotalPrice)
	}
	if tip.ConfidenceScore != 0.9 {
		t.Errorf("Tip confidence = %v, want 0.9", tip.ConfidenceScore)
	}

	if math.Abs(receipt.TotalAmount-12.50) > 0.01 {
		t.Errorf("TotalAmount = %v, want 12.50", receipt.TotalAmount)
	}
}

func TestParseText_EmptyInputFailsFast(t *testing.T) {
	p := newTestPipeline(false)

	_, err := p.ParseText("   \n  ")
	if err == nil {
		t.Fatal("Expected error for blank text")
	}
	if !strings.Contains(err.Error(), "empty or blank") {
		t.Errorf("Error = %v, want empty-or-blank message", err)
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		t.Error("Blank input is an input error, not an aggregated parse error")
	}
}

func TestParseText_NoExtractableLines(t *testing.T) {
	p := newTestPipeline(false)

	_, err := p.ParseText("thank you for visiting\nplease come again soon")
	if err == nil {
		t.Fatal("Expected aggregated parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *ParseError, got %T: %v", err, err)
	}

	found := false
	for _, diag := range parseErr.Diagnostics {
		if strings.Contains(diag, "no valid items found") {
			found = true
		}
	}
	if !found {
		t.Errorf("Diagnostics = %v, want zero-matches diagnostic", parseErr.Diagnostics)
	}
}

func TestParseText_ShortTextDiagnosticsNotFatal(t *testing.T) {
	// A single classifiable line still succeeds; the too-few-lines
	// diagnostic is recorded, not raised.
	p := newTestPipeline(false)

	receipt, err := p.ParseText("coffee 3.50")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(receipt.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(receipt.Items))
	}
	if len(receipt.ProcessingErrors) == 0 {
		t.Error("Expected diagnostics for a one-line receipt")
	}
}

func TestParseText_DuplicateChargesPreserved(t *testing.T) {
	p := newTestPipeline(false)

	receipt, err := p.ParseText("pizza 20.00\nsubtotal box tip: 2.00\ntotal box tip: 2.00")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	tips := 0
	for _, item := range receipt.Items {
		if item.IsSpecialCharge && item.Name == "Tip" {
			tips++
		}
	}
	if tips != 2 {
		t.Errorf("Expected 2 tip charges, got %d", tips)
	}
}

func TestParseText_CacheReturnsSameItems(t *testing.T) {
	p := newTestPipeline(true)

	first, err := p.ParseText(sampleReceipt)
	if err != nil {
		t.Fatalf("First parse: %v", err)
	}
	second, err := p.ParseText(sampleReceipt)
	if err != nil {
		t.Fatalf("Second parse: %v", err)
	}

	// A cache hit returns the stored items; a fresh parse would mint new
	// item IDs.
	if len(first.Items) != len(second.Items) {
		t.Fatalf("Item count changed: %d vs %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("Item %d ID changed: %s vs %s", i, first.Items[i].ID, second.Items[i].ID)
		}
	}
}
