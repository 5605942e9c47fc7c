package extract

import "testing"

func TestClassifier_QuantityNameTotal(t *testing.T) {
	classifier := NewClassifier()

	parsed := classifier.Classify([]string{"2 coffee 7.00"})
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 classified line, got %d", len(parsed))
	}

	line := parsed[0]
	if line.ItemName != "coffee" {
		t.Errorf("ItemName = %q, want %q", line.ItemName, "coffee")
	}
	if line.Quantity == nil || *line.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", line.Quantity)
	}
	if line.TotalPrice == nil || *line.TotalPrice != 7.00 {
		t.Errorf("TotalPrice = %v, want 7.00", line.TotalPrice)
	}
	if line.UnitPrice != nil {
		t.Errorf("UnitPrice = %v, want absent", *line.UnitPrice)
	}
}

func TestClassifier_PatternPriority(t *testing.T) {
	// The "qty x name unit total" shape must classify via the most specific
	// pattern even though the looser patterns also match substrings.
	classifier := NewClassifier()

	parsed := classifier.Classify([]string{"2 x coffee 3.50 7.00"})
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 classified line, got %d", len(parsed))
	}

	line := parsed[0]
	if line.ItemName != "coffee" {
		t.Errorf("ItemName = %q, want %q", line.ItemName, "coffee")
	}
	if line.Quantity == nil || *line.Quantity != 2 {
		t.Errorf("Quantity = %v, want 2", line.Quantity)
	}
	if line.UnitPrice == nil || *line.UnitPrice != 3.50 {
		t.Errorf("UnitPrice = %v, want 3.50", line.UnitPrice)
	}
	if line.TotalPrice == nil || *line.TotalPrice != 7.00 {
		t.Errorf("TotalPrice = %v, want 7.00", line.TotalPrice)
	}
}

func TestClassifier_NameTotalFallback(t *testing.T) {
	classifier := NewClassifier()

	parsed := classifier.Classify([]string{"coffee 3.50"})
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 classified line, got %d", len(parsed))
	}

	line := parsed[0]
	if line.ItemName != "coffee" {
		t.Errorf("ItemName = %q, want %q", line.ItemName, "coffee")
	}
	if line.Quantity != nil {
		t.Errorf("Quantity = %v, want absent", *line.Quantity)
	}
	if line.TotalPrice == nil || *line.TotalPrice != 3.50 {
		t.Errorf("TotalPrice = %v, want 3.50", line.TotalPrice)
	}
}

func TestClassifier_UnmatchedLinesDropped(t *testing.T) {
	classifier := NewClassifier()

	parsed := classifier.Classify([]string{
		"corner coffee shop",
		"thank you for visiting",
		"coffee 3.50",
	})
	if len(parsed) != 1 {
		t.Fatalf("Expected 1 classified line, got %d", len(parsed))
	}
	if parsed[0].ItemName != "coffee" {
		t.Errorf("ItemName = %q, want %q", parsed[0].ItemName, "coffee")
	}
}

func TestClassifier_PreservesLineOrder(t *testing.T) {
	classifier := NewClassifier()

	parsed := classifier.Classify([]string{
		"pizza 20.00",
		"salad 10.00",
		"soda 2.50",
	})
	if len(parsed) != 3 {
		t.Fatalf("Expected 3 classified lines, got %d", len(parsed))
	}

	want := []string{"pizza", "salad", "soda"}
	for i, name := range want {
		if parsed[i].ItemName != name {
			t.Errorf("Line %d = %q, want %q", i, parsed[i].ItemName, name)
		}
	}
}
