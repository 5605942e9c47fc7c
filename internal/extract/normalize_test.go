package extract

import (
	"strings"
	"testing"
)

func TestNormalizeText_BasicCleaning(t *testing.T) {
	lines, err := NormalizeText("Coffee   $3.50\nMuffin\t$2.25\n\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"coffee 3.50", "muffin 2.25"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("Line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestNormalizeText_StripsDisallowedCharacters(t *testing.T) {
	lines, err := NormalizeText("Coffee!!! (large) 3.50")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if strings.ContainsAny(lines[0], "!()") {
		t.Errorf("Expected punctuation stripped, got %q", lines[0])
	}
}

func TestNormalizeText_WindowsLineEndings(t *testing.T) {
	lines, err := NormalizeText("coffee 3.50\r\nmuffin 2.25\r\n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("Expected 2 lines, got %d: %v", len(lines), lines)
	}
}

func TestNormalizeText_EmptyInputFails(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		if _, err := NormalizeText(input); err == nil {
			t.Errorf("Expected error for input %q, got nil", input)
		}
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	first, err := NormalizeText("2 x Coffee  $3.50  $7.00\nTip: $2.00")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := NormalizeText(strings.Join(first, "\n"))
	if err != nil {
		t.Fatalf("Expected no error on re-normalize, got %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Line count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Line %d changed on re-normalize: %q vs %q", i, first[i], second[i])
		}
	}
}
