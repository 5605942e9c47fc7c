package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mkravets/billsplit/internal/model"
)

// stubParser records the texts it was given and fails on demand.
type stubParser struct {
	mu     sync.Mutex
	texts  []string
	failOn string
}

func (s *stubParser) ParseText(text string) (*model.Receipt, error) {
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()

	if s.failOn != "" && text == s.failOn {
		return nil, errors.New("parse failed")
	}
	item, err := model.NewExtractedItem("Coffee", 3.50, 0.9)
	if err != nil {
		return nil, err
	}
	return model.NewReceipt([]*model.ExtractedItem{item}), nil
}

func writeReceiptFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestParseJobExecute(t *testing.T) {
	dir := t.TempDir()
	path := writeReceiptFile(t, dir, "lunch.txt", "2 coffee 7.00")

	job := &ParseJob{Path: path, Parser: &stubParser{}}
	result := job.Execute(context.Background())

	pr := result.(*ParseResult)
	if pr.Error != nil {
		t.Fatalf("Expected no error, got %v", pr.Error)
	}
	if pr.Receipt == nil {
		t.Fatal("Expected a receipt")
	}
	if pr.Receipt.Filename != "lunch.txt" {
		t.Errorf("Filename = %q, want lunch.txt", pr.Receipt.Filename)
	}
}

func TestParseJobExecuteMissingFile(t *testing.T) {
	job := &ParseJob{Path: filepath.Join(t.TempDir(), "missing.txt"), Parser: &stubParser{}}
	result := job.Execute(context.Background())

	pr := result.(*ParseResult)
	if pr.Error == nil {
		t.Fatal("Expected error for missing file")
	}
	if pr.Receipt != nil {
		t.Error("Expected no receipt on read failure")
	}
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeReceiptFile(t, dir, "a.txt", "receipt a"),
		writeReceiptFile(t, dir, "b.txt", "receipt b"),
		writeReceiptFile(t, dir, "c.txt", "receipt c"),
	}

	parser := &stubParser{failOn: "receipt b"}
	processor := NewBatchProcessor(parser, 2, 0, 0)

	results := processor.ProcessFiles(context.Background(), paths)
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			if filepath.Base(result.Path) != "b.txt" {
				t.Errorf("Unexpected failure for %s: %v", result.Path, result.Error)
			}
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}

	parser.mu.Lock()
	defer parser.mu.Unlock()
	if len(parser.texts) != 3 {
		t.Errorf("Expected 3 parse calls, got %d", len(parser.texts))
	}
}

func TestProcessFilesEmpty(t *testing.T) {
	processor := NewBatchProcessor(&stubParser{}, 2, 0, 0)
	results := processor.ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeReceiptFile(t, dir, "one.txt", "receipt one")
	writeReceiptFile(t, dir, "two.TXT", "receipt two")
	writeReceiptFile(t, dir, "notes.md", "not a receipt")

	processor := NewBatchProcessor(&stubParser{}, 2, 0, 0)
	results, err := processor.ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
}

func TestListReceiptFiles(t *testing.T) {
	dir := t.TempDir()
	writeReceiptFile(t, dir, "b.txt", "b")
	writeReceiptFile(t, dir, "a.txt", "a")
	writeReceiptFile(t, dir, "skip.csv", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	paths, err := ListReceiptFiles(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if len(paths) != len(want) {
		t.Fatalf("Paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	if _, err := ListReceiptFiles(filepath.Join(dir, "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestThrottleDisabled(t *testing.T) {
	throttle := NewThrottle(0, 0)
	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("Disabled throttle should never block: %v", err)
	}
	if !throttle.Allow() {
		t.Error("Disabled throttle should always allow")
	}
}

func TestThrottleCancelledContext(t *testing.T) {
	throttle := NewThrottle(0.001, 1)
	if !throttle.Allow() {
		t.Fatal("First call should use the burst")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := throttle.Wait(ctx); err == nil {
		t.Error("Expected error waiting on a cancelled context")
	}
}
