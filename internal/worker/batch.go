package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkravets/billsplit/internal/model"
)

// Parser defines the interface for parsing receipt text
type Parser interface {
	ParseText(text string) (*model.Receipt, error)
}

// ParseJob represents one receipt file to run through the pipeline
type ParseJob struct {
	Path     string
	Parser   Parser
	Throttle *Throttle
}

// Execute reads the receipt file and parses it
func (j *ParseJob) Execute(ctx context.Context) Result {
	if j.Throttle != nil {
		if err := j.Throttle.Wait(ctx); err != nil {
			return &ParseResult{Path: j.Path, Error: err}
		}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ParseResult{Path: j.Path, Error: fmt.Errorf("read receipt: %w", err)}
	}

	receipt, err := j.Parser.ParseText(string(data))
	if err != nil {
		return &ParseResult{Path: j.Path, Error: err}
	}
	receipt.Filename = filepath.Base(j.Path)

	return &ParseResult{Path: j.Path, Receipt: receipt}
}

// ParseResult represents the result of a parse job
type ParseResult struct {
	Path    string
	Receipt *model.Receipt
	Error   error
}

// GetError returns the error from the parse result
func (r *ParseResult) GetError() error {
	return r.Error
}

// BatchProcessor parses multiple receipt files concurrently
type BatchProcessor struct {
	parser      Parser
	concurrency int
	throttle    *Throttle
}

// NewBatchProcessor creates a new batch processor. Job dispatch is paced by
// the ingest throttle so a large directory does not saturate IO.
func NewBatchProcessor(parser Parser, concurrency int, filesPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
		throttle:    NewThrottle(filesPerSecond, burst),
	}
}

// ProcessFiles parses the given receipt files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ParseResult {
	if len(paths) == 0 {
		return []*ParseResult{}
	}

	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &ParseJob{
			Path:     path,
			Parser:   b.parser,
			Throttle: b.throttle,
		}
	}

	results := NewPool(b.concurrency).Run(ctx, jobs)

	parseResults := make([]*ParseResult, len(results))
	for i, result := range results {
		parseResults[i] = result.(*ParseResult)
	}
	return parseResults
}

// ProcessDir parses every .txt receipt in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ParseResult, error) {
	paths, err := ListReceiptFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ListReceiptFiles returns the .txt files in a directory, sorted by name
func ListReceiptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
