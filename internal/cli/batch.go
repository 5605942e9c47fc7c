package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mkravets/billsplit/internal/model"
	"github.com/mkravets/billsplit/internal/pipeline"
	"github.com/mkravets/billsplit/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	ingestRate   float64
	ingestBurst  int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Parse every receipt text file in a directory in parallel",
	Long: `Batch runs the extraction pipeline over every .txt file in a
directory:
- Receipts are processed in parallel with a configurable worker count
- Job dispatch is throttled to avoid IO saturation
- One JSON and one Markdown report is written per receipt

Example:
  billsplit batch ./receipts
  billsplit batch ./receipts --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./billsplit-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&ingestRate, "files-per-second", 50, "throttle for job dispatch (0 disables)")
	batchCmd.Flags().IntVar(&ingestBurst, "burst", 10, "throttle burst size")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse-result cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Ingest.FilesPerSecond = ingestRate
	cfg.Ingest.BurstSize = ingestBurst
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency, cfg.Ingest.FilesPerSecond, cfg.Ingest.BurstSize)

	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d receipts with %d workers...\n\n", len(results), concurrency)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := strings.TrimSuffix(filepath.Base(result.Path), filepath.Ext(result.Path))
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Receipt, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Receipt, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d items, confidence %.2f)\n",
			result.Receipt.Filename, len(result.Receipt.Items), result.Receipt.ExtractionConfidence)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d  Output: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}
