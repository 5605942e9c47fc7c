package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mkravets/billsplit/internal/model"
	"github.com/mkravets/billsplit/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON   string
	outMD     string
	threshold float64
	noCache   bool
	cacheDir  string
	cacheTTL  time.Duration
	noFooter  bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <textfile>",
	Short: "Extract structured items from a receipt text file",
	Long: `Parse runs the extraction pipeline over raw receipt text:
- Normalize the text into cleaned lines
- Classify each line against the ordered item patterns
- Score each extraction's confidence
- Scan the whole text for tips, service and delivery charges
- Validate and canonicalize the merged item list

Example:
  billsplit parse receipt.txt
  billsplit parse receipt.txt --json items.json --md report.md
  billsplit parse receipt.txt --threshold 0.9 --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Output flags
	parseCmd.Flags().StringVar(&outJSON, "json", "receipt.json", "output JSON path")
	parseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	parseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Parser flags
	parseCmd.Flags().Float64Var(&threshold, "threshold", model.DefaultConfidenceThreshold, "high-confidence cutoff")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse-result cache")
	parseCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist parse results to this directory")
	parseCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "parse-result cache lifetime")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read receipt: %w", err)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Parser.ConfidenceThreshold = threshold
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir
	cfg.Cache.TTL = cacheTTL
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	p := pipeline.NewPipeline(cfg)

	receipt, err := p.ParseText(string(data))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	receipt.Filename = path

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d items (%d special charges)\n",
			len(receipt.Items), len(receipt.SpecialCharges()))
		fmt.Fprintf(os.Stderr, "✓ Average confidence: %.2f\n", receipt.ExtractionConfidence)
		for _, item := range receipt.Items {
			if !item.IsHighConfidence(cfg.Parser.ConfidenceThreshold) {
				fmt.Fprintf(os.Stderr, "⚠ Low confidence: %s (%.2f)\n", item.Name, item.ConfidenceScore)
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := renderer.RenderReport(receipt, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
