// Package pipeline sequences the extraction stages: normalize, classify,
// score, scan for charges, merge, validate.
package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkravets/billsplit/internal/cache"
	"github.com/mkravets/billsplit/internal/extract"
	"github.com/mkravets/billsplit/internal/model"
	"github.com/mkravets/billsplit/internal/score"
	"github.com/mkravets/billsplit/internal/validate"
)

// minCleanedLength is the shortest cleaned text accepted without a
// diagnostic. Anything shorter is unlikely to be a receipt.
const minCleanedLength = 10

// ParseError is returned when no items at all survive the pipeline. It
// aggregates every diagnostic collected along the way.
type ParseError struct {
	Diagnostics []string
}

func (e *ParseError) Error() string {
	msg := "no valid items could be extracted from the receipt"
	if len(e.Diagnostics) > 0 {
		msg += ": " + strings.Join(e.Diagnostics, "; ")
	}
	return msg
}

// Pipeline runs receipt text through the extraction stages. The component
// pattern sets are fixed at construction; a Pipeline is safe for concurrent
// use.
type Pipeline struct {
	classifier *extract.Classifier
	charges    *extract.ChargeExtractor
	scorer     *score.Scorer
	cache      cache.Cache
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	p := &Pipeline{
		classifier: extract.NewClassifier(),
		charges:    extract.NewChargeExtractor(),
		scorer:     score.NewScorer(),
		config:     cfg,
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewDefault(cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return p
}

// ParseText extracts the structured item list from raw receipt text. Data
// flows strictly forward through the stages; stage-local defects are
// collected as diagnostics and only a wholly empty result is fatal.
func (p *Pipeline) ParseText(text string) (*model.Receipt, error) {
	if items, ok := p.cachedItems(text); ok {
		slog.Debug("Parse cache hit", "items", len(items))
		return model.NewReceipt(items), nil
	}

	var diagnostics []string

	// 1. Normalize. Blank input fails fast.
	lines, err := extract.NormalizeText(text)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	cleaned := strings.Join(lines, "\n")
	if len(cleaned) < minCleanedLength {
		diagnostics = append(diagnostics, "receipt text too short after cleaning")
		slog.Warn("Receipt text too short after cleaning", "length", len(cleaned))
	}
	if len(lines) < 2 {
		diagnostics = append(diagnostics, "too few lines in receipt text")
		slog.Warn("Too few lines in receipt text", "lines", len(lines))
	}

	// 2. Classify lines and score each classified candidate.
	parsed := p.classifier.Classify(lines)
	for i := range parsed {
		parsed[i].ConfidenceScore = p.scorer.Score(parsed[i])
	}
	if len(parsed) == 0 {
		diagnostics = append(diagnostics, "no valid items found in receipt lines")
		slog.Warn("No valid items found in receipt lines")
	}

	// 3. Whole-text special-charge scan.
	charges := p.charges.Extract(cleaned)

	// 4. Merge: line items in discovery order, then charges in scan order.
	items := toItems(parsed, &diagnostics)
	items = append(items, charges...)

	// 5. Validate and canonicalize.
	items = validate.Items(items)

	if len(items) == 0 {
		return nil, &ParseError{Diagnostics: diagnostics}
	}

	slog.Info("Extracted items from receipt", "items", len(items), "diagnostics", len(diagnostics))

	p.storeItems(text, items)

	receipt := model.NewReceipt(items)
	receipt.ProcessingErrors = diagnostics
	return receipt, nil
}

// toItems converts the classified lines that carry both a name and a total
// price. Lines missing either field are dropped silently.
func toItems(parsed []extract.ParsedLine, diagnostics *[]string) []*model.ExtractedItem {
	var items []*model.ExtractedItem
	for _, line := range parsed {
		if line.ItemName == "" || line.TotalPrice == nil {
			continue
		}
		item, err := model.NewExtractedItem(validate.TitleCase(line.ItemName), *line.TotalPrice, line.ConfidenceScore)
		if err != nil {
			*diagnostics = append(*diagnostics, fmt.Sprintf("invalid item %q: %v", line.ItemName, err))
			continue
		}
		item.Quantity = line.Quantity
		item.UnitPrice = line.UnitPrice
		if err := item.Derive(); err != nil {
			*diagnostics = append(*diagnostics, fmt.Sprintf("invalid item %q: %v", line.ItemName, err))
			continue
		}
		items = append(items, item)
	}
	return items
}

func (p *Pipeline) cachedItems(text string) ([]*model.ExtractedItem, bool) {
	if p.cache == nil {
		return nil, false
	}
	data, ok := p.cache.Get(cache.Key(text))
	if !ok {
		return nil, false
	}
	var items []*model.ExtractedItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (p *Pipeline) storeItems(text string, items []*model.ExtractedItem) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := p.cache.Set(cache.Key(text), data, time.Duration(0)); err != nil {
		slog.Debug("Parse cache store failed", "error", err)
	}
}
