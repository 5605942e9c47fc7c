package model

import "time"

// Config holds the runtime configuration for the billsplit tool
type Config struct {
	Parser      ParserConfig      `yaml:"parser"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Output      OutputConfig      `yaml:"output"`
}

// ParserConfig controls the extraction pipeline
type ParserConfig struct {
	// ConfidenceThreshold is the cutoff for flagging low-confidence items
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// Tolerance is the allowed absolute difference when reconciling totals
	Tolerance float64 `yaml:"tolerance"`
}

// CacheConfig controls parse-result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// IngestConfig controls how fast batch jobs are dispatched
type IngestConfig struct {
	FilesPerSecond float64 `yaml:"files_per_second"`
	BurstSize      int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			ConfidenceThreshold: DefaultConfidenceThreshold,
			Tolerance:           0.01,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Ingest: IngestConfig{
			FilesPerSecond: 50,
			BurstSize:      10,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
