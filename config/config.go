// Package config holds the tunable settings of the alignment pipeline and
// their YAML loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SystemThresholds are the acceptance gates applied to one source coding
// system. Translation quality varies per system, so the bars do too.
type SystemThresholds struct {
	// MinBackSimilarity rejects concepts whose round-trip translation lost
	// too much meaning. Overridden concepts bypass this gate.
	MinBackSimilarity float64 `yaml:"minBackSimilarity"`

	// MinAcceptScore is the final score a best candidate needs for its
	// mapping to be emitted.
	MinAcceptScore float64 `yaml:"minAcceptScore"`
}

// Config is the full pipeline configuration.
type Config struct {
	// DatabasePath is the BadgerDB directory.
	DatabasePath string `yaml:"databasePath"`

	// OverridesDir holds the per-system synonym override files.
	OverridesDir string `yaml:"overridesDir"`

	// MinTokenOverlap is the candidate prefilter's token overlap gate.
	MinTokenOverlap float64 `yaml:"minTokenOverlap"`

	// ReviewLow and ReviewHigh bound the score band routed to human review.
	ReviewLow  float64 `yaml:"reviewLow"`
	ReviewHigh float64 `yaml:"reviewHigh"`

	// MaxReviewCandidates caps the candidates listed per review item.
	MaxReviewCandidates int `yaml:"maxReviewCandidates"`

	// BatchSize is the chunk size for batch translation and embedding calls.
	BatchSize int `yaml:"batchSize"`

	// TopK is the embedding shortlist size.
	TopK int `yaml:"topK"`

	// Fast tightens the prefilter for quicker, slightly lossier runs.
	Fast bool `yaml:"fast"`

	// Workers sets the concept worker pool size. Zero means half the CPUs.
	Workers int `yaml:"workers"`

	// Systems maps source system names to their acceptance gates. The
	// "default" entry applies to systems without their own.
	Systems map[string]SystemThresholds `yaml:"systems"`
}

// Default returns the standard configuration. The per-system bars reflect
// observed translation quality: Ayurveda terms translate less reliably than
// Siddha and Unani, so its gates sit lower to avoid starving the review
// queue.
func Default() *Config {
	return &Config{
		DatabasePath:        "termalign.db",
		OverridesDir:        "overrides",
		MinTokenOverlap:     0.30,
		ReviewLow:           50,
		ReviewHigh:          85,
		MaxReviewCandidates: 5,
		BatchSize:           32,
		TopK:                50,
		Workers:             0,
		Systems: map[string]SystemThresholds{
			"NAMASTE-Ayurveda": {MinBackSimilarity: 60, MinAcceptScore: 65},
			"NAMASTE-Siddha":   {MinBackSimilarity: 70, MinAcceptScore: 75},
			"NAMASTE-Unani":    {MinBackSimilarity: 70, MinAcceptScore: 75},
			"default":          {MinBackSimilarity: 70, MinAcceptScore: 75},
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MinTokenOverlap < 0 || c.MinTokenOverlap > 1 {
		return fmt.Errorf("minTokenOverlap must be in [0, 1], got %v", c.MinTokenOverlap)
	}
	if c.ReviewLow > c.ReviewHigh {
		return fmt.Errorf("reviewLow %v exceeds reviewHigh %v", c.ReviewLow, c.ReviewHigh)
	}
	if c.MaxReviewCandidates < 1 {
		return fmt.Errorf("maxReviewCandidates must be positive, got %d", c.MaxReviewCandidates)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batchSize must be positive, got %d", c.BatchSize)
	}
	if c.TopK < 1 {
		return fmt.Errorf("topK must be positive, got %d", c.TopK)
	}
	if _, ok := c.Systems["default"]; !ok {
		return fmt.Errorf("systems must include a default entry")
	}
	for name, th := range c.Systems {
		if th.MinBackSimilarity < 0 || th.MinBackSimilarity > 100 {
			return fmt.Errorf("system %s: minBackSimilarity must be in [0, 100]", name)
		}
		if th.MinAcceptScore < 0 || th.MinAcceptScore > 100 {
			return fmt.Errorf("system %s: minAcceptScore must be in [0, 100]", name)
		}
	}
	return nil
}

// ThresholdsFor returns the acceptance gates of a source system, falling
// back to the default entry.
func (c *Config) ThresholdsFor(system string) SystemThresholds {
	if th, ok := c.Systems[system]; ok {
		return th
	}
	return c.Systems["default"]
}
