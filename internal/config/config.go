// Package config loads engine calibration, segmentation, logging and output
// settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/baditaflorin/go_text_similarity/internal/core/comprehensive"
)

// Thresholds contains the branch thresholds of the scorer.
type Thresholds struct {
	ShortTextMinTokens int     `toml:"short_text_min_tokens"`
	HighSimilarity     float64 `toml:"high_similarity"`
	StructuralFloor    float64 `toml:"structural_floor"`
	Suspicion          float64 `toml:"suspicion"`
}

// Weights contains the blending weights.
type Weights struct {
	CorrectionCosine float64 `toml:"correction_cosine"`
	CorrectionEdit   float64 `toml:"correction_edit"`
	Cosine           float64 `toml:"cosine"`
	Edit             float64 `toml:"edit"`
	Length           float64 `toml:"length"`
}

// Vectorizer contains TF-IDF term extraction settings.
type Vectorizer struct {
	NGramMin    int     `toml:"ngram_min"`
	NGramMax    int     `toml:"ngram_max"`
	MinDF       int     `toml:"min_df"`
	MaxDF       float64 `toml:"max_df"`
	MaxFeatures int     `toml:"max_features"`
}

// Segmenter selects and configures word segmentation.
type Segmenter struct {
	Kind      string   `toml:"kind"` // "gse" or "whitespace"
	DictFiles []string `toml:"dict_files"`
	HMM       bool     `toml:"hmm"`
	Stopwords []string `toml:"stopwords"` // replaces the built-in list when set
}

// Logging contains configuration for log output.
type Logging struct {
	File string `toml:"file"`
	JSON bool   `toml:"json"`
}

// Output contains result formatting settings.
type Output struct {
	Format    string `toml:"format"`
	Precision int    `toml:"precision"`
}

// Config is the full file configuration.
type Config struct {
	Precision  int        `toml:"precision"`
	NGramSize  int        `toml:"ngram_size"`
	Thresholds Thresholds `toml:"thresholds"`
	Weights    Weights    `toml:"weights"`
	Vectorizer Vectorizer `toml:"vectorizer"`
	Segmenter  Segmenter  `toml:"segmenter"`
	Logging    Logging    `toml:"logging"`
	Output     Output     `toml:"output"`
}

// Default returns the configuration matching comprehensive.DefaultConfig.
func Default() Config {
	d := comprehensive.DefaultConfig()
	return Config{
		Precision: d.Precision,
		NGramSize: d.NGramSize,
		Thresholds: Thresholds{
			ShortTextMinTokens: d.ShortTextMinTokens,
			HighSimilarity:     d.HighSimilarity,
			StructuralFloor:    d.StructuralFloor,
			Suspicion:          d.SuspicionThreshold,
		},
		Weights: Weights{
			CorrectionCosine: d.CorrectionCosineWeight,
			CorrectionEdit:   d.CorrectionEditWeight,
			Cosine:           d.CosineWeight,
			Edit:             d.EditWeight,
			Length:           d.LengthWeight,
		},
		Vectorizer: Vectorizer{
			NGramMin:    d.Vectorizer.NGramMin,
			NGramMax:    d.Vectorizer.NGramMax,
			MinDF:       d.Vectorizer.MinDF,
			MaxDF:       d.Vectorizer.MaxDF,
			MaxFeatures: d.Vectorizer.MaxFeatures,
		},
		Segmenter: Segmenter{
			Kind: "gse",
			HMM:  true,
		},
		Output: Output{
			Format:    "decimal",
			Precision: 2,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Segmenter.Kind = strings.ToLower(strings.TrimSpace(c.Segmenter.Kind))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
}

// Validate checks the file-level settings and the resulting scorer config.
func (c Config) Validate() error {
	switch c.Segmenter.Kind {
	case "gse", "whitespace":
	default:
		return fmt.Errorf("invalid segmenter kind %q: must be 'gse' or 'whitespace'", c.Segmenter.Kind)
	}
	switch c.Output.Format {
	case "decimal", "percent":
	default:
		return fmt.Errorf("invalid output format %q: must be 'decimal' or 'percent'", c.Output.Format)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		return errors.New("output precision must be between 0 and 10")
	}
	return c.Scorer().Validate()
}

// Scorer converts the file configuration into a comprehensive.Config.
func (c Config) Scorer() comprehensive.Config {
	sc := comprehensive.DefaultConfig()
	sc.Precision = c.Precision
	sc.NGramSize = c.NGramSize
	sc.ShortTextMinTokens = c.Thresholds.ShortTextMinTokens
	sc.HighSimilarity = c.Thresholds.HighSimilarity
	sc.StructuralFloor = c.Thresholds.StructuralFloor
	sc.SuspicionThreshold = c.Thresholds.Suspicion
	sc.CorrectionCosineWeight = c.Weights.CorrectionCosine
	sc.CorrectionEditWeight = c.Weights.CorrectionEdit
	sc.CosineWeight = c.Weights.Cosine
	sc.EditWeight = c.Weights.Edit
	sc.LengthWeight = c.Weights.Length
	sc.Vectorizer.NGramMin = c.Vectorizer.NGramMin
	sc.Vectorizer.NGramMax = c.Vectorizer.NGramMax
	sc.Vectorizer.MinDF = c.Vectorizer.MinDF
	sc.Vectorizer.MaxDF = c.Vectorizer.MaxDF
	sc.Vectorizer.MaxFeatures = c.Vectorizer.MaxFeatures
	return sc
}
