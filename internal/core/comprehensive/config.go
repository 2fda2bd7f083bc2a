package comprehensive

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_text_similarity/internal/core/lexical"
	"github.com/baditaflorin/go_text_similarity/internal/core/overlap"
)

// Calibration defaults. None of these were tuned on a labelled corpus; they are
// kept overridable so they can be revisited.
const (
	DefaultShortTextMinTokens     = 3
	DefaultHighSimilarity         = 0.95
	DefaultStructuralFloor        = 0.8
	DefaultCorrectionCosineWeight = 0.7
	DefaultCorrectionEditWeight   = 0.3
	DefaultCosineWeight           = 0.4
	DefaultEditWeight             = 0.5
	DefaultLengthWeight           = 0.1
	DefaultPrecision              = 4
	DefaultSuspicionThreshold     = 0.8
)

const weightTolerance = 1e-9

// Config holds the thresholds and weights of the comprehensive scorer.
type Config struct {
	// ShortTextMinTokens is the token count below which cosine is not trusted.
	ShortTextMinTokens int
	// HighSimilarity is the cosine score above which structure is checked.
	HighSimilarity float64
	// StructuralFloor is the edit score below which the cosine is corrected.
	StructuralFloor float64

	CorrectionCosineWeight float64
	CorrectionEditWeight   float64

	CosineWeight float64
	EditWeight   float64
	LengthWeight float64

	// Precision is the number of decimals kept in returned scores.
	Precision int
	// SuspicionThreshold marks a Compare result as Passed (suspected duplicate).
	SuspicionThreshold float64
	// NGramSize is the window used by the set-overlap scorer.
	NGramSize int

	Vectorizer lexical.VectorizerConfig
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ShortTextMinTokens:     DefaultShortTextMinTokens,
		HighSimilarity:         DefaultHighSimilarity,
		StructuralFloor:        DefaultStructuralFloor,
		CorrectionCosineWeight: DefaultCorrectionCosineWeight,
		CorrectionEditWeight:   DefaultCorrectionEditWeight,
		CosineWeight:           DefaultCosineWeight,
		EditWeight:             DefaultEditWeight,
		LengthWeight:           DefaultLengthWeight,
		Precision:              DefaultPrecision,
		SuspicionThreshold:     DefaultSuspicionThreshold,
		NGramSize:              overlap.DefaultN,
		Vectorizer:             lexical.DefaultVectorizerConfig(),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ShortTextMinTokens < 0 {
		return errors.New("shortTextMinTokens must not be negative")
	}
	if !unit(c.HighSimilarity) || !unit(c.StructuralFloor) || !unit(c.SuspicionThreshold) {
		return errors.New("thresholds must be between 0 and 1")
	}
	if !unit(c.CorrectionCosineWeight) || !unit(c.CorrectionEditWeight) {
		return errors.New("correction weights must be between 0 and 1")
	}
	if math.Abs(c.CorrectionCosineWeight+c.CorrectionEditWeight-1) > weightTolerance {
		return errors.New("correction weights must sum to 1")
	}
	if !unit(c.CosineWeight) || !unit(c.EditWeight) || !unit(c.LengthWeight) {
		return errors.New("comprehensive weights must be between 0 and 1")
	}
	if math.Abs(c.CosineWeight+c.EditWeight+c.LengthWeight-1) > weightTolerance {
		return errors.New("comprehensive weights must sum to 1")
	}
	if c.Precision < 0 || c.Precision > 10 {
		return errors.New("precision must be between 0 and 10")
	}
	if c.NGramSize < 1 {
		return errors.New("ngramSize must be at least 1")
	}
	return c.Vectorizer.Validate()
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
