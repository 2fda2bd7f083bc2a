package domain

import "math"

// Path names the branch of the comprehensive scorer that produced a score.
type Path string

const (
	// PathEmpty is taken when at least one raw input is empty.
	PathEmpty Path = "empty"
	// PathShortText is taken when a token stream is too short for TF-IDF.
	PathShortText Path = "short_text"
	// PathCosine is the plain TF-IDF cosine score.
	PathCosine Path = "cosine"
	// PathCorrected is the cosine score blended with the edit score.
	PathCorrected Path = "corrected"
	// PathFallback is taken when the vector space could not be built.
	PathFallback Path = "fallback"
	// PathBlended is the fixed-weight comprehensive similarity.
	PathBlended Path = "blended"
)

// Result holds the outcome of a similarity computation.
type Result struct {
	Name      string
	Score     float64
	Passed    bool
	Path      Path
	Cosine    float64
	Edit      float64
	Jaccard   float64
	Tokens1   int
	Tokens2   int
	Threshold float64
	Details   map[string]interface{}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}

// Clamp limits v to [0,1].
func Clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EmptyScore applies the shared edge-case policy: 1 when both inputs are empty,
// 0 when exactly one is. ok is false when neither is empty.
func EmptyScore(len1, len2 int) (score float64, ok bool) {
	switch {
	case len1 == 0 && len2 == 0:
		return 1.0, true
	case len1 == 0 || len2 == 0:
		return 0.0, true
	default:
		return 0, false
	}
}
