package ports

import (
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// SimilarityScorer defines the interface for scoring two raw texts.
type SimilarityScorer interface {
	Score(text1, text2 string) float64
	Comprehensive(text1, text2 string) float64
	Compare(text1, text2 string) domain.Result
}
