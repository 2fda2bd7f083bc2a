// Package lexical scores vocabulary overlap with TF-IDF weighted cosine
// similarity over unigrams and bigrams. The vector space is rebuilt for every
// pair of documents, so no vocabulary leaks between calls.
package lexical

import (
	"math"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// Scorer computes TF-IDF cosine similarity between token streams.
type Scorer struct {
	config VectorizerConfig
	logger ports.Logger
}

// NewScorer creates a new lexical scorer.
func NewScorer(config VectorizerConfig, logger ports.Logger) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{config: config, logger: logger}, nil
}

// Cosine returns the cosine similarity of the TF-IDF vectors of tok1 and tok2.
// It returns ErrEmptyVocabulary when no term survives pruning; callers are
// expected to fall back to set overlap in that case.
func (s *Scorer) Cosine(tok1, tok2 []string) (float64, error) {
	if score, ok := domain.EmptyScore(len(tok1), len(tok2)); ok {
		return score, nil
	}

	vectorizer := NewVectorizer(s.config)
	vectors, err := vectorizer.FitTransform([][]string{tok1, tok2})
	if err != nil {
		return 0, err
	}

	score := CosineVectors(vectors[0], vectors[1])
	s.logger.Debug("Computed cosine similarity",
		"vocabulary", len(vectorizer.Vocabulary()),
		"score", score,
	)
	return score, nil
}

// CosineVectors returns dot(a,b)/(|a||b|), or 0 when either norm is zero.
func CosineVectors(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return domain.Clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
