// Package overlap scores order-sensitive vocabulary overlap as the Jaccard
// similarity of word n-gram sets.
package overlap

import (
	"errors"
	"strings"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// DefaultN is the n-gram size used when none is configured.
const DefaultN = 2

// Scorer computes n-gram Jaccard similarity over segmented raw text.
type Scorer struct {
	n         int
	tokenizer ports.Tokenizer
	logger    ports.Logger
}

// NewScorer creates a new overlap scorer over n-token windows.
func NewScorer(n int, tokenizer ports.Tokenizer, logger ports.Logger) (*Scorer, error) {
	if n < 1 {
		return nil, errors.New("ngram size must be at least 1")
	}
	return &Scorer{n: n, tokenizer: tokenizer, logger: logger}, nil
}

// Jaccard segments both texts and returns |A∩B|/|A∪B| of their n-gram sets.
func (s *Scorer) Jaccard(text1, text2 string) float64 {
	set1 := NGrams(s.tokenizer.Segment(text1), s.n)
	set2 := NGrams(s.tokenizer.Segment(text2), s.n)
	score := SetJaccard(set1, set2)

	s.logger.Debug("Computed ngram jaccard",
		"n", s.n,
		"ngrams1", len(set1),
		"ngrams2", len(set2),
		"score", score,
	)
	return score
}

// NGrams returns the set of space-joined windows of n consecutive tokens.
// Streams shorter than n produce an empty set.
func NGrams(tokens []string, n int) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return set
}

// SetJaccard returns the Jaccard similarity of two sets.
func SetJaccard(set1, set2 map[string]struct{}) float64 {
	if score, ok := domain.EmptyScore(len(set1), len(set2)); ok {
		return score
	}

	small, large := set1, set2
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for gram := range small {
		if _, ok := large[gram]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	return float64(intersection) / float64(union)
}
