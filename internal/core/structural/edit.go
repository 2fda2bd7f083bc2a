// Package structural measures character-level similarity with normalized
// Levenshtein distance over raw, untokenized text.
package structural

import (
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/pool"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// Scorer computes edit-distance similarity. Buffers are pooled, so a Scorer is
// safe for concurrent use.
type Scorer struct {
	logger   ports.Logger
	runePool *pool.RuneBufferPool
	rowPool  *pool.RowPool
}

// NewScorer creates a new structural scorer.
func NewScorer(logger ports.Logger) *Scorer {
	return &Scorer{
		logger:   logger,
		runePool: pool.NewRuneBufferPool(1024),
		rowPool:  pool.NewRowPool(1024),
	}
}

// Similarity returns 1 - distance/max(len1,len2) on rune lengths.
func (s *Scorer) Similarity(text1, text2 string) float64 {
	buf1 := s.runePool.Get()
	defer s.runePool.Put(buf1)
	buf2 := s.runePool.Get()
	defer s.runePool.Put(buf2)

	r1 := pool.AppendRunes(buf1, text1)
	r2 := pool.AppendRunes(buf2, text2)
	if score, ok := domain.EmptyScore(len(r1), len(r2)); ok {
		return score
	}

	dist := s.distance(r1, r2)
	longest := len(r1)
	if len(r2) > longest {
		longest = len(r2)
	}
	score := domain.Clamp(1 - float64(dist)/float64(longest))

	s.logger.Debug("Computed edit similarity",
		"distance", dist,
		"length1", len(r1),
		"length2", len(r2),
		"score", score,
	)
	return score
}

// Distance returns the Levenshtein distance between a and b in runes.
func (s *Scorer) Distance(a, b string) int {
	buf1 := s.runePool.Get()
	defer s.runePool.Put(buf1)
	buf2 := s.runePool.Get()
	defer s.runePool.Put(buf2)
	return s.distance(pool.AppendRunes(buf1, a), pool.AppendRunes(buf2, b))
}

// distance runs the insert/delete/substitute recurrence over a single row.
// The shorter sequence indexes the row.
func (s *Scorer) distance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	rowPtr := s.rowPool.Get(len(b) + 1)
	defer s.rowPool.Put(rowPtr)
	row := *rowPtr
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			above := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := diag + cost
			if above+1 < best {
				best = above + 1
			}
			if row[j-1]+1 < best {
				best = row[j-1] + 1
			}
			row[j] = best
			diag = above
		}
	}
	return row[len(b)]
}
