// Package comprehensive combines the lexical, structural and set-overlap
// scorers into the final duplication score.
package comprehensive

import (
	"errors"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/length"
	"github.com/baditaflorin/go_text_similarity/internal/core/lexical"
	"github.com/baditaflorin/go_text_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_text_similarity/internal/core/structural"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// Scorer is the comprehensive scorer. It keeps no state between calls and is
// safe for concurrent use.
type Scorer struct {
	config     Config
	tokenizer  ports.Tokenizer
	lexical    *lexical.Scorer
	structural *structural.Scorer
	overlap    *overlap.Scorer
	logger     ports.Logger
	observer   ports.Observer
}

// NewScorer creates a comprehensive scorer. A nil observer disables metrics.
func NewScorer(config Config, tokenizer ports.Tokenizer, logger ports.Logger, observer ports.Observer) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if observer == nil {
		observer = nopObserver{}
	}

	lex, err := lexical.NewScorer(config.Vectorizer, logger)
	if err != nil {
		return nil, err
	}
	ovl, err := overlap.NewScorer(config.NGramSize, tokenizer, logger)
	if err != nil {
		return nil, err
	}

	return &Scorer{
		config:     config,
		tokenizer:  tokenizer,
		lexical:    lex,
		structural: structural.NewScorer(logger),
		overlap:    ovl,
		logger:     logger,
		observer:   observer,
	}, nil
}

// Config returns the scorer configuration.
func (s *Scorer) Config() Config {
	return s.config
}

// Score returns the duplication score of text1 and text2.
func (s *Scorer) Score(text1, text2 string) float64 {
	return s.Compare(text1, text2).Score
}

// Compare runs Score and reports the branch taken and the sub-scores seen.
func (s *Scorer) Compare(text1, text2 string) domain.Result {
	start := time.Now()
	result := s.evaluate(text1, text2)
	result.Name = "similarity"
	result.Threshold = s.config.SuspicionThreshold
	result.Passed = result.Score >= s.config.SuspicionThreshold
	result.Details["path"] = string(result.Path)

	s.observer.ObserveScore("score", string(result.Path), result.Score, time.Since(start))
	s.logger.Debug("Computed similarity",
		"score", result.Score,
		"path", result.Path,
		"passed", result.Passed,
	)
	return result
}

func (s *Scorer) evaluate(text1, text2 string) domain.Result {
	result := domain.Result{Details: make(map[string]interface{})}

	if score, ok := domain.EmptyScore(len(text1), len(text2)); ok {
		result.Path = domain.PathEmpty
		result.Score = score
		return result
	}

	tok1 := s.tokenizer.Normalize(text1)
	tok2 := s.tokenizer.Normalize(text2)
	result.Tokens1 = len(tok1)
	result.Tokens2 = len(tok2)

	if len(tok1) < s.config.ShortTextMinTokens || len(tok2) < s.config.ShortTextMinTokens {
		j := s.overlap.Jaccard(text1, text2)
		result.Path = domain.PathShortText
		result.Jaccard = j
		result.Score = s.round(j)
		return result
	}

	c, fellBack := s.cosine(text1, text2, tok1, tok2)
	if fellBack {
		result.Path = domain.PathFallback
		result.Jaccard = c
		result.Score = s.round(c)
		return result
	}
	result.Path = domain.PathCosine
	result.Cosine = c

	if c > s.config.HighSimilarity {
		e := s.structural.Similarity(text1, text2)
		result.Edit = e
		if e < s.config.StructuralFloor {
			corrected := s.config.CorrectionCosineWeight*c + s.config.CorrectionEditWeight*e
			s.logger.Debug("Applied high-similarity correction",
				"cosine", c,
				"edit", e,
				"corrected", corrected,
			)
			c = corrected
			result.Path = domain.PathCorrected
		}
	}

	result.Score = s.round(c)
	return result
}

// Comprehensive returns the fixed-weight blend of cosine, edit and length-ratio
// similarity. Unlike Score it applies no correction step.
func (s *Scorer) Comprehensive(text1, text2 string) float64 {
	start := time.Now()
	if score, ok := domain.EmptyScore(len(text1), len(text2)); ok {
		s.observer.ObserveScore("comprehensive", string(domain.PathEmpty), score, time.Since(start))
		return score
	}

	tok1 := s.tokenizer.Normalize(text1)
	tok2 := s.tokenizer.Normalize(text2)
	c, _ := s.cosine(text1, text2, tok1, tok2)
	e := s.structural.Similarity(text1, text2)
	lr := length.Ratio(text1, text2)

	blended := s.config.CosineWeight*c + s.config.EditWeight*e + s.config.LengthWeight*lr
	score := s.round(blended)

	s.observer.ObserveScore("comprehensive", string(domain.PathBlended), score, time.Since(start))
	s.logger.Debug("Computed comprehensive similarity",
		"cosine", c,
		"edit", e,
		"length_ratio", lr,
		"score", score,
	)
	return score
}

// Cosine returns the TF-IDF cosine score of the normalized texts, falling back
// to n-gram Jaccard when the vector space cannot be built.
func (s *Scorer) Cosine(text1, text2 string) float64 {
	c, _ := s.cosine(text1, text2, s.tokenizer.Normalize(text1), s.tokenizer.Normalize(text2))
	return s.round(c)
}

// Edit returns the normalized edit-distance similarity of the raw texts.
func (s *Scorer) Edit(text1, text2 string) float64 {
	return s.round(s.structural.Similarity(text1, text2))
}

// Jaccard returns the n-gram Jaccard similarity of the raw texts.
func (s *Scorer) Jaccard(text1, text2 string) float64 {
	return s.round(s.overlap.Jaccard(text1, text2))
}

func (s *Scorer) cosine(text1, text2 string, tok1, tok2 []string) (score float64, fellBack bool) {
	c, err := s.lexical.Cosine(tok1, tok2)
	if err == nil {
		return c, false
	}

	reason := "vectorizer_error"
	if errors.Is(err, lexical.ErrEmptyVocabulary) {
		reason = "empty_vocabulary"
	}
	s.logger.Warn("Vector construction failed, using ngram jaccard",
		"error", err,
		"tokens1", len(tok1),
		"tokens2", len(tok2),
	)
	s.observer.ObserveFallback(reason)
	return s.overlap.Jaccard(text1, text2), true
}

func (s *Scorer) round(v float64) float64 {
	return domain.Round(domain.Clamp(v), s.config.Precision)
}

type nopObserver struct{}

func (nopObserver) ObserveScore(string, string, float64, time.Duration) {}

func (nopObserver) ObserveFallback(string) {}
