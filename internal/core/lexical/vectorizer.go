package lexical

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when document-frequency pruning leaves no terms.
var ErrEmptyVocabulary = errors.New("no terms remain after pruning")

// VectorizerConfig holds the term-extraction parameters.
type VectorizerConfig struct {
	NGramMin    int
	NGramMax    int
	MinDF       int
	MaxDF       float64
	MaxFeatures int
	Lowercase   bool
}

// DefaultVectorizerConfig returns unigram+bigram extraction with a 1000-term cap.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		NGramMin:    1,
		NGramMax:    2,
		MinDF:       1,
		MaxDF:       0.8,
		MaxFeatures: 1000,
		Lowercase:   true,
	}
}

// Validate checks if the configuration is valid.
func (c VectorizerConfig) Validate() error {
	if c.NGramMin < 1 || c.NGramMax < c.NGramMin {
		return errors.New("ngram range must satisfy 1 <= min <= max")
	}
	if c.MinDF < 1 {
		return errors.New("minDF must be at least 1")
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		return errors.New("maxDF must be in (0, 1]")
	}
	if c.MaxFeatures < 0 {
		return errors.New("maxFeatures must not be negative")
	}
	return nil
}

// Vectorizer builds TF-IDF vectors for a small corpus. A Vectorizer is fitted
// once and discarded; it is not safe to refit concurrently.
type Vectorizer struct {
	config     VectorizerConfig
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(config VectorizerConfig) *Vectorizer {
	return &Vectorizer{config: config}
}

// Vocabulary returns the fitted terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	return v.terms
}

// FitTransform fits the vocabulary on docs and returns one weighted vector per
// document, indexed by vocabulary column.
func (v *Vectorizer) FitTransform(docs [][]string) ([][]float64, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	total := make(map[string]int)

	for i, doc := range docs {
		counts[i] = v.termCounts(doc)
		for term, n := range counts[i] {
			df[term]++
			total[term] += n
		}
	}

	maxDocs := int(math.Ceil(v.config.MaxDF * float64(len(docs))))
	kept := make([]string, 0, len(df))
	for term, d := range df {
		if d < v.config.MinDF || d > maxDocs {
			continue
		}
		kept = append(kept, term)
	}

	if v.config.MaxFeatures > 0 && len(kept) > v.config.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.config.MaxFeatures]
	}
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Strings(kept)

	v.terms = kept
	v.vocabulary = make(map[string]int, len(kept))
	v.idf = make([]float64, len(kept))
	n := float64(len(docs))
	for col, term := range kept {
		v.vocabulary[term] = col
		v.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for i := range docs {
		vec := make([]float64, len(kept))
		for term, c := range counts[i] {
			if col, ok := v.vocabulary[term]; ok {
				vec[col] = float64(c) * v.idf[col]
			}
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// termCounts extracts n-grams from the space-joined document the same way a
// regular-expression analyzer would re-split it.
func (v *Vectorizer) termCounts(doc []string) map[string]int {
	joined := strings.Join(doc, " ")
	if v.config.Lowercase {
		joined = strings.ToLower(joined)
	}
	words := strings.Fields(joined)

	counts := make(map[string]int)
	for n := v.config.NGramMin; n <= v.config.NGramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			counts[strings.Join(words[i:i+n], " ")]++
		}
	}
	return counts
}
