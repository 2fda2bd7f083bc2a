package lexical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
)

func newTestScorer(t *testing.T, config VectorizerConfig) *Scorer {
	t.Helper()
	s, err := NewScorer(config, logger.NewNopLogger())
	require.NoError(t, err)
	return s
}

func TestCosine(t *testing.T) {
	s := newTestScorer(t, DefaultVectorizerConfig())
	idf := math.Log(1.5) + 1

	tests := []struct {
		name     string
		tok1     []string
		tok2     []string
		expected float64
	}{
		{"Both empty", nil, nil, 1},
		{"First empty", nil, []string{"alpha"}, 0},
		{"Second empty", []string{"alpha"}, []string{}, 0},
		{"Identical", []string{"alpha", "beta", "gamma"}, []string{"alpha", "beta", "gamma"}, 1},
		{"Case folded", []string{"Alpha", "BETA"}, []string{"alpha", "beta"}, 1},
		{"Disjoint", []string{"alpha", "beta"}, []string{"gamma", "delta"}, 0},
		{"Shared first word", []string{"alpha", "beta"}, []string{"alpha", "gamma"}, 1 / (1 + 2*idf*idf)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Cosine(tc.tok1, tc.tok2)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestCosineSymmetric(t *testing.T) {
	s := newTestScorer(t, DefaultVectorizerConfig())
	a := []string{"论文", "查重", "系统", "比较", "文档"}
	b := []string{"系统", "比较", "论文", "段落", "结构", "文档"}

	ab, err := s.Cosine(a, b)
	require.NoError(t, err)
	ba, err := s.Cosine(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.Greater(t, ab, 0.0)
	assert.Less(t, ab, 1.0)
}

func TestCosineEmptyVocabulary(t *testing.T) {
	config := DefaultVectorizerConfig()
	config.MaxDF = 0.5
	s := newTestScorer(t, config)

	_, err := s.Cosine([]string{"alpha", "beta"}, []string{"alpha", "beta"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestFitTransform(t *testing.T) {
	t.Run("Vocabulary is sorted and includes bigrams", func(t *testing.T) {
		v := NewVectorizer(DefaultVectorizerConfig())
		vectors, err := v.FitTransform([][]string{{"alpha", "beta"}, {"alpha", "gamma"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "alpha beta", "alpha gamma", "beta", "gamma"}, v.Vocabulary())
		require.Len(t, vectors, 2)

		idf := math.Log(1.5) + 1
		assert.InDeltaSlice(t, []float64{1, idf, 0, idf, 0}, vectors[0], 1e-9)
		assert.InDeltaSlice(t, []float64{1, 0, idf, 0, idf}, vectors[1], 1e-9)
	})

	t.Run("Raw counts are weighted", func(t *testing.T) {
		v := NewVectorizer(DefaultVectorizerConfig())
		vectors, err := v.FitTransform([][]string{{"alpha", "alpha"}, {"alpha"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "alpha alpha"}, v.Vocabulary())
		assert.InDelta(t, 2.0, vectors[0][0], 1e-9)
		assert.InDelta(t, 1.0, vectors[1][0], 1e-9)
	})

	t.Run("Max features keeps most frequent terms", func(t *testing.T) {
		config := DefaultVectorizerConfig()
		config.MaxFeatures = 2
		v := NewVectorizer(config)
		_, err := v.FitTransform([][]string{{"alpha", "alpha", "beta"}, {"alpha", "gamma"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "alpha alpha"}, v.Vocabulary())
	})

	t.Run("Unigrams only", func(t *testing.T) {
		config := DefaultVectorizerConfig()
		config.NGramMax = 1
		v := NewVectorizer(config)
		_, err := v.FitTransform([][]string{{"alpha", "beta"}, {"gamma"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, v.Vocabulary())
	})
}

func TestCosineVectors(t *testing.T) {
	assert.Equal(t, 0.0, CosineVectors([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, CosineVectors([]float64{1, 0}, []float64{0, 1}))
	assert.InDelta(t, 1.0, CosineVectors([]float64{2, 4}, []float64{1, 2}), 1e-12)
}

func TestVectorizerConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*VectorizerConfig)
	}{
		{"NGram min zero", func(c *VectorizerConfig) { c.NGramMin = 0 }},
		{"NGram max below min", func(c *VectorizerConfig) { c.NGramMin = 2; c.NGramMax = 1 }},
		{"MinDF zero", func(c *VectorizerConfig) { c.MinDF = 0 }},
		{"MaxDF zero", func(c *VectorizerConfig) { c.MaxDF = 0 }},
		{"MaxDF above one", func(c *VectorizerConfig) { c.MaxDF = 1.5 }},
		{"Negative max features", func(c *VectorizerConfig) { c.MaxFeatures = -1 }},
	}

	require.NoError(t, DefaultVectorizerConfig().Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultVectorizerConfig()
			tc.modify(&config)
			assert.Error(t, config.Validate())
			_, err := NewScorer(config, logger.NewNopLogger())
			assert.Error(t, err)
		})
	}
}
