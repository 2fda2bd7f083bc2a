package similarity_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_text_similarity/internal/config"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
)

var essay = []string{
	"Researchers collected thousands of student essays from several universities during spring semester.",
	"Every essay was scanned, converted into plain text files, then stored inside one shared archive.",
	"Reviewers compared vocabulary choices, sentence lengths, paragraph structure across those documents carefully.",
	"Suspicious pairs were flagged whenever overlapping phrases appeared far more often than chance predicts.",
	"Teachers later examined flagged submissions manually before contacting authors about possible misconduct.",
	"Most flagged cases turned out to contain properly cited quotations rather than copied material.",
}

func newWhitespace(t *testing.T, opts ...similarity.Option) *similarity.Similarity {
	t.Helper()
	sim, err := similarity.New(append([]similarity.Option{
		similarity.WithNopLogger(),
		similarity.WithWhitespaceSegmenter(),
	}, opts...)...)
	require.NoError(t, err)
	return sim
}

func TestScore(t *testing.T) {
	sim := newWhitespace(t)
	original := strings.Join(essay, " ")
	swapped := strings.Join([]string{essay[0], essay[1], essay[2], essay[3], essay[5], essay[4]}, " ")

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"Both empty", "", "", 1},
		{"One empty", original, "", 0},
		{"Identical", original, original, 1},
		{"Swapped sentences", original, swapped, 0.9079},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sim.Score(tc.a, tc.b))
			assert.Equal(t, tc.expected, sim.Score(tc.b, tc.a))
		})
	}
}

func TestCompare(t *testing.T) {
	sim := newWhitespace(t)
	original := strings.Join(essay, " ")
	swapped := strings.Join([]string{essay[0], essay[1], essay[2], essay[3], essay[5], essay[4]}, " ")

	result := sim.Compare(original, swapped)
	assert.Equal(t, "corrected", string(result.Path))
	assert.True(t, result.Passed)
	assert.Greater(t, result.Cosine, 0.95)
	assert.Less(t, result.Edit, 0.8)
	assert.Equal(t, sim.Score(original, swapped), result.Score)
}

func TestSubScores(t *testing.T) {
	sim := newWhitespace(t)
	a := "the quick brown fox jumps over the lazy dog"
	b := "the quick brown fox jumped over the lazy cat"

	assert.Equal(t, 0.7199, sim.Comprehensive(a, b))
	assert.Equal(t, 0.4475, sim.Cosine(a, b))
	assert.Equal(t, 1.0, sim.Edit(a, a))
	assert.Equal(t, 0.5, sim.Jaccard("alpha beta gamma", "alpha beta"))
	assert.Equal(t, []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}, sim.Tokenize(a))
}

func TestOptions(t *testing.T) {
	t.Run("Precision", func(t *testing.T) {
		sim := newWhitespace(t, similarity.WithPrecision(2))
		assert.Equal(t, 0.72, sim.Comprehensive(
			"the quick brown fox jumps over the lazy dog",
			"the quick brown fox jumped over the lazy cat",
		))
	})

	t.Run("Stopwords", func(t *testing.T) {
		sim := newWhitespace(t, similarity.WithStopwords([]string{"quick"}))
		assert.Equal(t, []string{"the", "fox"}, sim.Tokenize("the quick fox"))
	})

	t.Run("Suspicion threshold", func(t *testing.T) {
		sim := newWhitespace(t, similarity.WithSuspicionThreshold(0.4))
		assert.True(t, sim.Compare("alpha beta gamma", "alpha beta").Passed)
	})

	t.Run("Short text minimum", func(t *testing.T) {
		sim := newWhitespace(t, similarity.WithShortTextMinTokens(1))
		assert.Equal(t, "cosine", string(sim.Compare("alpha beta", "alpha beta").Path))
	})

	t.Run("Invalid weights", func(t *testing.T) {
		_, err := similarity.New(similarity.WithNopLogger(), similarity.WithWhitespaceSegmenter(),
			similarity.WithCorrectionWeights(0.5, 0.6))
		assert.Error(t, err)

		_, err = similarity.New(similarity.WithNopLogger(), similarity.WithWhitespaceSegmenter(),
			similarity.WithComprehensiveWeights(0.5, 0.5, 0.5))
		assert.Error(t, err)
	})

	t.Run("Invalid vectorizer", func(t *testing.T) {
		_, err := similarity.New(similarity.WithNopLogger(), similarity.WithWhitespaceSegmenter(),
			similarity.WithMaxDF(0))
		assert.Error(t, err)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Segmenter.Kind = "whitespace"
	cfg.Precision = 2

	sim, err := similarity.New(append(similarity.OptionsFromConfig(&cfg), similarity.WithNopLogger())...)
	require.NoError(t, err)
	assert.Equal(t, 0.72, sim.Comprehensive(
		"the quick brown fox jumps over the lazy dog",
		"the quick brown fox jumped over the lazy cat",
	))
}

func TestWarmUp(t *testing.T) {
	sim := newWhitespace(t, similarity.WithWarmUpConfig(similarity.WarmupConfig{
		Concurrency:    2,
		Iterations:     3,
		SampleTextSize: 100,
	}))
	sim.WarmUp(context.Background(), similarity.DefaultWarmupConfig())
	assert.Equal(t, 1.0, sim.Score("alpha beta gamma", "alpha beta gamma"))
}

func TestChineseWithDictionarySegmenter(t *testing.T) {
	sim, err := similarity.New(similarity.WithNopLogger())
	if err != nil {
		t.Skipf("segmentation dictionary unavailable: %v", err)
	}

	score := sim.Score("这是一个测试文本", "这是另一个测试文本")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)

	assert.Equal(t, 1.0, sim.Score("论文查重系统通过比较两篇文档的词汇来估计相似程度。", "论文查重系统通过比较两篇文档的词汇来估计相似程度。"))
}
