// Package similarity estimates how likely two documents are duplicates of
// each other. Scores are in [0,1] and rounded to four decimals by default.
//
// The main entry point, Score, trusts TF-IDF cosine similarity over unigrams
// and bigrams, falls back to word-bigram Jaccard similarity for short texts,
// and lowers near-perfect cosine scores whose raw character structure differs
// a lot (reordered text). Comprehensive offers a fixed-weight blend of cosine,
// edit-distance and length-ratio similarity instead.
package similarity

import (
	"context"
	"sync/atomic"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/segmenter"
	"github.com/baditaflorin/go_text_similarity/internal/core/comprehensive"
	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/baditaflorin/go_text_similarity/internal/core/tokenize"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/baditaflorin/go_text_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Result is the detailed outcome of Compare.
type Result = domain.Result

// WarmupConfig controls how much work WarmUp performs.
type WarmupConfig = warmup.WarmupConfig

// DefaultWarmupConfig returns the default warm-up configuration.
func DefaultWarmupConfig() WarmupConfig {
	return warmup.DefaultWarmupConfig()
}

// Similarity scores pairs of documents. It is safe for concurrent use.
type Similarity struct {
	scorer    *comprehensive.Scorer
	tokenizer *tokenize.Tokenizer
	logger    ports.Logger
	warmed    atomic.Bool
}

// Option defines a functional option for configuring Similarity.
type Option func(*similarityConfig)

type similarityConfig struct {
	Scorer       comprehensive.Config
	Logger       ports.Logger
	Observer     ports.Observer
	Segmenter    ports.Segmenter
	GseOptions   []segmenter.GseOption
	Stopwords    []string
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *similarityConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithNopLogger discards all log output.
func WithNopLogger() Option {
	return func(cfg *similarityConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithObserver sets the metrics observer.
func WithObserver(observer ports.Observer) Option {
	return func(cfg *similarityConfig) {
		cfg.Observer = observer
	}
}

// WithSegmenter sets a custom word segmenter.
func WithSegmenter(s ports.Segmenter) Option {
	return func(cfg *similarityConfig) {
		cfg.Segmenter = s
	}
}

// WithWhitespaceSegmenter splits words on whitespace instead of using the
// Chinese dictionary segmenter.
func WithWhitespaceSegmenter() Option {
	return func(cfg *similarityConfig) {
		cfg.Segmenter = segmenter.NewWhitespaceSegmenter()
	}
}

// WithGseOptions configures the default dictionary segmenter.
func WithGseOptions(opts ...segmenter.GseOption) Option {
	return func(cfg *similarityConfig) {
		cfg.GseOptions = append(cfg.GseOptions, opts...)
	}
}

// WithStopwords replaces the built-in stopword list.
func WithStopwords(words []string) Option {
	return func(cfg *similarityConfig) {
		cfg.Stopwords = words
	}
}

// WithScorerConfig replaces every calibration parameter at once.
func WithScorerConfig(sc comprehensive.Config) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer = sc
	}
}

// WithShortTextMinTokens sets the token count below which Jaccard is used.
func WithShortTextMinTokens(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.ShortTextMinTokens = n
	}
}

// WithHighSimilarity sets the cosine score above which structure is checked.
func WithHighSimilarity(th float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.HighSimilarity = th
	}
}

// WithStructuralFloor sets the edit score below which cosine is corrected.
func WithStructuralFloor(th float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.StructuralFloor = th
	}
}

// WithCorrectionWeights sets the cosine and edit weights of the correction.
func WithCorrectionWeights(cosine, edit float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.CorrectionCosineWeight = cosine
		cfg.Scorer.CorrectionEditWeight = edit
	}
}

// WithComprehensiveWeights sets the weights used by Comprehensive.
func WithComprehensiveWeights(cosine, edit, length float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.CosineWeight = cosine
		cfg.Scorer.EditWeight = edit
		cfg.Scorer.LengthWeight = length
	}
}

// WithPrecision sets the number of decimals kept in scores.
func WithPrecision(p int) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.Precision = p
	}
}

// WithSuspicionThreshold sets the score at which Compare reports Passed.
func WithSuspicionThreshold(th float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.SuspicionThreshold = th
	}
}

// WithNGramSize sets the window size of the Jaccard scorer.
func WithNGramSize(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.NGramSize = n
	}
}

// WithMaxFeatures caps the TF-IDF vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.Vectorizer.MaxFeatures = n
	}
}

// WithMaxDF sets the document-frequency ratio above which terms are dropped.
func WithMaxDF(ratio float64) Option {
	return func(cfg *similarityConfig) {
		cfg.Scorer.Vectorizer.MaxDF = ratio
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *similarityConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config WarmupConfig) Option {
	return func(cfg *similarityConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Similarity instance. Without WithSegmenter the embedded
// Chinese dictionary is loaded, which takes a moment.
func New(opts ...Option) (*Similarity, error) {
	config := &similarityConfig{
		Scorer:       comprehensive.DefaultConfig(),
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	// Set up logger if not provided
	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	// Set up segmenter if not provided
	if config.Segmenter == nil {
		seg, err := segmenter.NewGseSegmenter(config.GseOptions...)
		if err != nil {
			return nil, err
		}
		config.Segmenter = seg
	}

	var tokOpts []tokenize.Option
	if config.Stopwords != nil {
		tokOpts = append(tokOpts, tokenize.WithStopwords(config.Stopwords))
	}
	tokenizer := tokenize.New(config.Segmenter, tokOpts...)

	scorer, err := comprehensive.NewScorer(config.Scorer, tokenizer, config.Logger, config.Observer)
	if err != nil {
		return nil, err
	}

	s := &Similarity{
		scorer:    scorer,
		tokenizer: tokenizer,
		logger:    config.Logger,
	}

	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}
	return s, nil
}

// Score returns the duplication score of text1 and text2.
func (s *Similarity) Score(text1, text2 string) float64 {
	return s.scorer.Score(text1, text2)
}

// Comprehensive returns the fixed-weight blend of cosine, edit and length
// similarity.
func (s *Similarity) Comprehensive(text1, text2 string) float64 {
	return s.scorer.Comprehensive(text1, text2)
}

// Compare returns Score together with the branch taken and its sub-scores.
func (s *Similarity) Compare(text1, text2 string) Result {
	return s.scorer.Compare(text1, text2)
}

// Cosine returns the TF-IDF cosine similarity of the two texts.
func (s *Similarity) Cosine(text1, text2 string) float64 {
	return s.scorer.Cosine(text1, text2)
}

// Edit returns the normalized edit-distance similarity of the raw texts.
func (s *Similarity) Edit(text1, text2 string) float64 {
	return s.scorer.Edit(text1, text2)
}

// Jaccard returns the word-bigram Jaccard similarity of the two texts.
func (s *Similarity) Jaccard(text1, text2 string) float64 {
	return s.scorer.Jaccard(text1, text2)
}

// Tokenize returns the normalized token stream of text.
func (s *Similarity) Tokenize(text string) []string {
	return s.tokenizer.Normalize(text)
}

// WarmUp loads caches and exercises every scoring branch.
func (s *Similarity) WarmUp(ctx context.Context, config WarmupConfig) {
	if !s.warmed.CompareAndSwap(false, true) {
		s.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(s.logger, config)
	warmupMgr.RegisterTokenizer(s.tokenizer)
	warmupMgr.RegisterScorer(s.scorer)

	warmupMgr.WarmUp(ctx)
}
