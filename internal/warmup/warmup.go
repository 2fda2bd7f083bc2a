package warmup

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size in runes
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     100,
		SampleTextSize: 500,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Stats reports how much work a warmup performed.
type Stats struct {
	Tokenizations int
	Scorings      int
	Duration      time.Duration
}

// Manager handles system warmup operations
type Manager struct {
	logger     ports.Logger
	scorers    []ports.SimilarityScorer
	tokenizers []ports.Tokenizer
	config     WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a scorer to be warmed up
func (wm *Manager) RegisterScorer(scorer ports.SimilarityScorer) {
	wm.scorers = append(wm.scorers, scorer)
}

// RegisterTokenizer adds a tokenizer to be warmed up
func (wm *Manager) RegisterTokenizer(tokenizer ports.Tokenizer) {
	wm.tokenizers = append(wm.tokenizers, tokenizer)
}

// WarmUp runs the warmup process for all registered components. It stops
// early, without error, when ctx is done or the configured duration elapses.
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.scorers)+len(wm.tokenizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	stats := Stats{
		Tokenizations: wm.warmUpTokenizers(warmupCtx),
		Scorings:      wm.warmUpScorers(warmupCtx),
	}

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"duration", stats.Duration,
		"tokenizations", stats.Tokenizations,
		"scorings", stats.Scorings,
	)
	return stats
}

// warmUpTokenizers runs the registered tokenizers and returns the number of calls.
func (wm *Manager) warmUpTokenizers(ctx context.Context) int {
	if len(wm.tokenizers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up tokenizers", "count", len(wm.tokenizers))

	sample := GenerateSampleText(wm.config.SampleTextSize)
	return wm.run(ctx, func(int) int {
		for _, tokenizer := range wm.tokenizers {
			_ = tokenizer.Normalize(sample)
		}
		return len(wm.tokenizers)
	})
}

// warmUpScorers runs the registered scorers on identical, similar and
// reordered pairs so that every branch is exercised.
func (wm *Manager) warmUpScorers(ctx context.Context) int {
	if len(wm.scorers) == 0 {
		return 0
	}
	wm.logger.Debug("Warming up scorers", "count", len(wm.scorers))

	original := GenerateSampleText(wm.config.SampleTextSize)
	similar := GenerateSimilarText(original, 0.1)
	reordered := GenerateReorderedText(original)

	return wm.run(ctx, func(j int) int {
		for _, scorer := range wm.scorers {
			switch j % 3 {
			case 0:
				_ = scorer.Score(original, original)
			case 1:
				_ = scorer.Score(original, similar)
			default:
				_ = scorer.Comprehensive(original, reordered)
			}
		}
		return len(wm.scorers)
	})
}

// run executes fn Iterations times on each of Concurrency goroutines.
func (wm *Manager) run(ctx context.Context, fn func(iteration int) int) int {
	counts := make([]int, wm.config.Concurrency)
	var g errgroup.Group
	for i := 0; i < wm.config.Concurrency; i++ {
		routineID := i
		g.Go(func() error {
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				counts[routineID] += fn(j)
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// Helper functions for generating test data

var sampleSentences = []string{
	"论文查重系统通过比较两篇文档的词汇和结构来估计相似程度。",
	"分词器先去除标点符号再把连续的汉字切分成词语。",
	"词频逆文档频率向量能够反映词语在文档中的重要性。",
	"编辑距离可以发现语序被打乱之后留下的结构差异。",
	"当文本过短时使用二元词组的集合重合度作为替代指标。",
}

// GenerateSampleText creates sample text of roughly size runes
func GenerateSampleText(size int) string {
	if size <= 0 {
		return ""
	}
	var sb strings.Builder
	runes := 0
	for i := 0; runes < size; i++ {
		s := sampleSentences[i%len(sampleSentences)]
		sb.WriteString(s)
		runes += len([]rune(s))
	}
	out := []rune(sb.String())
	if len(out) > size {
		out = out[:size]
	}
	return string(out)
}

// GenerateSimilarText replaces a diffRatio share of the sentences of original
func GenerateSimilarText(original string, diffRatio float64) string {
	sentences := strings.SplitAfter(original, "。")
	changeCount := int(float64(len(sentences)) * diffRatio)
	if changeCount == 0 && diffRatio > 0 && len(sentences) > 0 {
		changeCount = 1
	}
	for i := 0; i < changeCount && i < len(sentences); i++ {
		sentences[i] = "这一句内容已经被完全改写成其他表述。"
	}
	return strings.Join(sentences, "")
}

// GenerateReorderedText swaps the first and second halves of original
func GenerateReorderedText(original string) string {
	runes := []rune(original)
	mid := len(runes) / 2
	return string(runes[mid:]) + string(runes[:mid])
}
