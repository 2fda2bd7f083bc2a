package similarity

import (
	"github.com/baditaflorin/go_text_similarity/internal/adapters/segmenter"
	"github.com/baditaflorin/go_text_similarity/internal/config"
)

// OptionsFromConfig translates a loaded configuration file into options.
func OptionsFromConfig(cfg *config.Config) []Option {
	opts := []Option{WithScorerConfig(cfg.Scorer())}
	if cfg.Segmenter.Stopwords != nil {
		opts = append(opts, WithStopwords(cfg.Segmenter.Stopwords))
	}
	if cfg.Segmenter.Kind == "whitespace" {
		return append(opts, WithWhitespaceSegmenter())
	}

	gseOpts := []segmenter.GseOption{segmenter.WithHMM(cfg.Segmenter.HMM)}
	if len(cfg.Segmenter.DictFiles) > 0 {
		gseOpts = append(gseOpts, segmenter.WithDictFiles(cfg.Segmenter.DictFiles...))
	}
	return append(opts, WithGseOptions(gseOpts...))
}
