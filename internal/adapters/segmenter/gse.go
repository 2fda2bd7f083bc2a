package segmenter

import (
	"fmt"

	"github.com/go-ego/gse"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// GseSegmenter segments Chinese text with a dictionary-based segmenter.
// The dictionary is loaded once at construction; Segment only reads it.
type GseSegmenter struct {
	seg gse.Segmenter
	hmm bool
}

// GseOption configures a GseSegmenter.
type GseOption func(*gseConfig)

type gseConfig struct {
	dictFiles []string
	hmm       bool
}

// WithDictFiles loads the given dictionary files instead of the embedded one.
func WithDictFiles(files ...string) GseOption {
	return func(cfg *gseConfig) {
		cfg.dictFiles = files
	}
}

// WithHMM toggles HMM-based recognition of out-of-vocabulary words.
func WithHMM(enable bool) GseOption {
	return func(cfg *gseConfig) {
		cfg.hmm = enable
	}
}

// NewGseSegmenter creates a segmenter and loads its dictionary.
func NewGseSegmenter(opts ...GseOption) (*GseSegmenter, error) {
	cfg := gseConfig{hmm: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &GseSegmenter{hmm: cfg.hmm}
	var err error
	if len(cfg.dictFiles) > 0 {
		err = s.seg.LoadDict(cfg.dictFiles...)
	} else {
		err = s.seg.LoadDictEmbed()
	}
	if err != nil {
		return nil, fmt.Errorf("load segmentation dictionary: %w", err)
	}
	return s, nil
}

// Segment cuts text into words in reading order.
func (s *GseSegmenter) Segment(text string) []string {
	if text == "" {
		return []string{}
	}
	return s.seg.Cut(text, s.hmm)
}

var _ ports.Segmenter = (*GseSegmenter)(nil)
