package segmenter

import (
	"strings"

	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// WhitespaceSegmenter splits text on Unicode whitespace. It suits languages
// with explicit word boundaries and gives deterministic tokens in tests.
type WhitespaceSegmenter struct{}

// NewWhitespaceSegmenter creates a whitespace segmenter.
func NewWhitespaceSegmenter() ports.Segmenter {
	return &WhitespaceSegmenter{}
}

// Segment splits text into whitespace-separated fields.
func (s *WhitespaceSegmenter) Segment(text string) []string {
	return strings.Fields(text)
}
