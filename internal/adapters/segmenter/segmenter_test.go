package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitespaceSegmenter(t *testing.T) {
	s := NewWhitespaceSegmenter()
	assert.Equal(t, []string{"alpha", "beta", "论文"}, s.Segment("  alpha\tbeta\n论文 "))
	assert.Empty(t, s.Segment(""))
	assert.Empty(t, s.Segment("   "))
}

func TestGseSegmenter(t *testing.T) {
	s, err := NewGseSegmenter()
	if err != nil {
		t.Skipf("segmentation dictionary unavailable: %v", err)
	}

	text := "这是一个测试文本"
	tokens := s.Segment(text)
	assert.Greater(t, len(tokens), 1)
	assert.Equal(t, text, strings.Join(tokens, ""))
	assert.Empty(t, s.Segment(""))
}
