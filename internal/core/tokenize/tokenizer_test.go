package tokenize

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fieldsSegmenter struct{}

func (fieldsSegmenter) Segment(text string) []string { return strings.Fields(text) }

func TestClean(t *testing.T) {
	tok := New(fieldsSegmenter{})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"ASCII punctuation", "Hello, world!", "Hello world"},
		{"Chinese punctuation", "你好，世界。", "你好世界"},
		{"Keeps digits and underscore", "v1_2 = 3.5", "v1_2  35"},
		{"Keeps whitespace", "a\tb\nc", "a\tb\nc"},
		{"Only punctuation", "!?,.；：", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tok.Clean(tc.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tok := New(fieldsSegmenter{})

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Drops stopwords and single runes", "the quick, brown fox a b", []string{"quick", "brown", "fox"}},
		{"Stopwords are case insensitive", "The Quick Fox", []string{"Quick", "Fox"}},
		{"Keeps order", "zeta alpha zeta", []string{"zeta", "alpha", "zeta"}},
		{"Chinese stopwords", "这是 一个 测试 文本", []string{"测试", "文本"}},
		{"Empty", "", []string{}},
		{"Punctuation only", "。，！", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tok.Normalize(tc.input))
		})
	}
}

func TestSegmentKeepsSingleRuneTokens(t *testing.T) {
	tok := New(fieldsSegmenter{})

	assert.Equal(t, []string{"x", "y", "quick"}, tok.Segment("x y quick"))
	assert.Equal(t, []string{"quick"}, tok.Normalize("x y quick"))
	assert.Equal(t, []string{"另", "测试"}, tok.Segment("这是 另 测试"))
}

func TestOptions(t *testing.T) {
	t.Run("Custom stopwords replace defaults", func(t *testing.T) {
		tok := New(fieldsSegmenter{}, WithStopwords([]string{"Quick"}))
		assert.Equal(t, []string{"the", "fox"}, tok.Normalize("the quick fox"))
		assert.True(t, tok.IsStopword("QUICK"))
		assert.False(t, tok.IsStopword("the"))
	})

	t.Run("Minimum token length", func(t *testing.T) {
		tok := New(fieldsSegmenter{}, WithMinTokenRunes(4))
		assert.Equal(t, []string{"quick", "brown"}, tok.Normalize("quick brown fox"))
	})

	t.Run("Non-positive minimum is ignored", func(t *testing.T) {
		tok := New(fieldsSegmenter{}, WithMinTokenRunes(0))
		assert.Equal(t, []string{"fox"}, tok.Normalize("x fox"))
	})
}

func TestDefaultStopwordsIsCopy(t *testing.T) {
	words := DefaultStopwords()
	assert.NotEmpty(t, words)
	words[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultStopwords()[0])
}

func TestConcurrentNormalize(t *testing.T) {
	tok := New(fieldsSegmenter{})
	text := strings.Repeat("plagiarism detection compares documents, ", 50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Len(t, tok.Normalize(text), 200)
			}
		}()
	}
	wg.Wait()
}
