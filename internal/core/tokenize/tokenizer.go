// Package tokenize turns raw text into ordered token streams: it strips
// non-word characters, delegates word segmentation to a ports.Segmenter and
// filters stopwords and single-character tokens.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_text_similarity/internal/pool"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
)

// DefaultMinTokenRunes is the shortest token kept by Normalize.
const DefaultMinTokenRunes = 2

// Tokenizer implements ports.Tokenizer. It is safe for concurrent use: the
// stopword set is never modified after construction.
type Tokenizer struct {
	segmenter     ports.Segmenter
	stopwords     map[string]struct{}
	minTokenRunes int
	bytePool      *pool.BufferPool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopwords replaces the built-in stopword list.
func WithStopwords(words []string) Option {
	return func(t *Tokenizer) {
		t.stopwords = stopwordSet(words)
	}
}

// WithMinTokenRunes sets the minimum rune length of a normalized token.
func WithMinTokenRunes(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minTokenRunes = n
		}
	}
}

// New creates a tokenizer backed by the given segmenter.
func New(segmenter ports.Segmenter, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		segmenter:     segmenter,
		stopwords:     stopwordSet(defaultStopwords),
		minTokenRunes: DefaultMinTokenRunes,
		bytePool:      pool.NewBufferPool(4096),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Normalize returns the content tokens of text in segmentation order.
func (t *Tokenizer) Normalize(text string) []string {
	return t.tokens(text, t.minTokenRunes)
}

// Segment returns the tokens of text with only blank and stopword filtering.
func (t *Tokenizer) Segment(text string) []string {
	return t.tokens(text, 1)
}

// IsStopword reports whether token is in the stopword set.
func (t *Tokenizer) IsStopword(token string) bool {
	_, ok := t.stopwords[strings.ToLower(token)]
	return ok
}

func (t *Tokenizer) tokens(text string, minRunes int) []string {
	cleaned := t.Clean(text)
	if strings.TrimSpace(cleaned) == "" {
		return []string{}
	}

	raw := t.segmenter.Segment(cleaned)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" || t.IsStopword(tok) {
			continue
		}
		if utf8.RuneCountInString(tok) < minRunes {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Clean removes every rune that is neither a word character, whitespace nor a
// Han ideograph.
func (t *Tokenizer) Clean(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := t.bytePool.Get()
	defer t.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	for _, r := range text {
		if keepRune(r) {
			*buffer = utf8.AppendRune(*buffer, r)
		}
	}
	return string(*buffer)
}

func keepRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsMark(r) ||
		unicode.IsNumber(r) ||
		unicode.IsSpace(r) ||
		unicode.Is(unicode.Han, r)
}
