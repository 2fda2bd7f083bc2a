package ports

// Segmenter splits cleaned text into word tokens. Implementations must be total:
// any input, including the empty string, yields a (possibly empty) slice.
type Segmenter interface {
	Segment(text string) []string
}

// Tokenizer turns raw text into token streams.
type Tokenizer interface {
	// Normalize returns content tokens: no blanks, no stopwords, no single-rune tokens.
	Normalize(text string) []string
	// Segment returns tokens filtered only for blanks and stopwords.
	Segment(text string) []string
}
