// Package length compares documents by size alone.
package length

import (
	"unicode/utf8"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
)

// Ratio returns 1 - |len1-len2|/max(len1,len2) on rune counts. Both empty
// gives 1 and exactly one empty gives 0.
func Ratio(text1, text2 string) float64 {
	len1 := utf8.RuneCountInString(text1)
	len2 := utf8.RuneCountInString(text2)
	if score, ok := domain.EmptyScore(len1, len2); ok {
		return score
	}

	diff := len1 - len2
	if diff < 0 {
		diff = -diff
	}
	longest := len1
	if len2 > longest {
		longest = len2
	}
	return 1 - float64(diff)/float64(longest)
}
