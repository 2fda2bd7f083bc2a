package tokenize

import "strings"

// defaultStopwords holds high-frequency function words that carry no content.
// Chinese entries cover particles, pronouns, conjunctions and the most common
// demonstratives; the English entries handle mixed-language papers.
var defaultStopwords = []string{
	// Chinese
	"的", "了", "和", "是", "在", "就", "都", "而", "及", "与", "着", "或", "之",
	"也", "把", "被", "让", "给", "对", "从", "向", "以", "于", "为", "则", "并",
	"很", "又", "再", "还", "吗", "呢", "吧", "啊", "呀", "哦", "嗯", "么", "得", "地",
	"我", "你", "他", "她", "它", "我们", "你们", "他们", "她们", "它们", "自己",
	"这", "那", "这是", "那是", "这个", "那个", "这些", "那些", "这样", "那样",
	"一个", "一些", "一种", "没有", "不是", "就是", "还是", "可以", "已经",
	"因为", "所以", "但是", "而且", "如果", "虽然", "然后", "或者", "以及", "并且",
	"其", "此", "该", "各", "每", "某", "等", "等等",
	// English
	"the", "a", "an", "and", "or", "but", "if", "of", "to", "in", "on", "at",
	"by", "for", "from", "with", "as", "is", "are", "was", "were", "be", "been",
	"it", "its", "this", "that", "these", "those", "not", "no",
}

// DefaultStopwords returns a copy of the built-in stopword list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

func stopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
