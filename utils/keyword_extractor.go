package utils

import "strings"

// greetings are checked in this order before any normalization.
var greetings = []string{"hi", "hello", "hey", "greetings"}

type KeywordExtractor struct {
	normalizer *TextNormalizer
}

func NewKeywordExtractor(normalizer *TextNormalizer) *KeywordExtractor {
	return &KeywordExtractor{normalizer: normalizer}
}

// ExtractKeywords returns just the first greeting found in the text, so
// stopword removal never swallows a greeting. Any other text is normalized.
func (e *KeywordExtractor) ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	for _, greeting := range greetings {
		if strings.Contains(lower, greeting) {
			return []string{greeting}
		}
	}
	return e.normalizer.Normalize(text)
}
