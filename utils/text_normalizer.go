package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// minTokenLength is the shortest token kept after filtering.
const minTokenLength = 3

// nounSuffixes are the noun inflection rules (inflected ending, base ending)
// a lemma must follow to be accepted. Verb and adjective forms are kept as
// written, so "better" stays "better" and "burned" stays "burned".
var nounSuffixes = [][2]string{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Lemmatizer reduces a lowercase word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// NewEnglishLemmatizer loads the golem English dictionary. It is the slow part
// of startup and must succeed before any query is served.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}
	return lemmatizer, nil
}

// TextNormalizer turns free text into filtered, lemmatized tokens.
// Its stopword set and lemmatizer are never written after construction.
type TextNormalizer struct {
	stopwords  map[string]struct{}
	lemmatizer Lemmatizer
}

func NewTextNormalizer(stopwords []string, lemmatizer Lemmatizer) *TextNormalizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &TextNormalizer{
		stopwords:  stops,
		lemmatizer: lemmatizer,
	}
}

// Normalize lowercases text, strips everything but ASCII letters and
// whitespace, drops stopwords and tokens shorter than three letters, and
// reduces plural nouns to their singular. Token order is preserved.
func (n *TextNormalizer) Normalize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case unicode.IsSpace(r):
			return r
		}
		return -1
	}, strings.ToLower(text))

	var tokens []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) < minTokenLength || n.isStopword(token) {
			continue
		}
		tokens = append(tokens, n.lemma(token))
	}
	return tokens
}

func (n *TextNormalizer) isStopword(word string) bool {
	_, ok := n.stopwords[word]
	return ok
}

func (n *TextNormalizer) lemma(word string) string {
	if n.lemmatizer == nil {
		return word
	}
	if lemma := strings.ToLower(n.lemmatizer.Lemma(word)); isNounInflection(word, lemma) {
		return lemma
	}
	return word
}

// isNounInflection reports whether word is lemma with a plural noun ending.
func isNounInflection(word, lemma string) bool {
	if lemma == "" || lemma == word {
		return false
	}
	for _, rule := range nounSuffixes {
		inflected, base := rule[0], rule[1]
		if strings.HasSuffix(word, inflected) && word[:len(word)-len(inflected)]+base == lemma {
			return true
		}
	}
	return false
}
