package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTopic   = errors.New("invalid topic entry")
	ErrDuplicateTopic = errors.New("duplicate topic entry")
)

// TopicKey identifies a topic inside the knowledge base.
type TopicKey struct {
	Category string `json:"category"`
	Topic    string `json:"topic"`
}

func (k TopicKey) String() string {
	return k.Category + "/" + k.Topic
}

// TopicEntry holds the trigger keywords and canned response for one topic.
// Keywords are stored lowercased.
type TopicEntry struct {
	Key      TopicKey `json:"key"`
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
}

// SafetyKeywords are the three lists checked before any topic scoring.
type SafetyKeywords struct {
	Emergency  []string `json:"emergency"`
	Diagnosis  []string `json:"diagnosis"`
	Medication []string `json:"medication"`
}

// KnowledgeBase is the static topic catalogue. It is built once and only read
// afterwards, so a single instance can be shared by every request.
type KnowledgeBase struct {
	topics []TopicEntry
	index  map[TopicKey]int
	safety SafetyKeywords
}

// New validates topics and safety lists and returns an immutable knowledge base.
// Topic order is kept as given.
func New(topics []TopicEntry, safety SafetyKeywords) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		topics: make([]TopicEntry, 0, len(topics)),
		index:  make(map[TopicKey]int, len(topics)),
		safety: SafetyKeywords{
			Emergency:  lowerAll(safety.Emergency),
			Diagnosis:  lowerAll(safety.Diagnosis),
			Medication: lowerAll(safety.Medication),
		},
	}

	for _, t := range topics {
		entry, err := normalizeEntry(t)
		if err != nil {
			return nil, err
		}
		if _, exists := kb.index[entry.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTopic, entry.Key)
		}
		kb.index[entry.Key] = len(kb.topics)
		kb.topics = append(kb.topics, entry)
	}

	return kb, nil
}

func normalizeEntry(t TopicEntry) (TopicEntry, error) {
	key := TopicKey{
		Category: strings.TrimSpace(t.Key.Category),
		Topic:    strings.TrimSpace(t.Key.Topic),
	}
	if key.Category == "" || key.Topic == "" {
		return TopicEntry{}, fmt.Errorf("%w: category and topic names are required (got %q)", ErrInvalidTopic, key)
	}

	keywords := lowerAll(t.Keywords)
	if len(keywords) == 0 {
		return TopicEntry{}, fmt.Errorf("%w: %s has no keywords", ErrInvalidTopic, key)
	}

	response := strings.TrimSpace(t.Response)
	if response == "" {
		return TopicEntry{}, fmt.Errorf("%w: %s has no response", ErrInvalidTopic, key)
	}

	return TopicEntry{Key: key, Keywords: keywords, Response: response}, nil
}

// lowerAll lowercases and trims every entry, dropping blanks.
func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Topics returns the entries in declaration order. Callers must treat the
// result as read-only.
func (kb *KnowledgeBase) Topics() []TopicEntry {
	return kb.topics
}

// Lookup returns the entry for a category/topic pair.
func (kb *KnowledgeBase) Lookup(category, topic string) (TopicEntry, bool) {
	i, ok := kb.index[TopicKey{Category: category, Topic: topic}]
	if !ok {
		return TopicEntry{}, false
	}
	return kb.topics[i], true
}

// Categories lists category names in the order they first appear.
func (kb *KnowledgeBase) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, t := range kb.topics {
		if _, ok := seen[t.Key.Category]; ok {
			continue
		}
		seen[t.Key.Category] = struct{}{}
		categories = append(categories, t.Key.Category)
	}
	return categories
}

func (kb *KnowledgeBase) Safety() SafetyKeywords {
	return kb.safety
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.topics)
}
