package utils

import (
	"strings"

	"healthcare-assistant-backend/knowledge"
)

// TieBreakPolicy decides between topics with the same score.
type TieBreakPolicy int

const (
	// TieBreakDeclarationOrder keeps the topic declared first in the
	// knowledge base (category order, then topic order).
	TieBreakDeclarationOrder TieBreakPolicy = iota
	// TieBreakLexicographic keeps the smallest category, then topic name.
	TieBreakLexicographic
)

// IntentMatch is the best scoring topic for one query.
type IntentMatch struct {
	Category string
	Topic    string
	Score    int
	Response string
}

type IntentClassifier struct {
	kb       *knowledge.KnowledgeBase
	tieBreak TieBreakPolicy
}

func NewIntentClassifier(kb *knowledge.KnowledgeBase, tieBreak TieBreakPolicy) *IntentClassifier {
	return &IntentClassifier{
		kb:       kb,
		tieBreak: tieBreak,
	}
}

// ScoreTopic counts every (keyword, topic keyword) pair where one contains
// the other. Repeated keywords and keywords matching several topic keywords
// all add to the score.
func ScoreTopic(keywords []string, topic knowledge.TopicEntry) int {
	matches := 0
	for _, keyword := range keywords {
		for _, topicKeyword := range topic.Keywords {
			if strings.Contains(topicKeyword, keyword) || strings.Contains(keyword, topicKeyword) {
				matches++
			}
		}
	}
	return matches
}

// ClassifyIntent returns the highest scoring topic, or false when no topic
// scored above zero.
func (ic *IntentClassifier) ClassifyIntent(keywords []string) (IntentMatch, bool) {
	var best *knowledge.TopicEntry
	maxScore := 0

	topics := ic.kb.Topics()
	for i := range topics {
		topic := &topics[i]
		score := ScoreTopic(keywords, *topic)
		if score == 0 {
			continue
		}
		if score > maxScore || (score == maxScore && ic.prefer(topic.Key, best.Key)) {
			maxScore = score
			best = topic
		}
	}

	if best == nil {
		return IntentMatch{}, false
	}

	return IntentMatch{
		Category: best.Key.Category,
		Topic:    best.Key.Topic,
		Score:    maxScore,
		Response: best.Response,
	}, true
}

// prefer reports whether candidate beats current on a tied score.
func (ic *IntentClassifier) prefer(candidate, current knowledge.TopicKey) bool {
	switch ic.tieBreak {
	case TieBreakLexicographic:
		if candidate.Category != current.Category {
			return candidate.Category < current.Category
		}
		return candidate.Topic < current.Topic
	default:
		// topics are visited in declaration order, so the incumbent wins
		return false
	}
}
