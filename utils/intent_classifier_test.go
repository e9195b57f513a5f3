package utils

import (
	"testing"

	"healthcare-assistant-backend/knowledge"
)

func defaultClassifier(t *testing.T) *IntentClassifier {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewIntentClassifier(kb, TieBreakDeclarationOrder)
}

func TestClassifyIntentFeverAndHeadache(t *testing.T) {
	ic := defaultClassifier(t)

	// fever matches "fever" and "feverish", headache only "headache"
	match, ok := ic.ClassifyIntent([]string{"fever", "headache"})
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Topic != "fever" || match.Category != "general_health" || match.Score != 2 {
		t.Errorf("unexpected match %+v", match)
	}
	if match.Response == "" {
		t.Error("match should carry the topic response")
	}
}

func TestScoreTopicCountsEveryPair(t *testing.T) {
	topic := knowledge.TopicEntry{Keywords: []string{"fever", "feverish", "high temperature"}}

	tests := []struct {
		keywords []string
		want     int
	}{
		{[]string{"fever"}, 2},
		{[]string{"fever", "fever"}, 4},
		{[]string{"temperature"}, 1},
		{[]string{"feverishness"}, 2},
		{[]string{"cough"}, 0},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := ScoreTopic(tt.keywords, topic); got != tt.want {
			t.Errorf("ScoreTopic(%v) = %d, want %d", tt.keywords, got, tt.want)
		}
	}
}

func TestClassifyIntentNoMatch(t *testing.T) {
	ic := defaultClassifier(t)

	if _, ok := ic.ClassifyIntent([]string{"asdkjasd"}); ok {
		t.Error("expected no match")
	}
	if _, ok := ic.ClassifyIntent(nil); ok {
		t.Error("expected no match for empty keywords")
	}
}

func tieKnowledgeBase(t *testing.T) *knowledge.KnowledgeBase {
	t.Helper()
	kb, err := knowledge.New([]knowledge.TopicEntry{
		{Key: knowledge.TopicKey{Category: "zeta", Topic: "back"}, Keywords: []string{"pain"}, Response: "zeta back"},
		{Key: knowledge.TopicKey{Category: "alpha", Topic: "neck"}, Keywords: []string{"pain"}, Response: "alpha neck"},
		{Key: knowledge.TopicKey{Category: "alpha", Topic: "knee"}, Keywords: []string{"pain"}, Response: "alpha knee"},
	}, knowledge.SafetyKeywords{})
	if err != nil {
		t.Fatal(err)
	}
	return kb
}

func TestClassifyIntentTieBreak(t *testing.T) {
	kb := tieKnowledgeBase(t)

	declared, ok := NewIntentClassifier(kb, TieBreakDeclarationOrder).ClassifyIntent([]string{"pain"})
	if !ok || declared.Category != "zeta" || declared.Topic != "back" {
		t.Errorf("declaration order: expected zeta/back, got %+v", declared)
	}

	lexical, ok := NewIntentClassifier(kb, TieBreakLexicographic).ClassifyIntent([]string{"pain"})
	if !ok || lexical.Category != "alpha" || lexical.Topic != "knee" {
		t.Errorf("lexicographic: expected alpha/knee, got %+v", lexical)
	}
}

func TestClassifyIntentHigherScoreBeatsOrder(t *testing.T) {
	kb, err := knowledge.New([]knowledge.TopicEntry{
		{Key: knowledge.TopicKey{Category: "a", Topic: "first"}, Keywords: []string{"pain"}, Response: "first"},
		{Key: knowledge.TopicKey{Category: "a", Topic: "second"}, Keywords: []string{"pain", "painful"}, Response: "second"},
	}, knowledge.SafetyKeywords{})
	if err != nil {
		t.Fatal(err)
	}

	match, ok := NewIntentClassifier(kb, TieBreakDeclarationOrder).ClassifyIntent([]string{"painful"})
	if !ok || match.Topic != "second" || match.Score != 2 {
		t.Errorf("expected second with score 2, got %+v", match)
	}
}
