package services

import (
	"fmt"

	"healthcare-assistant-backend/knowledge"
	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/utils"
)

const (
	emergencyResponse = "🚨 **EMERGENCY ALERT**\n\n" +
		"This sounds serious! Please call emergency services immediately (911 or your local emergency number)."

	diagnosisResponse = "⚠️ **Medical Advice Notice**\n\n" +
		"I cannot provide medical diagnosis. Please consult a qualified healthcare provider for personal medical concerns."

	medicationResponse = "💊 **Medication Notice**\n\n" +
		"I cannot provide medication advice. Please consult your doctor or pharmacist for medication-related questions."

	defaultResponse = "👋 **Hi there!**\n\n" +
		"I'm your healthcare assistant. I can help with general health information about:\n\n" +
		"• Fever\n" +
		"• Cold & Flu\n" +
		"• Headache\n" +
		"• Diet & Nutrition\n" +
		"• Exercise\n" +
		"• First Aid\n" +
		"• Stress Management\n\n" +
		"What would you like to know?"
)

// QueryRouter maps one raw query to a canned response. It holds only
// read-only collaborators, so a single router serves concurrent callers.
type QueryRouter struct {
	kb         *knowledge.KnowledgeBase
	safetyGate *utils.SafetyGate
	extractor  *utils.KeywordExtractor
	classifier *utils.IntentClassifier
}

func NewQueryRouter(kb *knowledge.KnowledgeBase, normalizer *utils.TextNormalizer, tieBreak utils.TieBreakPolicy) *QueryRouter {
	return &QueryRouter{
		kb:         kb,
		safetyGate: utils.NewSafetyGate(kb.Safety()),
		extractor:  utils.NewKeywordExtractor(normalizer),
		classifier: utils.NewIntentClassifier(kb, tieBreak),
	}
}

// InitQueryRouter loads the knowledge base and the English language
// resources. Any failure here must stop startup.
func InitQueryRouter(knowledgePath string, tieBreak utils.TieBreakPolicy) (*QueryRouter, error) {
	kb, err := knowledge.Load(knowledgePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	lemmatizer, err := utils.NewEnglishLemmatizer()
	if err != nil {
		return nil, err
	}

	normalizer := utils.NewTextNormalizer(utils.EnglishStopwords, lemmatizer)
	return NewQueryRouter(kb, normalizer, tieBreak), nil
}

// ParseTieBreak maps a config value to a tie-break policy.
func ParseTieBreak(name string) (utils.TieBreakPolicy, error) {
	switch name {
	case "", "declaration":
		return utils.TieBreakDeclarationOrder, nil
	case "lexicographic":
		return utils.TieBreakLexicographic, nil
	default:
		return 0, fmt.Errorf("unknown tie-break policy: %s", name)
	}
}

// Route runs the safety gate, then keyword extraction and intent scoring.
// Unmatched queries, including empty ones, get the default help message.
func (r *QueryRouter) Route(query string) models.ChatResult {
	switch r.safetyGate.Check(query) {
	case utils.SafetyEmergency:
		return models.ChatResult{Response: emergencyResponse, Type: models.ResponseTypeEmergency}
	case utils.SafetyDiagnosis:
		return models.ChatResult{Response: diagnosisResponse, Type: models.ResponseTypeSafetyDiagnosis}
	case utils.SafetyMedication:
		return models.ChatResult{Response: medicationResponse, Type: models.ResponseTypeSafetyMedication}
	}

	keywords := r.extractor.ExtractKeywords(query)
	if intent, ok := r.classifier.ClassifyIntent(keywords); ok {
		return models.ChatResult{Response: intent.Response, Type: models.ResponseType(intent.Topic)}
	}

	return models.ChatResult{Response: defaultResponse, Type: models.ResponseTypeDefault}
}

func (r *QueryRouter) KnowledgeBase() *knowledge.KnowledgeBase {
	return r.kb
}
