package utils

import (
	"strings"

	"healthcare-assistant-backend/knowledge"
)

// SafetyCheck names the gate that matched a query.
type SafetyCheck string

const (
	SafetyNone       SafetyCheck = ""
	SafetyEmergency  SafetyCheck = "emergency"
	SafetyDiagnosis  SafetyCheck = "diagnosis"
	SafetyMedication SafetyCheck = "medication"
)

// SafetyGate runs the emergency, diagnosis and medication checks that
// override normal intent resolution. Matching is plain substring search.
type SafetyGate struct {
	keywords knowledge.SafetyKeywords
}

func NewSafetyGate(keywords knowledge.SafetyKeywords) *SafetyGate {
	return &SafetyGate{keywords: keywords}
}

// Check returns the first gate that matches, in emergency, diagnosis,
// medication order, or SafetyNone.
func (g *SafetyGate) Check(query string) SafetyCheck {
	switch {
	case g.IsEmergency(query):
		return SafetyEmergency
	case g.IsDiagnosisRequest(query):
		return SafetyDiagnosis
	case g.IsMedicationRequest(query):
		return SafetyMedication
	}
	return SafetyNone
}

func (g *SafetyGate) IsEmergency(query string) bool {
	return containsAnyKeyword(query, g.keywords.Emergency)
}

func (g *SafetyGate) IsDiagnosisRequest(query string) bool {
	return containsAnyKeyword(query, g.keywords.Diagnosis)
}

func (g *SafetyGate) IsMedicationRequest(query string) bool {
	return containsAnyKeyword(query, g.keywords.Medication)
}

func containsAnyKeyword(message string, keywords []string) bool {
	message = strings.ToLower(message)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
