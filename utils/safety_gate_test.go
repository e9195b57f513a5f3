package utils

import (
	"testing"

	"healthcare-assistant-backend/knowledge"
)

func newTestSafetyGate(t *testing.T) *SafetyGate {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewSafetyGate(kb.Safety())
}

func TestSafetyGateOrder(t *testing.T) {
	gate := newTestSafetyGate(t)

	tests := []struct {
		query string
		want  SafetyCheck
	}{
		{"I have CHEST PAIN", SafetyEmergency},
		{"chest pain, can you diagnose it and prescribe medicine?", SafetyEmergency},
		{"can you diagnose which medicine I need", SafetyDiagnosis},
		{"What is wrong with me", SafetyDiagnosis},
		{"what dosage should I take", SafetyMedication},
		{"the drugstore is closed", SafetyMedication},
		{"I have a headache", SafetyNone},
		{"", SafetyNone},
	}

	for _, tt := range tests {
		if got := gate.Check(tt.query); got != tt.want {
			t.Errorf("Check(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSafetyGatePredicates(t *testing.T) {
	gate := newTestSafetyGate(t)

	if !gate.IsEmergency("he is UNRESPONSIVE") {
		t.Error("expected emergency match")
	}
	if gate.IsEmergency("mild cough") {
		t.Error("unexpected emergency match")
	}
	if !gate.IsDiagnosisRequest("need a medical diagnosis") {
		t.Error("expected diagnosis match")
	}
	if !gate.IsMedicationRequest("one tablet or two?") {
		t.Error("expected medication match")
	}
}

func TestSafetyGateIgnoresBlankKeywords(t *testing.T) {
	gate := NewSafetyGate(knowledge.SafetyKeywords{Emergency: []string{""}})
	if gate.IsEmergency("anything") {
		t.Error("blank keyword must not match")
	}
}
