package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"healthcare-assistant-backend/database"
	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
	"healthcare-assistant-backend/utils"
)

func newTestService(t *testing.T) *services.ChatbotService {
	t.Helper()
	router, err := services.InitQueryRouter("", utils.TieBreakDeclarationOrder)
	if err != nil {
		t.Fatalf("InitQueryRouter: %v", err)
	}
	return services.NewChatbotService(router, database.NewMemoryStore(time.Hour, 100))
}

func TestRunChat(t *testing.T) {
	svc := newTestService(t)

	in := strings.NewReader("I have a fever\n\nI have chest pain\n/history\n/quit\nnever read\n")
	var out bytes.Buffer
	if err := runChat(testContext(t), svc, in, &out); err != nil {
		t.Fatalf("runChat: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, chatBanner+"You: ") {
		t.Errorf("output should open with the banner and a prompt:\n%s", got)
	}
	for _, want := range []string{
		"Assistant: Fever is a temporary increase",
		"EMERGENCY",
		"Assistant (fever):",
		"Assistant (emergency):",
		"Take care!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never read") {
		t.Error("input after /quit was processed")
	}
}

func TestRunChatEndOfInput(t *testing.T) {
	svc := newTestService(t)

	var out bytes.Buffer
	if err := runChat(testContext(t), svc, strings.NewReader("/history\n"), &out); err != nil {
		t.Fatalf("runChat: %v", err)
	}
	if !strings.Contains(out.String(), "No messages yet.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestAskCommand(t *testing.T) {
	t.Setenv("KNOWLEDGE_BASE_PATH", "")
	t.Setenv("KNOWLEDGE_TIE_BREAK", "declaration")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"ask", "I", "burned", "my", "hand"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("ask: %v", err)
	}

	var result models.ChatResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if result.Type != "burns" {
		t.Errorf("type = %q, want burns", result.Type)
	}
}

func TestAskRejectsBlank(t *testing.T) {
	rootCmd.SetArgs([]string{"ask", "  "})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := Execute(); err != services.ErrEmptyMessage {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestPrintTopics(t *testing.T) {
	svc := newTestService(t)

	var out bytes.Buffer
	if err := printTopics(&out, svc.Topics()); err != nil {
		t.Fatalf("printTopics: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(svc.Topics())+1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "greetings") || !strings.Contains(lines[1], "hello") {
		t.Errorf("first topic line = %q", lines[1])
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out.String()) != "healthbot "+version {
		t.Errorf("unexpected output %q", out.String())
	}
}

// testContext returns a context that is canceled when the test finishes,
// equivalent to testing.T.Context on Go 1.24+.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
