package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/models"
)

var (
	_ HistoryStore = (*MemoryStore)(nil)
	_ HistoryStore = (*MongoStore)(nil)
)

func saveN(t *testing.T, store HistoryStore, sessionID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := store.SaveMessage(context.Background(), &models.Message{
			SessionID:   sessionID,
			UserMessage: fmt.Sprintf("message %d", i),
			BotResponse: "reply",
			Type:        models.ResponseTypeDefault,
			Timestamp:   time.Now(),
		})
		if err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}
}

func TestMemoryStoreHistory(t *testing.T) {
	store := NewMemoryStore(time.Hour, 100)
	ctx := context.Background()

	saveN(t, store, "s1", 3)
	saveN(t, store, "s2", 1)

	history, err := store.GetHistory(ctx, "s1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	if history[0].UserMessage != "message 0" || history[2].UserMessage != "message 2" {
		t.Errorf("history should be oldest first: %+v", history)
	}

	limited, _ := store.GetHistory(ctx, "s1", 2)
	if len(limited) != 2 || limited[0].UserMessage != "message 1" {
		t.Errorf("limit should keep the most recent messages: %+v", limited)
	}

	if store.SessionCount() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.SessionCount())
	}
}

func TestMemoryStoreTrimsToMax(t *testing.T) {
	store := NewMemoryStore(time.Hour, 2)
	saveN(t, store, "s", 5)

	history, _ := store.GetHistory(context.Background(), "s", 0)
	if len(history) != 2 || history[0].UserMessage != "message 3" {
		t.Errorf("expected last two messages, got %+v", history)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(time.Hour, 10)
	ctx := context.Background()
	saveN(t, store, "s", 2)

	if err := store.ClearHistory(ctx, "s"); err != nil {
		t.Fatal(err)
	}
	history, _ := store.GetHistory(ctx, "s", 0)
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d", len(history))
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20*time.Millisecond, 10)
	saveN(t, store, "s", 1)

	time.Sleep(50 * time.Millisecond)

	history, _ := store.GetHistory(context.Background(), "s", 0)
	if len(history) != 0 {
		t.Errorf("expected history to expire, got %d messages", len(history))
	}
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour, 10)
	saveN(t, store, "s", 1)

	history, _ := store.GetHistory(context.Background(), "s", 0)
	history[0].UserMessage = "changed"

	again, _ := store.GetHistory(context.Background(), "s", 0)
	if again[0].UserMessage != "message 0" {
		t.Error("stored history must not be mutated through returned slice")
	}
}

func TestConnect(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Type: "memory", HistoryTTL: time.Hour, HistoryMaxMessages: 5}}
	store, err := Connect(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", store)
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	cfg.Database.Type = "redis"
	if _, err := Connect(context.Background(), cfg); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
