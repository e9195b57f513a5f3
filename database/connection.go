package database

import (
	"context"
	"fmt"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/models"
)

// HistoryStore keeps chat exchanges per session for the presentation layers.
type HistoryStore interface {
	SaveMessage(ctx context.Context, message *models.Message) error
	// GetHistory returns up to limit of the most recent messages, oldest first.
	GetHistory(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	ClearHistory(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connect opens the history store selected by config
func Connect(ctx context.Context, cfg *config.Config) (HistoryStore, error) {
	switch cfg.Database.Type {
	case "memory":
		return NewMemoryStore(cfg.Database.HistoryTTL, cfg.Database.HistoryMaxMessages), nil
	case "mongodb":
		store, err := ConnectMongoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}
