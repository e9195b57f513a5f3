package database

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"healthcare-assistant-backend/models"
)

// MemoryStore keeps session history in process memory. A session expires
// ttl after its last message.
type MemoryStore struct {
	mu          sync.Mutex
	cache       *gocache.Cache
	ttl         time.Duration
	maxMessages int
}

func NewMemoryStore(ttl time.Duration, maxMessages int) *MemoryStore {
	return &MemoryStore{
		cache:       gocache.New(ttl, 10*time.Minute),
		ttl:         ttl,
		maxMessages: maxMessages,
	}
}

func (s *MemoryStore) SaveMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(message.SessionID)
	history = append(history, *message)
	if s.maxMessages > 0 && len(history) > s.maxMessages {
		history = history[len(history)-s.maxMessages:]
	}
	s.cache.Set(message.SessionID, history, s.ttl)
	return nil
}

func (s *MemoryStore) GetHistory(_ context.Context, sessionID string, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(sessionID)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	out := make([]models.Message, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemoryStore) ClearHistory(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(sessionID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	s.cache.Flush()
	return nil
}

// SessionCount returns the number of sessions that have not expired.
func (s *MemoryStore) SessionCount() int {
	return s.cache.ItemCount()
}

func (s *MemoryStore) load(sessionID string) []models.Message {
	if val, found := s.cache.Get(sessionID); found {
		return val.([]models.Message)
	}
	return nil
}
