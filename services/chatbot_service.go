package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthcare-assistant-backend/database"
	"healthcare-assistant-backend/models"
)

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrReservedSession = errors.New("session id is reserved")
)

// whatsappSessionPrefix marks sessions owned by WhatsApp contacts. They are
// written only by the webhook and never served by the public history API.
const whatsappSessionPrefix = "whatsapp:"

// WhatsAppSessionID returns the history session of a WhatsApp contact.
func WhatsAppSessionID(phone string) string {
	return whatsappSessionPrefix + phone
}

// IsReservedSession reports whether sessionID belongs to the WhatsApp channel.
func IsReservedSession(sessionID string) bool {
	return strings.HasPrefix(sessionID, whatsappSessionPrefix)
}

// ChatbotService is the entry point shared by every presentation layer.
// It adds session ids, history and metrics around the query router.
type ChatbotService struct {
	router  *QueryRouter
	history database.HistoryStore
}

func NewChatbotService(router *QueryRouter, history database.HistoryStore) *ChatbotService {
	return &ChatbotService{
		router:  router,
		history: history,
	}
}

// ProcessQuery answers a single query. It has no side effects.
func (s *ChatbotService) ProcessQuery(text string) models.ChatResult {
	return s.router.Route(text)
}

// ProcessMessage validates a request, answers it and records the exchange.
// Blank messages are rejected with ErrEmptyMessage, and WhatsApp sessions
// used from another channel with ErrReservedSession. A missing session id is
// replaced with a new one, returned in the response.
func (s *ChatbotService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	if req.SessionID == "" {
		req.SessionID = NewSessionID()
	}
	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}
	if req.Channel != models.ChannelWhatsApp && IsReservedSession(req.SessionID) {
		return nil, ErrReservedSession
	}

	result := s.ProcessQuery(req.Message)
	chatResponsesTotal.WithLabelValues(string(result.Type), string(req.Channel)).Inc()

	message := &models.Message{
		SessionID:   req.SessionID,
		UserMessage: req.Message,
		BotResponse: result.Response,
		Type:        result.Type,
		Channel:     req.Channel,
		Timestamp:   time.Now(),
	}

	// history is best effort, the reply does not depend on it
	if s.history != nil {
		if err := s.history.SaveMessage(ctx, message); err != nil {
			historyErrorsTotal.Inc()
			log.Printf("Failed to save message for session %s: %v", req.SessionID, err)
		}
	}

	return models.NewChatResponse(result, req.SessionID), nil
}

// GetChatHistory retrieves chat history for a session
func (s *ChatbotService) GetChatHistory(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.GetHistory(ctx, sessionID, limit)
}

// ClearChatHistory clears chat history for a session
func (s *ChatbotService) ClearChatHistory(ctx context.Context, sessionID string) error {
	if s.history == nil {
		return nil
	}
	return s.history.ClearHistory(ctx, sessionID)
}

// HealthCheck pings the history store.
func (s *ChatbotService) HealthCheck(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	return s.history.Ping(ctx)
}

// Topics lists the knowledge base topics in declaration order.
func (s *ChatbotService) Topics() []models.TopicInfo {
	topics := s.router.KnowledgeBase().Topics()
	out := make([]models.TopicInfo, 0, len(topics))
	for _, t := range topics {
		out = append(out, models.TopicInfo{
			Category: t.Key.Category,
			Topic:    t.Key.Topic,
			Keywords: append([]string(nil), t.Keywords...),
		})
	}
	return out
}

// TopicsByCategory groups Topics under their categories, both in
// declaration order.
func (s *ChatbotService) TopicsByCategory() []models.CategoryInfo {
	categories := s.router.KnowledgeBase().Categories()
	out := make([]models.CategoryInfo, 0, len(categories))
	index := make(map[string]int, len(categories))
	for i, name := range categories {
		index[name] = i
		out = append(out, models.CategoryInfo{Name: name})
	}
	for _, t := range s.Topics() {
		i := index[t.Category]
		out[i].Topics = append(out[i].Topics, t)
	}
	return out
}

func NewSessionID() string {
	return uuid.NewString()
}
