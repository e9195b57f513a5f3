package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResponseType tags a chat result. Topic matches use the topic name itself.
type ResponseType string

const (
	ResponseTypeEmergency        ResponseType = "emergency"
	ResponseTypeSafetyDiagnosis  ResponseType = "safety_diagnosis"
	ResponseTypeSafetyMedication ResponseType = "safety_medication"
	ResponseTypeDefault          ResponseType = "default"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
	ChannelTerminal  MessageChannel = "terminal"
	ChannelWhatsApp  MessageChannel = "whatsapp"
)

// ChatResult is what the query router produces for one query.
type ChatResult struct {
	Response string       `json:"response"`
	Type     ResponseType `json:"type"`
}

// Message is one stored exchange of a chat session.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	UserMessage string             `bson:"user_message" json:"user_message"`
	BotResponse string             `bson:"bot_response" json:"bot_response"`
	Type        ResponseType       `bson:"type" json:"type"`
	Channel     MessageChannel     `bson:"channel,omitempty" json:"channel,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

type ChatRequest struct {
	Message   string         `json:"message" binding:"required"`
	SessionID string         `json:"session_id,omitempty"`
	Channel   MessageChannel `json:"channel,omitempty"`
}

type ChatResponse struct {
	Response  string       `json:"response"`
	Type      ResponseType `json:"type"`
	SessionID string       `json:"session_id,omitempty"`
}

// TopicInfo describes one knowledge base topic for API listings.
type TopicInfo struct {
	Category string   `json:"category"`
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
}

// CategoryInfo groups topic listings under their category.
type CategoryInfo struct {
	Name   string      `json:"name"`
	Topics []TopicInfo `json:"topics"`
}

// WhatsApp Webhook Models
type WhatsAppWebhookData struct {
	Object string          `json:"object"`
	Entry  []WhatsAppEntry `json:"entry"`
}

type WhatsAppEntry struct {
	ID      string           `json:"id"`
	Changes []WhatsAppChange `json:"changes"`
}

type WhatsAppChange struct {
	Field string        `json:"field"`
	Value WhatsAppValue `json:"value"`
}

type WhatsAppValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         WhatsAppMetadata  `json:"metadata"`
	Messages         []WhatsAppMessage `json:"messages,omitempty"`
	Statuses         []WhatsAppStatus  `json:"statuses,omitempty"`
}

type WhatsAppMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type WhatsAppMessage struct {
	From      string        `json:"from"`
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Type      string        `json:"type"`
	Text      *WhatsAppText `json:"text,omitempty"`
}

type WhatsAppText struct {
	Body string `json:"body"`
}

type WhatsAppStatus struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipient_id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// WhatsApp Send Message Models
type WhatsAppSendMessage struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             *WhatsAppText `json:"text,omitempty"`
}

// Service Status Model
type WhatsAppServiceStatus struct {
	Enabled           bool      `json:"enabled"`
	LastMessageSent   time.Time `json:"last_message_sent"`
	MessageCountToday int       `json:"message_count_today"`
	MessageCountTotal int64     `json:"message_count_total"`
}

// NewChatResponse wraps a router result for the transport layers.
func NewChatResponse(result ChatResult, sessionID string) *ChatResponse {
	return &ChatResponse{
		Response:  result.Response,
		Type:      result.Type,
		SessionID: sessionID,
	}
}
