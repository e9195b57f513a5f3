// services/whatsapp_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/models"
)

type WhatsAppService struct {
	apiURL        string
	apiVersion    string
	accessToken   string
	phoneNumberID string
	verifyToken   string
	httpClient    *http.Client

	// Status tracking
	statusMu        sync.RWMutex
	lastMessageTime time.Time
	messageCount    int64
	dailyCount      map[string]int
}

func NewWhatsAppService(cfg config.WhatsAppConfig) *WhatsAppService {
	return &WhatsAppService{
		apiURL:        strings.TrimRight(cfg.APIURL, "/"),
		apiVersion:    cfg.APIVersion,
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
		verifyToken:   cfg.VerifyToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		dailyCount: make(map[string]int),
	}
}

// GetVerifyToken returns the webhook verification token
func (ws *WhatsAppService) GetVerifyToken() string {
	return ws.verifyToken
}

// SendTextMessage sends a simple text message
func (ws *WhatsAppService) SendTextMessage(ctx context.Context, to string, message string) error {
	payload := models.WhatsAppSendMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               ws.CleanPhoneNumber(to),
		Type:             "text",
		Text: &models.WhatsAppText{
			Body: ToWhatsAppFormatting(message),
		},
	}

	err := ws.sendRequest(ctx, payload)
	if err != nil {
		whatsappSentTotal.WithLabelValues("error").Inc()
		return err
	}
	whatsappSentTotal.WithLabelValues("ok").Inc()
	return nil
}

// MarkMessageAsRead marks a message as read
func (ws *WhatsAppService) MarkMessageAsRead(ctx context.Context, messageID string) error {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"status":            "read",
		"message_id":        messageID,
	}

	return ws.sendRequest(ctx, payload)
}

// sendRequest posts a payload to the Graph API messages endpoint
func (ws *WhatsAppService) sendRequest(ctx context.Context, payload interface{}) error {
	url := fmt.Sprintf("%s/%s/%s/messages", ws.apiURL, ws.apiVersion, ws.phoneNumberID)

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+ws.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ws.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorResp map[string]interface{}
		if err := json.Unmarshal(body, &errorResp); err == nil {
			log.Printf("WhatsApp API error details: %+v", errorResp)
			return fmt.Errorf("WhatsApp API error: %v", errorResp)
		}
		return fmt.Errorf("WhatsApp API error: %s", string(body))
	}

	ws.updateMessageStatus()
	return nil
}

// CleanPhoneNumber keeps only the digits of a phone number
func (ws *WhatsAppService) CleanPhoneNumber(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	// Add country code if missing (assuming US)
	if len(cleaned) == 10 {
		cleaned = "1" + cleaned
	}

	return cleaned
}

// ToWhatsAppFormatting converts markdown bold markers to WhatsApp ones.
func ToWhatsAppFormatting(text string) string {
	return strings.ReplaceAll(text, "**", "*")
}

// updateMessageStatus updates internal message tracking
func (ws *WhatsAppService) updateMessageStatus() {
	ws.statusMu.Lock()
	defer ws.statusMu.Unlock()

	ws.lastMessageTime = time.Now()
	ws.messageCount++

	today := time.Now().Format("2006-01-02")
	ws.dailyCount[today]++
}

// GetStatus returns the service status
func (ws *WhatsAppService) GetStatus() models.WhatsAppServiceStatus {
	ws.statusMu.RLock()
	defer ws.statusMu.RUnlock()

	today := time.Now().Format("2006-01-02")

	return models.WhatsAppServiceStatus{
		Enabled:           ws.accessToken != "" && ws.phoneNumberID != "",
		LastMessageSent:   ws.lastMessageTime,
		MessageCountToday: ws.dailyCount[today],
		MessageCountTotal: ws.messageCount,
	}
}
