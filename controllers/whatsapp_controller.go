// controllers/whatsapp_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

type WhatsAppController struct {
	whatsappService *services.WhatsAppService
	chatbotService  *services.ChatbotService

	// in-flight webhook batches
	pending sync.WaitGroup
}

func NewWhatsAppController(whatsappService *services.WhatsAppService, chatbotService *services.ChatbotService) *WhatsAppController {
	return &WhatsAppController{
		whatsappService: whatsappService,
		chatbotService:  chatbotService,
	}
}

// VerifyWebhook handles the webhook verification request from WhatsApp
func (wc *WhatsAppController) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	verifyToken := wc.whatsappService.GetVerifyToken()
	if mode == "subscribe" && verifyToken != "" && token == verifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "Verification failed"})
}

// HandleWebhook processes incoming WhatsApp messages
func (wc *WhatsAppController) HandleWebhook(c *gin.Context) {
	var webhookData models.WhatsAppWebhookData

	if err := c.ShouldBindJSON(&webhookData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook data"})
		return
	}

	// The reply goes out after the request has finished
	ctx := context.WithoutCancel(c.Request.Context())

	wc.pending.Add(1)
	go func() {
		defer wc.pending.Done()
		wc.processWebhookData(ctx, webhookData)
	}()

	// Respond immediately to WhatsApp
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// Wait blocks until every accepted webhook has been handled.
func (wc *WhatsAppController) Wait() {
	wc.pending.Wait()
}

// GetStatus reports the WhatsApp channel status
func (wc *WhatsAppController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, wc.whatsappService.GetStatus())
}

// processWebhookData processes the webhook data
func (wc *WhatsAppController) processWebhookData(ctx context.Context, webhookData models.WhatsAppWebhookData) {
	for _, entry := range webhookData.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, message := range change.Value.Messages {
				wc.handleIncomingMessage(ctx, message)
			}
		}
	}
}

func (wc *WhatsAppController) handleIncomingMessage(ctx context.Context, message models.WhatsAppMessage) {
	if message.Type != "text" || message.Text == nil {
		log.Printf("Ignoring unsupported WhatsApp message type %q from %s", message.Type, message.From)
		return
	}

	text := strings.TrimSpace(message.Text.Body)
	if text == "" {
		return
	}

	response, err := wc.chatbotService.ProcessMessage(ctx, models.ChatRequest{
		Message:   text,
		SessionID: services.WhatsAppSessionID(message.From),
		Channel:   models.ChannelWhatsApp,
	})
	if err != nil {
		log.Printf("Failed to process WhatsApp message %s: %v", message.ID, err)
		return
	}

	if err := wc.whatsappService.SendTextMessage(ctx, message.From, response.Response); err != nil {
		log.Printf("Failed to send WhatsApp reply to %s: %v", message.From, err)
		return
	}

	if message.ID != "" {
		if err := wc.whatsappService.MarkMessageAsRead(ctx, message.ID); err != nil {
			log.Printf("Failed to mark message %s as read: %v", message.ID, err)
		}
	}
}
