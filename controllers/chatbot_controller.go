package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

const defaultHistoryLimit = 50

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	req.Channel = models.ChannelWeb

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	if errors.Is(err, services.ErrEmptyMessage) || errors.Is(err, services.ErrReservedSession) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChatHistory retrieves chat history for a session
func (cc *ChatbotController) GetChatHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	if services.IsReservedSession(sessionID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "session is not accessible"})
		return
	}

	limit := defaultHistoryLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	history, err := cc.chatbotService.GetChatHistory(c.Request.Context(), sessionID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve chat history",
		})
		return
	}
	if history == nil {
		history = []models.Message{}
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

// ClearChatHistory clears chat history
func (cc *ChatbotController) ClearChatHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	if services.IsReservedSession(sessionID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "session is not accessible"})
		return
	}

	if err := cc.chatbotService.ClearChatHistory(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear chat history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Chat history cleared successfully",
	})
}

// GetSupportedTopics returns the knowledge base topics grouped by category
func (cc *ChatbotController) GetSupportedTopics(c *gin.Context) {
	categories := cc.chatbotService.TopicsByCategory()
	count := 0
	for _, category := range categories {
		count += len(category.Topics)
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      count,
	})
}
