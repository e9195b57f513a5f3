package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"healthcare-assistant-backend/models"
	"healthcare-assistant-backend/services"
)

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
}

// NewWebSocketController accepts upgrades from allowedOrigins only; "*"
// accepts any origin.
func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string) *WebSocketController {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := origins["*"]; ok {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

type wsIncoming struct {
	Message string `json:"message"`
}

// HandleWebSocket runs one interactive chat session. Every frame is answered
// through the same service call as the HTTP endpoint.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = services.NewSessionID()
	}
	if services.IsReservedSession(sessionID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "session is not accessible"})
		return
	}

	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	for {
		var msg wsIncoming
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Read error:", err)
			}
			break
		}

		req := models.ChatRequest{
			Message:   msg.Message,
			SessionID: sessionID,
			Channel:   models.ChannelWebSocket,
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			errMsg := "Failed to process message"
			if errors.Is(err, services.ErrEmptyMessage) {
				errMsg = err.Error()
			}
			if err := conn.WriteJSON(gin.H{"error": errMsg}); err != nil {
				log.Println("Write error:", err)
				break
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			log.Println("Write error:", err)
			break
		}
	}
}
