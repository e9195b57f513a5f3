package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/controllers"
	"healthcare-assistant-backend/middleware"
	"healthcare-assistant-backend/services"
)

// Handlers are the controllers wired into the router.
type Handlers struct {
	Chatbot   *controllers.ChatbotController
	WebSocket *controllers.WebSocketController
	WhatsApp  *controllers.WhatsAppController
}

// NewEngine creates the gin engine with the shared middleware stack.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()

	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.Security.AllowedOrigins))

	return router, nil
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, chatbotService *services.ChatbotService, whatsappService *services.WhatsAppService) *Handlers {
	h := &Handlers{
		Chatbot:   controllers.NewChatbotController(chatbotService),
		WebSocket: controllers.NewWebSocketController(chatbotService, cfg.Security.AllowedOrigins),
		WhatsApp:  controllers.NewWhatsAppController(whatsappService, chatbotService),
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if err := chatbotService.HealthCheck(c.Request.Context()); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":              status,
			"timestamp":           time.Now(),
			"history_store":       cfg.Database.Type,
			"whatsapp_configured": cfg.WhatsAppEnabled(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public chat API
	public := router.Group("/api/v1")
	public.Use(middleware.RateLimit(cfg.Security.RateLimitPerMin))
	{
		public.POST("/chat", h.Chatbot.HandleChat)
		public.GET("/topics", h.Chatbot.GetSupportedTopics)
		public.GET("/history", h.Chatbot.GetChatHistory)
		public.DELETE("/history", h.Chatbot.ClearChatHistory)

		// WebSocket for real-time chat
		public.GET("/ws", h.WebSocket.HandleWebSocket)
	}

	// WhatsApp routes
	whatsapp := router.Group("/api/whatsapp")
	{
		whatsapp.GET("/webhook", h.WhatsApp.VerifyWebhook)
		whatsapp.POST("/webhook", middleware.VerifyWhatsAppSignature(cfg.WhatsApp.AppSecret), h.WhatsApp.HandleWebhook)
		whatsapp.GET("/admin/status", h.WhatsApp.GetStatus)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	return h
}
