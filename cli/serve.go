package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"healthcare-assistant-backend/config"
	"healthcare-assistant-backend/database"
	"healthcare-assistant-backend/routes"
	"healthcare-assistant-backend/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP, WebSocket and WhatsApp chat server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := newQueryRouter(cfg)
	if err != nil {
		return err
	}
	log.Printf("Knowledge base loaded: %d topics", router.KnowledgeBase().Len())

	// Connect to history store
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.Connect(connectCtx, cfg)
	cancelConnect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("Failed to close history store: %v", err)
		}
	}()

	// Verify WhatsApp configuration
	if err := verifyWhatsAppConfig(cfg); err != nil {
		log.Printf("WARNING: WhatsApp integration may not work properly: %v", err)
	} else {
		log.Println("WhatsApp configuration verified successfully")
	}

	engine, err := routes.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure router: %w", err)
	}

	chatbotService := services.NewChatbotService(router, store)
	handlers := routes.SetupRoutes(engine, cfg, chatbotService, services.NewWhatsAppService(cfg.WhatsApp))

	// Log available endpoints
	logAvailableEndpoints(engine)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Port)
		log.Printf("WhatsApp webhook URL: http://localhost:%s/api/whatsapp/webhook", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	handlers.WhatsApp.Wait()

	log.Println("Server exited")
	return nil
}

// verifyWhatsAppConfig checks if WhatsApp configuration is present
func verifyWhatsAppConfig(cfg *config.Config) error {
	missing := []string{}
	if cfg.WhatsApp.AccessToken == "" {
		missing = append(missing, "WHATSAPP_ACCESS_TOKEN")
	}
	if cfg.WhatsApp.PhoneNumberID == "" {
		missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
	}
	if cfg.WhatsApp.VerifyToken == "" {
		missing = append(missing, "WHATSAPP_VERIFY_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}

	return nil
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine) {
	log.Println("\nAvailable endpoints:")
	for _, route := range router.Routes() {
		log.Printf("  %s %s", route.Method, route.Path)
	}
	log.Println("")
}
