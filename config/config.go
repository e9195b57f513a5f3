package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Knowledge base
	Knowledge KnowledgeConfig

	// Chat history storage
	Database DatabaseConfig

	// Security
	Security SecurityConfig

	// WhatsApp channel
	WhatsApp WhatsAppConfig
}

type KnowledgeConfig struct {
	Path     string // empty selects the embedded knowledge base
	TieBreak string // "declaration" or "lexicographic"
}

type DatabaseConfig struct {
	Type     string // "memory" or "mongodb"
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration

	// History retention
	HistoryTTL         time.Duration
	HistoryMaxMessages int
}

type SecurityConfig struct {
	RateLimitPerMin int // 0 disables rate limiting
	AllowedOrigins  []string
	TrustedProxies  []string
}

type WhatsAppConfig struct {
	APIURL        string
	APIVersion    string
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	AppSecret     string
}

// MaxHistoryTTL is the longest retention a MongoDB TTL index can express.
const MaxHistoryTTL = time.Duration(math.MaxInt32) * time.Second

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	c := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Knowledge: KnowledgeConfig{
			Path:     getEnv("KNOWLEDGE_BASE_PATH", ""),
			TieBreak: getEnv("KNOWLEDGE_TIE_BREAK", "declaration"),
		},

		Database: DatabaseConfig{
			Type:     getEnv("DB_TYPE", "memory"),
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "healthcare_assistant"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),

			HistoryTTL:         getEnvAsDuration("HISTORY_TTL", "24h"),
			HistoryMaxMessages: getEnvAsInt("HISTORY_MAX_MESSAGES", 200),
		},

		Security: SecurityConfig{
			RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MIN", 60),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			TrustedProxies:  getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},

		WhatsApp: WhatsAppConfig{
			APIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com"),
			APIVersion:    getEnv("WHATSAPP_API_VERSION", "v18.0"),
			AccessToken:   getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			VerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),
			AppSecret:     getEnv("WHATSAPP_APP_SECRET", ""),
		},
	}

	// Validate configuration
	if err := c.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg = c
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "memory":
	case "mongodb":
		if c.Database.URI == "" && (c.Database.Host == "" || c.Database.Port == "") {
			return fmt.Errorf("database URI or host/port must be provided")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	if c.Database.HistoryMaxMessages <= 0 {
		return fmt.Errorf("HISTORY_MAX_MESSAGES must be positive")
	}

	if c.Database.HistoryTTL <= 0 {
		return fmt.Errorf("HISTORY_TTL must be positive")
	}
	if c.Database.HistoryTTL > MaxHistoryTTL {
		return fmt.Errorf("HISTORY_TTL cannot exceed %s", MaxHistoryTTL)
	}

	if c.Security.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN cannot be negative")
	}

	switch c.Knowledge.TieBreak {
	case "declaration", "lexicographic":
	default:
		return fmt.Errorf("unknown tie-break policy: %s", c.Knowledge.TieBreak)
	}

	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// WhatsAppEnabled reports whether outbound WhatsApp credentials are present.
func (c *Config) WhatsAppEnabled() bool {
	return c.WhatsApp.AccessToken != "" && c.WhatsApp.PhoneNumberID != ""
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	switch c.Database.Type {
	case "mongodb":
		if c.Database.Username != "" && c.Database.Password != "" {
			return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
				c.Database.Username,
				c.Database.Password,
				c.Database.Host,
				c.Database.Port,
				c.Database.Name,
			)
		}
		return fmt.Sprintf("mongodb://%s:%s/%s",
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	default:
		return ""
	}
}
