package helper

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yishak-cs/marmitas/internal/database"
	"github.com/yishak-cs/marmitas/internal/services"
)

// AppConfig holds every runtime setting of the storefront
type AppConfig struct {
	Port           string
	Environment    string
	LogLevel       string
	Order          services.OrderConfig
	MaxSessions    int
	SessionIdleTTL time.Duration
	SweepInterval  time.Duration
	ToastDisplay   time.Duration
	CatalogFile    string
	ImagesDir      string
	AllowedOrigins []string
	Neo4j          database.Config
	Neo4jSeed      bool
}

// IsProduction reports whether the service runs in production mode
func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// LoadEnv reads a .env file when present
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}
}

// LoadConfigFromEnv loads the application configuration from environment variables
func LoadConfigFromEnv() AppConfig {
	def := services.DefaultOrderConfig()
	return AppConfig{
		Port:        getEnvOrDefault("APP_PORT", "8080"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Order: services.OrderConfig{
			BaseURL:        getEnvOrDefault("WHATSAPP_BASE_URL", def.BaseURL),
			Phone:          getEnvOrDefault("WHATSAPP_PHONE", def.Phone),
			Greeting:       getEnvOrDefault("ORDER_GREETING", def.Greeting),
			CurrencySymbol: getEnvOrDefault("CURRENCY_SYMBOL", def.CurrencySymbol),
		},
		MaxSessions:    getIntOrDefault("SESSION_MAX", 10000),
		SessionIdleTTL: time.Duration(getIntOrDefault("SESSION_IDLE_TTL_MIN", 120)) * time.Minute,
		SweepInterval:  time.Duration(getIntOrDefault("SESSION_SWEEP_INTERVAL_SEC", 60)) * time.Second,
		ToastDisplay:   time.Duration(getIntOrDefault("TOAST_DISPLAY_MS", 2000)) * time.Millisecond,
		CatalogFile:    getEnvOrDefault("CATALOG_FILE", ""),
		ImagesDir:      getEnvOrDefault("IMAGES_DIR", ""),
		AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		Neo4j: database.Config{
			URI:      getEnvOrDefault("NEO4J_URI", ""),
			Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
			Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
			Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
		},
		Neo4jSeed: getBoolOrDefault("NEO4J_SEED", false),
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
