// config.go - Loads service configuration from the environment (and .env)

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned by Load when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Config holds every setting the service needs. It is built once at startup
// and passed to the components that need it.
type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	LogLevel       string

	Database Database

	JWTSecret string
	TokenTTL  time.Duration

	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	RedisAddr     string
	RedisPassword string

	RateLimitRPS   float64
	RateLimitBurst int

	CreateAdmin   bool
	AdminEmail    string
	AdminPassword string
}

// Database selects the gorm dialect and its connection target.
type Database struct {
	Driver string // "sqlite" or "postgres"
	Path   string // sqlite file
	URL    string // postgres DSN
}

// Load reads .env (if present) and the environment. A missing JWT_SECRET is
// an error: there is no fallback key.
func Load() (*Config, error) {
	_ = godotenv.Load() // no .env file is fine, the environment still applies

	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:   getEnv("DB_PATH", "gallery.db"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:        time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "ui-gallery-backend"),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "gallery"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		CreateAdmin:     getEnvBool("CREATE_ADMIN", false),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * time.Minute
	}
	if cfg.CreateAdmin && (cfg.AdminEmail == "" || cfg.AdminPassword == "") {
		return nil, errors.New("CREATE_ADMIN requires ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.URL == "" {
		return nil, errors.New("DB_DRIVER=postgres requires DATABASE_URL")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
