package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	DatabasePath       string
	LogLevel           string
	MaxUploadSizeBytes int64

	// ProfileOverridesPath points at an optional YAML file of extra header aliases per vendor.
	ProfileOverridesPath string
	AllowedOrigins       []string
	StatsCacheTTL        time.Duration

	RateLimitInterval time.Duration
	RateLimitBurst    int

	// Prop-firm defaults for the drawdown report.
	PropAccountSize        float64
	PropDailyLossPercent   float64
	PropMaxDrawdownPercent float64
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil || maxUploadSizeBytes <= 0 {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./tradejournal.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		ProfileOverridesPath: getEnv("PROFILE_OVERRIDES_PATH", ""),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		StatsCacheTTL:        getEnvAsDuration("STATS_CACHE_TTL", 15*time.Minute),

		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 30),

		PropAccountSize:        getEnvAsFloat("PROP_ACCOUNT_SIZE", 5000),
		PropDailyLossPercent:   getEnvAsFloat("PROP_DAILY_LOSS_PERCENT", 4),
		PropMaxDrawdownPercent: getEnvAsFloat("PROP_MAX_DRAWDOWN_PERCENT", 8),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, Origins=%v",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.AllowedOrigins)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid positive number for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
