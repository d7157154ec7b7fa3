package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultMaxFileSize  = 50 * 1024 * 1024 // 50MB
	defaultExcerptLimit = 4000
	defaultSinkTimeout  = 30 * time.Second
	defaultPort         = "8080"
)

var (
	appOnce   sync.Once
	appConfig *AppConfig
)

// AppConfig holds process configuration. The sink URL has no default value:
// it must be supplied through the environment or delivery is disabled.
type AppConfig struct {
	Port             string
	SinkWebhookURL   string
	SinkTimeout      time.Duration
	MaxFileSize      int64
	TextExcerptLimit int
}

// GetAppConfig loads configuration once from the environment, optionally
// seeded from a .env file in the working directory.
func GetAppConfig() *AppConfig {
	appOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, falling back to environment variables")
		}

		appConfig = &AppConfig{
			Port:             envOr("PORT", defaultPort),
			SinkWebhookURL:   os.Getenv("SINK_WEBHOOK_URL"),
			SinkTimeout:      envDuration("SINK_TIMEOUT_SECONDS", defaultSinkTimeout),
			MaxFileSize:      envInt64("MAX_FILE_SIZE_BYTES", defaultMaxFileSize),
			TextExcerptLimit: envInt("TEXT_EXCERPT_LIMIT", defaultExcerptLimit),
		}
	})
	return appConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("Warning: invalid value for %s, using default", key)
	}
	return fallback
}
