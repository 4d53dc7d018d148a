package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth; empty leaves the API open (local/dev use).
	APIKey string

	// Gemini enrichment
	EnrichEnabled bool
	GeminiAPIKey  string
	GeminiModel   string

	// Enrichment cache
	CacheDir string
	CacheTTL time.Duration

	// OCR
	OCRLanguage string
	MaxImageDim int

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		APIKey: os.Getenv("WINESCAN_API_KEY"),

		EnrichEnabled: envBool("ENABLE_GEMINI_ENRICHMENT", false),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-1.5-flash"),

		CacheDir: envOr("ENRICH_CACHE_DIR", ".winescan-cache"),
		CacheTTL: envDuration("ENRICH_CACHE_TTL", 7*24*time.Hour),

		OCRLanguage: envOr("OCR_LANGUAGE", "eng"),
		MaxImageDim: envInt("MAX_IMAGE_DIM", 2400),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 7 * 24 * time.Hour
	}
	if cfg.MaxImageDim < 0 {
		cfg.MaxImageDim = 0
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}

	return cfg
}

func (c Config) Validate() error {
	if c.EnrichEnabled && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when ENABLE_GEMINI_ENRICHMENT is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
