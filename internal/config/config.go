package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pdfagent/internal/indexer"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string
	LLMTimeout   time.Duration

	ChunkMaxLen  int
	ChunkOverlap int
	TopK         int

	PDFMaxPages  int
	PDFPageChars int

	PromptsFile string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or one of its parents, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		LLMModelName: getEnv("LLM_MODEL", "glm-4.5"),
		LLMAPIKey:    getEnv("LLM_API_KEY", os.Getenv("API_KEY")),
		PromptsFile:  getEnv("PROMPTS_FILE", ""),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY (or API_KEY) is required")
	}

	timeoutSecs, err := getPositiveInt("LLM_TIMEOUT_SECS", 120)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	if cfg.ChunkMaxLen, err = getPositiveInt("CHUNK_MAX_LEN", indexer.DefaultMaxLen); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getInt("CHUNK_OVERLAP", indexer.DefaultOverlap); err != nil {
		return nil, err
	}
	// Fail fast: a window that cannot advance would loop forever.
	if err := indexer.ValidateChunkConfig(cfg.ChunkMaxLen, cfg.ChunkOverlap); err != nil {
		return nil, fmt.Errorf("CHUNK_MAX_LEN/CHUNK_OVERLAP: %w", err)
	}

	if cfg.TopK, err = getPositiveInt("RETRIEVAL_TOP_K", 3); err != nil {
		return nil, err
	}
	if cfg.PDFMaxPages, err = getPositiveInt("PDF_MAX_PAGES", 3); err != nil {
		return nil, err
	}
	if cfg.PDFPageChars, err = getPositiveInt("PDF_PAGE_CHARS", 500); err != nil {
		return nil, err
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return v, nil
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	v, err := getInt(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return v, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}
