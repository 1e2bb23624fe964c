// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration. Model provider settings live in
// llm.Config and are read separately.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	// AllowedOrigins restricts CORS. Empty means all origins are permitted.
	AllowedOrigins []string

	// EventsDB is the SQLite path for the model-call log. Empty disables it.
	EventsDB string

	QuestionCount   int
	MaxTopicLength  int
	StrictAnswers   bool
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		Port:            getEnv("QUIZGEN_PORT", getEnv("PORT", "5001")),
		GinMode:         getEnv("QUIZGEN_GIN_MODE", "release"),
		LogLevel:        getEnv("QUIZGEN_LOG_LEVEL", "info"),
		LogFormat:       getEnv("QUIZGEN_LOG_FORMAT", "json"),
		AllowedOrigins:  parseOrigins(os.Getenv("QUIZGEN_ALLOWED_ORIGINS")),
		EventsDB:        os.Getenv("QUIZGEN_EVENTS_DB"),
		QuestionCount:   getEnvInt("QUIZGEN_QUESTION_COUNT", 10),
		MaxTopicLength:  getEnvInt("QUIZGEN_MAX_TOPIC_LENGTH", 500),
		StrictAnswers:   getEnvBool("QUIZGEN_STRICT_ANSWERS", false),
		ShutdownTimeout: getEnvDuration("QUIZGEN_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
