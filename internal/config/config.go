// Package config provides environment configuration for the API server.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Mongo settings
	MongoURI      string
	MongoDatabase string

	// Auth settings
	FirebaseCredentialsPath string
	DevJWTSecret            string

	// Ollama settings
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	// NATS settings (optional event publishing)
	NATSURL   string
	NATSToken string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// ErrMissingMongoURI is returned when MONGO_URI is not set.
var ErrMissingMongoURI = errors.New("MONGO_URI is required")

// ErrMissingCredentials is returned when neither a Firebase credentials file
// nor a development JWT secret is configured.
var ErrMissingCredentials = errors.New("FIREBASE_CREDENTIALS_PATH or DEV_JWT_SECRET is required")

// Load reads configuration from environment variables. It fails when a
// required variable is absent so the process can exit at startup.
func Load() (*Config, error) {
	cfg := &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Mongo
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "lawbot"),

		// Auth
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		DevJWTSecret:            getEnv("DEV_JWT_SECRET", ""),

		// Ollama
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434/api/chat"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "casemate"),
		OllamaTimeout: getDurationEnv("OLLAMA_TIMEOUT", 60*time.Second),

		// NATS
		NATSURL:   getEnv("NATS_URL", ""),
		NATSToken: getEnv("NATS_TOKEN", ""),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}

	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.FirebaseCredentialsPath == "" && cfg.DevJWTSecret == "" {
		return nil, ErrMissingCredentials
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
