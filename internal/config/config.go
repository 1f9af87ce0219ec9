package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultCompletionsURL = "https://api.llama.com/v1/chat/completions"

// Config holds application configuration values loaded from environment
// variables. It is constructed once at startup and passed to the components
// that need it; nothing reads the environment after LoadConfig returns.
type Config struct {
	DatabaseURL          string
	HTTPPort             string
	LlamaAPIKey          string
	LlamaAPIURL          string
	LlamaModel           string
	SystemPrompt         string
	MemoryLength         int // context window size, in messages
	JWTSecret            string
	SessionTTL           time.Duration
	AccessPassphrase     string // plaintext passphrase (dev convenience)
	AccessPassphraseHash string // bcrypt hash, takes precedence when set
	StaticDir            string // optional directory of built frontend assets
	UpstreamTimeout      time.Duration
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.")
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	apiKey := getEnv("LLAMA_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("LLAMA_API_KEY environment variable is not set")
	}

	passphrase := getEnv("ACCESS_PASSPHRASE", "")
	passphraseHash := getEnv("ACCESS_PASSPHRASE_HASH", "")
	if passphrase == "" && passphraseHash == "" {
		return nil, fmt.Errorf("either ACCESS_PASSPHRASE or ACCESS_PASSPHRASE_HASH must be set")
	}

	memoryLength, err := strconv.Atoi(getEnv("MEMORY_LENGTH", "15"))
	if err != nil || memoryLength <= 0 {
		log.Printf("Warning: Invalid MEMORY_LENGTH %q, using default 15.", os.Getenv("MEMORY_LENGTH"))
		memoryLength = 15
	}

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		log.Printf("Warning: Invalid SESSION_TTL_HOURS %q, using default 24h.", os.Getenv("SESSION_TTL_HOURS"))
		ttlHours = 24
	}

	upstreamTimeout, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "60"))
	if err != nil || upstreamTimeout <= 0 {
		log.Printf("Warning: Invalid UPSTREAM_TIMEOUT_SECONDS %q, using default 60s.", os.Getenv("UPSTREAM_TIMEOUT_SECONDS"))
		upstreamTimeout = 60
	}

	cfg := &Config{
		DatabaseURL:          dbURL,
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LlamaAPIKey:          apiKey,
		LlamaAPIURL:          getEnv("LLAMA_API_URL", defaultCompletionsURL),
		LlamaModel:           getEnv("LLAMA_MODEL", "Llama-3.3-70B-Instruct"),
		SystemPrompt:         getEnv("SYSTEM_PROMPT", "You are a helpful assistant."),
		MemoryLength:         memoryLength,
		JWTSecret:            getEnv("JWT_SECRET", "default-super-secret-key"), // CHANGE THIS IN PRODUCTION!
		SessionTTL:           time.Hour * time.Duration(ttlHours),
		AccessPassphrase:     passphrase,
		AccessPassphraseHash: passphraseHash,
		StaticDir:            getEnv("STATIC_DIR", ""),
		UpstreamTimeout:      time.Duration(upstreamTimeout) * time.Second,
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, Model=%s, MemoryLength=%d, SessionTTL=%s",
		cfg.HTTPPort, cfg.LlamaModel, cfg.MemoryLength, cfg.SessionTTL)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
