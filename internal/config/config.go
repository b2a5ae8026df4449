package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Text is for listing-description analysis (quality matters)
	Text string `json:"text"`

	// Vision is for listing-photo analysis (multi-modal)
	Vision string `json:"vision"`

	// Sentiment is for borderline comment classification (needs to be fast and cheap,
	// it runs once per escalated comment)
	Sentiment string `json:"sentiment"`

	// Question is for landlord question generation (fast, output is validated anyway)
	Question string `json:"question"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// Config holds the full server configuration
type Config struct {
	Port          string
	MongoURI      string // empty means run on the embedded dataset
	MongoDatabase string
	RedisAddr     string // empty means run without the review cache
	JWTSecret     string
	MaxImages     int
	AI            *AIConfig
}

// Load reads configuration from the environment, honoring a local .env
// file when present (the analyzer key usually lives there in dev).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "apartmenthunter"),
		RedisAddr:     os.Getenv("REDIS_URI"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		MaxImages:     getEnvIntOrDefault("MAX_IMAGES", 5),
		AI:            defaultAIConfig(),
	}
}

func defaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: GeminiModels{
			// Quality models for the listing itself
			Text:   getEnvOrDefault("GEMINI_MODEL_TEXT", "gemini-3-flash-preview"),
			Vision: getEnvOrDefault("GEMINI_MODEL_VISION", "gemini-3-flash-preview"),

			// Lightweight models for high-volume calls
			Sentiment: getEnvOrDefault("GEMINI_MODEL_SENTIMENT", "gemini-2.5-flash-lite"),
			Question:  getEnvOrDefault("GEMINI_MODEL_QUESTION", "gemini-2.5-flash-lite"),
		},
		TimeoutMS: getEnvIntOrDefault("GEMINI_TIMEOUT_MS", 10000),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
