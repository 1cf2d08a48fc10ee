package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Port            string
	LLMProvider     string // "openai", "anthropic", "gemini", "ollama", "bedrock"
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string // OpenAI-compatible gateway override
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	OllamaURL       string
	OllamaModel     string
	BedrockRegion   string
	BedrockModel    string
	ClassifyWorkers int      // concurrent classification requests per batch
	IngestFormats   []string // enabled upload formats; empty = all
	SlackWebhookURL string
	// History archive configuration
	HistoryEnabled     bool
	HistoryDatabaseURL string
	HistoryEmbedding   string  // "openai" or "gemini"
	HistoryAPIKey      string  // API key for embedding provider
	HistoryModel       string  // Embedding model name
	HistorySimilarity  float64 // Similarity threshold (0-1)
	HistoryMaxResults  int     // Max similar items to retrieve
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
		BedrockRegion:   getEnv("BEDROCK_REGION", "us-east-1"),
		BedrockModel:    getEnv("BEDROCK_MODEL", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		ClassifyWorkers: getEnvInt("CLASSIFY_WORKERS", 4),
		IngestFormats:   getEnvList("INGEST_FORMATS"),
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		// History archive
		HistoryEnabled:     getEnv("HISTORY_ENABLED", "false") == "true",
		HistoryDatabaseURL: getEnv("HISTORY_DATABASE_URL", ""),
		HistoryEmbedding:   getEnv("HISTORY_EMBEDDING_PROVIDER", "openai"),
		HistoryAPIKey:      getEnv("HISTORY_EMBEDDING_API_KEY", ""),
		HistoryModel:       getEnv("HISTORY_EMBEDDING_MODEL", "text-embedding-3-small"),
		HistorySimilarity:  getEnvFloat("HISTORY_SIMILARITY_THRESHOLD", 0.75),
		HistoryMaxResults:  getEnvInt("HISTORY_MAX_RESULTS", 5),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt gets an int environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable as a slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
