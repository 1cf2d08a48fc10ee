package llm

import (
	"context"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// Provider defines the interface for LLM classification providers
// (Ollama, OpenAI, Claude, Gemini, Bedrock)
type Provider interface {
	// Classify sends one feedback record to the model and returns the raw
	// payload text. The payload is expected to be (or contain, fenced) a JSON
	// object with category, sentiment, urgency, impact and summary keys;
	// extraction and validation happen in the classify package.
	Classify(ctx context.Context, record types.FeedbackRecord) (string, error)

	// Name returns the provider name (for logging)
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	Provider string // "openai", "anthropic", "gemini", "ollama", "bedrock"

	// OpenAI-compatible APIs
	OpenAIAPIKey  string
	OpenAIModel   string // e.g., "gpt-4o", "gpt-4o-mini"
	OpenAIBaseURL string // override for OpenAI-compatible gateways

	// Anthropic-specific
	AnthropicAPIKey string
	AnthropicModel  string // e.g., "claude-3-5-sonnet-20241022"

	// Gemini-specific
	GeminiAPIKey string
	GeminiModel  string // e.g., "gemini-1.5-pro", "gemini-2.5-flash"

	// Ollama-specific
	OllamaURL   string
	OllamaModel string

	// AWS Bedrock-specific
	BedrockRegion string // e.g., "us-east-1", "us-west-2"
	BedrockModel  string // e.g., "anthropic.claude-3-5-sonnet-20241022-v2:0"
}
