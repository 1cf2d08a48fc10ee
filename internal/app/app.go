package app

import (
	"log"

	"github.com/valentinpelus/feedbacklens/internal/config"
	"github.com/valentinpelus/feedbacklens/internal/processor"
	"github.com/valentinpelus/feedbacklens/pkg/classify"
	"github.com/valentinpelus/feedbacklens/pkg/history"
	"github.com/valentinpelus/feedbacklens/pkg/ingest"
	"github.com/valentinpelus/feedbacklens/pkg/llm"
	"github.com/valentinpelus/feedbacklens/pkg/slack"
)

// App holds all application dependencies
type App struct {
	Config            *config.Config
	LLMProvider       llm.Provider
	Archive           *history.Archive
	FeedbackProcessor *processor.FeedbackProcessor
}

// New initializes a new application with all dependencies
func New() (*App, error) {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize LLM provider based on configuration
	factory := llm.NewFactory(llm.Config{
		Provider:        cfg.LLMProvider,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		OllamaURL:       cfg.OllamaURL,
		OllamaModel:     cfg.OllamaModel,
		BedrockRegion:   cfg.BedrockRegion,
		BedrockModel:    cfg.BedrockModel,
	})
	llmProvider, err := factory.CreateProvider()
	if err != nil {
		return nil, err
	}

	// Initialize upload format registry
	registry := ingest.NewRegistry(cfg.IngestFormats)

	// Initialize classifier
	classifier := classify.New(llmProvider, cfg.ClassifyWorkers)

	// Initialize history archive (if enabled)
	var archive *history.Archive
	if cfg.HistoryEnabled {
		if cfg.HistoryDatabaseURL == "" {
			log.Printf("WARNING: History archive enabled but HISTORY_DATABASE_URL not configured")
		} else {
			// Fallback to LLM provider API key if not separately configured
			embeddingAPIKey := cfg.HistoryAPIKey
			if embeddingAPIKey == "" {
				switch cfg.HistoryEmbedding {
				case "openai":
					embeddingAPIKey = cfg.OpenAIAPIKey
				case "gemini":
					embeddingAPIKey = cfg.GeminiAPIKey
				}
			}

			archive, err = history.NewArchive(&history.Config{
				DatabaseURL:         cfg.HistoryDatabaseURL,
				EmbeddingProvider:   cfg.HistoryEmbedding,
				EmbeddingAPIKey:     embeddingAPIKey,
				EmbeddingModel:      cfg.HistoryModel,
				SimilarityThreshold: float32(cfg.HistorySimilarity),
				MaxSimilarItems:     cfg.HistoryMaxResults,
			})
			if err != nil {
				log.Printf("WARNING: Failed to initialize history archive: %v", err)
				log.Printf("Continuing without history support")
				archive = nil
			} else {
				log.Printf("History archive enabled: %s embeddings, similarity threshold: %.2f",
					cfg.HistoryEmbedding, cfg.HistorySimilarity)
			}
		}
	}

	// Initialize Slack notifier
	notifier := slack.NewClient(cfg.SlackWebhookURL)

	// Initialize feedback processor
	feedbackProcessor := processor.NewFeedbackProcessor(registry, classifier, archive, notifier)

	return &App{
		Config:            cfg,
		LLMProvider:       llmProvider,
		Archive:           archive,
		FeedbackProcessor: feedbackProcessor,
	}, nil
}

// LogStartupInfo logs application startup information
func (a *App) LogStartupInfo() {
	log.Printf("Starting FeedbackLens on port %s", a.Config.Port)
	log.Printf("LLM Provider: %s", a.LLMProvider.Name())
	log.Printf("Classification workers: %d", a.Config.ClassifyWorkers)

	if a.Archive != nil {
		log.Printf("History archive: enabled")
	} else {
		log.Printf("History archive: disabled")
	}

	if a.Config.SlackWebhookURL != "" {
		log.Printf("Slack notifications: enabled")
	} else {
		log.Printf("Slack notifications: disabled")
	}
}
