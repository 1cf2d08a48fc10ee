// Package history provides an optional Postgres archive of analyzed feedback
// items with embedding-based similarity search for recurring themes. The
// analysis pipeline never depends on it; archiving is best-effort.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Archive manages storage and retrieval of analyzed feedback items
type Archive struct {
	db                  *sql.DB
	embeddings          EmbeddingGenerator
	similarityThreshold float32
	maxSimilarItems     int
}

// NewArchive creates a new archive instance
func NewArchive(config *Config) (*Archive, error) {
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Initialize embeddings generator
	var embedGen EmbeddingGenerator
	switch config.EmbeddingProvider {
	case "openai":
		if config.EmbeddingAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for embedding provider")
		}
		embedGen = NewOpenAIEmbeddings(config.EmbeddingAPIKey, config.EmbeddingModel)
	case "gemini":
		if config.EmbeddingAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key is required for embedding provider")
		}
		embedGen = NewGeminiEmbeddings(config.EmbeddingAPIKey, config.EmbeddingModel)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", config.EmbeddingProvider)
	}

	// Set defaults
	similarityThreshold := config.SimilarityThreshold
	if similarityThreshold == 0 {
		similarityThreshold = 0.75 // Default to 75% similarity
	}

	maxSimilarItems := config.MaxSimilarItems
	if maxSimilarItems == 0 {
		maxSimilarItems = 5 // Default to top 5 similar items
	}

	return &Archive{
		db:                  db,
		embeddings:          embedGen,
		similarityThreshold: similarityThreshold,
		maxSimilarItems:     maxSimilarItems,
	}, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Store saves an analyzed feedback item to the archive
func (a *Archive) Store(ctx context.Context, item *ArchivedItem) error {
	// Generate embedding for similarity search
	embedding, err := a.embeddings.Generate(ctx, item.GetSearchText())
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	// Generate UUID if not set
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	query := `
		INSERT INTO feedback_items (
			id, content, source, category, sentiment, urgency, impact,
			summary, embedding, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = a.db.ExecContext(ctx, query,
		item.ID,
		item.Content,
		item.Source,
		item.Category,
		item.Sentiment,
		item.Urgency,
		item.Impact,
		item.Summary,
		pgvectorString(embedding),
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store feedback item: %w", err)
	}

	return nil
}

// FindSimilar finds archived items similar to the given text
func (a *Archive) FindSimilar(ctx context.Context, searchText string) ([]*SimilarItem, error) {
	embedding, err := a.embeddings.Generate(ctx, searchText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate search embedding: %w", err)
	}

	// Query for similar items using cosine similarity
	// Using pgvector's <=> operator for cosine distance (1 - similarity)
	query := `
		SELECT
			id, content, source, category, sentiment, urgency, impact,
			summary, created_at,
			1 - (embedding <=> $1::vector) as similarity
		FROM feedback_items
		WHERE 1 - (embedding <=> $1::vector) >= $2
		ORDER BY embedding <=> $1::vector
		LIMIT $3
	`

	rows, err := a.db.QueryContext(ctx, query,
		pgvectorString(embedding),
		a.similarityThreshold,
		a.maxSimilarItems,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar items: %w", err)
	}
	defer rows.Close()

	var similar []*SimilarItem
	for rows.Next() {
		var item ArchivedItem
		var similarity float32

		err := rows.Scan(
			&item.ID,
			&item.Content,
			&item.Source,
			&item.Category,
			&item.Sentiment,
			&item.Urgency,
			&item.Impact,
			&item.Summary,
			&item.CreatedAt,
			&similarity,
		)
		if err != nil {
			log.Printf("Warning: failed to scan row: %v", err)
			continue
		}

		similar = append(similar, &SimilarItem{
			Item:       &item,
			Similarity: similarity,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	log.Printf("Found %d similar feedback items (threshold: %.2f)", len(similar), a.similarityThreshold)
	return similar, nil
}

// GetStats returns statistics about the archive
func (a *Archive) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalItems int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback_items").Scan(&totalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to get total items: %w", err)
	}
	stats["total_items"] = totalItems

	categoryQuery := `
		SELECT category, COUNT(*) as count
		FROM feedback_items
		GROUP BY category
		ORDER BY count DESC
	`
	rows, err := a.db.QueryContext(ctx, categoryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get category stats: %w", err)
	}
	defer rows.Close()

	categoryCounts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			continue
		}
		categoryCounts[category] = count
	}
	stats["by_category"] = categoryCounts

	return stats, nil
}

// pgvectorString converts a float32 slice to pgvector format string
func pgvectorString(embedding []float32) string {
	if len(embedding) == 0 {
		return "[]"
	}

	result := "["
	for i, val := range embedding {
		if i > 0 {
			result += ","
		}
		result += fmt.Sprintf("%f", val)
	}
	result += "]"
	return result
}
