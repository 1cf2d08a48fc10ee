package history

import (
	"time"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// ArchivedItem represents an analyzed feedback item stored in the archive
type ArchivedItem struct {
	ID        string    `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	Source    string    `db:"source" json:"source"`
	Category  string    `db:"category" json:"category"`
	Sentiment string    `db:"sentiment" json:"sentiment"`
	Urgency   int       `db:"urgency" json:"urgency"`
	Impact    int       `db:"impact" json:"impact"`
	Summary   string    `db:"summary" json:"summary"`
	Embedding []float32 `db:"embedding" json:"-"` // Vector embedding for similarity search
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SimilarItem represents a similar past feedback item with similarity score
type SimilarItem struct {
	Item       *ArchivedItem `json:"item"`
	Similarity float32       `json:"similarity"` // Cosine similarity score (0-1)
}

// Config holds configuration for the history archive
type Config struct {
	DatabaseURL         string
	EmbeddingProvider   string // "openai" or "gemini"
	EmbeddingAPIKey     string
	EmbeddingModel      string
	SimilarityThreshold float32 // Minimum similarity score to consider (0.7-0.9 recommended)
	MaxSimilarItems     int     // Maximum number of similar items to retrieve
}

// FromAnalyzed creates an ArchivedItem from an analyzed feedback item
func FromAnalyzed(item types.AnalyzedFeedback) *ArchivedItem {
	return &ArchivedItem{
		ID:        item.ID,
		Content:   item.Content,
		Source:    item.Source,
		Category:  item.Category,
		Sentiment: item.Sentiment,
		Urgency:   item.Urgency,
		Impact:    item.Impact,
		Summary:   item.Summary,
		CreatedAt: item.CreatedAt,
	}
}

// GetSearchText returns a text representation for embedding generation
func (a *ArchivedItem) GetSearchText() string {
	return a.Category + " " + a.Sentiment + " " + a.Summary + " " + a.Content
}
