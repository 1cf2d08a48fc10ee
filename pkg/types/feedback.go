package types

import "time"

// FeedbackRecord represents one raw feedback entry extracted from an upload
type FeedbackRecord struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// DefaultSource is used when an upload row carries no source column
const DefaultSource = "CSV Upload"

// AnalyzedFeedback represents a feedback item after LLM classification
type AnalyzedFeedback struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	Category  string    `json:"category"`  // bug, feature, ux, pricing, performance
	Sentiment string    `json:"sentiment"` // positive, neutral, negative
	Urgency   int       `json:"urgency"`   // 1-10
	Impact    int       `json:"impact"`    // 1-10
	Summary   string    `json:"summary"`   // max 100 chars, never empty
	CreatedAt time.Time `json:"createdAt"`
}

// ValidCategories lists the closed set of feedback categories
var ValidCategories = map[string]bool{
	"bug": true, "feature": true, "ux": true, "pricing": true, "performance": true,
}

// ValidSentiments lists the closed set of sentiments
var ValidSentiments = map[string]bool{
	"positive": true, "neutral": true, "negative": true,
}

// IsValidCategory reports whether category is a member of the closed enumeration
func IsValidCategory(category string) bool {
	return ValidCategories[category]
}

// IsValidSentiment reports whether sentiment is a member of the closed enumeration
func IsValidSentiment(sentiment string) bool {
	return ValidSentiments[sentiment]
}
