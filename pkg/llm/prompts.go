package llm

import (
	"fmt"
	"os"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// SystemPrompt frames the model's role for every classification request
const SystemPrompt = "You are a product feedback analyzer. Analyze the given feedback and return structured data."

// DefaultClassificationPromptTemplate is the default prompt template
// Variables available: {CONTENT}, {SOURCE}
const DefaultClassificationPromptTemplate = `Analyze this customer feedback and categorize it:

Feedback: "{CONTENT}"
Source: "{SOURCE}"

Determine:
1. Category (one of: bug, feature, ux, pricing, performance)
2. Sentiment (positive, neutral, or negative)
3. Urgency score (1-10, where 10 is most urgent)
4. Impact score (1-10, where 10 has highest impact)
5. A brief summary (max 100 chars)

Return ONLY valid JSON with this exact structure:
{
  "category": "bug|feature|ux|pricing|performance",
  "sentiment": "positive|neutral|negative",
  "urgency": <number 1-10>,
  "impact": <number 1-10>,
  "summary": "brief summary"
}`

// GetClassificationPromptTemplate returns the prompt template from env var or default
func GetClassificationPromptTemplate() string {
	if customPrompt := os.Getenv("CLASSIFICATION_PROMPT_TEMPLATE"); customPrompt != "" {
		return customPrompt
	}
	return DefaultClassificationPromptTemplate
}

// BuildClassificationPrompt creates the classification prompt shared across all providers.
// Quotes in the feedback are escaped so the prompt's own quoting survives.
func BuildClassificationPrompt(record types.FeedbackRecord) string {
	prompt := GetClassificationPromptTemplate()
	prompt = replaceAll(prompt, "{CONTENT}", escapeQuotes(record.Content))
	prompt = replaceAll(prompt, "{SOURCE}", escapeQuotes(record.Source))
	return prompt
}

func escapeQuotes(s string) string {
	return replaceAll(s, `"`, `\"`)
}

// replaceAll is a simple string replacement helper
func replaceAll(s, old, new string) string {
	result := ""
	for {
		idx := indexOf(s, old)
		if idx == -1 {
			result += s
			break
		}
		result += s[:idx] + new
		s = s[idx+len(old):]
	}
	return result
}

// indexOf finds the first occurrence of substr in s
func indexOf(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// describeProvider builds the human-readable provider label used in logs
func describeProvider(vendor, model string) string {
	return fmt.Sprintf("%s (%s)", vendor, model)
}
