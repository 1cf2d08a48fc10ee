// Package classify runs feedback records through the configured LLM provider
// and enforces the classification output contract. Provider failures are
// batch-fatal; malformed model output degrades only the affected item.
package classify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/valentinpelus/feedbacklens/pkg/llm"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// Fallback values applied when model output cannot be used
const (
	FallbackCategory  = "feature"
	FallbackSentiment = "neutral"
	FallbackScore     = 5
	SummaryMaxLen     = 100
)

// DefaultWorkers bounds concurrent in-flight classification requests
const DefaultWorkers = 4

// Classifier turns raw feedback records into analyzed items
type Classifier struct {
	provider llm.Provider
	workers  int
}

// New creates a classifier. workers <= 0 selects the default; 1 forces
// strictly sequential requests.
func New(provider llm.Provider, workers int) *Classifier {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Classifier{
		provider: provider,
		workers:  workers,
	}
}

// ClassifyBatch classifies every record and returns one analyzed item per
// input, in input order. Any provider failure aborts the whole batch:
// outstanding requests are cancelled and no partial results are returned, so
// a systemic problem (rate limit, exhausted quota, outage) surfaces once
// instead of masquerading as per-item data quality.
func (c *Classifier) ClassifyBatch(ctx context.Context, records []types.FeedbackRecord) ([]types.AnalyzedFeedback, error) {
	if len(records) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make([]types.AnalyzedFeedback, len(records))
	jobs := make(chan int, len(records))
	for i := range records {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		batchErr error
	)

	workers := c.workers
	if workers > len(records) {
		workers = len(records)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}

				raw, err := c.provider.Classify(ctx, records[i])
				if err != nil {
					errOnce.Do(func() {
						batchErr = normalizeServiceError(c.provider.Name(), err)
						cancel()
					})
					return
				}

				items[i] = c.buildItem(records[i], raw)
			}
		}()
	}

	wg.Wait()

	if batchErr != nil {
		return nil, batchErr
	}
	// Workers bail out silently when the caller cancels, leaving zero-valued
	// slots in items. Surface the cancellation instead of the half-built slice.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// modelAnalysis is the structured payload the service is instructed to
// return. Scores decode through pointers so an absent field (neutral default)
// is distinguishable from an explicit zero (clamped to 1).
type modelAnalysis struct {
	Category  string   `json:"category"`
	Sentiment string   `json:"sentiment"`
	Urgency   *float64 `json:"urgency"`
	Impact    *float64 `json:"impact"`
	Summary   string   `json:"summary"`
}

// buildItem converts one raw model payload into an analyzed item. Always
// succeeds: unusable payloads produce the deterministic degraded item.
func (c *Classifier) buildItem(record types.FeedbackRecord, raw string) types.AnalyzedFeedback {
	item := types.AnalyzedFeedback{
		ID:        uuid.New().String(),
		Content:   record.Content,
		Source:    record.Source,
		CreatedAt: time.Now(),
	}

	analysis, ok := parseAnalysis(raw)
	if !ok {
		log.Printf("Failed to parse %s response, using fallback analysis: %.120q", c.provider.Name(), raw)
		item.Category = FallbackCategory
		item.Sentiment = FallbackSentiment
		item.Urgency = FallbackScore
		item.Impact = FallbackScore
		item.Summary = truncate(record.Content, SummaryMaxLen)
		return item
	}

	// Per-field fallback: a valid payload with one bad field keeps the rest
	item.Category = strings.ToLower(strings.TrimSpace(analysis.Category))
	if !types.IsValidCategory(item.Category) {
		if item.Category != "" {
			log.Printf("%s returned invalid category %q, using %q", c.provider.Name(), analysis.Category, FallbackCategory)
		}
		item.Category = FallbackCategory
	}

	item.Sentiment = strings.ToLower(strings.TrimSpace(analysis.Sentiment))
	if !types.IsValidSentiment(item.Sentiment) {
		if item.Sentiment != "" {
			log.Printf("%s returned invalid sentiment %q, using %q", c.provider.Name(), analysis.Sentiment, FallbackSentiment)
		}
		item.Sentiment = FallbackSentiment
	}

	item.Urgency = clampScore(analysis.Urgency)
	item.Impact = clampScore(analysis.Impact)

	item.Summary = strings.TrimSpace(analysis.Summary)
	if item.Summary == "" {
		item.Summary = truncate(record.Content, SummaryMaxLen)
	} else {
		item.Summary = truncate(item.Summary, SummaryMaxLen)
	}

	return item
}

// parseAnalysis extracts and decodes the structured object from a raw payload
func parseAnalysis(raw string) (modelAnalysis, bool) {
	var analysis modelAnalysis

	jsonText, ok := extractJSON(raw)
	if !ok {
		return analysis, false
	}
	if err := json.Unmarshal([]byte(jsonText), &analysis); err != nil {
		return modelAnalysis{}, false
	}
	return analysis, true
}

// clampScore normalizes a model-provided score into the closed range [1,10].
// A missing score takes the neutral default.
func clampScore(v *float64) int {
	if v == nil {
		return FallbackScore
	}
	score := int(math.Round(*v))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// truncate limits s to n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// normalizeServiceError folds provider errors into the three batch-fatal
// classes. Rate-limit and quota sentinels pass through; everything else,
// including transport failures, becomes a generic service error.
func normalizeServiceError(providerName string, err error) error {
	if errors.Is(err, llm.ErrRateLimited) || errors.Is(err, llm.ErrQuotaExceeded) {
		return err
	}
	var serviceErr *llm.ServiceError
	if errors.As(err, &serviceErr) {
		return err
	}
	return &llm.ServiceError{
		Provider: providerName,
		Detail:   err.Error(),
	}
}
