package processor

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/valentinpelus/feedbacklens/pkg/classify"
	"github.com/valentinpelus/feedbacklens/pkg/history"
	"github.com/valentinpelus/feedbacklens/pkg/ingest"
	"github.com/valentinpelus/feedbacklens/pkg/priority"
	"github.com/valentinpelus/feedbacklens/pkg/slack"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// ErrNoRecords is returned when an upload yields no usable feedback records
var ErrNoRecords = errors.New("no valid feedback found in upload")

// Result is the outcome of one analysis run
type Result struct {
	Items         []types.AnalyzedFeedback `json:"items"`
	TopPriorities []types.AnalyzedFeedback `json:"topPriorities"`
	Format        string                   `json:"format"`
	Duration      time.Duration            `json:"-"`
}

// FeedbackProcessor runs one upload through ingest, classification and
// ranking. It holds no mutable state, so independent uploads can be
// processed concurrently.
type FeedbackProcessor struct {
	registry   *ingest.Registry
	classifier *classify.Classifier
	archive    *history.Archive // nil when history is disabled
	notifier   *slack.Client
}

// NewFeedbackProcessor creates a new feedback processor. archive may be nil.
func NewFeedbackProcessor(registry *ingest.Registry, classifier *classify.Classifier, archive *history.Archive, notifier *slack.Client) *FeedbackProcessor {
	return &FeedbackProcessor{
		registry:   registry,
		classifier: classifier,
		archive:    archive,
		notifier:   notifier,
	}
}

// Analyze processes one raw upload body end to end. It returns either a
// fully-populated result or a single error for the whole batch; there are no
// partial successes.
func (p *FeedbackProcessor) Analyze(ctx context.Context, body []byte) (*Result, error) {
	start := time.Now()

	records, format, err := p.registry.DetectAndConvert(body)
	if err != nil {
		log.Printf("Upload rejected: %v", err)
		return nil, ErrNoRecords
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	log.Printf("Ingested %d feedback records (format: %s)", len(records), format)

	items, err := p.classifier.ClassifyBatch(ctx, records)
	if err != nil {
		log.Printf("Classification batch failed: %v", err)
		return nil, err
	}

	result := &Result{
		Items:         items,
		TopPriorities: priority.Rank(items, priority.DefaultTopN),
		Format:        format,
		Duration:      time.Since(start),
	}

	log.Printf("Analyzed %d feedback items in %s", len(items), result.Duration.Round(time.Millisecond))

	// Best-effort side work; never affects the result of the run
	p.archiveItems(items)
	p.notify(items, result.Duration)

	return result, nil
}

// archiveItems stores analyzed items in the history archive, if enabled.
// Uses its own timeout so a slow database cannot stall the response path.
func (p *FeedbackProcessor) archiveItems(items []types.AnalyzedFeedback) {
	if p.archive == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stored := 0
		for _, item := range items {
			if err := p.archive.Store(ctx, history.FromAnalyzed(item)); err != nil {
				log.Printf("Warning: failed to archive feedback item %s: %v", item.ID, err)
				continue
			}
			stored++
		}
		log.Printf("Archived %d/%d feedback items", stored, len(items))
	}()
}

// notify posts a batch summary to Slack, if configured
func (p *FeedbackProcessor) notify(items []types.AnalyzedFeedback, duration time.Duration) {
	if p.notifier == nil || !p.notifier.IsConfigured() {
		return
	}

	go func() {
		if err := p.notifier.NotifyBatch(items, duration); err != nil {
			log.Printf("Failed to send Slack notification: %v", err)
		}
	}()
}
