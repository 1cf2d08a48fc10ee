// Package slack posts batch summaries to a Slack incoming webhook.
// Notifications are optional and best-effort; an unconfigured client is a
// no-op.
package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/valentinpelus/feedbacklens/pkg/priority"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// Client wraps a Slack incoming webhook
type Client struct {
	webhookURL string
	client     *http.Client
}

// NewClient creates a new Slack client. An empty webhook URL produces a
// client whose notifications are skipped.
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured returns true if a webhook URL is set
func (c *Client) IsConfigured() bool {
	return c.webhookURL != ""
}

type webhookMessage struct {
	Text string `json:"text"`
}

// NotifyBatch posts a one-message summary of a completed analysis batch
func (c *Client) NotifyBatch(items []types.AnalyzedFeedback, duration time.Duration) error {
	if !c.IsConfigured() {
		return nil
	}

	return c.send(buildBatchSummary(items, duration))
}

// buildBatchSummary renders the notification text for a completed batch
func buildBatchSummary(items []types.AnalyzedFeedback, duration time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Feedback analysis complete:* %d items in %s\n", len(items), duration.Round(time.Second))

	counts := priority.CountByCategory(items)
	var parts []string
	for _, category := range []string{"bug", "feature", "ux", "pricing", "performance"} {
		if n := counts[category]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", category, n))
		}
	}
	if len(parts) > 0 {
		sb.WriteString(strings.Join(parts, " | "))
		sb.WriteString("\n")
	}

	if top := priority.Rank(items, 1); len(top) > 0 {
		fmt.Fprintf(&sb, "Top priority (%d/20): %s", priority.Score(top[0]), top[0].Summary)
	}

	return sb.String()
}

// send posts a message to the webhook
func (c *Client) send(text string) error {
	payload, err := json.Marshal(webhookMessage{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	resp, err := c.client.Post(c.webhookURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Slack webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
