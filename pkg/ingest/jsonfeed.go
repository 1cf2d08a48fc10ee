package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// jsonFeedbackItem is the wire shape accepted from JSON exports
type jsonFeedbackItem struct {
	Content  string `json:"content"`
	Feedback string `json:"feedback"` // some exports label the text column "feedback"
	Source   string `json:"source"`
}

func (j jsonFeedbackItem) toRecord() (types.FeedbackRecord, bool) {
	content := strings.TrimSpace(j.Content)
	if content == "" {
		content = strings.TrimSpace(j.Feedback)
	}
	if content == "" {
		return types.FeedbackRecord{}, false
	}

	source := strings.TrimSpace(j.Source)
	if source == "" {
		source = types.DefaultSource
	}

	return types.FeedbackRecord{Content: content, Source: source}, true
}

// ParseJSONArray converts a JSON array of {content, source} objects into
// feedback records. Objects without usable content are dropped silently.
func ParseJSONArray(body []byte) ([]types.FeedbackRecord, error) {
	var items []jsonFeedbackItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("not a JSON feedback array: %w", err)
	}

	var records []types.FeedbackRecord
	for _, item := range items {
		if rec, ok := item.toRecord(); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

// ParseJSONLines converts newline-delimited JSON objects into feedback
// records. Every non-blank line must be a JSON object; lines with no usable
// content are dropped silently.
func ParseJSONLines(body []byte) ([]types.FeedbackRecord, error) {
	var records []types.FeedbackRecord

	scanner := bufio.NewScanner(strings.NewReader(string(body)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item jsonFeedbackItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("not JSON lines: %w", err)
		}

		if rec, ok := item.toRecord(); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan input: %w", err)
	}

	return records, nil
}
