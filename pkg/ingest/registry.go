// Package ingest turns user-supplied upload blobs into feedback records.
// CSV is the primary format; JSON array and JSON lines exports are accepted
// through the same registry so callers never have to name the format.
package ingest

import (
	"fmt"
	"strings"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// Registry manages enabled upload formats
type Registry struct {
	enabledFormats map[string]bool
}

// NewRegistry creates a registry with the given formats enabled.
// Known formats: "csv", "json", "jsonl". Passing none enables all.
func NewRegistry(enabledFormats []string) *Registry {
	registry := &Registry{
		enabledFormats: make(map[string]bool),
	}

	if len(enabledFormats) == 0 {
		enabledFormats = []string{"csv", "json", "jsonl"}
	}

	for _, format := range enabledFormats {
		registry.enabledFormats[strings.ToLower(strings.TrimSpace(format))] = true
	}

	return registry
}

// IsEnabled checks if a format is enabled
func (r *Registry) IsEnabled(format string) bool {
	return r.enabledFormats[format]
}

// DetectAndConvert attempts to detect the upload format and convert it to
// feedback records. Returns the records, the detected format name, and any
// error. JSON shapes are tried first because valid JSON is never valid CSV
// data, while almost anything tokenizes as CSV.
func (r *Registry) DetectAndConvert(body []byte) ([]types.FeedbackRecord, string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, "", fmt.Errorf("empty upload body")
	}

	if r.IsEnabled("json") && strings.HasPrefix(trimmed, "[") {
		if records, err := ParseJSONArray(body); err == nil {
			return records, "json", nil
		}
	}

	if r.IsEnabled("jsonl") && strings.HasPrefix(trimmed, "{") {
		if records, err := ParseJSONLines(body); err == nil {
			return records, "jsonl", nil
		}
	}

	if r.IsEnabled("csv") {
		return ParseCSV(string(body)), "csv", nil
	}

	return nil, "", fmt.Errorf("upload did not match any enabled format")
}
