package ingest

import (
	"strings"

	"github.com/valentinpelus/feedbacklens/pkg/types"
)

// ParseCSV converts raw delimited text into feedback records.
// The first column is the feedback content, the optional second column its
// source. Lines whose content is empty after trimming are dropped silently;
// the caller decides what zero records means. Output preserves line order.
func ParseCSV(text string) []types.FeedbackRecord {
	var records []types.FeedbackRecord
	sawFirstLine := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Heuristic header skip: a first line mentioning "content" or
		// "feedback" is a header row, not data. Column order is not validated.
		if !sawFirstLine {
			sawFirstLine = true
			lower := strings.ToLower(line)
			if strings.Contains(lower, "content") || strings.Contains(lower, "feedback") {
				continue
			}
		}

		fields := tokenizeLine(line)
		if len(fields) == 0 {
			continue
		}

		content := strings.TrimSpace(fields[0])
		if content == "" {
			continue
		}

		source := types.DefaultSource
		if len(fields) > 1 {
			if s := strings.TrimSpace(fields[1]); s != "" {
				source = s
			}
		}

		records = append(records, types.FeedbackRecord{
			Content: content,
			Source:  source,
		})
	}

	return records
}

// tokenizeLine splits a CSV line into fields. Handles double-quoted fields,
// commas inside quotes, and doubled quotes ("") as an escaped literal quote.
// A plain strings.Split on commas would corrupt quoted feedback text.
func tokenizeLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				// Escaped quote inside a quoted field
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())

	return fields
}
