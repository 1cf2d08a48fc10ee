package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []types.FeedbackRecord
	}{
		{
			name:  "simple two column rows",
			input: "App crashes on login,Support Ticket\nGreat new dashboard,App Store Review",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
				{Content: "Great new dashboard", Source: "App Store Review"},
			},
		},
		{
			name:  "quoted field with embedded comma",
			input: `"Login is slow, very slow","Customer Survey"`,
			expected: []types.FeedbackRecord{
				{Content: "Login is slow, very slow", Source: "Customer Survey"},
			},
		},
		{
			name:  "escaped double quotes inside quoted field",
			input: `"The ""export"" button is broken",Email`,
			expected: []types.FeedbackRecord{
				{Content: `The "export" button is broken`, Source: "Email"},
			},
		},
		{
			name:  "missing source defaults to CSV Upload",
			input: "Please add dark mode",
			expected: []types.FeedbackRecord{
				{Content: "Please add dark mode", Source: "CSV Upload"},
			},
		},
		{
			name:  "blank source defaults to CSV Upload",
			input: "Please add dark mode,  ",
			expected: []types.FeedbackRecord{
				{Content: "Please add dark mode", Source: "CSV Upload"},
			},
		},
		{
			name:  "header row with content is skipped",
			input: "content,source\nApp crashes on login,Support Ticket",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
			},
		},
		{
			name:  "header row with feedback is skipped case-insensitively",
			input: "Feedback Text,Origin\nApp crashes on login,Support Ticket",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
			},
		},
		{
			name:  "no header line keeps every row",
			input: "Pricing is too high,Survey\nSearch returns nothing,Support",
			expected: []types.FeedbackRecord{
				{Content: "Pricing is too high", Source: "Survey"},
				{Content: "Search returns nothing", Source: "Support"},
			},
		},
		{
			name:  "blank lines are dropped",
			input: "\n\nApp crashes on login,Support Ticket\n\n   \nGreat new dashboard,Review\n",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
				{Content: "Great new dashboard", Source: "Review"},
			},
		},
		{
			name:  "rows with empty content are dropped",
			input: "App crashes on login,Support Ticket\n   ,Survey\n\"\",Email\nGreat new dashboard,Review",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
				{Content: "Great new dashboard", Source: "Review"},
			},
		},
		{
			name:  "windows line endings",
			input: "App crashes on login,Support Ticket\r\nGreat new dashboard,Review\r\n",
			expected: []types.FeedbackRecord{
				{Content: "App crashes on login", Source: "Support Ticket"},
				{Content: "Great new dashboard", Source: "Review"},
			},
		},
		{
			name:     "only header yields nothing",
			input:    "content,source\n",
			expected: nil,
		},
		{
			name:     "empty input yields nothing",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ParseCSV(tt.input)
			assert.Equal(t, tt.expected, records)
		})
	}
}

func TestParseCSV_OrderPreserved(t *testing.T) {
	input := "first item,A\nsecond item,B\nthird item,C"

	records := ParseCSV(input)
	require.Len(t, records, 3)
	assert.Equal(t, "first item", records[0].Content)
	assert.Equal(t, "second item", records[1].Content)
	assert.Equal(t, "third item", records[2].Content)
}

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "unquoted fields",
			line:     "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "quoted field with comma",
			line:     `"a,b",c`,
			expected: []string{"a,b", "c"},
		},
		{
			name:     "doubled quote escape",
			line:     `"say ""hi""",c`,
			expected: []string{`say "hi"`, "c"},
		},
		{
			name:     "trailing empty field",
			line:     "a,",
			expected: []string{"a", ""},
		},
		{
			name:     "single field",
			line:     "a",
			expected: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeLine(tt.line))
		})
	}
}
