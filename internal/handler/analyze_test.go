package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valentinpelus/feedbacklens/internal/processor"
	"github.com/valentinpelus/feedbacklens/pkg/classify"
	"github.com/valentinpelus/feedbacklens/pkg/ingest"
	"github.com/valentinpelus/feedbacklens/pkg/llm"
	"github.com/valentinpelus/feedbacklens/pkg/slack"
	"github.com/valentinpelus/feedbacklens/pkg/types"
)

type stubProvider struct {
	classify func(ctx context.Context, record types.FeedbackRecord) (string, error)
}

func (s *stubProvider) Classify(ctx context.Context, record types.FeedbackRecord) (string, error) {
	return s.classify(ctx, record)
}

func (s *stubProvider) Name() string { return "stub" }

func newTestHandler(provider llm.Provider) *AnalyzeHandler {
	proc := processor.NewFeedbackProcessor(
		ingest.NewRegistry(nil),
		classify.New(provider, 1),
		nil,
		slack.NewClient(""),
	)
	return NewAnalyzeHandler(proc)
}

func classifyAsBug(ctx context.Context, record types.FeedbackRecord) (string, error) {
	category := "bug"
	if strings.Contains(record.Content, "dark mode") {
		category = "feature"
	}
	return fmt.Sprintf(`{"category":%q,"sentiment":"negative","urgency":8,"impact":7,"summary":%q}`, category, record.Content), nil
}

func postAnalyze(t *testing.T, h *AnalyzeHandler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)
	return rec
}

func TestHandleAnalyze_CSVUpload(t *testing.T) {
	h := newTestHandler(&stubProvider{classify: classifyAsBug})

	rec := postAnalyze(t, h, "/analyze", "App crashes on login,Support Ticket\nPlease add dark mode,Survey")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result processor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "csv", result.Format)
	assert.Equal(t, "bug", result.Items[0].Category)
	assert.Equal(t, "feature", result.Items[1].Category)
	assert.Len(t, result.TopPriorities, 2)
}

func TestHandleAnalyze_CategoryFilter(t *testing.T) {
	h := newTestHandler(&stubProvider{classify: classifyAsBug})

	rec := postAnalyze(t, h, "/analyze?category=feature", "App crashes on login,Support Ticket\nPlease add dark mode,Survey")
	require.Equal(t, http.StatusOK, rec.Code)

	var result processor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "feature", result.Items[0].Category)
}

func TestHandleAnalyze_CategoryAllIsIdentity(t *testing.T) {
	h := newTestHandler(&stubProvider{classify: classifyAsBug})

	rec := postAnalyze(t, h, "/analyze?category=all", "App crashes on login,Support Ticket\nPlease add dark mode,Survey")
	require.Equal(t, http.StatusOK, rec.Code)

	var result processor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Items, 2)
}

func TestHandleAnalyze_FilterWithNoMatchesSerializesEmptyArray(t *testing.T) {
	h := newTestHandler(&stubProvider{classify: classifyAsBug})

	rec := postAnalyze(t, h, "/analyze?category=pricing", "App crashes on login,Support Ticket")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestHandleAnalyze_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		classifyErr    error
		expectedStatus int
	}{
		{
			name:           "empty upload returns 400",
			body:           "   ",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rate limited returns 429",
			body:           "App crashes on login,Support Ticket",
			classifyErr:    fmt.Errorf("stub: %w", llm.ErrRateLimited),
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "quota exhausted returns 402",
			body:           "App crashes on login,Support Ticket",
			classifyErr:    fmt.Errorf("stub: %w", llm.ErrQuotaExceeded),
			expectedStatus: http.StatusPaymentRequired,
		},
		{
			name:           "provider outage returns 502",
			body:           "App crashes on login,Support Ticket",
			classifyErr:    &llm.ServiceError{Provider: "stub", StatusCode: 500, Detail: "boom"},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubProvider{
				classify: func(ctx context.Context, record types.FeedbackRecord) (string, error) {
					return "", tt.classifyErr
				},
			})

			rec := postAnalyze(t, h, "/analyze", tt.body)
			require.Equal(t, tt.expectedStatus, rec.Code)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.NotEmpty(t, payload["error"])
		})
	}
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&stubProvider{classify: classifyAsBug})

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	HandleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}
