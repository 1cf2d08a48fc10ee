package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/valentinpelus/feedbacklens/internal/processor"
	"github.com/valentinpelus/feedbacklens/pkg/llm"
	"github.com/valentinpelus/feedbacklens/pkg/priority"
)

// AnalyzeHandler handles feedback upload requests
type AnalyzeHandler struct {
	processor *processor.FeedbackProcessor
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(proc *processor.FeedbackProcessor) *AnalyzeHandler {
	return &AnalyzeHandler{
		processor: proc,
	}
}

// HandleAnalyze processes one uploaded feedback batch. The body is the raw
// upload (CSV, JSON array or JSON lines); an optional ?category= query
// parameter filters the returned item list ("all" or absent means no filter).
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read request body: %v", err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.processor.Analyze(r.Context(), body)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" && category != priority.CategoryAll {
		result.Items = priority.FilterByCategory(result.Items, category)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeAnalysisError maps the error taxonomy onto HTTP statuses so the
// caller knows whether to re-upload, wait, pay, or investigate
func writeAnalysisError(w http.ResponseWriter, err error) {
	var (
		status  int
		message string
	)

	switch {
	case errors.Is(err, processor.ErrNoRecords):
		status = http.StatusBadRequest
		message = "No valid feedback found. Check the upload format."
	case errors.Is(err, llm.ErrRateLimited):
		status = http.StatusTooManyRequests
		message = "Rate limit exceeded. Please try again later."
	case errors.Is(err, llm.ErrQuotaExceeded):
		status = http.StatusPaymentRequired
		message = "Payment required. Please add credits to your workspace."
	default:
		status = http.StatusBadGateway
		message = "AI analysis failed."
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// HandleHealth handles health check requests
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
