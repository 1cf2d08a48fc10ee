package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/valentinpelus/feedbacklens/pkg/history"
)

// SimilarityArchive is the archive surface the history endpoints need
type SimilarityArchive interface {
	FindSimilar(ctx context.Context, searchText string) ([]*history.SimilarItem, error)
	GetStats(ctx context.Context) (map[string]interface{}, error)
}

// HistoryHandler exposes the feedback archive: similarity lookups for
// recurring themes and aggregate stats. Only wired when an archive is
// configured.
type HistoryHandler struct {
	archive SimilarityArchive
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(archive SimilarityArchive) *HistoryHandler {
	return &HistoryHandler{
		archive: archive,
	}
}

// HandleSimilar finds archived feedback similar to the text in the ?q=
// query parameter
func (h *HistoryHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Missing q query parameter."})
		return
	}

	similar, err := h.archive.FindSimilar(r.Context(), query)
	if err != nil {
		log.Printf("Similarity lookup failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "Similarity lookup failed."})
		return
	}
	if similar == nil {
		similar = []*history.SimilarItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"similar": similar}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// HandleStats returns aggregate archive statistics
func (h *HistoryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.archive.GetStats(r.Context())
	if err != nil {
		log.Printf("Failed to get archive stats: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to get archive stats."})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
