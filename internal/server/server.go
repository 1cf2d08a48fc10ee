package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/valentinpelus/feedbacklens/internal/handler"
	"github.com/valentinpelus/feedbacklens/internal/processor"
	"github.com/valentinpelus/feedbacklens/pkg/history"
)

// Server wraps the HTTP server
type Server struct {
	port           string
	analyzeHandler *handler.AnalyzeHandler
	archive        *history.Archive // nil when history is disabled
}

// New creates a new HTTP server. archive may be nil, in which case the
// history endpoints are not registered.
func New(port string, feedbackProcessor *processor.FeedbackProcessor, archive *history.Archive) *Server {
	return &Server{
		port:           port,
		analyzeHandler: handler.NewAnalyzeHandler(feedbackProcessor),
		archive:        archive,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() {
	http.HandleFunc("/analyze", s.analyzeHandler.HandleAnalyze)
	http.HandleFunc("/health", handler.HandleHealth)

	if s.archive != nil {
		historyHandler := handler.NewHistoryHandler(s.archive)
		http.HandleFunc("/similar", historyHandler.HandleSimilar)
		http.HandleFunc("/stats", historyHandler.HandleStats)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.SetupRoutes()

	log.Printf("HTTP server listening on :%s", s.port)
	if err := http.ListenAndServe(":"+s.port, nil); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
