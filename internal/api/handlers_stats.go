package api

import (
	"encoding/json"
	"net/http"
)

// handleClassifierStats exposes rolling sentiment-model latency stats.
func (s *Server) handleClassifierStats(w http.ResponseWriter, r *http.Request) {
	snap := s.orchestrator.Classifier().StatsSnapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"classifier":  snap,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
