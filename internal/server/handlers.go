package server

import (
	"encoding/json"
	"net/http"

	"github.com/govscope/govscope/pkg/ranking"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store.LoadManifest())
}

// month resolves the month query param, defaulting to the latest indexed
// month. Empty when nothing has been audited yet.
func (s *Server) month(r *http.Request) string {
	if m := r.URL.Query().Get("month"); m != "" {
		return m
	}
	if latest := s.Store.LoadManifest().Latest(); latest != nil {
		return latest.Month
	}
	return ""
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	// nil marshals as JSON null: missing data is an empty result here.
	writeJSON(w, s.Store.LoadSummary(s.month(r)))
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	metric := ranking.Metric(r.URL.Query().Get("metric"))
	if !metric.Valid() {
		metric = ranking.MetricPerformance
	}

	month := s.month(r)
	current := s.Store.LoadSummary(month)
	prev := s.Store.LoadSummary(s.Store.LoadManifest().PreviousMonth(month))

	writeJSON(w, ranking.Rank(current, prev, metric))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	tld := r.URL.Query().Get("tld")
	if tld == "" {
		http.Error(w, "tld query parameter required", http.StatusBadRequest)
		return
	}
	writeJSON(w, ranking.History(s.Store.LoadAllSummaries(), tld))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary := s.Store.LoadSummary(s.month(r))
	if summary == nil || len(summary.Reports) == 0 {
		writeJSON(w, nil)
		return
	}
	scores, err := ranking.Aggregate(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, scores)
}
