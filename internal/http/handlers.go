package http

import (
	"net/http"
	"time"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether the store can serve reads.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	status := map[string]any{
		"status":   "ready",
		"revision": s.store.Revision(),
	}
	if err := s.store.LastPersistErr(); err != nil {
		status["last_persist_error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"uptime_seconds":       int64(time.Since(s.appMetrics.uptime).Seconds()),
		"expense_count":        len(s.store.Expenses()),
		"category_count":       len(s.store.Categories()),
		"store_revision":       s.store.Revision(),
		"cache_hits":           s.appMetrics.cacheHits.Load(),
		"cache_misses":         s.appMetrics.cacheMisses.Load(),
		"overview_cache_size":  s.overviewCache.Size(),
		"trend_cache_size":     s.trendCache.Size(),
		"rate_limited_clients": s.rateLimiter.ActiveClients(),
	})
}
