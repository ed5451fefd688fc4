package http

import (
	"fmt"
	"net/http"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether templates are loaded and the store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status, code := "ready", http.StatusOK
	checks := map[string]any{}

	if s.templates == nil || s.templates.Lookup("index.html") == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	snap := s.store.Snapshot()
	checks["store"] = map[string]any{
		"status":       "ok",
		"transactions": snap.Len(),
		"version":      snap.Version(),
	}
	checks["rate_limiter"] = map[string]any{
		"status":         "ok",
		"active_clients": s.limiter.ActiveClients(),
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	hits, misses := s.summaries.Stats()
	tm := s.tracer.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", name, help, name, kind, name, value)
	}
	metric("http_requests_total", "counter", "Total number of HTTP requests", tm.TotalRequests)
	metric("http_response_time_avg_ms", "gauge", "Average response time in milliseconds", tm.AverageResponseTime.Milliseconds())
	metric("transactions", "gauge", "Transactions currently in the store", snap.Len())
	metric("store_version", "counter", "Store operations that changed the collection", snap.Version())
	metric("summary_cache_hits_total", "counter", "Summary cache hits", hits)
	metric("summary_cache_misses_total", "counter", "Summary cache misses", misses)
	metric("rate_limit_rejected_total", "counter", "Requests rejected by the rate limiter", s.limiter.Rejected())
	metric("rate_limit_active_clients", "gauge", "Clients tracked by the rate limiter", s.limiter.ActiveClients())
	metric("suspicious_requests_total", "counter", "Requests flagged as suspicious", s.detector.SuspiciousRequests())
	metric("uptime_seconds", "gauge", "Seconds since the server started", int64(time.Since(s.started).Seconds()))
}
