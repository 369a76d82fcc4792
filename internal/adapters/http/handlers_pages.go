package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ministry/internal/application/listutil"
	"ministry/internal/application/projections"
)

// handleLookup renders the student and parent lookup page (GET /lookup?studentId=N)
// POST: a missing student shows a message; a backend failure shows a connection error
func (s *server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("studentId"))
	data := map[string]any{"StudentID": raw}
	if raw == "" {
		renderTemplate(w, r, "lookup.html", data)
		return
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		data["Error"] = "Please enter a valid Student ID"
		renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "lookup.html", data)
		return
	}

	result, err := projections.QueryGetStudentLookup(r.Context(), id, projections.GetStudentLookupDeps{Lookup: s.gw})
	if err != nil {
		data["Error"] = "Connection error: " + err.Error()
		renderTemplateStatus(w, r, http.StatusBadGateway, "lookup.html", data)
		return
	}
	data["Result"] = result
	status := http.StatusOK
	if result.NotFound {
		status = http.StatusNotFound
	}
	renderTemplateStatus(w, r, status, "lookup.html", data)
}

// handleActivity renders the leader activity log (GET /activity)
// PRE: User must be authenticated
// POST: Renders one page of activity, newest first, optionally filtered by category
func (s *server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	query := projections.GetActivityQuery{
		Category: q.Get("category"),
		Page:     listutil.ParsePage(q),
	}
	result, err := projections.QueryGetActivity(r.Context(), query, projections.GetActivityDeps{Store: s.activity})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "activity.html", map[string]any{
		"Activity":       result,
		"PerPageOptions": listutil.PerPageOptions,
	})
}

// handleHealth reports liveness and the state of each dependency (GET /healthz)
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(s.health))
	for name, check := range s.health {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

// handlePerf returns the request, query and backend timings (GET /admin/perf?minutes=N)
// PRE: User must be authenticated
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.collector == nil {
		http.Error(w, "performance collection is disabled", http.StatusNotFound)
		return
	}

	minutes := 60
	if v, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && v > 0 && v <= 24*60 {
		minutes = v
	}
	snap := s.collector.Snapshot(time.Now().Add(-time.Duration(minutes)*time.Minute), 10)
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
