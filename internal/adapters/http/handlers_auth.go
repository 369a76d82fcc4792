package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ministry/internal/adapters/http/middleware"
	"ministry/internal/adapters/session"
	"ministry/internal/application/orchestrators"
)

// discardSession removes a session that never reached the browser.
// A failed Clear is logged; the session then expires on its own TTL.
func (s *server) discardSession(ctx context.Context, id string) {
	if err := s.sessions.Clear(ctx, id); err != nil {
		slog.Warn("session_clear_failed", "session_id", id, "error", err.Error())
	}
}

// handleLogin handles GET (form) and POST (verify leader id) for /login
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		LeaderID: r.FormValue("leader_id"),
		IP:       middleware.ClientIP(r),
	}
	deps := orchestrators.LoginDeps{
		Leaders:  s.gw,
		Activity: s.activity,
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		msg := err.Error()
		status := http.StatusUnauthorized
		switch {
		case orchestrators.IsValidation(err):
			status = http.StatusUnprocessableEntity
		case !errors.Is(err, orchestrators.ErrLeaderNotFound):
			msg = "Connection error: " + msg
			status = http.StatusBadGateway
		}
		renderTemplateStatus(w, r, status, "login.html", map[string]any{
			"Error":    msg,
			"LeaderID": input.LeaderID,
		})
		return
	}

	sess := session.New(result.LeaderID, result.LeaderName)
	sess.Flash = result.Greeting
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		internalError(w, err)
		return
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		s.discardSession(r.Context(), sess.ID)
		internalError(w, err)
		return
	}

	middleware.SetSessionCookie(w, token, s.cfg.SessionTTL, s.cfg.IsProduction())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := currentSession(r)
	orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutInput{Actor: actor(r)},
		orchestrators.LogoutDeps{Activity: s.activity})

	s.modals.Forget(sess.ID)
	if err := s.sessions.Clear(r.Context(), sess.ID); err != nil {
		internalError(w, err)
		return
	}

	middleware.ClearSessionCookie(w, s.cfg.IsProduction())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
