package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"ministry/internal/adapters/http/middleware"
	"ministry/internal/adapters/session"
	"ministry/internal/application/orchestrators"
	"ministry/internal/domain/event"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs an unexpected failure and returns a generic 500.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderTemplate renders a page inside the layout with status 200.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

// renderTemplateStatus renders a page inside the layout.
// The page is executed into a buffer first so a template failure can still
// produce a clean 500 instead of a half-written page.
func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":  func() bool { return loggedIn },
		"leaderName":  func() string { return sess.LeaderName },
		"csrfToken":   func() string { return csrf.Token(r) },
		"csrfField":   func() template.HTML { return csrf.TemplateField(r) },
		"currentYear": func() int { return time.Now().Year() },
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"formValue":   formValue,
		"eventTypes":  func() []event.TypeHint { return event.TypeHints },
		"optionalID": func(id *int) string {
			if id == nil {
				return ""
			}
			return strconv.Itoa(*id)
		},
		"rowArgs": func(kind string, id int, label string) map[string]any {
			return map[string]any{"Kind": kind, "ID": id, "Label": label}
		},
		"deleteArgs": func(action, field string, id int) map[string]any {
			return map[string]any{"Action": action, "Field": field, "ID": id}
		},
		"noteAuthor":   func() string { return event.NoteAuthor },
		"activityTime": func(t time.Time) string { return t.Local().Format("2 Jan 2006 15:04") },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(assets,
		"templates/layout.html",
		"templates/partials/*.html",
		"templates/"+templateName,
	)
	if err != nil {
		internalError(w, fmt.Errorf("parse %s: %w", templateName, err))
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// formValue returns the submitted value for key when the form was posted back,
// otherwise fallback. Used to keep user input after a failed write.
func formValue(form url.Values, key, fallback string) string {
	if form != nil {
		if v, ok := form[key]; ok && len(v) > 0 {
			return v[0]
		}
	}
	return fallback
}

// actor identifies the logged-in leader for orchestrators.
// PRE: the route is behind RequireAuth
func actor(r *http.Request) orchestrators.Actor {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return orchestrators.Actor{
		LeaderID:   sess.LeaderID,
		LeaderName: sess.LeaderName,
		IP:         middleware.ClientIP(r),
	}
}

// currentSession returns the session of an authenticated route.
func currentSession(r *http.Request) session.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// setFlash stores a one-shot message shown on the next dashboard render.
func (s *server) setFlash(ctx context.Context, sess session.Session, msg string, isErr bool) {
	sess.Flash, sess.FlashError = msg, isErr
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Warn("flash_save_failed", "session_id", sess.ID, "error", err.Error())
	}
}

// takeFlash returns and clears the session's pending message.
func (s *server) takeFlash(ctx context.Context, sess session.Session) (string, bool) {
	if sess.Flash == "" {
		return "", false
	}
	msg, isErr := sess.Flash, sess.FlashError
	sess.Flash, sess.FlashError = "", false
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.Warn("flash_save_failed", "session_id", sess.ID, "error", err.Error())
	}
	return msg, isErr
}
