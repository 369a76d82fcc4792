package web

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ministry/internal/adapters/backend"
	"ministry/internal/adapters/http/middleware"
	"ministry/internal/adapters/http/perf"
	"ministry/internal/adapters/session"
	auditStore "ministry/internal/adapters/storage/audit"
	"ministry/internal/application/modal"
	"ministry/internal/application/orchestrators"
	"ministry/internal/config"
)

//go:embed templates static
var assets embed.FS

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Gateway   *backend.Gateway
	Sessions  session.Store
	Tokens    *session.Tokens
	Modals    *modal.Orchestrator
	Activity  auditStore.Store
	Collector *perf.Collector
	// Registry receives the HTTP collectors and is served on /metrics.
	Registry *prometheus.Registry
	Health   map[string]HealthCheck
	Config   config.App
}

// server carries the dependencies shared by every handler.
type server struct {
	gw        *backend.Gateway
	sessions  session.Store
	tokens    *session.Tokens
	modals    *modal.Orchestrator
	activity  auditStore.Store
	collector *perf.Collector
	gatherer  prometheus.Gatherer
	health    map[string]HealthCheck
	cfg       config.App
}

func newServer(d Deps) *server {
	s := &server{
		gw:        d.Gateway,
		sessions:  d.Sessions,
		tokens:    d.Tokens,
		modals:    d.Modals,
		activity:  d.Activity,
		collector: d.Collector,
		health:    d.Health,
		cfg:       d.Config,
	}
	if d.Registry != nil {
		s.gatherer = d.Registry
	}
	if s.modals == nil {
		s.modals = modal.NewOrchestrator()
	}
	return s
}

// NewMux wires HTTP handlers for the app.
// PRE: d.Config has passed Validate; Gateway, Sessions and Tokens are non-nil
func NewMux(d Deps) http.Handler {
	s := newServer(d)
	mux := s.routes()

	var metrics *middleware.HTTPMetrics
	if d.Registry != nil {
		metrics = middleware.NewHTTPMetrics(d.Registry)
	}
	limiter := middleware.NewRateLimiter(d.Config.RateLimit, time.Second)
	secure := d.Config.IsProduction()

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(d.Config.CSRFKey, secure, trustedOrigins(d.Config)),
		middleware.Auth(d.Sessions, d.Tokens),
		middleware.RateLimit(limiter),
		middleware.Timing(d.Collector, metrics, d.Config.SlowRequestMs),
	)
}

// trustedOrigins lists the hosts allowed to post forms from another origin in development.
func trustedOrigins(cfg config.App) []string {
	if cfg.IsProduction() {
		return nil
	}
	return []string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}
}

// routes registers every handler on a fresh mux. Authentication is applied per
// route so public pages stay reachable without a session.
func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	static, _ := fs.Sub(assets, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Public
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/lookup", s.handleLookup)
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	auth := func(path string, h http.HandlerFunc) {
		mux.Handle(path, middleware.RequireAuth(h))
	}

	auth("/logout", s.handleLogout)
	auth("/dashboard", s.handleDashboard)
	auth("/activity", s.handleActivity)
	auth("/admin/perf", s.handlePerf)

	// Modal state machine
	auth("/modals/open", s.handleModalOpen)
	auth("/modals/close", s.handleModalClose)
	auth("/modals/edit", s.handleModalEdit)

	// Students
	auth("/students", s.mutation(closeAndConfirm, s.createStudent))
	auth("/students/update", s.mutation(closeAndConfirm, s.updateStudent))
	auth("/students/delete", s.mutation(closeAndRedirect, s.deleteStudent))

	// Events
	auth("/events", s.mutation(closeAndConfirm, s.createEvent))
	auth("/events/update", s.mutation(closeAndConfirm, s.updateEvent))
	auth("/events/delete", s.mutation(closeAndRedirect, s.deleteEvent))
	auth("/events/checkin", s.mutation(stayOpen, s.checkIn))
	auth("/events/persist", s.mutation(stayOpen, s.persistAttendance))
	auth("/events/notes", s.mutation(stayOpen, s.addMeetingNote))
	auth("/checkin", s.mutation(stayOpen, s.quickCheckIn))

	// Groups
	auth("/groups", s.mutation(closeAndConfirm, s.createGroup))
	auth("/groups/update", s.mutation(closeAndConfirm, s.updateGroup))
	auth("/groups/delete", s.mutation(closeAndRedirect, s.deleteGroup))
	auth("/groups/members/add", s.mutation(stayOpen, s.groupMembership(orchestrators.AddMember)))
	auth("/groups/members/remove", s.mutation(stayOpen, s.groupMembership(orchestrators.RemoveMember)))
	auth("/groups/leaders/add", s.mutation(stayOpen, s.groupMembership(orchestrators.AddLeader)))
	auth("/groups/leaders/remove", s.mutation(stayOpen, s.groupMembership(orchestrators.RemoveLeader)))

	// Volunteers
	auth("/volunteers", s.mutation(closeAndConfirm, s.createVolunteer))
	auth("/volunteers/update", s.mutation(closeAndConfirm, s.updateVolunteer))
	auth("/volunteers/delete", s.mutation(closeAndRedirect, s.deleteVolunteer))
	auth("/volunteers/events/add", s.mutation(stayOpen, s.volunteerAssignment(false)))
	auth("/volunteers/events/remove", s.mutation(stayOpen, s.volunteerAssignment(true)))

	return mux
}

// handleRoot sends a visitor to the dashboard or the login page (GET /)
func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// backendURL is shown in the connectivity error.
func (s *server) backendURL() string {
	return strings.TrimRight(s.cfg.BackendURL, "/")
}
