package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"ministry/internal/application/modal"
	"ministry/internal/application/projections"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// dashboardPage is the data handed to dashboard.html.
type dashboardPage struct {
	Data       projections.DashboardResult
	BackendURL string
	Modal      *modalView
	Flash      string
	FlashError bool
	// Invalid and Form belong to a rejected quick check-in.
	Invalid fieldError
	Form    url.Values
}

// modalView is the open overlay with whatever its sections loaded.
// Exactly one of the entity pointers is set for detail and edit kinds.
type modalView struct {
	Kind     modal.Kind
	EntityID int
	// Error is the inline failure of the last write made from this modal.
	Error string
	// Invalid is a validation message shown next to its input.
	Invalid fieldError
	// ListErr is set when the entity's collection failed to load and only its id is known.
	ListErr string
	// Form holds the values posted by that write so the form is not lost.
	Form url.Values

	Student   *projections.StudentDetailResult
	Event     *projections.EventDetailResult
	Group     *projections.GroupDetailResult
	Volunteer *projections.VolunteerDetailResult
}

// dashboardOptions adjusts one dashboard render.
type dashboardOptions struct {
	status    int
	modalErr  string
	invalid   fieldError
	form      url.Values
	flash     string
	flashErr  bool
	skipFlash bool
}

func (s *server) dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{
		Students:   s.gw,
		Events:     s.gw,
		Groups:     s.gw,
		Volunteers: s.gw,
	}
}

// handleDashboard renders every collection and the active modal (GET /dashboard)
// PRE: User must be authenticated
// POST: Every collection is fetched fresh; a pending flash is consumed
func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.renderDashboard(w, r, dashboardOptions{})
}

// renderDashboard fetches the dashboard and overlays the session's active modal.
func (s *server) renderDashboard(w http.ResponseWriter, r *http.Request, opts dashboardOptions) {
	ctx := r.Context()
	sess := currentSession(r)

	data := projections.QueryGetDashboard(ctx, s.dashboardDeps())
	page := dashboardPage{
		Data:       data,
		BackendURL: s.backendURL(),
	}
	quick := opts.invalid.Action == quickCheckInAction && !data.Unavailable

	if m, ok := s.modals.Active(sess.ID); ok {
		view, found := s.buildModal(ctx, data, m)
		if found {
			if !quick {
				view.Error, view.Invalid, view.Form = opts.modalErr, opts.invalid, opts.form
			}
			page.Modal = &view
		} else {
			s.modals.Close(sess.ID)
			slog.Info("modal_event", "event", "closed_missing", "kind", string(m.Kind), "id", m.EntityID)
			opts.flash, opts.flashErr = "That item is no longer available.", true
		}
	}

	switch {
	case quick:
		page.Invalid, page.Form = opts.invalid, opts.form
	case page.Modal == nil && opts.invalid.Message != "":
		page.Flash, page.FlashError = opts.invalid.Message, true
	case page.Modal == nil && opts.modalErr != "":
		page.Flash, page.FlashError = opts.modalErr, true
	case opts.flash != "":
		page.Flash, page.FlashError = opts.flash, opts.flashErr
	case !opts.skipFlash:
		page.Flash, page.FlashError = s.takeFlash(ctx, sess)
	}

	status := opts.status
	if status == 0 {
		status = http.StatusOK
	}
	renderTemplateStatus(w, r, status, "dashboard.html", page)
}

// buildModal loads the sections of m. found is false when m names an entity
// missing from a snapshot whose collection loaded. When the collection itself
// failed the modal is built from the id alone and ListErr is set.
func (s *server) buildModal(ctx context.Context, data projections.DashboardResult, m modal.Modal) (modalView, bool) {
	view := modalView{Kind: m.Kind, EntityID: m.EntityID}
	if m.Kind.IsCreate() {
		return view, true
	}

	entity := m.Kind.Entity()
	missing := func() bool {
		if !data.SectionFailed(entity + "s") {
			return true
		}
		view.ListErr = "Could not load the latest " + entity + " details. Showing what is available."
		slog.Warn("modal_event", "event", "list_failed", "kind", string(m.Kind), "id", m.EntityID)
		return false
	}

	switch entity {
	case "student":
		st, ok := data.Student(m.EntityID)
		if !ok {
			if missing() {
				return view, false
			}
			st = student.Student{ID: m.EntityID}
		}
		detail := projections.StudentDetailResult{Student: st}
		if m.Kind == modal.KindStudent {
			detail = projections.QueryGetStudentDetail(ctx, st, projections.GetStudentDetailDeps{Attendance: s.gw})
		}
		view.Student = &detail
	case "event":
		ev, ok := data.Event(m.EntityID)
		if !ok {
			if missing() {
				return view, false
			}
			ev = event.Event{ID: m.EntityID}
		}
		detail := projections.EventDetailResult{Event: ev}
		if m.Kind == modal.KindEvent {
			detail = projections.QueryGetEventDetail(ctx, ev, projections.GetEventDetailDeps{
				Details:  s.gw,
				CheckIns: s.gw,
				Notes:    s.gw,
			})
		}
		view.Event = &detail
	case "group":
		g, ok := data.Group(m.EntityID)
		if !ok {
			if missing() {
				return view, false
			}
			g = group.Group{ID: m.EntityID}
		}
		detail := projections.GroupDetailResult{Group: g}
		// Membership choices need the group's members; without them nothing is offered.
		if m.Kind == modal.KindGroup && view.ListErr == "" {
			detail = projections.QueryGetGroupDetail(ctx, g, data.Students, projections.GetGroupDetailDeps{Leaders: s.gw})
		}
		view.Group = &detail
	case "volunteer":
		v, ok := data.Volunteer(m.EntityID)
		if !ok {
			if missing() {
				return view, false
			}
			v = volunteer.Volunteer{ID: m.EntityID}
		}
		detail := projections.VolunteerDetailResult{Volunteer: v}
		if m.Kind == modal.KindVolunteer {
			detail = projections.QueryGetVolunteerDetail(ctx, v, data.Events, projections.GetVolunteerDetailDeps{Records: s.gw})
		}
		view.Volunteer = &detail
	default:
		return view, false
	}
	return view, true
}

// handleModalOpen opens a modal (POST /modals/open)
// POST: 303 to the dashboard, or the dashboard with a refusal when a modal is already open
func (s *server) handleModalOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	kind, err := modal.ParseKind(r.FormValue("kind"))
	if err != nil {
		s.renderDashboard(w, r, dashboardOptions{status: http.StatusBadRequest, flash: "Unknown window.", flashErr: true})
		return
	}
	id, _ := strconv.Atoi(r.FormValue("id"))

	sess := currentSession(r)
	if _, err := s.modals.Open(sess.ID, modal.Modal{Kind: kind, EntityID: id}); err != nil {
		s.modalRefused(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleModalEdit swaps the open detail modal for its edit form (POST /modals/edit)
func (s *server) handleModalEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.modals.Edit(currentSession(r).ID); err != nil {
		s.modalRefused(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleModalClose closes the open modal (POST /modals/close)
// POST: closing when nothing is open is a no-op
func (s *server) handleModalClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.modals.Close(currentSession(r).ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// modalRefused re-renders the dashboard with the reason a modal transition was refused.
func (s *server) modalRefused(w http.ResponseWriter, r *http.Request, err error) {
	opts := dashboardOptions{status: http.StatusBadRequest, flashErr: true}
	switch {
	case errors.Is(err, modal.ErrAlreadyOpen):
		opts.status, opts.flash = http.StatusConflict, "Close the open window first."
	case errors.Is(err, modal.ErrMissingID):
		opts.flash = "Choose an item to open."
	case errors.Is(err, modal.ErrNothingOpen), errors.Is(err, modal.ErrNotEditable):
		opts.flash = "There is nothing to edit."
	default:
		opts.flash = "Unknown window."
	}
	s.renderDashboard(w, r, opts)
}
