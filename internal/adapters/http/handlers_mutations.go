package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"ministry/internal/application/orchestrators"
)

// afterWrite selects how a successful write responds.
type afterWrite int

const (
	// closeAndConfirm closes the modal and shows a confirmation that refreshes to the dashboard.
	closeAndConfirm afterWrite = iota
	// closeAndRedirect closes the modal and redirects at once with a flash.
	closeAndRedirect
	// stayOpen keeps the modal open and redirects with a flash.
	stayOpen
)

// writeFunc runs one orchestrator against the posted form.
type writeFunc func(ctx context.Context, a orchestrators.Actor, form url.Values) (orchestrators.MutationResult, error)

// confirmQuestions is the prompt shown before each destructive write.
var confirmQuestions = map[string]string{
	"/students/delete":   "Delete this student? This cannot be undone.",
	"/events/delete":     "Delete this event and its related data? This cannot be undone.",
	"/events/persist":    "Save every checked-in student as attendance for this event?",
	"/groups/delete":     "Delete this group? Its members and leaders are kept.",
	"/volunteers/delete": "Delete this volunteer? This cannot be undone.",
}

// quickCheckInAction is the dashboard's own form; its errors render on the page, not in a modal.
const quickCheckInAction = "/checkin"

// inlineFields lists, per form action, the inputs that render their own validation message.
// A validation error on any other field falls back to the modal banner.
var inlineFields = map[string][]string{
	"/students":              {"first_name", "last_name", "guardian_id"},
	"/students/update":       {"first_name", "last_name", "guardian_id"},
	"/events":                {"type", "notes", "event_type_id"},
	"/events/update":         {"type", "notes", "event_type_id"},
	"/events/checkin":        {"student_id"},
	"/events/notes":          {"content"},
	quickCheckInAction:       {"event_id", "student_id"},
	"/groups":                {"name"},
	"/groups/update":         {"name"},
	"/groups/members/add":    {"person_id"},
	"/groups/leaders/add":    {"person_id"},
	"/volunteers":            {"first_name", "last_name"},
	"/volunteers/update":     {"first_name", "last_name"},
	"/volunteers/events/add": {"event_id"},
}

// fieldError is a validation message tied to one input of one form.
type fieldError struct {
	Action  string
	Field   string
	Message string
}

// For returns the message when it belongs to field of the form posting to action.
func (e fieldError) For(action, field string) string {
	if e.Action == action && e.Field == field {
		return e.Message
	}
	return ""
}

func rendersInline(action, field string) bool {
	for _, f := range inlineFields[action] {
		if f == field {
			return true
		}
	}
	return false
}

// mutation adapts a writeFunc into a POST handler.
// POST: on failure the modal stays open with the error inline and nothing is refreshed
func (s *server) mutation(after afterWrite, run writeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		sess := currentSession(r)
		result, err := run(ctx, actor(r), r.PostForm)
		if err != nil {
			s.writeFailed(w, r, err)
			return
		}

		switch after {
		case closeAndConfirm:
			s.modals.Close(sess.ID)
			w.Header().Set("Refresh", refreshHeader(s.cfg.RefreshDelay.Seconds()))
			renderTemplate(w, r, "result.html", map[string]any{
				"Message": result.Message,
			})
		case closeAndRedirect:
			s.modals.Close(sess.ID)
			s.setFlash(ctx, sess, result.Message, false)
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		default:
			s.setFlash(ctx, sess, result.Message, false)
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		}
	}
}

func refreshHeader(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "; url=/dashboard"
}

// writeFailed renders the response for a write that did not go through.
func (s *server) writeFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, orchestrators.ErrConfirmationRequired) {
		s.renderConfirm(w, r)
		return
	}
	opts := dashboardOptions{
		status:    http.StatusBadGateway,
		form:      r.PostForm,
		skipFlash: true,
	}
	if !orchestrators.IsValidation(err) {
		opts.modalErr = "Error: " + err.Error()
		s.renderDashboard(w, r, opts)
		return
	}

	opts.status = http.StatusUnprocessableEntity
	if field := orchestrators.FieldOf(err); rendersInline(r.URL.Path, field) {
		opts.invalid = fieldError{Action: r.URL.Path, Field: field, Message: err.Error()}
	} else {
		opts.modalErr = err.Error()
	}
	s.renderDashboard(w, r, opts)
}

// confirmField is one hidden input carried through the confirm step.
type confirmField struct {
	Name  string
	Value string
}

// renderConfirm asks the leader to confirm a destructive write, re-posting the same form.
func (s *server) renderConfirm(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(r.PostForm))
	for name := range r.PostForm {
		if name == "confirm" || name == csrfFieldName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]confirmField, 0, len(names))
	for _, name := range names {
		fields = append(fields, confirmField{Name: name, Value: r.PostForm.Get(name)})
	}

	question := confirmQuestions[r.URL.Path]
	if question == "" {
		question = "Are you sure?"
	}
	renderTemplate(w, r, "confirm.html", map[string]any{
		"Action":   r.URL.Path,
		"Question": question,
		"Fields":   fields,
	})
}

// csrfFieldName is the hidden input gorilla/csrf reads the token from by default.
const csrfFieldName = "gorilla.csrf.Token"

func confirmed(form url.Values) bool {
	return form.Get("confirm") == "yes"
}

// Students

func (s *server) studentDeps() orchestrators.StudentDeps {
	return orchestrators.StudentDeps{Students: s.gw, Activity: s.activity}
}

func studentInput(a orchestrators.Actor, f url.Values) orchestrators.SaveStudentInput {
	return orchestrators.SaveStudentInput{
		Actor:      a,
		StudentID:  f.Get("student_id"),
		FirstName:  f.Get("first_name"),
		LastName:   f.Get("last_name"),
		GuardianID: f.Get("guardian_id"),
	}
}

func (s *server) createStudent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteCreateStudent(ctx, studentInput(a, f), s.studentDeps())
}

func (s *server) updateStudent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteUpdateStudent(ctx, studentInput(a, f), s.studentDeps())
}

func (s *server) deleteStudent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.DeleteInput{Actor: a, ID: f.Get("student_id"), Confirmed: confirmed(f)}
	return orchestrators.ExecuteDeleteStudent(ctx, in, s.studentDeps())
}

// Events

func (s *server) eventDeps() orchestrators.EventDeps {
	return orchestrators.EventDeps{Events: s.gw, Activity: s.activity}
}

func eventInput(a orchestrators.Actor, f url.Values) orchestrators.SaveEventInput {
	return orchestrators.SaveEventInput{
		Actor:       a,
		EventID:     f.Get("event_id"),
		Type:        f.Get("type"),
		Notes:       f.Get("notes"),
		EventTypeID: f.Get("event_type_id"),
	}
}

func (s *server) createEvent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteCreateEvent(ctx, eventInput(a, f), s.eventDeps())
}

func (s *server) updateEvent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteUpdateEvent(ctx, eventInput(a, f), s.eventDeps())
}

func (s *server) deleteEvent(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.DeleteInput{Actor: a, ID: f.Get("event_id"), Confirmed: confirmed(f)}
	return orchestrators.ExecuteDeleteEvent(ctx, in, s.eventDeps())
}

func checkInInput(a orchestrators.Actor, f url.Values) orchestrators.CheckInInput {
	return orchestrators.CheckInInput{Actor: a, EventID: f.Get("event_id"), StudentID: f.Get("student_id")}
}

func (s *server) checkIn(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteCheckIn(ctx, checkInInput(a, f), s.eventDeps())
}

func (s *server) quickCheckIn(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteQuickCheckIn(ctx, checkInInput(a, f), s.eventDeps())
}

func (s *server) persistAttendance(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.PersistInput{Actor: a, EventID: f.Get("event_id"), Confirmed: confirmed(f)}
	return orchestrators.ExecutePersistAttendance(ctx, in, s.eventDeps())
}

func (s *server) addMeetingNote(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.AddNoteInput{Actor: a, EventID: f.Get("event_id"), Content: f.Get("content")}
	return orchestrators.ExecuteAddMeetingNote(ctx, in, s.eventDeps())
}

// Groups

func (s *server) groupDeps() orchestrators.GroupDeps {
	return orchestrators.GroupDeps{Groups: s.gw, Activity: s.activity}
}

func groupInput(a orchestrators.Actor, f url.Values) orchestrators.SaveGroupInput {
	return orchestrators.SaveGroupInput{Actor: a, GroupID: f.Get("group_id"), Name: f.Get("name")}
}

func (s *server) createGroup(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteCreateGroup(ctx, groupInput(a, f), s.groupDeps())
}

func (s *server) updateGroup(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteUpdateGroup(ctx, groupInput(a, f), s.groupDeps())
}

func (s *server) deleteGroup(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.DeleteInput{Actor: a, ID: f.Get("group_id"), Confirmed: confirmed(f)}
	return orchestrators.ExecuteDeleteGroup(ctx, in, s.groupDeps())
}

func (s *server) groupMembership(change orchestrators.MembershipChange) writeFunc {
	return func(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
		in := orchestrators.GroupMembershipInput{
			Actor:    a,
			GroupID:  f.Get("group_id"),
			PersonID: f.Get("person_id"),
			Change:   change,
		}
		return orchestrators.ExecuteGroupMembership(ctx, in, s.groupDeps())
	}
}

// Volunteers

func (s *server) volunteerDeps() orchestrators.VolunteerDeps {
	return orchestrators.VolunteerDeps{Volunteers: s.gw, Activity: s.activity}
}

func volunteerInput(a orchestrators.Actor, f url.Values) orchestrators.SaveVolunteerInput {
	return orchestrators.SaveVolunteerInput{
		Actor:       a,
		VolunteerID: f.Get("volunteer_id"),
		FirstName:   f.Get("first_name"),
		LastName:    f.Get("last_name"),
	}
}

func (s *server) createVolunteer(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteCreateVolunteer(ctx, volunteerInput(a, f), s.volunteerDeps())
}

func (s *server) updateVolunteer(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	return orchestrators.ExecuteUpdateVolunteer(ctx, volunteerInput(a, f), s.volunteerDeps())
}

func (s *server) deleteVolunteer(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
	in := orchestrators.DeleteInput{Actor: a, ID: f.Get("volunteer_id"), Confirmed: confirmed(f)}
	return orchestrators.ExecuteDeleteVolunteer(ctx, in, s.volunteerDeps())
}

func (s *server) volunteerAssignment(remove bool) writeFunc {
	return func(ctx context.Context, a orchestrators.Actor, f url.Values) (orchestrators.MutationResult, error) {
		in := orchestrators.VolunteerAssignmentInput{
			Actor:       a,
			VolunteerID: f.Get("volunteer_id"),
			EventID:     f.Get("event_id"),
			Remove:      remove,
		}
		return orchestrators.ExecuteVolunteerAssignment(ctx, in, s.volunteerDeps())
	}
}
