package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/event"
)

// EventWriter is the backend surface needed by event mutations.
type EventWriter interface {
	CreateEvent(ctx context.Context, in backend.EventInput) (event.Event, error)
	UpdateEvent(ctx context.Context, eventID int, in backend.EventInput) (event.Event, error)
	DeleteEvent(ctx context.Context, eventID int) error
	CheckIn(ctx context.Context, eventID, studentID int) (string, error)
	RestCheckIn(ctx context.Context, eventID, studentID int) (event.CheckIn, error)
	PersistAttendance(ctx context.Context, eventID int) (int, error)
	AddMeetingNote(ctx context.Context, eventID int, content string) (string, error)
}

// EventDeps holds dependencies for event mutations.
type EventDeps struct {
	Events   EventWriter
	Activity ActivityRecorder
}

// SaveEventInput carries the raw event form. EventID is blank on create.
type SaveEventInput struct {
	Actor       Actor
	EventID     string
	Type        string
	Notes       string
	EventTypeID string
}

func (in SaveEventInput) parse() (backend.EventInput, error) {
	typeID, err := parseID("event_type_id", in.EventTypeID, "Event type ID must be a positive number")
	if err != nil {
		return backend.EventInput{}, err
	}
	e := event.Event{Type: strings.TrimSpace(in.Type), Notes: strings.TrimSpace(in.Notes), EventTypeID: &typeID}
	if err := e.Validate(); err != nil {
		field := "type"
		if e.Type != "" {
			field = "notes"
		}
		return backend.EventInput{}, invalid(field, "Event type and notes are required")
	}
	return backend.EventInput{Type: e.Type, Notes: e.Notes, EventTypeID: typeID}, nil
}

// ExecuteCreateEvent creates an event.
// PRE: none; input is untrusted form data
// INVARIANT: invalid input never reaches the backend
func ExecuteCreateEvent(ctx context.Context, input SaveEventInput, deps EventDeps) (MutationResult, error) {
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	created, err := deps.Events.CreateEvent(ctx, in)
	logMutation("create_event", input.Actor, created.ID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryEvent, domainAudit.ActionCreate, created.ID, err, in.Type)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Event created successfully!", EntityID: created.ID}, nil
}

// ExecuteUpdateEvent replaces an event's editable fields.
func ExecuteUpdateEvent(ctx context.Context, input SaveEventInput, deps EventDeps) (MutationResult, error) {
	id, err := parseID("event_id", input.EventID, "Event ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	_, err = deps.Events.UpdateEvent(ctx, id, in)
	logMutation("update_event", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryEvent, domainAudit.ActionUpdate, id, err, in.Type)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Event updated successfully!", EntityID: id}, nil
}

// ExecuteDeleteEvent removes an event with its attendance, check-ins and notes.
// PRE: input.Confirmed
func ExecuteDeleteEvent(ctx context.Context, input DeleteInput, deps EventDeps) (MutationResult, error) {
	id, err := parseID("event_id", input.ID, "Event ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	if !input.Confirmed {
		return MutationResult{}, ErrConfirmationRequired
	}
	err = deps.Events.DeleteEvent(ctx, id)
	logMutation("delete_event", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryEvent, domainAudit.ActionDelete, id, err, "")
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Event deleted.", EntityID: id}, nil
}

// CheckInInput carries a live check-in from the event modal or the quick check-in form.
// Both forms post event_id and student_id.
type CheckInInput struct {
	Actor     Actor
	EventID   string
	StudentID string
}

func (in CheckInInput) parse() (eventID, studentID int, err error) {
	eventID, err = parseID("event_id", in.EventID, "Please enter a valid Event ID")
	if err != nil {
		return 0, 0, err
	}
	studentID, err = parseID("student_id", in.StudentID, "Please enter a valid Student ID")
	if err != nil {
		return 0, 0, err
	}
	return eventID, studentID, nil
}

// ExecuteCheckIn records a live check-in from the event modal.
// POST: Message is "Student N checked in successfully!"
func ExecuteCheckIn(ctx context.Context, input CheckInInput, deps EventDeps) (MutationResult, error) {
	eventID, studentID, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	status, err := deps.Events.CheckIn(ctx, eventID, studentID)
	if err != nil {
		slog.Warn("checkin_event", "event_id", eventID, "student_id", studentID, "outcome", "failed", "error", err.Error())
	} else {
		slog.Info("checkin_event", "event_id", eventID, "student_id", studentID, "status", status)
	}
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryAttendance, domainAudit.ActionCheckIn, eventID, err, fmt.Sprintf("student %d", studentID))
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: fmt.Sprintf("Student %d checked in successfully!", studentID), EntityID: eventID}, nil
}

// ExecuteQuickCheckIn records a live check-in through the REST endpoint.
// POST: Message names the student, the backend-reported status and the event
func ExecuteQuickCheckIn(ctx context.Context, input CheckInInput, deps EventDeps) (MutationResult, error) {
	eventID, studentID, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	ack, err := deps.Events.RestCheckIn(ctx, eventID, studentID)
	if err != nil {
		slog.Warn("checkin_event", "event_id", eventID, "student_id", studentID, "transport", "rest", "outcome", "failed", "error", err.Error())
	} else {
		slog.Info("checkin_event", "event_id", eventID, "student_id", studentID, "transport", "rest", "status", ack.Status)
	}
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryAttendance, domainAudit.ActionCheckIn, eventID, err, fmt.Sprintf("student %d", studentID))
	if err != nil {
		return MutationResult{}, err
	}
	if ack.StudentID == 0 {
		ack.StudentID = studentID
	}
	if ack.EventID == 0 {
		ack.EventID = eventID
	}
	return MutationResult{Message: ack.Message(), EntityID: eventID}, nil
}

// PersistInput carries a request to save live check-ins as attendance.
type PersistInput struct {
	Actor     Actor
	EventID   string
	Confirmed bool
}

// ExecutePersistAttendance moves live check-ins into durable attendance.
// PRE: input.Confirmed
// POST: Message reports the number of records saved
func ExecutePersistAttendance(ctx context.Context, input PersistInput, deps EventDeps) (MutationResult, error) {
	id, err := parseID("event_id", input.EventID, "Event ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	if !input.Confirmed {
		return MutationResult{}, ErrConfirmationRequired
	}
	count, err := deps.Events.PersistAttendance(ctx, id)
	logMutation("persist_attendance", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryAttendance, domainAudit.ActionPersist, id, err, fmt.Sprintf("%d records", count))
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: fmt.Sprintf("Successfully saved %d attendance records!", count), EntityID: id}, nil
}

// AddNoteInput carries a new meeting note.
type AddNoteInput struct {
	Actor   Actor
	EventID string
	Content string
}

// ExecuteAddMeetingNote appends a note to an event.
// PRE: Content is non-blank
func ExecuteAddMeetingNote(ctx context.Context, input AddNoteInput, deps EventDeps) (MutationResult, error) {
	id, err := parseID("event_id", input.EventID, "Event ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return MutationResult{}, invalid("content", "Note cannot be empty")
	}
	_, err = deps.Events.AddMeetingNote(ctx, id, content)
	logMutation("add_meeting_note", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryEvent, domainAudit.ActionAddNote, id, err, "")
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Note added successfully!", EntityID: id}, nil
}
