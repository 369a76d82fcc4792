package projections

import (
	"context"

	"ministry/internal/adapters/backend"
	"ministry/internal/domain/attendance"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// StudentSource loads the roster. ok is false when the collection is unavailable.
type StudentSource interface {
	Students(ctx context.Context) ([]student.Student, bool)
}

// EventSource loads all events. ok is false when the collection is unavailable.
type EventSource interface {
	Events(ctx context.Context) ([]event.Event, bool)
}

// GroupSource loads groups with nested members and leaders.
type GroupSource interface {
	Groups(ctx context.Context) ([]group.Group, error)
}

// VolunteerSource loads volunteers.
type VolunteerSource interface {
	Volunteers(ctx context.Context) ([]volunteer.Volunteer, error)
}

// LeaderSource loads every leader.
type LeaderSource interface {
	Leaders(ctx context.Context) ([]leader.Leader, error)
}

// EventDetailsSource loads the combined stats of one event.
type EventDetailsSource interface {
	EventDetails(ctx context.Context, eventID int) (event.Details, bool, error)
}

// CheckInSource loads live check-in ids together with the student pool.
type CheckInSource interface {
	CheckedInStudents(ctx context.Context, eventID int) ([]int, []student.Student, error)
}

// MeetingNoteSource loads the notes of one event.
type MeetingNoteSource interface {
	MeetingNotes(ctx context.Context, eventID int) ([]event.MeetingNote, error)
}

// AttendanceSource loads a student's persisted attendance.
type AttendanceSource interface {
	StudentAttendance(ctx context.Context, studentID int) ([]attendance.Record, error)
}

// VolunteerRecordSource loads a volunteer's service history.
type VolunteerRecordSource interface {
	VolunteerRecords(ctx context.Context, volunteerID int) ([]volunteer.Record, error)
}

// LookupSource loads the public student lookup view.
type LookupSource interface {
	StudentLookup(ctx context.Context, studentID int) (backend.Lookup, error)
}

// Compile-time check that the backend gateway serves every projection.
var _ interface {
	StudentSource
	EventSource
	GroupSource
	VolunteerSource
	LeaderSource
	EventDetailsSource
	CheckInSource
	MeetingNoteSource
	AttendanceSource
	VolunteerRecordSource
	LookupSource
} = (*backend.Gateway)(nil)
