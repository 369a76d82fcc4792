package backend

import (
	"context"
	"encoding/json"
	"log/slog"

	"ministry/internal/domain/attendance"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// Gateway exposes the backend's operations as typed methods.
type Gateway struct {
	client *Client
}

// NewGateway wraps a Client.
func NewGateway(c *Client) *Gateway {
	return &Gateway{client: c}
}

// Students loads the roster over REST.
// POST: ok is false when the collection was unavailable; the slice is then nil
func (g *Gateway) Students(ctx context.Context) ([]student.Student, bool) {
	var list []student.Student
	return list, decodeCollection(g.client.FetchJSON(ctx, "/students"), "/students", &list)
}

// Events loads all events over REST.
// POST: ok is false when the collection was unavailable; the slice is then nil
func (g *Gateway) Events(ctx context.Context) ([]event.Event, bool) {
	var list []event.Event
	return list, decodeCollection(g.client.FetchJSON(ctx, "/events"), "/events", &list)
}

func decodeCollection(raw json.RawMessage, path string, dst any) bool {
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("backend_decode_failed", "path", path, "error", err.Error())
		return false
	}
	return true
}

// Groups loads groups with nested members and leaders.
func (g *Gateway) Groups(ctx context.Context) ([]group.Group, error) {
	var out struct {
		Groups []group.Group `json:"groups"`
	}
	if err := g.client.Request(ctx, queryGroups, nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// Volunteers loads all volunteers.
func (g *Gateway) Volunteers(ctx context.Context) ([]volunteer.Volunteer, error) {
	var out struct {
		Volunteers []volunteer.Volunteer `json:"volunteers"`
	}
	if err := g.client.Request(ctx, queryVolunteers, nil, &out); err != nil {
		return nil, err
	}
	return out.Volunteers, nil
}

// Leaders loads every leader.
func (g *Gateway) Leaders(ctx context.Context) ([]leader.Leader, error) {
	var out struct {
		Leaders []leader.Leader `json:"leaders"`
	}
	if err := g.client.Request(ctx, queryLeaders, nil, &out); err != nil {
		return nil, err
	}
	return out.Leaders, nil
}

// LeaderByID looks a leader up by id.
// POST: found is false when the backend returned null
func (g *Gateway) LeaderByID(ctx context.Context, id int) (leader.Leader, bool, error) {
	var out struct {
		Leader *leader.Leader `json:"leaderById"`
	}
	if err := g.client.Request(ctx, queryLeaderByID, map[string]any{"leaderId": id}, &out); err != nil {
		return leader.Leader{}, false, err
	}
	if out.Leader == nil {
		return leader.Leader{}, false, nil
	}
	return *out.Leader, true, nil
}

// StudentAttendance loads the persisted attendance history of a student.
func (g *Gateway) StudentAttendance(ctx context.Context, studentID int) ([]attendance.Record, error) {
	var out struct {
		Records []attendance.Record `json:"studentAttendance"`
	}
	if err := g.client.Request(ctx, queryStudentAttendance, map[string]any{"studentId": studentID}, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// EventDetails loads the combined durable and live view of an event.
// POST: found is false when the backend returned null
func (g *Gateway) EventDetails(ctx context.Context, eventID int) (event.Details, bool, error) {
	var out struct {
		Details *event.Details `json:"eventDetails"`
	}
	if err := g.client.Request(ctx, queryEventDetails, map[string]any{"eventId": eventID}, &out); err != nil {
		return event.Details{}, false, err
	}
	if out.Details == nil {
		return event.Details{}, false, nil
	}
	return *out.Details, true, nil
}

// CheckedInStudents returns the live check-in ids of an event together with the
// student pool they resolve against, fetched in the same request.
func (g *Gateway) CheckedInStudents(ctx context.Context, eventID int) ([]int, []student.Student, error) {
	var out struct {
		CheckedIn []int             `json:"checkedInStudents"`
		Students  []student.Student `json:"students"`
	}
	if err := g.client.Request(ctx, queryCheckedIn, map[string]any{"eventId": eventID}, &out); err != nil {
		return nil, nil, err
	}
	return out.CheckedIn, out.Students, nil
}

// MeetingNotes loads the notes attached to an event.
func (g *Gateway) MeetingNotes(ctx context.Context, eventID int) ([]event.MeetingNote, error) {
	var out struct {
		Notes []event.MeetingNote `json:"meetingNotes"`
	}
	if err := g.client.Request(ctx, queryMeetingNotes, map[string]any{"eventId": eventID}, &out); err != nil {
		return nil, err
	}
	for i := range out.Notes {
		out.Notes[i].EventID = eventID
	}
	return out.Notes, nil
}

// VolunteerRecords loads a volunteer's service history.
func (g *Gateway) VolunteerRecords(ctx context.Context, volunteerID int) ([]volunteer.Record, error) {
	var out struct {
		Records []volunteer.Record `json:"volunteerRecords"`
	}
	if err := g.client.Request(ctx, queryVolunteerRecords, map[string]any{"volunteerId": volunteerID}, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// Lookup is what a student or parent sees on the lookup page.
type Lookup struct {
	Student    *student.Student
	Attendance []attendance.Record
	Events     []event.Event
}

// StudentLookup loads a student, their attendance and the event list in one request.
// POST: Lookup.Student is nil when no student has that id
func (g *Gateway) StudentLookup(ctx context.Context, studentID int) (Lookup, error) {
	var out struct {
		Student    *student.Student    `json:"studentById"`
		Attendance []attendance.Record `json:"studentAttendance"`
		Events     []event.Event       `json:"events"`
	}
	if err := g.client.Request(ctx, queryStudentLookup, map[string]any{"studentId": studentID}, &out); err != nil {
		return Lookup{}, err
	}
	return Lookup{Student: out.Student, Attendance: out.Attendance, Events: out.Events}, nil
}
