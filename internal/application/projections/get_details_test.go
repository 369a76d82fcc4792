package projections

import (
	"context"
	"testing"

	"ministry/internal/adapters/backend"
	"ministry/internal/domain/attendance"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// TestQueryGetEventDetail_ResolvesCheckIns verifies order is kept and unknown ids get placeholders.
func TestQueryGetEventDetail_ResolvesCheckIns(t *testing.T) {
	m := &mockBackend{
		details:      event.Details{Type: "Worship", LiveAttendeeCount: 3, NotesCount: 1},
		detailsFound: true,
		checkedIn:    []int{2, 77, 1},
		pool: []student.Student{
			{ID: 1, FirstName: "Ada", LastName: "Stone"},
			{ID: 2, FirstName: "Ben", LastName: "Ho"},
		},
		notes: []event.MeetingNote{{ID: "n1", Content: "Great night"}},
	}
	got := QueryGetEventDetail(context.Background(), event.Event{ID: 5}, GetEventDetailDeps{Details: m, CheckIns: m, Notes: m})

	want := []string{"Ben Ho", "Student #77", "Ada Stone"}
	if len(got.CheckedIn) != len(want) {
		t.Fatalf("CheckedIn = %+v", got.CheckedIn)
	}
	for i, w := range want {
		if got.CheckedIn[i].Name != w {
			t.Errorf("CheckedIn[%d] = %q, want %q", i, got.CheckedIn[i].Name, w)
		}
	}
	if !got.StatsFound || got.Stats.LiveAttendeeCount != 3 {
		t.Errorf("Stats = %+v found=%v", got.Stats, got.StatsFound)
	}
	if len(got.Notes) != 1 {
		t.Errorf("Notes = %+v", got.Notes)
	}
}

// TestQueryGetEventDetail_SectionErrors verifies one failing section leaves the others.
func TestQueryGetEventDetail_SectionErrors(t *testing.T) {
	m := &mockBackend{
		detailsErr: &backend.RemoteError{Op: "MultiDbQuery", Message: "Event not found"},
		checkedIn:  []int{1},
		notesErr:   errBackendDown,
	}
	got := QueryGetEventDetail(context.Background(), event.Event{ID: 5}, GetEventDetailDeps{Details: m, CheckIns: m, Notes: m})

	if got.StatsErr != "Event not found" {
		t.Errorf("StatsErr = %q", got.StatsErr)
	}
	if got.NotesErr == "" {
		t.Error("NotesErr empty, want transport message")
	}
	if got.CheckedInErr != "" || len(got.CheckedIn) != 1 || got.CheckedIn[0].Name != "Student #1" {
		t.Errorf("CheckedIn = %+v err=%q", got.CheckedIn, got.CheckedInErr)
	}
}

// TestQueryGetGroupDetail_Selectors verifies add choices exclude current members and leaders.
func TestQueryGetGroupDetail_Selectors(t *testing.T) {
	roster := []student.Student{{ID: 1}, {ID: 2}, {ID: 3}}
	g := group.Group{
		ID:      9,
		Members: []student.Student{{ID: 1}, {ID: 2}},
		Leaders: []leader.Leader{{ID: 10}},
	}
	m := &mockBackend{leaders: []leader.Leader{{ID: 10}, {ID: 11}}}

	got := QueryGetGroupDetail(context.Background(), g, roster, GetGroupDetailDeps{Leaders: m})
	if len(got.AvailableStudents) != 1 || got.AvailableStudents[0].ID != 3 {
		t.Errorf("AvailableStudents = %+v, want [3]", got.AvailableStudents)
	}
	if len(got.AvailableLeaders) != 1 || got.AvailableLeaders[0].ID != 11 {
		t.Errorf("AvailableLeaders = %+v, want [11]", got.AvailableLeaders)
	}
}

// TestQueryGetGroupDetail_LeadersFail verifies student choices survive a leaders failure.
func TestQueryGetGroupDetail_LeadersFail(t *testing.T) {
	m := &mockBackend{leadersErr: errBackendDown}
	got := QueryGetGroupDetail(context.Background(), group.Group{ID: 1}, []student.Student{{ID: 4}}, GetGroupDetailDeps{Leaders: m})
	if got.LeadersErr == "" || got.AvailableLeaders != nil {
		t.Errorf("LeadersErr=%q AvailableLeaders=%v", got.LeadersErr, got.AvailableLeaders)
	}
	if len(got.AvailableStudents) != 1 {
		t.Errorf("AvailableStudents = %v", got.AvailableStudents)
	}
}

// TestQueryGetVolunteerDetail verifies events already served are not offered.
func TestQueryGetVolunteerDetail(t *testing.T) {
	m := &mockBackend{records: []volunteer.Record{{ID: 1, VolunteerID: 4, EventID: 2, EventName: "Retreat"}}}
	events := []event.Event{{ID: 1}, {ID: 2}, {ID: 3}}

	got := QueryGetVolunteerDetail(context.Background(), volunteer.Volunteer{ID: 4}, events, GetVolunteerDetailDeps{Records: m})
	if len(got.Records) != 1 {
		t.Errorf("Records = %v", got.Records)
	}
	if len(got.AvailableEvents) != 2 || got.AvailableEvents[0].ID != 1 || got.AvailableEvents[1].ID != 3 {
		t.Errorf("AvailableEvents = %+v, want [1 3]", got.AvailableEvents)
	}

	m.recordsErr = errBackendDown
	got = QueryGetVolunteerDetail(context.Background(), volunteer.Volunteer{ID: 4}, events, GetVolunteerDetailDeps{Records: m})
	if got.RecordsErr == "" || got.AvailableEvents != nil {
		t.Errorf("on failure: RecordsErr=%q AvailableEvents=%v", got.RecordsErr, got.AvailableEvents)
	}
}

// TestQueryGetStudentDetail verifies attendance is attached.
func TestQueryGetStudentDetail(t *testing.T) {
	m := &mockBackend{attendance: []attendance.Record{{ID: 1, StudentID: 3, EventID: 2, TheDate: "2026-03-01", TheTime: "19:00"}}}
	got := QueryGetStudentDetail(context.Background(), student.Student{ID: 3}, GetStudentDetailDeps{Attendance: m})
	if len(got.Attendance) != 1 || got.AttendanceErr != "" {
		t.Errorf("result = %+v", got)
	}
}

// TestQueryGetStudentLookup covers found, missing and failing lookups.
func TestQueryGetStudentLookup(t *testing.T) {
	s := student.Student{ID: 3, FirstName: "Ada", LastName: "Stone"}
	m := &mockBackend{lookup: backend.Lookup{Student: &s, Events: []event.Event{{ID: 1}}}}

	got, err := QueryGetStudentLookup(context.Background(), 3, GetStudentLookupDeps{Lookup: m})
	if err != nil || got.NotFound || got.Student.FirstName != "Ada" {
		t.Errorf("found case = %+v, %v", got, err)
	}

	m.lookup = backend.Lookup{}
	got, err = QueryGetStudentLookup(context.Background(), 404, GetStudentLookupDeps{Lookup: m})
	if err != nil || !got.NotFound || got.Message != "No student found with ID 404." {
		t.Errorf("missing case = %+v, %v", got, err)
	}

	m.lookupErr = errBackendDown
	if _, err := QueryGetStudentLookup(context.Background(), 3, GetStudentLookupDeps{Lookup: m}); !backend.IsTransport(err) {
		t.Errorf("err = %v, want TransportError", err)
	}
}
