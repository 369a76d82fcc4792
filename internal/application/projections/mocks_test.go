package projections

import (
	"context"
	"errors"

	"ministry/internal/adapters/backend"
	auditStore "ministry/internal/adapters/storage/audit"
	"ministry/internal/domain/attendance"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

var errBackendDown = &backend.TransportError{Op: "test", Err: errors.New("connection refused")}

// mockBackend serves every projection source from seeded data.
// A nil slice with the matching fail flag set simulates an unavailable source.
type mockBackend struct {
	students     []student.Student
	studentsFail bool
	events       []event.Event
	eventsFail   bool
	groups       []group.Group
	groupsErr    error
	volunteers   []volunteer.Volunteer
	leaders      []leader.Leader
	leadersErr   error

	details      event.Details
	detailsFound bool
	detailsErr   error
	checkedIn    []int
	pool         []student.Student
	checkInErr   error
	notes        []event.MeetingNote
	notesErr     error

	attendance []attendance.Record
	records    []volunteer.Record
	recordsErr error
	lookup     backend.Lookup
	lookupErr  error
}

func (m *mockBackend) Students(context.Context) ([]student.Student, bool) {
	return m.students, !m.studentsFail
}

func (m *mockBackend) Events(context.Context) ([]event.Event, bool) {
	return m.events, !m.eventsFail
}

func (m *mockBackend) Groups(context.Context) ([]group.Group, error) {
	return m.groups, m.groupsErr
}

func (m *mockBackend) Volunteers(context.Context) ([]volunteer.Volunteer, error) {
	return m.volunteers, nil
}

func (m *mockBackend) Leaders(context.Context) ([]leader.Leader, error) {
	return m.leaders, m.leadersErr
}

func (m *mockBackend) EventDetails(context.Context, int) (event.Details, bool, error) {
	return m.details, m.detailsFound, m.detailsErr
}

func (m *mockBackend) CheckedInStudents(context.Context, int) ([]int, []student.Student, error) {
	return m.checkedIn, m.pool, m.checkInErr
}

func (m *mockBackend) MeetingNotes(context.Context, int) ([]event.MeetingNote, error) {
	return m.notes, m.notesErr
}

func (m *mockBackend) StudentAttendance(context.Context, int) ([]attendance.Record, error) {
	return m.attendance, nil
}

func (m *mockBackend) VolunteerRecords(context.Context, int) ([]volunteer.Record, error) {
	return m.records, m.recordsErr
}

func (m *mockBackend) StudentLookup(context.Context, int) (backend.Lookup, error) {
	return m.lookup, m.lookupErr
}

func (m *mockBackend) dashboardDeps() GetDashboardDeps {
	return GetDashboardDeps{Students: m, Events: m, Groups: m, Volunteers: m}
}

// mockActivityStore pages a seeded slice.
type mockActivityStore struct {
	events     []domainAudit.Event
	lastFilter auditStore.Filter
}

func (m *mockActivityStore) matching(f auditStore.Filter) []domainAudit.Event {
	var out []domainAudit.Event
	for _, e := range m.events {
		if f.Category != nil && e.Category != *f.Category {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m *mockActivityStore) List(_ context.Context, f auditStore.Filter) ([]domainAudit.Event, error) {
	m.lastFilter = f
	all := m.matching(f)
	if f.Offset >= len(all) {
		return nil, nil
	}
	return all[f.Offset:min(f.Offset+f.Limit, len(all))], nil
}

func (m *mockActivityStore) Count(_ context.Context, f auditStore.Filter) (int, error) {
	return len(m.matching(f)), nil
}
