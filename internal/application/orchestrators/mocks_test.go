package orchestrators

import (
	"context"
	"errors"
	"sync"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// mockGateway implements every writer interface and counts backend calls.
type mockGateway struct {
	mu    sync.Mutex
	calls []string
	err   error

	leaders  map[int]leader.Leader
	nextID   int
	ack      event.CheckIn
	persist  int
	lastVars []int
	lastIn   any
}

func (m *mockGateway) record(name string, ids ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	m.lastVars = ids
}

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockGateway) LeaderByID(_ context.Context, id int) (leader.Leader, bool, error) {
	m.record("LeaderByID", id)
	if m.err != nil {
		return leader.Leader{}, false, m.err
	}
	l, ok := m.leaders[id]
	return l, ok, nil
}

func (m *mockGateway) CreateStudent(_ context.Context, in backend.StudentInput) (student.Student, error) {
	m.record("CreateStudent")
	m.lastIn = in
	return student.Student{ID: m.nextID, FirstName: in.FirstName, LastName: in.LastName}, m.err
}

func (m *mockGateway) UpdateStudent(_ context.Context, id int, in backend.StudentInput) (student.Student, error) {
	m.record("UpdateStudent", id)
	m.lastIn = in
	return student.Student{ID: id}, m.err
}

func (m *mockGateway) DeleteStudent(_ context.Context, id int) error {
	m.record("DeleteStudent", id)
	return m.err
}

func (m *mockGateway) CreateEvent(_ context.Context, in backend.EventInput) (event.Event, error) {
	m.record("CreateEvent")
	m.lastIn = in
	return event.Event{ID: m.nextID}, m.err
}

func (m *mockGateway) UpdateEvent(_ context.Context, id int, in backend.EventInput) (event.Event, error) {
	m.record("UpdateEvent", id)
	m.lastIn = in
	return event.Event{ID: id}, m.err
}

func (m *mockGateway) DeleteEvent(_ context.Context, id int) error {
	m.record("DeleteEvent", id)
	return m.err
}

func (m *mockGateway) CheckIn(_ context.Context, eventID, studentID int) (string, error) {
	m.record("CheckIn", eventID, studentID)
	return "checked-in", m.err
}

func (m *mockGateway) RestCheckIn(_ context.Context, eventID, studentID int) (event.CheckIn, error) {
	m.record("RestCheckIn", eventID, studentID)
	return m.ack, m.err
}

func (m *mockGateway) PersistAttendance(_ context.Context, id int) (int, error) {
	m.record("PersistAttendance", id)
	return m.persist, m.err
}

func (m *mockGateway) AddMeetingNote(_ context.Context, id int, content string) (string, error) {
	m.record("AddMeetingNote", id)
	m.lastIn = content
	return "note-1", m.err
}

func (m *mockGateway) CreateGroup(_ context.Context, name string) (group.Group, error) {
	m.record("CreateGroup")
	m.lastIn = name
	return group.Group{ID: m.nextID, Name: name}, m.err
}

func (m *mockGateway) UpdateGroup(_ context.Context, id int, name string) (group.Group, error) {
	m.record("UpdateGroup", id)
	m.lastIn = name
	return group.Group{ID: id, Name: name}, m.err
}

func (m *mockGateway) DeleteGroup(_ context.Context, id int) error {
	m.record("DeleteGroup", id)
	return m.err
}

func (m *mockGateway) AddStudentToGroup(_ context.Context, g, s int) error {
	m.record("AddStudentToGroup", g, s)
	return m.err
}

func (m *mockGateway) RemoveStudentFromGroup(_ context.Context, g, s int) error {
	m.record("RemoveStudentFromGroup", g, s)
	return m.err
}

func (m *mockGateway) AddLeaderToGroup(_ context.Context, g, l int) error {
	m.record("AddLeaderToGroup", g, l)
	return m.err
}

func (m *mockGateway) RemoveLeaderFromGroup(_ context.Context, g, l int) error {
	m.record("RemoveLeaderFromGroup", g, l)
	return m.err
}

func (m *mockGateway) CreateVolunteer(_ context.Context, in backend.VolunteerInput) (volunteer.Volunteer, error) {
	m.record("CreateVolunteer")
	m.lastIn = in
	return volunteer.Volunteer{ID: m.nextID}, m.err
}

func (m *mockGateway) UpdateVolunteer(_ context.Context, id int, in backend.VolunteerInput) (volunteer.Volunteer, error) {
	m.record("UpdateVolunteer", id)
	m.lastIn = in
	return volunteer.Volunteer{ID: id}, m.err
}

func (m *mockGateway) DeleteVolunteer(_ context.Context, id int) error {
	m.record("DeleteVolunteer", id)
	return m.err
}

func (m *mockGateway) AddVolunteerToEvent(_ context.Context, v, e int) error {
	m.record("AddVolunteerToEvent", v, e)
	return m.err
}

func (m *mockGateway) RemoveVolunteerFromEvent(_ context.Context, v, e int) error {
	m.record("RemoveVolunteerFromEvent", v, e)
	return m.err
}

// mockRecorder captures activity entries; err makes every Save fail.
type mockRecorder struct {
	events []domainAudit.Event
	err    error
}

func (m *mockRecorder) Save(_ context.Context, e domainAudit.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockRecorder) last() domainAudit.Event {
	if len(m.events) == 0 {
		return domainAudit.Event{}
	}
	return m.events[len(m.events)-1]
}

var errRemote = &backend.RemoteError{Op: "test", Message: "Event not found"}

var errDiskFull = errors.New("disk full")

var testActor = Actor{LeaderID: 7, LeaderName: "Ruth Adams", IP: "10.0.0.1"}
