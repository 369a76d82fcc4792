package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeBackend answers GraphQL operations by name and REST calls by path.
type fakeBackend struct {
	t       *testing.T
	ops     map[string]string // operation name -> full response body
	rest    map[string]string // "METHOD /path" -> response body
	lastVar map[string]any
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/graphql" {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Errorf("decode graphql request: %v", err)
		}
		f.lastVar = req.Variables
		body, ok := f.ops[operationName(req.Query)]
		if !ok {
			f.t.Errorf("unexpected operation %q", operationName(req.Query))
			w.Write([]byte(`{"errors":[{"message":"unknown operation"}]}`))
			return
		}
		w.Write([]byte(body))
		return
	}
	key := r.Method + " " + r.URL.Path
	body, ok := f.rest[key]
	if !ok {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
		return
	}
	if r.Method == http.MethodPost {
		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		f.lastVar = payload
	}
	w.Write([]byte(body))
}

func newFakeGateway(t *testing.T, f *fakeBackend) *Gateway {
	t.Helper()
	f.t = t
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewGateway(NewClient(Options{GraphQLURL: srv.URL + "/graphql", BaseURL: srv.URL}))
}

// TestGateway_RestCollections verifies REST loads and their unavailable signal.
func TestGateway_RestCollections(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{rest: map[string]string{
		"GET /students": `[{"id":1,"firstName":"Ada","lastName":"Stone","guardianID":3,"guardianName":"Mara Stone"}]`,
	}})

	students, ok := g.Students(context.Background())
	if !ok {
		t.Fatal("Students ok = false, want true")
	}
	if len(students) != 1 || students[0].GuardianName != "Mara Stone" || *students[0].GuardianID != 3 {
		t.Errorf("students = %+v", students)
	}

	events, ok := g.Events(context.Background())
	if ok || events != nil {
		t.Errorf("Events = %v, %v; want nil, false for a 404", events, ok)
	}
}

// TestGateway_EventsRestShape verifies the lower-case REST event keys decode.
func TestGateway_EventsRestShape(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{rest: map[string]string{
		"GET /events": `[{"id":2,"type":"Retreat","notes":"Camp","eventTypeId":3}]`,
	}})
	events, ok := g.Events(context.Background())
	if !ok || len(events) != 1 {
		t.Fatalf("Events = %v, %v", events, ok)
	}
	if events[0].Type != "Retreat" || events[0].TypeIDValue() != 3 {
		t.Errorf("event = %+v", events[0])
	}
}

// TestGateway_LeaderByID covers found and null.
func TestGateway_LeaderByID(t *testing.T) {
	f := &fakeBackend{ops: map[string]string{
		"VerifyLeader": `{"data":{"leaderById":{"id":7,"firstName":"Ruth","lastName":"Adams"}}}`,
	}}
	g := newFakeGateway(t, f)

	l, found, err := g.LeaderByID(context.Background(), 7)
	if err != nil || !found {
		t.Fatalf("LeaderByID = %v, %v, %v", l, found, err)
	}
	if l.FullName() != "Ruth Adams" {
		t.Errorf("FullName = %q", l.FullName())
	}
	if f.lastVar["leaderId"] != float64(7) {
		t.Errorf("leaderId var = %v", f.lastVar["leaderId"])
	}

	f.ops["VerifyLeader"] = `{"data":{"leaderById":null}}`
	_, found, err = g.LeaderByID(context.Background(), 99999)
	if err != nil || found {
		t.Errorf("LeaderByID(99999) found=%v err=%v, want not found and no error", found, err)
	}
}

// TestGateway_CheckedInStudents verifies ids and pool come from one request.
func TestGateway_CheckedInStudents(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{ops: map[string]string{
		"CheckedIn": `{"data":{"checkedInStudents":[3,1],"students":[{"id":1,"firstName":"Ada","lastName":"Stone"}]}}`,
	}})
	ids, pool, err := g.CheckedInStudents(context.Background(), 5)
	if err != nil {
		t.Fatalf("CheckedInStudents: %v", err)
	}
	if len(ids) != 2 || ids[0] != 3 || len(pool) != 1 {
		t.Errorf("ids=%v pool=%v", ids, pool)
	}
}

// TestGateway_Groups verifies nested members and leaders decode.
func TestGateway_Groups(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{ops: map[string]string{
		"Groups": `{"data":{"groups":[{"id":1,"name":"Juniors","memberCount":2,
			"members":[{"id":1,"firstName":"A","lastName":"B"},{"id":2,"firstName":"C","lastName":"D"}],
			"leaders":[{"id":9,"firstName":"Ruth","lastName":"Adams"}]}]}}`,
	}})
	groups, err := g.Groups(context.Background())
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 2 || groups[0].Leaders[0].ID != 9 {
		t.Errorf("groups = %+v", groups)
	}
}

// TestGateway_RestCheckIn verifies the check-in body and the status message.
func TestGateway_RestCheckIn(t *testing.T) {
	f := &fakeBackend{rest: map[string]string{
		"POST /event/check-in": `{"student_id":42,"student_status":"checked-in","event_id":1}`,
	}}
	g := newFakeGateway(t, f)

	ci, err := g.RestCheckIn(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("RestCheckIn: %v", err)
	}
	if f.lastVar["eventID"] != float64(1) || f.lastVar["studentID"] != float64(42) {
		t.Errorf("body = %v", f.lastVar)
	}
	msg := ci.Message()
	if !strings.Contains(msg, "42") || !strings.Contains(msg, "checked-in") {
		t.Errorf("Message() = %q", msg)
	}
}

// TestGateway_RestCheckIn_StatusFallback verifies the plain "status" key is accepted.
func TestGateway_RestCheckIn_StatusFallback(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{rest: map[string]string{
		"POST /event/check-in": `{"student_id":5,"status":"checked_in","event_id":2}`,
	}})
	ci, err := g.RestCheckIn(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("RestCheckIn: %v", err)
	}
	if ci.Status != "checked_in" {
		t.Errorf("Status = %q, want checked_in", ci.Status)
	}
}

// TestGateway_StatusMutations covers object, boolean and refused payloads.
func TestGateway_StatusMutations(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantMatch string
	}{
		{name: "object success", body: `{"data":{"deleteEvent":{"success":true,"message":"ok"}}}`},
		{name: "bool success", body: `{"data":{"deleteEvent":true}}`},
		{name: "refused with message", body: `{"data":{"deleteEvent":{"success":false,"message":"Event has attendance"}}}`, wantErr: true, wantMatch: "Event has attendance"},
		{name: "refused bool", body: `{"data":{"deleteEvent":false}}`, wantErr: true, wantMatch: "deleteEvent was rejected"},
		{name: "graphql error", body: `{"errors":[{"message":"Not allowed"}]}`, wantErr: true, wantMatch: "Not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGateway(t, &fakeBackend{ops: map[string]string{"DeleteEvent": tt.body}})
			err := g.DeleteEvent(context.Background(), 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteEvent error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsRemote(err) {
					t.Errorf("err = %T, want RemoteError", err)
				}
				if err.Error() != tt.wantMatch {
					t.Errorf("err = %q, want %q", err.Error(), tt.wantMatch)
				}
			}
		})
	}
}

// TestGateway_PersistAndNotes covers count and note id decoding.
func TestGateway_PersistAndNotes(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{ops: map[string]string{
		"Persist": `{"data":{"persistAttendance":{"count":4}}}`,
		"AddNote": `{"data":{"addMeetingNote":{"id":"65f0c0ffee"}}}`,
		"Notes":   `{"data":{"meetingNotes":[{"id":"a","content":"**Great** night","createdAt":"2025-03-01T19:00:00"}]}}`,
	}})
	n, err := g.PersistAttendance(context.Background(), 1)
	if err != nil || n != 4 {
		t.Errorf("PersistAttendance = %d, %v; want 4", n, err)
	}
	id, err := g.AddMeetingNote(context.Background(), 1, "hello")
	if err != nil || id != "65f0c0ffee" {
		t.Errorf("AddMeetingNote = %q, %v", id, err)
	}
	notes, err := g.MeetingNotes(context.Background(), 1)
	if err != nil || len(notes) != 1 || notes[0].EventID != 1 {
		t.Errorf("MeetingNotes = %+v, %v", notes, err)
	}
}

// TestGateway_CreateStudentSendsNullGuardian verifies an absent guardian is sent as null.
func TestGateway_CreateStudentSendsNullGuardian(t *testing.T) {
	f := &fakeBackend{ops: map[string]string{
		"CreateStudent": `{"data":{"createStudent":{"id":11,"firstName":"Ada","lastName":"Stone"}}}`,
	}}
	g := newFakeGateway(t, f)
	s, err := g.CreateStudent(context.Background(), StudentInput{FirstName: "Ada", LastName: "Stone"})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if s.ID != 11 {
		t.Errorf("ID = %d, want 11", s.ID)
	}
	v, present := f.lastVar["guardianID"]
	if !present || v != nil {
		t.Errorf("guardianID = %v (present %v), want null", v, present)
	}
}

// TestGateway_StudentLookup verifies a missing student decodes to nil.
func TestGateway_StudentLookup(t *testing.T) {
	g := newFakeGateway(t, &fakeBackend{ops: map[string]string{
		"StudentDashboard": `{"data":{"studentById":null,"studentAttendance":[],"events":[{"id":1,"Type":"Worship","Notes":"Sunday"}]}}`,
	}})
	res, err := g.StudentLookup(context.Background(), 404)
	if err != nil {
		t.Fatalf("StudentLookup: %v", err)
	}
	if res.Student != nil {
		t.Errorf("Student = %+v, want nil", res.Student)
	}
	if len(res.Events) != 1 {
		t.Errorf("Events = %v", res.Events)
	}
}
