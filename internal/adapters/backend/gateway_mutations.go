package backend

import (
	"context"
	"encoding/json"

	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// StudentInput carries the editable student fields.
type StudentInput struct {
	FirstName  string
	LastName   string
	GuardianID *int
}

// EventInput carries the editable event fields.
type EventInput struct {
	Type        string
	Notes       string
	EventTypeID int
}

// VolunteerInput carries the editable volunteer fields.
type VolunteerInput struct {
	FirstName string
	LastName  string
}

// mutationStatus is the { success message } payload returned by delete and
// membership mutations.
type mutationStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// runStatusMutation runs a mutation whose single field reports success, either
// as a { success message } object or a bare boolean, and turns a refusal into a
// RemoteError.
func (g *Gateway) runStatusMutation(ctx context.Context, doc, field string, vars map[string]any) error {
	var out map[string]json.RawMessage
	if err := g.client.Request(ctx, doc, vars, &out); err != nil {
		return err
	}
	raw, ok := out[field]
	if !ok || string(raw) == "null" {
		return nil
	}
	var st mutationStatus
	if err := json.Unmarshal(raw, &st.Success); err != nil {
		if err := json.Unmarshal(raw, &st); err != nil {
			return &TransportError{Op: operationName(doc), Err: err}
		}
	}
	if !st.Success {
		msg := st.Message
		if msg == "" {
			msg = field + " was rejected"
		}
		return &RemoteError{Op: operationName(doc), Message: msg}
	}
	return nil
}

// DeleteEvent removes an event and its related data.
func (g *Gateway) DeleteEvent(ctx context.Context, eventID int) error {
	return g.runStatusMutation(ctx, mutationDeleteEvent, "deleteEvent", map[string]any{"eventId": eventID})
}

// CheckIn records a live check-in through GraphQL and returns the reported status.
func (g *Gateway) CheckIn(ctx context.Context, eventID, studentID int) (string, error) {
	var out struct {
		CheckIn struct {
			Status string `json:"status"`
		} `json:"checkIn"`
	}
	vars := map[string]any{"eventId": eventID, "studentId": studentID}
	if err := g.client.Request(ctx, mutationCheckIn, vars, &out); err != nil {
		return "", err
	}
	return out.CheckIn.Status, nil
}

// RestCheckIn records a live check-in through POST /event/check-in.
func (g *Gateway) RestCheckIn(ctx context.Context, eventID, studentID int) (event.CheckIn, error) {
	var out struct {
		StudentID     int    `json:"student_id"`
		EventID       int    `json:"event_id"`
		StudentStatus string `json:"student_status"`
		Status        string `json:"status"`
	}
	body := map[string]int{"eventID": eventID, "studentID": studentID}
	if err := g.client.PostJSON(ctx, "/event/check-in", body, &out); err != nil {
		return event.CheckIn{}, err
	}
	status := out.StudentStatus
	if status == "" {
		status = out.Status
	}
	return event.CheckIn{StudentID: out.StudentID, EventID: out.EventID, Status: status}, nil
}

// PersistAttendance moves live check-ins into durable attendance records.
// POST: Returns the number of records saved
func (g *Gateway) PersistAttendance(ctx context.Context, eventID int) (int, error) {
	var out struct {
		Persist struct {
			Count int `json:"count"`
		} `json:"persistAttendance"`
	}
	if err := g.client.Request(ctx, mutationPersistAttendance, map[string]any{"eventId": eventID}, &out); err != nil {
		return 0, err
	}
	return out.Persist.Count, nil
}

// AddMeetingNote appends a note to an event and returns the new note id.
func (g *Gateway) AddMeetingNote(ctx context.Context, eventID int, content string) (string, error) {
	var out struct {
		Note struct {
			ID json.RawMessage `json:"id"`
		} `json:"addMeetingNote"`
	}
	vars := map[string]any{"eventId": eventID, "content": content}
	if err := g.client.Request(ctx, mutationAddMeetingNote, vars, &out); err != nil {
		return "", err
	}
	return rawID(out.Note.ID), nil
}

// rawID renders a JSON id that may be a string or a number.
func rawID(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

// DeleteStudent removes a student.
func (g *Gateway) DeleteStudent(ctx context.Context, studentID int) error {
	return g.runStatusMutation(ctx, mutationDeleteStudent, "deleteStudent", map[string]any{"studentId": studentID})
}

// CreateStudent creates a student.
func (g *Gateway) CreateStudent(ctx context.Context, in StudentInput) (student.Student, error) {
	var out struct {
		Student student.Student `json:"createStudent"`
	}
	vars := map[string]any{"firstName": in.FirstName, "lastName": in.LastName, "guardianID": in.GuardianID}
	if err := g.client.Request(ctx, mutationCreateStudent, vars, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

// UpdateStudent replaces a student's editable fields.
func (g *Gateway) UpdateStudent(ctx context.Context, studentID int, in StudentInput) (student.Student, error) {
	var out struct {
		Student student.Student `json:"updateStudent"`
	}
	vars := map[string]any{
		"studentId":  studentID,
		"firstName":  in.FirstName,
		"lastName":   in.LastName,
		"guardianID": in.GuardianID,
	}
	if err := g.client.Request(ctx, mutationUpdateStudent, vars, &out); err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}

// CreateEvent creates an event.
func (g *Gateway) CreateEvent(ctx context.Context, in EventInput) (event.Event, error) {
	var out struct {
		Event event.Event `json:"createEvent"`
	}
	vars := map[string]any{"Type": in.Type, "Notes": in.Notes, "eventTypeId": in.EventTypeID}
	if err := g.client.Request(ctx, mutationCreateEvent, vars, &out); err != nil {
		return event.Event{}, err
	}
	return out.Event, nil
}

// UpdateEvent replaces an event's editable fields.
func (g *Gateway) UpdateEvent(ctx context.Context, eventID int, in EventInput) (event.Event, error) {
	var out struct {
		Event event.Event `json:"updateEvent"`
	}
	vars := map[string]any{"eventId": eventID, "Type": in.Type, "Notes": in.Notes, "eventTypeId": in.EventTypeID}
	if err := g.client.Request(ctx, mutationUpdateEvent, vars, &out); err != nil {
		return event.Event{}, err
	}
	return out.Event, nil
}

// CreateGroup creates an empty group.
func (g *Gateway) CreateGroup(ctx context.Context, name string) (group.Group, error) {
	var out struct {
		Group group.Group `json:"createGroup"`
	}
	if err := g.client.Request(ctx, mutationCreateGroup, map[string]any{"name": name}, &out); err != nil {
		return group.Group{}, err
	}
	return out.Group, nil
}

// UpdateGroup renames a group.
func (g *Gateway) UpdateGroup(ctx context.Context, groupID int, name string) (group.Group, error) {
	var out struct {
		Group group.Group `json:"updateGroup"`
	}
	vars := map[string]any{"groupId": groupID, "name": name}
	if err := g.client.Request(ctx, mutationUpdateGroup, vars, &out); err != nil {
		return group.Group{}, err
	}
	return out.Group, nil
}

// DeleteGroup removes a group. Members and leaders are not deleted.
func (g *Gateway) DeleteGroup(ctx context.Context, groupID int) error {
	return g.runStatusMutation(ctx, mutationDeleteGroup, "deleteGroup", map[string]any{"groupId": groupID})
}

// AddStudentToGroup adds a student to a group.
func (g *Gateway) AddStudentToGroup(ctx context.Context, groupID, studentID int) error {
	return g.runStatusMutation(ctx, mutationAddStudentToGroup, "addStudentToGroup",
		map[string]any{"groupId": groupID, "studentId": studentID})
}

// RemoveStudentFromGroup removes a student from a group.
func (g *Gateway) RemoveStudentFromGroup(ctx context.Context, groupID, studentID int) error {
	return g.runStatusMutation(ctx, mutationRemoveStudentFromGroup, "removeStudentFromGroup",
		map[string]any{"groupId": groupID, "studentId": studentID})
}

// AddLeaderToGroup assigns a leader to a group.
func (g *Gateway) AddLeaderToGroup(ctx context.Context, groupID, leaderID int) error {
	return g.runStatusMutation(ctx, mutationAddLeaderToGroup, "addLeaderToGroup",
		map[string]any{"groupId": groupID, "leaderId": leaderID})
}

// RemoveLeaderFromGroup unassigns a leader from a group.
func (g *Gateway) RemoveLeaderFromGroup(ctx context.Context, groupID, leaderID int) error {
	return g.runStatusMutation(ctx, mutationRemoveLeaderFromGroup, "removeLeaderFromGroup",
		map[string]any{"groupId": groupID, "leaderId": leaderID})
}

// CreateVolunteer creates a volunteer.
func (g *Gateway) CreateVolunteer(ctx context.Context, in VolunteerInput) (volunteer.Volunteer, error) {
	var out struct {
		Volunteer volunteer.Volunteer `json:"createVolunteer"`
	}
	vars := map[string]any{"firstName": in.FirstName, "lastName": in.LastName}
	if err := g.client.Request(ctx, mutationCreateVolunteer, vars, &out); err != nil {
		return volunteer.Volunteer{}, err
	}
	return out.Volunteer, nil
}

// UpdateVolunteer replaces a volunteer's editable fields.
func (g *Gateway) UpdateVolunteer(ctx context.Context, volunteerID int, in VolunteerInput) (volunteer.Volunteer, error) {
	var out struct {
		Volunteer volunteer.Volunteer `json:"updateVolunteer"`
	}
	vars := map[string]any{"volunteerId": volunteerID, "firstName": in.FirstName, "lastName": in.LastName}
	if err := g.client.Request(ctx, mutationUpdateVolunteer, vars, &out); err != nil {
		return volunteer.Volunteer{}, err
	}
	return out.Volunteer, nil
}

// DeleteVolunteer removes a volunteer.
func (g *Gateway) DeleteVolunteer(ctx context.Context, volunteerID int) error {
	return g.runStatusMutation(ctx, mutationDeleteVolunteer, "deleteVolunteer", map[string]any{"volunteerId": volunteerID})
}

// AddVolunteerToEvent records that a volunteer serves at an event.
func (g *Gateway) AddVolunteerToEvent(ctx context.Context, volunteerID, eventID int) error {
	return g.runStatusMutation(ctx, mutationAddVolunteerToEvent, "addVolunteerToEvent",
		map[string]any{"volunteerId": volunteerID, "eventId": eventID})
}

// RemoveVolunteerFromEvent removes a volunteer from an event.
func (g *Gateway) RemoveVolunteerFromEvent(ctx context.Context, volunteerID, eventID int) error {
	return g.runStatusMutation(ctx, mutationRemoveVolunteerFromEvent, "removeVolunteerFromEvent",
		map[string]any{"volunteerId": volunteerID, "eventId": eventID})
}
