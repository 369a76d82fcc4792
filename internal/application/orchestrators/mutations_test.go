package orchestrators

import (
	"context"
	"errors"
	"testing"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/event"
)

// TestValidationRunsBeforeBackend verifies every rejected form leaves the backend
// untouched and names the input that was wrong.
func TestValidationRunsBeforeBackend(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		field string
		run   func(gw *mockGateway) error
	}{
		{"student blank name", "last_name", func(gw *mockGateway) error {
			_, err := ExecuteCreateStudent(ctx, SaveStudentInput{FirstName: "Ada", LastName: "  "}, StudentDeps{Students: gw})
			return err
		}},
		{"student blank first name", "first_name", func(gw *mockGateway) error {
			_, err := ExecuteCreateStudent(ctx, SaveStudentInput{LastName: "Stone"}, StudentDeps{Students: gw})
			return err
		}},
		{"student bad guardian", "guardian_id", func(gw *mockGateway) error {
			_, err := ExecuteCreateStudent(ctx, SaveStudentInput{FirstName: "Ada", LastName: "Stone", GuardianID: "x"}, StudentDeps{Students: gw})
			return err
		}},
		{"student update bad id", "student_id", func(gw *mockGateway) error {
			_, err := ExecuteUpdateStudent(ctx, SaveStudentInput{StudentID: "0", FirstName: "A", LastName: "B"}, StudentDeps{Students: gw})
			return err
		}},
		{"event missing notes", "notes", func(gw *mockGateway) error {
			_, err := ExecuteCreateEvent(ctx, SaveEventInput{Type: "Worship", EventTypeID: "5"}, EventDeps{Events: gw})
			return err
		}},
		{"event type id zero", "event_type_id", func(gw *mockGateway) error {
			_, err := ExecuteCreateEvent(ctx, SaveEventInput{Type: "Worship", Notes: "x", EventTypeID: "0"}, EventDeps{Events: gw})
			return err
		}},
		{"check-in non numeric student", "student_id", func(gw *mockGateway) error {
			_, err := ExecuteCheckIn(ctx, CheckInInput{EventID: "1", StudentID: "ab"}, EventDeps{Events: gw})
			return err
		}},
		{"quick check-in missing event", "event_id", func(gw *mockGateway) error {
			_, err := ExecuteQuickCheckIn(ctx, CheckInInput{StudentID: "42"}, EventDeps{Events: gw})
			return err
		}},
		{"blank note", "content", func(gw *mockGateway) error {
			_, err := ExecuteAddMeetingNote(ctx, AddNoteInput{EventID: "1", Content: " \n "}, EventDeps{Events: gw})
			return err
		}},
		{"group blank name", "name", func(gw *mockGateway) error {
			_, err := ExecuteCreateGroup(ctx, SaveGroupInput{Name: ""}, GroupDeps{Groups: gw})
			return err
		}},
		{"group member missing student", "person_id", func(gw *mockGateway) error {
			_, err := ExecuteGroupMembership(ctx, GroupMembershipInput{GroupID: "1", Change: AddMember}, GroupDeps{Groups: gw})
			return err
		}},
		{"volunteer blank last name", "last_name", func(gw *mockGateway) error {
			_, err := ExecuteCreateVolunteer(ctx, SaveVolunteerInput{FirstName: "Sam"}, VolunteerDeps{Volunteers: gw})
			return err
		}},
		{"volunteer assignment missing event", "event_id", func(gw *mockGateway) error {
			_, err := ExecuteVolunteerAssignment(ctx, VolunteerAssignmentInput{VolunteerID: "3"}, VolunteerDeps{Volunteers: gw})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			err := tt.run(gw)
			if !IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
			if got := FieldOf(err); got != tt.field {
				t.Errorf("FieldOf() = %q, want %q", got, tt.field)
			}
			if gw.callCount() != 0 {
				t.Errorf("backend called: %v", gw.calls)
			}
		})
	}
}

// TestDestructiveOpsRequireConfirmation verifies unconfirmed deletes and persists never reach the backend.
func TestDestructiveOpsRequireConfirmation(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{}
	in := DeleteInput{Actor: testActor, ID: "3"}

	checks := map[string]error{}
	_, checks["student"] = ExecuteDeleteStudent(ctx, in, StudentDeps{Students: gw})
	_, checks["event"] = ExecuteDeleteEvent(ctx, in, EventDeps{Events: gw})
	_, checks["group"] = ExecuteDeleteGroup(ctx, in, GroupDeps{Groups: gw})
	_, checks["volunteer"] = ExecuteDeleteVolunteer(ctx, in, VolunteerDeps{Volunteers: gw})
	_, checks["persist"] = ExecutePersistAttendance(ctx, PersistInput{EventID: "3"}, EventDeps{Events: gw})

	for name, err := range checks {
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Errorf("%s: err = %v, want ErrConfirmationRequired", name, err)
		}
	}
	if gw.callCount() != 0 {
		t.Errorf("backend called: %v", gw.calls)
	}
}

// TestConfirmationMessages verifies the success text of each write.
func TestConfirmationMessages(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{nextID: 11, persist: 4}
	tests := []struct {
		name string
		run  func() (MutationResult, error)
		want string
	}{
		{"create student", func() (MutationResult, error) {
			return ExecuteCreateStudent(ctx, SaveStudentInput{FirstName: "Ada", LastName: "Stone", GuardianID: "3"}, StudentDeps{Students: gw})
		}, "Student created successfully!"},
		{"update student", func() (MutationResult, error) {
			return ExecuteUpdateStudent(ctx, SaveStudentInput{StudentID: "2", FirstName: "Ada", LastName: "Stone"}, StudentDeps{Students: gw})
		}, "Student updated successfully!"},
		{"create event", func() (MutationResult, error) {
			return ExecuteCreateEvent(ctx, SaveEventInput{Type: "Worship", Notes: "Sunday", EventTypeID: "5"}, EventDeps{Events: gw})
		}, "Event created successfully!"},
		{"update event", func() (MutationResult, error) {
			return ExecuteUpdateEvent(ctx, SaveEventInput{EventID: "2", Type: "Worship", Notes: "Sunday", EventTypeID: "5"}, EventDeps{Events: gw})
		}, "Event updated successfully!"},
		{"check in", func() (MutationResult, error) {
			return ExecuteCheckIn(ctx, CheckInInput{EventID: "1", StudentID: "42"}, EventDeps{Events: gw})
		}, "Student 42 checked in successfully!"},
		{"persist", func() (MutationResult, error) {
			return ExecutePersistAttendance(ctx, PersistInput{EventID: "1", Confirmed: true}, EventDeps{Events: gw})
		}, "Successfully saved 4 attendance records!"},
		{"note", func() (MutationResult, error) {
			return ExecuteAddMeetingNote(ctx, AddNoteInput{EventID: "1", Content: "Great **night**"}, EventDeps{Events: gw})
		}, "Note added successfully!"},
		{"create group", func() (MutationResult, error) {
			return ExecuteCreateGroup(ctx, SaveGroupInput{Name: "Juniors"}, GroupDeps{Groups: gw})
		}, "Group created successfully!"},
		{"remove leader", func() (MutationResult, error) {
			return ExecuteGroupMembership(ctx, GroupMembershipInput{GroupID: "1", PersonID: "9", Change: RemoveLeader}, GroupDeps{Groups: gw})
		}, "Leader removed from group."},
		{"create volunteer", func() (MutationResult, error) {
			return ExecuteCreateVolunteer(ctx, SaveVolunteerInput{FirstName: "Sam", LastName: "Ng"}, VolunteerDeps{Volunteers: gw})
		}, "Volunteer created successfully!"},
		{"unassign volunteer", func() (MutationResult, error) {
			return ExecuteVolunteerAssignment(ctx, VolunteerAssignmentInput{VolunteerID: "3", EventID: "2", Remove: true}, VolunteerDeps{Volunteers: gw})
		}, "Volunteer removed from event."},
		{"delete group", func() (MutationResult, error) {
			return ExecuteDeleteGroup(ctx, DeleteInput{ID: "1", Confirmed: true}, GroupDeps{Groups: gw})
		}, "Group deleted."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run()
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if res.Message != tt.want {
				t.Errorf("Message = %q, want %q", res.Message, tt.want)
			}
		})
	}
}

// TestExecuteQuickCheckIn_StatusMessage verifies the REST status is echoed to the leader.
func TestExecuteQuickCheckIn_StatusMessage(t *testing.T) {
	gw := &mockGateway{ack: event.CheckIn{StudentID: 42, EventID: 1, Status: "checked-in"}}
	res, err := ExecuteQuickCheckIn(context.Background(), CheckInInput{EventID: "1", StudentID: "42"}, EventDeps{Events: gw})
	if err != nil {
		t.Fatalf("ExecuteQuickCheckIn: %v", err)
	}
	if res.Message != "Student 42 is checked-in for event 1." {
		t.Errorf("Message = %q", res.Message)
	}
	if gw.lastVars[0] != 1 || gw.lastVars[1] != 42 {
		t.Errorf("ids sent = %v, want [1 42]", gw.lastVars)
	}
}

// TestExecuteCreateStudent_GuardianOptional verifies a blank guardian is sent as nil.
func TestExecuteCreateStudent_GuardianOptional(t *testing.T) {
	gw := &mockGateway{nextID: 5}
	if _, err := ExecuteCreateStudent(context.Background(), SaveStudentInput{FirstName: " Ada ", LastName: "Stone"}, StudentDeps{Students: gw}); err != nil {
		t.Fatalf("err = %v", err)
	}
	in := gw.lastIn.(backend.StudentInput)
	if in.GuardianID != nil || in.FirstName != "Ada" {
		t.Errorf("input = %+v", in)
	}
}

// TestMutationFailureIsRecorded verifies backend refusals surface and are logged as failures.
func TestMutationFailureIsRecorded(t *testing.T) {
	gw := &mockGateway{err: errRemote}
	rec := &mockRecorder{}

	_, err := ExecuteDeleteEvent(context.Background(), DeleteInput{Actor: testActor, ID: "3", Confirmed: true}, EventDeps{Events: gw, Activity: rec})
	if !backend.IsRemote(err) || err.Error() != "Event not found" {
		t.Fatalf("err = %v, want remote Event not found", err)
	}
	e := rec.last()
	if e.Outcome != domainAudit.OutcomeFailure || e.Detail != "Event not found" || e.TargetID != 3 || e.LeaderID != 7 {
		t.Errorf("activity = %+v", e)
	}
}

// TestGroupMembership_Dispatch verifies each change calls the matching backend operation.
func TestGroupMembership_Dispatch(t *testing.T) {
	tests := map[MembershipChange]string{
		AddMember:    "AddStudentToGroup",
		RemoveMember: "RemoveStudentFromGroup",
		AddLeader:    "AddLeaderToGroup",
		RemoveLeader: "RemoveLeaderFromGroup",
	}
	for change, want := range tests {
		gw := &mockGateway{}
		_, err := ExecuteGroupMembership(context.Background(), GroupMembershipInput{GroupID: "2", PersonID: "8", Change: change}, GroupDeps{Groups: gw})
		if err != nil {
			t.Fatalf("%s: %v", want, err)
		}
		if len(gw.calls) != 1 || gw.calls[0] != want || gw.lastVars[0] != 2 || gw.lastVars[1] != 8 {
			t.Errorf("calls = %v vars = %v, want %s(2, 8)", gw.calls, gw.lastVars, want)
		}
	}
}
