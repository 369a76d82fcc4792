package orchestrators

import (
	"context"
	"strings"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/student"
)

// StudentWriter is the backend surface needed by student mutations.
type StudentWriter interface {
	CreateStudent(ctx context.Context, in backend.StudentInput) (student.Student, error)
	UpdateStudent(ctx context.Context, studentID int, in backend.StudentInput) (student.Student, error)
	DeleteStudent(ctx context.Context, studentID int) error
}

// StudentDeps holds dependencies for student mutations.
type StudentDeps struct {
	Students StudentWriter
	Activity ActivityRecorder
}

// SaveStudentInput carries the raw student form. StudentID is blank on create.
type SaveStudentInput struct {
	Actor      Actor
	StudentID  string
	FirstName  string
	LastName   string
	GuardianID string
}

func (in SaveStudentInput) parse() (backend.StudentInput, error) {
	guardian, err := parseOptionalID("guardian_id", in.GuardianID, "Guardian ID must be a number")
	if err != nil {
		return backend.StudentInput{}, err
	}
	s := student.Student{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		GuardianID: guardian,
	}
	if err := s.Validate(); err != nil {
		return backend.StudentInput{}, invalid(nameField(s.FirstName), "First and last name are required")
	}
	return backend.StudentInput{FirstName: s.FirstName, LastName: s.LastName, GuardianID: s.GuardianID}, nil
}

// ExecuteCreateStudent creates a student.
// PRE: none; input is untrusted form data
// POST: the student exists in the backend or an error is returned
// INVARIANT: invalid input never reaches the backend
func ExecuteCreateStudent(ctx context.Context, input SaveStudentInput, deps StudentDeps) (MutationResult, error) {
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	created, err := deps.Students.CreateStudent(ctx, in)
	logMutation("create_student", input.Actor, created.ID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryStudent, domainAudit.ActionCreate, created.ID, err, in.FirstName+" "+in.LastName)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Student created successfully!", EntityID: created.ID}, nil
}

// ExecuteUpdateStudent replaces a student's editable fields.
// PRE: input.StudentID names an existing student
func ExecuteUpdateStudent(ctx context.Context, input SaveStudentInput, deps StudentDeps) (MutationResult, error) {
	id, err := parseID("student_id", input.StudentID, "Student ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	_, err = deps.Students.UpdateStudent(ctx, id, in)
	logMutation("update_student", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryStudent, domainAudit.ActionUpdate, id, err, in.FirstName+" "+in.LastName)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Student updated successfully!", EntityID: id}, nil
}

// DeleteInput carries a delete request. Confirmed must be set by an explicit confirm step.
type DeleteInput struct {
	Actor     Actor
	ID        string
	Confirmed bool
}

// ExecuteDeleteStudent removes a student.
// PRE: input.Confirmed
// POST: Returns ErrConfirmationRequired without a backend call when unconfirmed
func ExecuteDeleteStudent(ctx context.Context, input DeleteInput, deps StudentDeps) (MutationResult, error) {
	id, err := parseID("student_id", input.ID, "Student ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	if !input.Confirmed {
		return MutationResult{}, ErrConfirmationRequired
	}
	err = deps.Students.DeleteStudent(ctx, id)
	logMutation("delete_student", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryStudent, domainAudit.ActionDelete, id, err, "")
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Student deleted.", EntityID: id}, nil
}
