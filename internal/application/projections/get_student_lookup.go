package projections

import (
	"context"
	"fmt"

	"ministry/internal/domain/attendance"
	"ministry/internal/domain/event"
	"ministry/internal/domain/student"
)

// GetStudentLookupDeps holds dependencies for the public lookup page.
type GetStudentLookupDeps struct {
	Lookup LookupSource
}

// StudentLookupResult is the lookup page view.
type StudentLookupResult struct {
	StudentID  int
	Student    student.Student
	NotFound   bool
	Message    string
	Attendance []attendance.Record
	Events     []event.Event
}

// QueryGetStudentLookup loads a student's public dashboard.
// PRE: studentID > 0
// POST: NotFound is set with a message when no student has that id;
// a transport or remote error is returned unchanged
func QueryGetStudentLookup(ctx context.Context, studentID int, deps GetStudentLookupDeps) (StudentLookupResult, error) {
	res, err := deps.Lookup.StudentLookup(ctx, studentID)
	if err != nil {
		return StudentLookupResult{}, err
	}
	result := StudentLookupResult{StudentID: studentID, Events: res.Events}
	if res.Student == nil {
		result.NotFound = true
		result.Message = fmt.Sprintf("No student found with ID %d.", studentID)
		return result, nil
	}
	result.Student = *res.Student
	result.Attendance = res.Attendance
	return result, nil
}
