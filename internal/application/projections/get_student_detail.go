package projections

import (
	"context"

	"ministry/internal/domain/attendance"
	"ministry/internal/domain/student"
)

// GetStudentDetailDeps holds dependencies for the student modal projection.
type GetStudentDetailDeps struct {
	Attendance AttendanceSource
}

// StudentDetailResult is the student modal view.
type StudentDetailResult struct {
	Student       student.Student
	Attendance    []attendance.Record
	AttendanceErr string
}

// QueryGetStudentDetail loads the attendance history for a student.
func QueryGetStudentDetail(ctx context.Context, s student.Student, deps GetStudentDetailDeps) StudentDetailResult {
	result := StudentDetailResult{Student: s}
	records, err := deps.Attendance.StudentAttendance(ctx, s.ID)
	if err != nil {
		result.AttendanceErr = err.Error()
		return result
	}
	result.Attendance = records
	return result
}
