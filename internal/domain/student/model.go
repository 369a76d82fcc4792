package student

import (
	"errors"
	"strings"
)

// NoGuardianLabel is shown when a student has no guardian on file.
const NoGuardianLabel = "Not assigned"

// Student holds a youth-group student as served by the backend.
type Student struct {
	ID           int    `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	GuardianID   *int   `json:"guardianID,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

// FullName returns "First Last".
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// GuardianLabel returns the guardian's name, or NoGuardianLabel.
func (s Student) GuardianLabel() string {
	if strings.TrimSpace(s.GuardianName) == "" {
		return NoGuardianLabel
	}
	return s.GuardianName
}

// Validate checks if the Student has valid data.
// PRE: Student struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: first and last name must be present, guardian id positive when set
func (s Student) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(s.LastName) == "" {
		return errors.New("last name is required")
	}
	if s.GuardianID != nil && *s.GuardianID < 1 {
		return errors.New("guardian id must be positive")
	}
	return nil
}

// IDs returns the ids of students in order.
func IDs(students []Student) []int {
	ids := make([]int, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	return ids
}
