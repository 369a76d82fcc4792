package group

import (
	"errors"
	"strings"

	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
)

// Group is a small group of students with one or more leaders.
type Group struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	MemberCount int               `json:"memberCount"`
	Members     []student.Student `json:"members"`
	Leaders     []leader.Leader   `json:"leaders"`
}

// Validate checks if the Group has valid data for a create or update.
// PRE: Group struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be blank
func (g Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("group name is required")
	}
	return nil
}

// Size returns the member count, preferring the nested list when present.
func (g Group) Size() int {
	if len(g.Members) > 0 {
		return len(g.Members)
	}
	return g.MemberCount
}

// HasMember reports whether the student is in the group.
func (g Group) HasMember(studentID int) bool {
	for _, m := range g.Members {
		if m.ID == studentID {
			return true
		}
	}
	return false
}

// HasLeader reports whether the leader is assigned to the group.
func (g Group) HasLeader(leaderID int) bool {
	for _, l := range g.Leaders {
		if l.ID == leaderID {
			return true
		}
	}
	return false
}
