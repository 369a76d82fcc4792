package leader

import (
	"errors"
	"strings"
)

// Leader is a youth-group leader who can sign in to the dashboard.
type Leader struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last", trimmed when either part is missing.
func (l Leader) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// Validate checks if the Leader has valid data.
// PRE: Leader struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ID must be positive
func (l Leader) Validate() error {
	if l.ID < 1 {
		return errors.New("leader id must be positive")
	}
	return nil
}
