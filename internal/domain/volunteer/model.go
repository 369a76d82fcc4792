package volunteer

import (
	"errors"
	"fmt"
	"strings"
)

// Volunteer is an adult who serves at events.
type Volunteer struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last".
func (v Volunteer) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// Validate checks if the Volunteer has valid data for a create or update.
// PRE: Volunteer struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (v Volunteer) Validate() error {
	if strings.TrimSpace(v.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(v.LastName) == "" {
		return errors.New("last name is required")
	}
	return nil
}

// Record is one entry in a volunteer's service history.
type Record struct {
	ID          int    `json:"id"`
	VolunteerID int    `json:"volunteerId"`
	EventID     int    `json:"eventId"`
	EventName   string `json:"eventName"`
}

// EventLabel returns the event name or "Event #N".
func (r Record) EventLabel() string {
	if strings.TrimSpace(r.EventName) == "" {
		return fmt.Sprintf("Event #%d", r.EventID)
	}
	return r.EventName
}
