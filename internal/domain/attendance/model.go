package attendance

import (
	"fmt"
	"strings"
)

// PresentTag is the status shown next to persisted attendance entries.
const PresentTag = "Present"

// Record is a persisted historical check-in of a student at an event.
type Record struct {
	ID        int    `json:"id"`
	StudentID int    `json:"studentId"`
	EventID   int    `json:"eventId"`
	TheDate   string `json:"theDATE"`
	TheTime   string `json:"theTime"`
	EventName string `json:"eventName"`
}

// When returns "DATE at TIME" as the backend recorded it.
// PRE: Record is initialized
// POST: Returns a display string, omitting empty parts
func (r Record) When() string {
	switch {
	case r.TheDate != "" && r.TheTime != "":
		return r.TheDate + " at " + r.TheTime
	case r.TheDate != "":
		return r.TheDate
	default:
		return r.TheTime
	}
}

// EventLabel returns the event name or "Event #N" when the event was removed.
func (r Record) EventLabel() string {
	if strings.TrimSpace(r.EventName) == "" {
		return fmt.Sprintf("Event #%d", r.EventID)
	}
	return r.EventName
}
