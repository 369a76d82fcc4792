package event

import "fmt"

// Details aggregates live and durable state for a single event.
type Details struct {
	Type               string   `json:"Type"`
	Notes              string   `json:"Notes"`
	CurrentlyCheckedIn []int    `json:"currentlyCheckedIn"`
	LiveAttendeeCount  int      `json:"liveAttendeeCount"`
	MeetingNotes       []string `json:"meetingNotes"`
	NotesCount         int      `json:"notesCount"`
}

// MeetingNote is a freeform note attached to an event. Notes are append-only.
type MeetingNote struct {
	ID        string `json:"id"`
	EventID   int    `json:"eventId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// NoteAuthor is the byline shown on meeting notes.
const NoteAuthor = "Leader"

// CheckIn is the backend's acknowledgement of a live check-in.
type CheckIn struct {
	StudentID int    `json:"student_id"`
	EventID   int    `json:"event_id"`
	Status    string `json:"student_status"`
}

// Message returns the user-facing confirmation for the check-in.
func (c CheckIn) Message() string {
	return fmt.Sprintf("Student %d is %s for event %d.", c.StudentID, c.Status, c.EventID)
}

// TypeHints lists the event type ids the backend is seeded with.
var TypeHints = []TypeHint{
	{ID: 1, Name: "Youth Group"},
	{ID: 2, Name: "Service"},
	{ID: 3, Name: "Retreat"},
	{ID: 4, Name: "Bible Study"},
	{ID: 5, Name: "Worship"},
}

// TypeHint pairs an event type id with its name for form hints.
type TypeHint struct {
	ID   int
	Name string
}
