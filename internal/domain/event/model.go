package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Event is a scheduled youth-group event.
// The backend serves events from two sources whose JSON keys differ in case,
// so decoding accepts both spellings.
type Event struct {
	ID          int
	Type        string
	Notes       string
	EventTypeID *int
}

// Title returns the event's display title.
func (e Event) Title() string {
	if strings.TrimSpace(e.Type) == "" {
		return fmt.Sprintf("Event #%d", e.ID)
	}
	return e.Type
}

// Description returns the notes or a placeholder.
func (e Event) Description() string {
	if strings.TrimSpace(e.Notes) == "" {
		return "No description"
	}
	return e.Notes
}

// TypeIDValue returns the event type id or 0 when unset.
func (e Event) TypeIDValue() int {
	if e.EventTypeID == nil {
		return 0
	}
	return *e.EventTypeID
}

// Validate checks if the Event has valid data for a create or update.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Type and Notes are present, EventTypeID is positive
func (e Event) Validate() error {
	if strings.TrimSpace(e.Type) == "" {
		return errors.New("event type is required")
	}
	if strings.TrimSpace(e.Notes) == "" {
		return errors.New("notes are required")
	}
	if e.EventTypeID == nil || *e.EventTypeID < 1 {
		return errors.New("event type id must be a positive number")
	}
	return nil
}

var (
	typeKeys   = []string{"Type", "type"}
	notesKeys  = []string{"Notes", "notes"}
	typeIDKeys = []string{"eventTypeid", "eventTypeId", "eventTypeID", "event_typeID"}
)

// UnmarshalJSON decodes an event from either the REST or GraphQL shape.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Event
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &out.ID); err != nil {
			return fmt.Errorf("event id: %w", err)
		}
	}
	if err := decodeFirst(raw, typeKeys, &out.Type); err != nil {
		return fmt.Errorf("event type: %w", err)
	}
	if err := decodeFirst(raw, notesKeys, &out.Notes); err != nil {
		return fmt.Errorf("event notes: %w", err)
	}
	if err := decodeFirst(raw, typeIDKeys, &out.EventTypeID); err != nil {
		return fmt.Errorf("event type id: %w", err)
	}
	*e = out
	return nil
}

// MarshalJSON encodes the event using the GraphQL field names.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int    `json:"id"`
		Type        string `json:"Type"`
		Notes       string `json:"Notes"`
		EventTypeID *int   `json:"eventTypeid"`
	}{e.ID, e.Type, e.Notes, e.EventTypeID})
}

// decodeFirst decodes the first present, non-null key into dst.
func decodeFirst(raw map[string]json.RawMessage, keys []string, dst any) error {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			continue
		}
		return json.Unmarshal(v, dst)
	}
	return nil
}
