package audit

import (
	"time"

	"github.com/google/uuid"
)

// Category groups activity by the entity it touched.
type Category string

const (
	CategorySession    Category = "session"
	CategoryStudent    Category = "student"
	CategoryEvent      Category = "event"
	CategoryAttendance Category = "attendance"
	CategoryGroup      Category = "group"
	CategoryVolunteer  Category = "volunteer"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySession,
	CategoryStudent,
	CategoryEvent,
	CategoryAttendance,
	CategoryGroup,
	CategoryVolunteer,
}

// Action is what the leader did.
type Action string

const (
	ActionLogin        Action = "login"
	ActionLoginFailed  Action = "login_failed"
	ActionLogout       Action = "logout"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionCheckIn      Action = "check_in"
	ActionPersist      Action = "persist"
	ActionAddNote      Action = "add_note"
	ActionAddMember    Action = "add_member"
	ActionRemoveMember Action = "remove_member"
	ActionAddLeader    Action = "add_leader"
	ActionRemoveLeader Action = "remove_leader"
	ActionAssign       Action = "assign"
	ActionUnassign     Action = "unassign"
)

// Outcome records whether the backend accepted the operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one entry in the leader activity log.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Category   Category  `json:"category"`
	Action     Action    `json:"action"`
	Outcome    Outcome   `json:"outcome"`
	LeaderID   int       `json:"leader_id"`
	LeaderName string    `json:"leader_name"`
	TargetID   int       `json:"target_id"`
	Detail     string    `json:"detail"`
	IPAddress  string    `json:"ip_address"`
}

// NewEvent creates a successful activity entry stamped with the current time.
// PRE: category and action are non-empty
// POST: Returns an Event with a fresh id and OutcomeSuccess
func NewEvent(leaderID int, leaderName string, category Category, action Action) Event {
	return Event{
		ID:         uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		Category:   category,
		Action:     action,
		Outcome:    OutcomeSuccess,
		LeaderID:   leaderID,
		LeaderName: leaderName,
	}
}

// WithTarget sets the id of the entity acted on.
func (e Event) WithTarget(id int) Event {
	e.TargetID = id
	return e
}

// WithDetail sets a short human-readable detail.
func (e Event) WithDetail(detail string) Event {
	e.Detail = detail
	return e
}

// WithFailure marks the entry failed and keeps the reason as detail.
// PRE: reason is non-empty
// POST: Outcome is OutcomeFailure
func (e Event) WithFailure(reason string) Event {
	e.Outcome = OutcomeFailure
	e.Detail = reason
	return e
}

// WithIP sets the client address.
func (e Event) WithIP(ip string) Event {
	e.IPAddress = ip
	return e
}
