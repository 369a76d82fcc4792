// Package session holds the authenticated leader's state between requests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no live session exists for an id.
var ErrNotFound = errors.New("session not found")

// Session is the persisted state of a logged-in leader.
type Session struct {
	ID         string    `json:"id"`
	LeaderID   int       `json:"leader_id"`
	LeaderName string    `json:"leader_name"`
	CreatedAt  time.Time `json:"created_at"`
	// Flash is a one-shot status message shown on the next page render.
	Flash      string `json:"flash,omitempty"`
	FlashError bool   `json:"flash_error,omitempty"`
}

// New creates a session for a verified leader.
// PRE: leaderID > 0
// POST: ID is a fresh random identifier
func New(leaderID int, leaderName string) Session {
	return Session{
		ID:         uuid.NewString(),
		LeaderID:   leaderID,
		LeaderName: leaderName,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the session with id.
	// POST: Returns ErrNotFound when absent or expired
	Load(ctx context.Context, id string) (Session, error)

	// Save creates or replaces a session.
	Save(ctx context.Context, s Session) error

	// Clear removes a session. Clearing an absent session is not an error.
	Clear(ctx context.Context, id string) error
}
