package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
)

var (
	// ErrConfirmationRequired is returned by destructive operations submitted without confirmation.
	ErrConfirmationRequired = errors.New("please confirm before continuing")
)

// ValidationError reports input rejected before any backend call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FieldOf returns the form field err was raised for, or "" when err is not a ValidationError.
func FieldOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}

// nameField names the person-name input that failed: first_name when it is blank, else last_name.
func nameField(first string) string {
	if first == "" {
		return "first_name"
	}
	return "last_name"
}

// parseID parses a positive integer id from form input.
// POST: Returns a ValidationError carrying message for blank, non-numeric or < 1 input
func parseID(field, raw, message string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, invalid(field, message)
	}
	return n, nil
}

// parseOptionalID parses an id that may be left blank.
func parseOptionalID(field, raw, message string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	n, err := parseID(field, raw, message)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Actor identifies the leader performing an operation.
type Actor struct {
	LeaderID   int
	LeaderName string
	IP         string
}

// ActivityRecorder persists leader activity.
type ActivityRecorder interface {
	Save(ctx context.Context, event domainAudit.Event) error
}

// MutationResult is returned by every successful write.
type MutationResult struct {
	Message  string
	EntityID int
}

// recordActivity writes an activity entry for a completed or failed write.
// INVARIANT: a recorder failure is logged and never changes the outcome
func recordActivity(ctx context.Context, rec ActivityRecorder, actor Actor, category domainAudit.Category, action domainAudit.Action, targetID int, opErr error, detail string) {
	if rec == nil {
		return
	}
	e := domainAudit.NewEvent(actor.LeaderID, actor.LeaderName, category, action).
		WithTarget(targetID).
		WithIP(actor.IP)
	if opErr != nil {
		e = e.WithFailure(opErr.Error())
	} else if detail != "" {
		e = e.WithDetail(detail)
	}
	if err := rec.Save(ctx, e); err != nil {
		slog.Error("audit_write_failed", "category", string(category), "action", string(action), "error", err.Error())
	}
}

// logMutation emits the shared mutation_event line.
func logMutation(op string, actor Actor, targetID int, err error) {
	if err != nil {
		slog.Warn("mutation_event", "op", op, "leader_id", actor.LeaderID, "target_id", targetID, "outcome", "failed", "error", err.Error())
		return
	}
	slog.Info("mutation_event", "op", op, "leader_id", actor.LeaderID, "target_id", targetID, "outcome", "ok")
}

var (
	_ LeaderVerifier  = (*backend.Gateway)(nil)
	_ StudentWriter   = (*backend.Gateway)(nil)
	_ EventWriter     = (*backend.Gateway)(nil)
	_ GroupWriter     = (*backend.Gateway)(nil)
	_ VolunteerWriter = (*backend.Gateway)(nil)
)
