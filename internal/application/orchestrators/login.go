package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/leader"
)

// LeaderVerifier looks a leader up by id.
type LeaderVerifier interface {
	LeaderByID(ctx context.Context, id int) (leader.Leader, bool, error)
}

// LoginInput carries the raw leader id typed on the login form.
type LoginInput struct {
	LeaderID string
	IP       string
}

// LoginResult identifies the verified leader to persist in the session.
type LoginResult struct {
	LeaderID   int
	LeaderName string
	Greeting   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Leaders  LeaderVerifier
	Activity ActivityRecorder
}

var (
	ErrLeaderNotFound = errors.New("Leader ID not found. Please check your ID and try again.")
)

const invalidLeaderID = "Please enter a valid Leader ID"

// ExecuteLogin verifies a leader id against the backend.
// PRE: none; input is untrusted form data
// POST: on success the caller persists LeaderID and LeaderName; on any error nothing is persisted
// INVARIANT: malformed ids never reach the backend
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	id, err := parseID("leader_id", input.LeaderID, invalidLeaderID)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "reason", "invalid_id")
		return LoginResult{}, err
	}

	l, found, err := deps.Leaders.LeaderByID(ctx, id)
	if err != nil {
		slog.Warn("auth_event", "event", "login_failed", "leader_id", id, "reason", "backend", "error", err.Error())
		return LoginResult{}, err
	}
	actor := Actor{LeaderID: id, IP: input.IP}
	if !found {
		slog.Info("auth_event", "event", "login_failed", "leader_id", id, "reason", "not_found")
		recordActivity(ctx, deps.Activity, actor, domainAudit.CategorySession, domainAudit.ActionLoginFailed, id, ErrLeaderNotFound, "")
		return LoginResult{}, ErrLeaderNotFound
	}

	actor.LeaderName = l.FullName()
	slog.Info("auth_event", "event", "login_success", "leader_id", id)
	recordActivity(ctx, deps.Activity, actor, domainAudit.CategorySession, domainAudit.ActionLogin, id, nil, "")

	return LoginResult{
		LeaderID:   id,
		LeaderName: l.FullName(),
		Greeting:   fmt.Sprintf("Welcome back, %s!", l.FirstName),
	}, nil
}

// LogoutInput identifies the leader ending their session.
type LogoutInput struct {
	Actor Actor
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Activity ActivityRecorder
}

// ExecuteLogout records the end of a session. Clearing the session itself is the caller's job.
func ExecuteLogout(ctx context.Context, input LogoutInput, deps LogoutDeps) {
	slog.Info("auth_event", "event", "logout", "leader_id", input.Actor.LeaderID)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategorySession, domainAudit.ActionLogout, input.Actor.LeaderID, nil, "")
}
