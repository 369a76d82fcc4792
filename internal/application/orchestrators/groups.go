package orchestrators

import (
	"context"
	"fmt"
	"strings"

	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/group"
)

// GroupWriter is the backend surface needed by group mutations.
type GroupWriter interface {
	CreateGroup(ctx context.Context, name string) (group.Group, error)
	UpdateGroup(ctx context.Context, groupID int, name string) (group.Group, error)
	DeleteGroup(ctx context.Context, groupID int) error
	AddStudentToGroup(ctx context.Context, groupID, studentID int) error
	RemoveStudentFromGroup(ctx context.Context, groupID, studentID int) error
	AddLeaderToGroup(ctx context.Context, groupID, leaderID int) error
	RemoveLeaderFromGroup(ctx context.Context, groupID, leaderID int) error
}

// GroupDeps holds dependencies for group mutations.
type GroupDeps struct {
	Groups   GroupWriter
	Activity ActivityRecorder
}

// SaveGroupInput carries the raw group form. GroupID is blank on create.
type SaveGroupInput struct {
	Actor   Actor
	GroupID string
	Name    string
}

func (in SaveGroupInput) name() (string, error) {
	g := group.Group{Name: strings.TrimSpace(in.Name)}
	if err := g.Validate(); err != nil {
		return "", invalid("name", "Group name is required")
	}
	return g.Name, nil
}

// ExecuteCreateGroup creates an empty group.
func ExecuteCreateGroup(ctx context.Context, input SaveGroupInput, deps GroupDeps) (MutationResult, error) {
	name, err := input.name()
	if err != nil {
		return MutationResult{}, err
	}
	created, err := deps.Groups.CreateGroup(ctx, name)
	logMutation("create_group", input.Actor, created.ID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryGroup, domainAudit.ActionCreate, created.ID, err, name)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Group created successfully!", EntityID: created.ID}, nil
}

// ExecuteUpdateGroup renames a group.
func ExecuteUpdateGroup(ctx context.Context, input SaveGroupInput, deps GroupDeps) (MutationResult, error) {
	id, err := parseID("group_id", input.GroupID, "Group ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	name, err := input.name()
	if err != nil {
		return MutationResult{}, err
	}
	_, err = deps.Groups.UpdateGroup(ctx, id, name)
	logMutation("update_group", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryGroup, domainAudit.ActionUpdate, id, err, name)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Group updated successfully!", EntityID: id}, nil
}

// ExecuteDeleteGroup removes a group. Its students and leaders are kept.
// PRE: input.Confirmed
func ExecuteDeleteGroup(ctx context.Context, input DeleteInput, deps GroupDeps) (MutationResult, error) {
	id, err := parseID("group_id", input.ID, "Group ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	if !input.Confirmed {
		return MutationResult{}, ErrConfirmationRequired
	}
	err = deps.Groups.DeleteGroup(ctx, id)
	logMutation("delete_group", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryGroup, domainAudit.ActionDelete, id, err, "")
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Group deleted.", EntityID: id}, nil
}

// MembershipChange names which side of a group a membership edit touches.
type MembershipChange int

const (
	AddMember MembershipChange = iota
	RemoveMember
	AddLeader
	RemoveLeader
)

// GroupMembershipInput carries a member or leader change.
type GroupMembershipInput struct {
	Actor    Actor
	GroupID  string
	PersonID string
	Change   MembershipChange
}

// ExecuteGroupMembership adds or removes a student or leader.
// PRE: both ids are positive numbers
// POST: the group modal stays open; its lists reflect the change on the next render
func ExecuteGroupMembership(ctx context.Context, input GroupMembershipInput, deps GroupDeps) (MutationResult, error) {
	groupID, err := parseID("group_id", input.GroupID, "Group ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	personMsg := "Please select a student"
	if input.Change == AddLeader || input.Change == RemoveLeader {
		personMsg = "Please select a leader"
	}
	personID, err := parseID("person_id", input.PersonID, personMsg)
	if err != nil {
		return MutationResult{}, err
	}

	var (
		action  domainAudit.Action
		op, msg string
	)
	switch input.Change {
	case AddMember:
		err = deps.Groups.AddStudentToGroup(ctx, groupID, personID)
		action, op, msg = domainAudit.ActionAddMember, "add_group_member", "Student added to group."
	case RemoveMember:
		err = deps.Groups.RemoveStudentFromGroup(ctx, groupID, personID)
		action, op, msg = domainAudit.ActionRemoveMember, "remove_group_member", "Student removed from group."
	case AddLeader:
		err = deps.Groups.AddLeaderToGroup(ctx, groupID, personID)
		action, op, msg = domainAudit.ActionAddLeader, "add_group_leader", "Leader added to group."
	case RemoveLeader:
		err = deps.Groups.RemoveLeaderFromGroup(ctx, groupID, personID)
		action, op, msg = domainAudit.ActionRemoveLeader, "remove_group_leader", "Leader removed from group."
	default:
		return MutationResult{}, invalid("change", "Unknown membership change")
	}
	logMutation(op, input.Actor, groupID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryGroup, action, groupID, err, fmt.Sprintf("person %d", personID))
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: msg, EntityID: groupID}, nil
}
