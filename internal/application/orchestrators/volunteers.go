package orchestrators

import (
	"context"
	"fmt"
	"strings"

	"ministry/internal/adapters/backend"
	domainAudit "ministry/internal/domain/audit"
	"ministry/internal/domain/volunteer"
)

// VolunteerWriter is the backend surface needed by volunteer mutations.
type VolunteerWriter interface {
	CreateVolunteer(ctx context.Context, in backend.VolunteerInput) (volunteer.Volunteer, error)
	UpdateVolunteer(ctx context.Context, volunteerID int, in backend.VolunteerInput) (volunteer.Volunteer, error)
	DeleteVolunteer(ctx context.Context, volunteerID int) error
	AddVolunteerToEvent(ctx context.Context, volunteerID, eventID int) error
	RemoveVolunteerFromEvent(ctx context.Context, volunteerID, eventID int) error
}

// VolunteerDeps holds dependencies for volunteer mutations.
type VolunteerDeps struct {
	Volunteers VolunteerWriter
	Activity   ActivityRecorder
}

// SaveVolunteerInput carries the raw volunteer form. VolunteerID is blank on create.
type SaveVolunteerInput struct {
	Actor       Actor
	VolunteerID string
	FirstName   string
	LastName    string
}

func (in SaveVolunteerInput) parse() (backend.VolunteerInput, error) {
	v := volunteer.Volunteer{FirstName: strings.TrimSpace(in.FirstName), LastName: strings.TrimSpace(in.LastName)}
	if err := v.Validate(); err != nil {
		return backend.VolunteerInput{}, invalid(nameField(v.FirstName), "First and last name are required")
	}
	return backend.VolunteerInput{FirstName: v.FirstName, LastName: v.LastName}, nil
}

// ExecuteCreateVolunteer creates a volunteer.
func ExecuteCreateVolunteer(ctx context.Context, input SaveVolunteerInput, deps VolunteerDeps) (MutationResult, error) {
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	created, err := deps.Volunteers.CreateVolunteer(ctx, in)
	logMutation("create_volunteer", input.Actor, created.ID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryVolunteer, domainAudit.ActionCreate, created.ID, err, in.FirstName+" "+in.LastName)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Volunteer created successfully!", EntityID: created.ID}, nil
}

// ExecuteUpdateVolunteer replaces a volunteer's name.
func ExecuteUpdateVolunteer(ctx context.Context, input SaveVolunteerInput, deps VolunteerDeps) (MutationResult, error) {
	id, err := parseID("volunteer_id", input.VolunteerID, "Volunteer ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	in, err := input.parse()
	if err != nil {
		return MutationResult{}, err
	}
	_, err = deps.Volunteers.UpdateVolunteer(ctx, id, in)
	logMutation("update_volunteer", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryVolunteer, domainAudit.ActionUpdate, id, err, in.FirstName+" "+in.LastName)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Volunteer updated successfully!", EntityID: id}, nil
}

// ExecuteDeleteVolunteer removes a volunteer.
// PRE: input.Confirmed
func ExecuteDeleteVolunteer(ctx context.Context, input DeleteInput, deps VolunteerDeps) (MutationResult, error) {
	id, err := parseID("volunteer_id", input.ID, "Volunteer ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	if !input.Confirmed {
		return MutationResult{}, ErrConfirmationRequired
	}
	err = deps.Volunteers.DeleteVolunteer(ctx, id)
	logMutation("delete_volunteer", input.Actor, id, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryVolunteer, domainAudit.ActionDelete, id, err, "")
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: "Volunteer deleted.", EntityID: id}, nil
}

// VolunteerAssignmentInput carries an assign or unassign request.
type VolunteerAssignmentInput struct {
	Actor       Actor
	VolunteerID string
	EventID     string
	Remove      bool
}

// ExecuteVolunteerAssignment assigns a volunteer to an event or removes them from it.
func ExecuteVolunteerAssignment(ctx context.Context, input VolunteerAssignmentInput, deps VolunteerDeps) (MutationResult, error) {
	volunteerID, err := parseID("volunteer_id", input.VolunteerID, "Volunteer ID must be a positive number")
	if err != nil {
		return MutationResult{}, err
	}
	eventID, err := parseID("event_id", input.EventID, "Please select an event")
	if err != nil {
		return MutationResult{}, err
	}

	action, op, msg := domainAudit.ActionAssign, "assign_volunteer", "Volunteer assigned to event."
	if input.Remove {
		action, op, msg = domainAudit.ActionUnassign, "unassign_volunteer", "Volunteer removed from event."
		err = deps.Volunteers.RemoveVolunteerFromEvent(ctx, volunteerID, eventID)
	} else {
		err = deps.Volunteers.AddVolunteerToEvent(ctx, volunteerID, eventID)
	}
	logMutation(op, input.Actor, volunteerID, err)
	recordActivity(ctx, deps.Activity, input.Actor, domainAudit.CategoryVolunteer, action, volunteerID, err, fmt.Sprintf("event %d", eventID))
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Message: msg, EntityID: volunteerID}, nil
}
