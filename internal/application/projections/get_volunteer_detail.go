package projections

import (
	"context"

	"ministry/internal/application/crossref"
	"ministry/internal/domain/event"
	"ministry/internal/domain/volunteer"
)

// GetVolunteerDetailDeps holds dependencies for the volunteer modal projection.
type GetVolunteerDetailDeps struct {
	Records VolunteerRecordSource
}

// VolunteerDetailResult is the volunteer modal view.
type VolunteerDetailResult struct {
	Volunteer       volunteer.Volunteer
	Records         []volunteer.Record
	AvailableEvents []event.Event
	RecordsErr      string
}

// QueryGetVolunteerDetail loads service history and the events still open to v.
// POST: on a records failure, no events are offered
func QueryGetVolunteerDetail(ctx context.Context, v volunteer.Volunteer, events []event.Event, deps GetVolunteerDetailDeps) VolunteerDetailResult {
	result := VolunteerDetailResult{Volunteer: v}
	records, err := deps.Records.VolunteerRecords(ctx, v.ID)
	if err != nil {
		result.RecordsErr = err.Error()
		return result
	}
	result.Records = records
	result.AvailableEvents = crossref.AvailableEvents(events, records)
	return result
}
