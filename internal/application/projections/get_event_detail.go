package projections

import (
	"context"
	"log/slog"
	"sync"

	"ministry/internal/application/crossref"
	"ministry/internal/domain/event"
)

// GetEventDetailDeps holds dependencies for the event modal projection.
type GetEventDetailDeps struct {
	Details  EventDetailsSource
	CheckIns CheckInSource
	Notes    MeetingNoteSource
}

// EventDetailResult is everything the event modal shows below the event header.
// Each section carries its own error so one failing source leaves the others visible.
type EventDetailResult struct {
	Event event.Event

	Stats      event.Details
	StatsFound bool
	StatsErr   string

	CheckedIn    []crossref.Label
	CheckedInErr string

	Notes    []event.MeetingNote
	NotesErr string
}

// QueryGetEventDetail loads stats, live check-ins and meeting notes for an event.
// PRE: ev comes from the current dashboard snapshot
// POST: check-in labels are in backend order, one per id
func QueryGetEventDetail(ctx context.Context, ev event.Event, deps GetEventDetailDeps) EventDetailResult {
	result := EventDetailResult{Event: ev}
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		stats, found, err := deps.Details.EventDetails(ctx, ev.ID)
		if err != nil {
			slog.Warn("event_detail_failed", "section", "stats", "event_id", ev.ID, "error", err.Error())
			result.StatsErr = err.Error()
			return
		}
		result.Stats, result.StatsFound = stats, found
	}()
	go func() {
		defer wg.Done()
		ids, pool, err := deps.CheckIns.CheckedInStudents(ctx, ev.ID)
		if err != nil {
			slog.Warn("event_detail_failed", "section", "check_ins", "event_id", ev.ID, "error", err.Error())
			result.CheckedInErr = err.Error()
			return
		}
		result.CheckedIn = crossref.Resolve(ids, pool)
	}()
	go func() {
		defer wg.Done()
		notes, err := deps.Notes.MeetingNotes(ctx, ev.ID)
		if err != nil {
			slog.Warn("event_detail_failed", "section", "notes", "event_id", ev.ID, "error", err.Error())
			result.NotesErr = err.Error()
			return
		}
		result.Notes = notes
	}()
	wg.Wait()

	return result
}
