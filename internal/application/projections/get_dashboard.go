package projections

import (
	"context"
	"log/slog"
	"sync"

	"ministry/internal/domain/event"
	"ministry/internal/domain/group"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Students   StudentSource
	Events     EventSource
	Groups     GroupSource
	Volunteers VolunteerSource
}

// DashboardResult is the snapshot of every collection for one render.
// It is built fresh per request and never reused after a mutation.
type DashboardResult struct {
	Students   []student.Student
	Events     []event.Event
	Groups     []group.Group
	Volunteers []volunteer.Volunteer

	// Unavailable is set when both students and events came back empty,
	// which is treated as the backend being unreachable.
	Unavailable bool
	// Failed names the sections whose fetch failed.
	Failed []string
}

// QueryGetDashboard fetches every dashboard collection concurrently.
// PRE: all deps are non-nil
// POST: each failed collection is an empty list and is named in Failed;
// Unavailable is true when students and events are both empty
// INVARIANT: a failing collection never prevents another from loading
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) DashboardResult {
	var (
		result DashboardResult
		wg     sync.WaitGroup
		mu     sync.Mutex
	)
	fail := func(section string, err error) {
		attrs := []any{"section", section}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}
		slog.Warn("dashboard_section_failed", attrs...)
		mu.Lock()
		result.Failed = append(result.Failed, section)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		students, ok := deps.Students.Students(ctx)
		if !ok {
			fail("students", nil)
			return
		}
		result.Students = students
	}()
	go func() {
		defer wg.Done()
		events, ok := deps.Events.Events(ctx)
		if !ok {
			fail("events", nil)
			return
		}
		result.Events = events
	}()
	go func() {
		defer wg.Done()
		groups, err := deps.Groups.Groups(ctx)
		if err != nil {
			fail("groups", err)
			return
		}
		result.Groups = groups
	}()
	go func() {
		defer wg.Done()
		volunteers, err := deps.Volunteers.Volunteers(ctx)
		if err != nil {
			fail("volunteers", err)
			return
		}
		result.Volunteers = volunteers
	}()
	wg.Wait()

	result.Unavailable = len(result.Students) == 0 && len(result.Events) == 0
	return result
}

// SectionFailed reports whether the named collection failed to load.
func (d DashboardResult) SectionFailed(section string) bool {
	for _, f := range d.Failed {
		if f == section {
			return true
		}
	}
	return false
}

// Student returns the student with id from the snapshot.
func (d DashboardResult) Student(id int) (student.Student, bool) {
	for _, s := range d.Students {
		if s.ID == id {
			return s, true
		}
	}
	return student.Student{}, false
}

// Event returns the event with id from the snapshot.
func (d DashboardResult) Event(id int) (event.Event, bool) {
	for _, e := range d.Events {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

// Group returns the group with id from the snapshot.
func (d DashboardResult) Group(id int) (group.Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return group.Group{}, false
}

// Volunteer returns the volunteer with id from the snapshot.
func (d DashboardResult) Volunteer(id int) (volunteer.Volunteer, bool) {
	for _, v := range d.Volunteers {
		if v.ID == id {
			return v, true
		}
	}
	return volunteer.Volunteer{}, false
}
