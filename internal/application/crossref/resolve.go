// Package crossref joins bare ids from live sources against collections
// already fetched for the current render.
package crossref

import (
	"fmt"

	"ministry/internal/domain/event"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

// Label is a display-ready reference to a student.
type Label struct {
	ID    int
	Name  string
	Found bool
}

// Resolve maps each id to a label from pool.
// PRE: none; ids and pool may be empty or contain duplicates
// POST: len(result) == len(ids), result[i].ID == ids[i]
// INVARIANT: never fails; an id missing from pool yields "Student #N"
func Resolve(ids []int, pool []student.Student) []Label {
	byID := make(map[int]student.Student, len(pool))
	for _, s := range pool {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = s
		}
	}
	labels := make([]Label, len(ids))
	for i, id := range ids {
		if s, ok := byID[id]; ok {
			labels[i] = Label{ID: id, Name: s.FullName(), Found: true}
			continue
		}
		labels[i] = Label{ID: id, Name: Placeholder(id)}
	}
	return labels
}

// Placeholder is the label used for a student id absent from the roster.
func Placeholder(id int) string {
	return fmt.Sprintf("Student #%d", id)
}

// AvailableStudents returns roster entries that are not members, in roster order.
// POST: no returned student appears in members
func AvailableStudents(roster, members []student.Student) []student.Student {
	taken := make(map[int]bool, len(members))
	for _, m := range members {
		taken[m.ID] = true
	}
	out := make([]student.Student, 0, len(roster))
	for _, s := range roster {
		if !taken[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// AvailableLeaders returns leaders not already assigned, in input order.
// POST: no returned leader appears in assigned
func AvailableLeaders(all, assigned []leader.Leader) []leader.Leader {
	taken := make(map[int]bool, len(assigned))
	for _, l := range assigned {
		taken[l.ID] = true
	}
	out := make([]leader.Leader, 0, len(all))
	for _, l := range all {
		if !taken[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// AvailableEvents returns events the volunteer is not yet recorded at.
func AvailableEvents(all []event.Event, records []volunteer.Record) []event.Event {
	taken := make(map[int]bool, len(records))
	for _, r := range records {
		taken[r.EventID] = true
	}
	out := make([]event.Event, 0, len(all))
	for _, e := range all {
		if !taken[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
