package crossref

import (
	"strconv"
	"strings"
	"testing"

	"ministry/internal/domain/event"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
	"ministry/internal/domain/volunteer"
)

var roster = []student.Student{
	{ID: 1, FirstName: "Ada", LastName: "Stone"},
	{ID: 2, FirstName: "Ben", LastName: "Cole"},
	{ID: 3, FirstName: "Cy", LastName: "Hart"},
}

// TestResolve_OrderAndLength verifies output follows the id sequence, not the pool.
func TestResolve_OrderAndLength(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		pool []student.Student
		want []string
	}{
		{name: "empty ids", ids: nil, pool: roster, want: []string{}},
		{name: "empty pool", ids: []int{5, 6}, pool: nil, want: []string{"Student #5", "Student #6"}},
		{name: "reverse order", ids: []int{3, 1}, pool: roster, want: []string{"Cy Hart", "Ada Stone"}},
		{name: "mixed", ids: []int{2, 42, 1}, pool: roster, want: []string{"Ben Cole", "Student #42", "Ada Stone"}},
		{name: "duplicates kept", ids: []int{1, 1}, pool: roster, want: []string{"Ada Stone", "Ada Stone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.ids, tt.pool)
			if len(got) != len(tt.ids) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.ids))
			}
			for i := range got {
				if got[i].ID != tt.ids[i] {
					t.Errorf("[%d].ID = %d, want %d", i, got[i].ID, tt.ids[i])
				}
				if got[i].Name != tt.want[i] {
					t.Errorf("[%d].Name = %q, want %q", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

// TestResolve_MissingContainsID checks the placeholder embeds the raw id for many ids.
func TestResolve_MissingContainsID(t *testing.T) {
	for id := 100; id < 150; id++ {
		got := Resolve([]int{id}, roster)
		if got[0].Found {
			t.Fatalf("id %d should not be found", id)
		}
		if !strings.Contains(got[0].Name, strconv.Itoa(id)) {
			t.Errorf("label %q does not contain %d", got[0].Name, id)
		}
	}
}

// TestAvailableStudents verifies members never appear among candidates.
func TestAvailableStudents(t *testing.T) {
	members := []student.Student{roster[0], roster[1]}
	got := AvailableStudents(roster, members)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("AvailableStudents = %+v, want exactly student 3", got)
	}

	if got := AvailableStudents(roster, nil); len(got) != 3 {
		t.Errorf("no members: len = %d, want 3", len(got))
	}
	if got := AvailableStudents(roster, roster); len(got) != 0 {
		t.Errorf("all members: len = %d, want 0", len(got))
	}
}

// TestAvailableLeaders verifies assigned leaders are excluded and order kept.
func TestAvailableLeaders(t *testing.T) {
	all := []leader.Leader{{ID: 4}, {ID: 1}, {ID: 9}, {ID: 2}}
	got := AvailableLeaders(all, []leader.Leader{{ID: 9}})
	want := []int{4, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d] = %d, want %d", i, got[i].ID, id)
		}
	}
}

// TestAvailableEvents verifies recorded events are excluded.
func TestAvailableEvents(t *testing.T) {
	all := []event.Event{{ID: 1}, {ID: 2}, {ID: 3}}
	got := AvailableEvents(all, []volunteer.Record{{EventID: 2}})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("AvailableEvents = %+v", got)
	}
}
