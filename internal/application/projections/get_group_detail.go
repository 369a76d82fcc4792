package projections

import (
	"context"
	"log/slog"

	"ministry/internal/application/crossref"
	"ministry/internal/domain/group"
	"ministry/internal/domain/leader"
	"ministry/internal/domain/student"
)

// GetGroupDetailDeps holds dependencies for the group modal projection.
type GetGroupDetailDeps struct {
	Leaders LeaderSource
}

// GroupDetailResult is the group modal view with add-member and add-leader choices.
type GroupDetailResult struct {
	Group             group.Group
	AvailableStudents []student.Student
	AvailableLeaders  []leader.Leader
	LeadersErr        string
}

// QueryGetGroupDetail computes the students and leaders that can still join g.
// PRE: roster is the dashboard's student snapshot
// POST: no available student is a member and no available leader is assigned
// INVARIANT: leader choices come from the leaders query, never from other groups
func QueryGetGroupDetail(ctx context.Context, g group.Group, roster []student.Student, deps GetGroupDetailDeps) GroupDetailResult {
	result := GroupDetailResult{
		Group:             g,
		AvailableStudents: crossref.AvailableStudents(roster, g.Members),
	}
	leaders, err := deps.Leaders.Leaders(ctx)
	if err != nil {
		slog.Warn("group_detail_failed", "section", "leaders", "group_id", g.ID, "error", err.Error())
		result.LeadersErr = err.Error()
		return result
	}
	result.AvailableLeaders = crossref.AvailableLeaders(leaders, g.Leaders)
	return result
}
