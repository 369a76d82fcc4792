package projections

import (
	"context"

	auditStore "ministry/internal/adapters/storage/audit"
	"ministry/internal/application/listutil"
	domainAudit "ministry/internal/domain/audit"
)

// ActivityStore reads the local activity log.
type ActivityStore interface {
	List(ctx context.Context, filter auditStore.Filter) ([]domainAudit.Event, error)
	Count(ctx context.Context, filter auditStore.Filter) (int, error)
}

// GetActivityQuery narrows the activity log view.
type GetActivityQuery struct {
	Category string
	Page     listutil.Page
}

// GetActivityDeps holds dependencies for the activity projection.
type GetActivityDeps struct {
	Store ActivityStore
}

// ActivityResult is one page of the activity log.
type ActivityResult struct {
	Events     []domainAudit.Event
	Category   string
	Categories []domainAudit.Category
	Page       listutil.PageInfo
}

// QueryGetActivity returns one page of leader activity, newest first.
// PRE: deps.Store is non-nil
// POST: an unknown category is ignored rather than matching nothing
func QueryGetActivity(ctx context.Context, query GetActivityQuery, deps GetActivityDeps) (ActivityResult, error) {
	result := ActivityResult{Categories: domainAudit.Categories}
	var filter auditStore.Filter
	for _, c := range domainAudit.Categories {
		if string(c) == query.Category {
			filter.Category = &c
			result.Category = query.Category
			break
		}
	}

	total, err := deps.Store.Count(ctx, filter)
	if err != nil {
		return ActivityResult{}, err
	}
	result.Page = listutil.NewPageInfo(query.Page, total)
	filter.Limit = result.Page.PerPage
	filter.Offset = result.Page.Offset()

	events, err := deps.Store.List(ctx, filter)
	if err != nil {
		return ActivityResult{}, err
	}
	result.Events = events
	return result, nil
}
