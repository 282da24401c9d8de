package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// ListInput identifies the page of dashboard summaries to fetch.
type ListInput struct {
	Org    string `json:"org"`
	Cursor string `json:"cursor,omitempty"`
}

// ListPage is one page of summaries plus the next-page cursor.
type ListPage struct {
	Items      []dashboards.DashboardListItem `json:"items"`
	NextCursor string                         `json:"next_cursor,omitempty"`
}

type listService interface {
	List(ctx context.Context, org, cursor string) ([]dashboards.DashboardListItem, string, error)
}

// ListDashboardsQuery fetches a page of dashboard summaries.
type ListDashboardsQuery struct {
	service listService
}

// NewListDashboardsQuery builds the query.
func NewListDashboardsQuery(service listService) *ListDashboardsQuery {
	return &ListDashboardsQuery{service: service}
}

var _ gocommand.Querier[ListInput, ListPage] = (*ListDashboardsQuery)(nil)

// Query fetches the page.
func (q *ListDashboardsQuery) Query(ctx context.Context, input ListInput) (ListPage, error) {
	items, next, err := q.service.List(ctx, input.Org, input.Cursor)
	if err != nil {
		return ListPage{}, err
	}
	return ListPage{Items: items, NextCursor: next}, nil
}
