package monitorapi

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-monitor/components/dashboards"
	"github.com/goliatone/go-monitor/components/dashboards/datasource"
)

// MockData seeds deterministic responses for tests or local demos.
type MockData struct {
	Dashboards []dashboards.DashboardDetail
	Events     datasource.EventsTableData
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu         sync.RWMutex
	dashboards []dashboards.DashboardDetail
	events     datasource.EventsTableData
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{
		dashboards: append([]dashboards.DashboardDetail(nil), data.Dashboards...),
		events:     data.Events,
	}
}

// EventsTable returns the configured events payload ignoring query params.
func (c *MockClient) EventsTable(context.Context, string, url.Values) (datasource.EventsTableData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.events, nil
}

// ListDashboards returns summaries for every stored dashboard.
func (c *MockClient) ListDashboards(context.Context, string, string, int) ([]dashboards.DashboardListItem, string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]dashboards.DashboardListItem, len(c.dashboards))
	for i, detail := range c.dashboards {
		previews := make([]dashboards.WidgetPreview, len(detail.Widgets))
		display := make([]dashboards.DisplayType, len(detail.Widgets))
		for j, widget := range detail.Widgets {
			previews[j] = dashboards.WidgetPreview{DisplayType: widget.DisplayType, Layout: widget.Layout}
			display[j] = widget.DisplayType
		}
		items[i] = dashboards.DashboardListItem{
			ID:            detail.ID,
			Title:         detail.Title,
			CreatedBy:     detail.CreatedBy,
			CreatedAt:     detail.CreatedAt,
			WidgetDisplay: display,
			WidgetPreview: previews,
		}
	}
	return items, "", nil
}

// FetchDashboard returns the stored detail by id.
func (c *MockClient) FetchDashboard(_ context.Context, _ string, id string) (dashboards.DashboardDetail, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, detail := range c.dashboards {
		if detail.ID == id {
			return detail, nil
		}
	}
	return dashboards.DashboardDetail{}, fmt.Errorf("monitorapi: dashboard %s not found", id)
}

// CreateDashboard stores the dashboard under a fresh id and assigns widget
// ids the way the live backend would.
func (c *MockClient) CreateDashboard(_ context.Context, _ string, detail dashboards.DashboardDetail, _ bool) (dashboards.DashboardDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	detail.ID = uuid.NewString()
	for i := range detail.Widgets {
		detail.Widgets[i].ID = uuid.NewString()
	}
	c.dashboards = append(c.dashboards, detail)
	return detail, nil
}

// DeleteDashboard removes the stored dashboard by id.
func (c *MockClient) DeleteDashboard(_ context.Context, _ string, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, detail := range c.dashboards {
		if detail.ID == id {
			c.dashboards = append(c.dashboards[:i], c.dashboards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("monitorapi: dashboard %s not found", id)
}
