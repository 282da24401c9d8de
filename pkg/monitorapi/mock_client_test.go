package monitorapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-monitor/components/dashboards"
)

func TestMockClientRoundTrip(t *testing.T) {
	client := NewMockClient(MockData{Dashboards: []dashboards.DashboardDetail{
		{ID: "d1", Title: "One", Widgets: []dashboards.Widget{{DisplayType: dashboards.DisplayTable}}},
	}})
	ctx := context.Background()

	items, next, err := client.ListDashboards(ctx, "acme", "", 25)
	if err != nil {
		t.Fatalf("ListDashboards: %v", err)
	}
	if next != "" || len(items) != 1 {
		t.Fatalf("unexpected page %#v next=%q", items, next)
	}
	if len(items[0].WidgetPreview) != 1 {
		t.Fatalf("expected preview derived from widgets, got %#v", items[0])
	}

	created, err := client.CreateDashboard(ctx, "acme", dashboards.DashboardDetail{
		Title:   "Two",
		Widgets: []dashboards.Widget{{DisplayType: dashboards.DisplayLine}},
	}, false)
	if err != nil {
		t.Fatalf("CreateDashboard: %v", err)
	}
	if created.ID == "" || created.Widgets[0].ID == "" {
		t.Fatalf("expected backend-style id assignment, got %#v", created)
	}

	fetched, err := client.FetchDashboard(ctx, "acme", created.ID)
	if err != nil {
		t.Fatalf("FetchDashboard: %v", err)
	}
	if fetched.Title != "Two" {
		t.Fatalf("unexpected fetched detail %#v", fetched)
	}

	if err := client.DeleteDashboard(ctx, "acme", "d1"); err != nil {
		t.Fatalf("DeleteDashboard: %v", err)
	}
	if err := client.DeleteDashboard(ctx, "acme", "d1"); err == nil {
		t.Fatalf("expected error deleting a missing dashboard")
	}
}
