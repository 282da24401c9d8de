package dashboards

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeAPIClient struct {
	items       []DashboardListItem
	detail      DashboardDetail
	fetchErr    error
	createErr   error
	deleteErr   error
	created     []DashboardDetail
	createFlags []bool
	deleted     []string
}

func (f *fakeAPIClient) ListDashboards(context.Context, string, string, int) ([]DashboardListItem, string, error) {
	return f.items, "", nil
}

func (f *fakeAPIClient) FetchDashboard(context.Context, string, string) (DashboardDetail, error) {
	if f.fetchErr != nil {
		return DashboardDetail{}, f.fetchErr
	}
	return f.detail, nil
}

func (f *fakeAPIClient) CreateDashboard(_ context.Context, _ string, detail DashboardDetail, allowDuplicateTitle bool) (DashboardDetail, error) {
	if f.createErr != nil {
		return DashboardDetail{}, f.createErr
	}
	f.created = append(f.created, detail)
	f.createFlags = append(f.createFlags, allowDuplicateTitle)
	detail.ID = "created-1"
	return detail, nil
}

func (f *fakeAPIClient) DeleteDashboard(_ context.Context, _ string, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(_ context.Context, message string) {
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(_ context.Context, message string) {
	n.errors = append(n.errors, message)
}

func TestDeleteRefreshesAndNotifies(t *testing.T) {
	client := &fakeAPIClient{}
	notifier := &recordingNotifier{}
	refreshed := 0
	service := NewService(Options{
		Client:    client,
		Notifier:  notifier,
		OnRefresh: func(context.Context) { refreshed++ },
	})
	err := service.Delete(context.Background(), "acme", DashboardListItem{ID: "d1"})
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "d1" {
		t.Fatalf("expected delete request for d1, got %#v", client.deleted)
	}
	if refreshed != 1 {
		t.Fatalf("expected refresh callback, got %d", refreshed)
	}
	if len(notifier.successes) != 1 || len(notifier.errors) != 0 {
		t.Fatalf("expected one success notification, got %#v / %#v", notifier.successes, notifier.errors)
	}
}

func TestDeleteFailureEmitsSingleErrorNotification(t *testing.T) {
	client := &fakeAPIClient{deleteErr: errors.New("boom")}
	notifier := &recordingNotifier{}
	refreshed := 0
	service := NewService(Options{
		Client:    client,
		Notifier:  notifier,
		OnRefresh: func(context.Context) { refreshed++ },
	})
	err := service.Delete(context.Background(), "acme", DashboardListItem{ID: "d1"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if refreshed != 0 {
		t.Fatalf("expected no refresh on failure")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Error deleting Dashboard" {
		t.Fatalf("expected one delete error notification, got %#v", notifier.errors)
	}
}

func TestDuplicateStripsWidgetIDs(t *testing.T) {
	detail := DashboardDetail{
		ID:    "d1",
		Title: "Frontend Errors",
		Widgets: []Widget{
			{ID: "w1", DisplayType: DisplayTable, Queries: []WidgetQuery{{Fields: []string{"span.op"}}}},
			{ID: "w2", DisplayType: DisplayTable, Queries: []WidgetQuery{{Fields: []string{"span.op"}}}},
			{ID: "w3", DisplayType: DisplayTable, Queries: []WidgetQuery{{Fields: []string{"span.op"}}}},
		},
	}
	client := &fakeAPIClient{detail: detail}
	notifier := &recordingNotifier{}
	service := NewService(Options{Client: client, Notifier: notifier})
	existing := []DashboardListItem{{ID: "d1", Title: "Frontend Errors"}}
	if err := service.Duplicate(context.Background(), "acme", existing[0], existing); err != nil {
		t.Fatalf("Duplicate returned error: %v", err)
	}
	if len(client.created) != 1 {
		t.Fatalf("expected one create request, got %d", len(client.created))
	}
	created := client.created[0]
	if len(created.Widgets) != 3 {
		t.Fatalf("expected widget count preserved, got %d", len(created.Widgets))
	}
	for i, widget := range created.Widgets {
		if widget.ID != "" {
			t.Fatalf("expected widget %d id stripped, got %q", i, widget.ID)
		}
	}
	if !client.createFlags[0] {
		t.Fatalf("expected duplicate-title detection disabled on create")
	}
	if created.Title != "Frontend Errors copy" {
		t.Fatalf("expected deduplicated title, got %q", created.Title)
	}
}

func TestDuplicateFetchFailureNotifiesOnce(t *testing.T) {
	client := &fakeAPIClient{fetchErr: errors.New("network down")}
	notifier := &recordingNotifier{}
	service := NewService(Options{Client: client, Notifier: notifier})
	err := service.Duplicate(context.Background(), "acme", DashboardListItem{ID: "d1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(client.created) != 0 {
		t.Fatalf("expected no create after failed fetch")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Error duplicating Dashboard" {
		t.Fatalf("expected one duplicate error notification, got %#v", notifier.errors)
	}
}

func TestDuplicateCreateFailureNotifiesOnce(t *testing.T) {
	client := &fakeAPIClient{
		detail:    DashboardDetail{ID: "d1", Title: "API Latency"},
		createErr: errors.New("validation failed"),
	}
	notifier := &recordingNotifier{}
	service := NewService(Options{Client: client, Notifier: notifier})
	err := service.Duplicate(context.Background(), "acme", DashboardListItem{ID: "d1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected exactly one error notification, got %#v", notifier.errors)
	}
	if len(notifier.successes) != 0 {
		t.Fatalf("expected no success notification, got %#v", notifier.successes)
	}
}

func TestDuplicateRequiresID(t *testing.T) {
	service := NewService(Options{Client: &fakeAPIClient{}})
	if err := service.Duplicate(context.Background(), "acme", DashboardListItem{}, nil); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestServiceRequiresClient(t *testing.T) {
	service := NewService(Options{})
	if err := service.Delete(context.Background(), "acme", DashboardListItem{ID: "d1"}); !errors.Is(err, errMissingClient) {
		t.Fatalf("expected missing client error, got %v", err)
	}
}

func TestPaginateRecordsTelemetry(t *testing.T) {
	telemetry := &testTelemetry{}
	service := NewService(Options{Client: &fakeAPIClient{}, Telemetry: telemetry})
	target := service.Paginate(context.Background(), "100:2:0", "/dashboards", nil, CursorNext)
	if target.Query["cursor"] != "100:2:0" {
		t.Fatalf("expected cursor forwarded, got %#v", target.Query)
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry recorded, got %d", telemetry.calls)
	}
}

type testTelemetry struct {
	calls int
}

func (t *testTelemetry) Record(context.Context, string, map[string]any) {
	t.calls++
}

func TestListViewShapesCards(t *testing.T) {
	now := time.Now().UTC()
	client := &fakeAPIClient{items: []DashboardListItem{
		{ID: "d1", Title: "One", CreatedAt: now.Add(-time.Hour), WidgetPreview: []WidgetPreview{{DisplayType: DisplayTable}}},
		{ID: "d2", Title: "Two", CreatedAt: now, WidgetPreview: nil},
	}}
	service := NewService(Options{Client: client})
	view, _, err := service.ListView(context.Background(), "acme", "")
	if err != nil {
		t.Fatalf("ListView returned error: %v", err)
	}
	if view.Empty || len(view.Cards) != 2 {
		t.Fatalf("expected two cards, got %#v", view)
	}
	if view.Cards[0].WidgetCountLabel != "1 widget" {
		t.Fatalf("expected singular label, got %q", view.Cards[0].WidgetCountLabel)
	}
	if view.Cards[1].WidgetCountLabel != "0 widgets" {
		t.Fatalf("expected plural label, got %q", view.Cards[1].WidgetCountLabel)
	}
	if !view.Cards[0].CanDelete || !view.Cards[1].CanDelete {
		t.Fatalf("expected delete enabled with two dashboards")
	}
}
