package dashboards

import (
	"context"
	"errors"
	"time"
)

var (
	errMissingClient = errors.New("dashboards: api client not configured")
	errMissingID     = errors.New("dashboards: dashboard id is required")
)

// Options configures the list manager Service. Every collaborator is
// provided via interface so applications can swap implementations.
type Options struct {
	Client    APIClient
	Notifier  Notifier
	Telemetry Telemetry
	Cloner    Cloner
	Validator WidgetValidator
	// OnRefresh is invoked after a successful mutation so the owning view can
	// reload its list. A refresh failure after a successful mutation is not
	// specially handled; the stale list stays until the next reload.
	OnRefresh func(ctx context.Context)
	PerPage   int
}

// Service mediates delete/duplicate/paginate actions for the dashboard list.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	opts.Notifier = normalizeNotifier(opts.Notifier)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Cloner == nil {
		opts.Cloner = TitleCloner{}
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 25
	}
	return &Service{opts: opts}
}

// List fetches one page of dashboard summaries and the next cursor.
func (s *Service) List(ctx context.Context, org, cursor string) ([]DashboardListItem, string, error) {
	client, err := s.client()
	if err != nil {
		return nil, "", err
	}
	items, next, err := client.ListDashboards(ctx, org, cursor, s.opts.PerPage)
	if err != nil {
		return nil, "", err
	}
	return items, next, nil
}

// ListView fetches a page and shapes it for rendering.
func (s *Service) ListView(ctx context.Context, org, cursor string) (ListView, string, error) {
	items, next, err := s.List(ctx, org, cursor)
	if err != nil {
		return ListView{}, "", err
	}
	return BuildListView(items, time.Now().UTC()), next, nil
}

// Delete removes a dashboard. The list is never optimistically patched: on
// failure the item stays visible, on success the refresh callback reloads.
func (s *Service) Delete(ctx context.Context, org string, item DashboardListItem) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if item.ID == "" {
		return errMissingID
	}
	if err := client.DeleteDashboard(ctx, org, item.ID); err != nil {
		s.opts.Notifier.Error(ctx, "Error deleting Dashboard")
		return err
	}
	s.refresh(ctx)
	s.opts.Notifier.Success(ctx, "Dashboard deleted")
	s.opts.Telemetry.Record(ctx, "dashboards.delete", map[string]any{
		"dashboard_id": item.ID,
	})
	return nil
}

// Duplicate fetches the full dashboard, clones it under a deduplicated
// title, strips every widget ID so the backend creates fresh widgets, and
// submits the copy with duplicate-title detection disabled. Any failure
// surfaces as a single generic notification; partially-created server-side
// state is not rolled back.
func (s *Service) Duplicate(ctx context.Context, org string, item DashboardListItem, existing []DashboardListItem) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	if item.ID == "" {
		return errMissingID
	}
	detail, err := client.FetchDashboard(ctx, org, item.ID)
	if err != nil {
		s.opts.Notifier.Error(ctx, "Error duplicating Dashboard")
		return err
	}
	titles := make([]string, 0, len(existing))
	for _, it := range existing {
		titles = append(titles, it.Title)
	}
	clone := s.opts.Cloner.Clone(detail, titles)
	for i := range clone.Widgets {
		clone.Widgets[i].ID = ""
	}
	if s.opts.Validator != nil {
		for _, widget := range clone.Widgets {
			if err := s.opts.Validator.Validate(widget); err != nil {
				s.opts.Notifier.Error(ctx, "Error duplicating Dashboard")
				return err
			}
		}
	}
	created, err := client.CreateDashboard(ctx, org, clone, true)
	if err != nil {
		s.opts.Notifier.Error(ctx, "Error duplicating Dashboard")
		return err
	}
	s.refresh(ctx)
	s.opts.Notifier.Success(ctx, "Dashboard duplicated")
	s.opts.Telemetry.Record(ctx, "dashboards.duplicate", map[string]any{
		"source_id":    item.ID,
		"dashboard_id": created.ID,
		"widget_count": len(clone.Widgets),
	})
	return nil
}

// Paginate computes the navigation target for a cursor change and records
// the analytics event.
func (s *Service) Paginate(ctx context.Context, cursor, path string, query map[string]string, direction CursorDirection) NavigationTarget {
	target := PaginateTarget(cursor, path, query, direction)
	s.opts.Telemetry.Record(ctx, "dashboards.paginate", map[string]any{
		"direction": string(direction),
	})
	return target
}

func (s *Service) refresh(ctx context.Context) {
	if s.opts.OnRefresh != nil {
		s.opts.OnRefresh(ctx)
	}
}

func (s *Service) client() (APIClient, error) {
	if s.opts.Client == nil {
		return nil, errMissingClient
	}
	return s.opts.Client, nil
}
