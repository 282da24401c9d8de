package dashboards

import (
	"context"
	"time"
)

// DisplayType enumerates the visualization shapes a widget can render as.
type DisplayType string

const (
	DisplayTable     DisplayType = "table"
	DisplayArea      DisplayType = "area"
	DisplayBar       DisplayType = "bar"
	DisplayBigNumber DisplayType = "big_number"
	DisplayLine      DisplayType = "line"
	DisplayTopN      DisplayType = "top_n"
)

// DisplayTypes lists every display type in the order the editor offers them.
func DisplayTypes() []DisplayType {
	return []DisplayType{
		DisplayTable,
		DisplayArea,
		DisplayBar,
		DisplayBigNumber,
		DisplayLine,
		DisplayTopN,
	}
}

// Widget is a saved visualization definition. A widget with an empty ID has
// not been persisted yet; the backend assigns IDs on create.
type Widget struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	DisplayType DisplayType   `json:"displayType"`
	Interval    string        `json:"interval,omitempty"`
	Queries     []WidgetQuery `json:"queries"`
	Layout      *WidgetLayout `json:"layout,omitempty"`
}

// WidgetLayout carries the grid placement used by the dashboard canvas and
// the compact list preview.
type WidgetLayout struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	W    int `json:"w"`
	H    int `json:"h"`
	MinH int `json:"minH,omitempty"`
}

// WidgetQuery describes one query feeding a widget. FieldAliases, when
// non-empty, is index-aligned with Fields.
type WidgetQuery struct {
	Name         string   `json:"name"`
	Fields       []string `json:"fields"`
	Columns      []string `json:"columns"`
	Aggregates   []string `json:"aggregates"`
	FieldAliases []string `json:"fieldAliases,omitempty"`
	Conditions   string   `json:"conditions"`
	OrderBy      string   `json:"orderby"`
}

// AliasFor returns the display alias for the field at index i, falling back
// to the field expression itself.
func (q WidgetQuery) AliasFor(i int) string {
	if i < len(q.FieldAliases) && q.FieldAliases[i] != "" {
		return q.FieldAliases[i]
	}
	if i < len(q.Fields) {
		return q.Fields[i]
	}
	return ""
}

// User identifies the creator of a dashboard.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// DashboardDetail is the full dashboard payload returned by fetch-by-id and
// sent on create.
type DashboardDetail struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	CreatedBy User      `json:"createdBy"`
	CreatedAt time.Time `json:"dateCreated"`
	Widgets   []Widget  `json:"widgets"`
}

// WidgetPreview carries just enough widget data to render a compact grid
// preview on a dashboard card.
type WidgetPreview struct {
	DisplayType DisplayType   `json:"displayType"`
	Layout      *WidgetLayout `json:"layout,omitempty"`
}

// DashboardListItem is the summary shape rendered by the dashboard list. The
// preview slice length is exposed verbatim for the widget-count label.
type DashboardListItem struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	CreatedBy     User            `json:"createdBy"`
	CreatedAt     time.Time       `json:"dateCreated"`
	WidgetDisplay []DisplayType   `json:"widgetDisplay"`
	WidgetPreview []WidgetPreview `json:"widgetPreview"`
}

// PageFilters is the ambient time/project/environment scope threaded through
// request construction. It is read-only for this package.
type PageFilters struct {
	Projects     []int      `json:"projects"`
	Environments []string   `json:"environments"`
	Period       string     `json:"period,omitempty"`
	Start        *time.Time `json:"start,omitempty"`
	End          *time.Time `json:"end,omitempty"`
	UTC          bool       `json:"utc,omitempty"`
}

// OrgContext identifies the organization scope for every request.
type OrgContext struct {
	Slug     string          `json:"slug"`
	Features map[string]bool `json:"features,omitempty"`
}

// HasFeature reports whether the organization has the named feature enabled.
func (o OrgContext) HasFeature(name string) bool {
	return o.Features[name]
}

// APIClient is the slice of the shared monitor API the list manager needs.
// pkg/monitorapi provides the production implementation.
type APIClient interface {
	ListDashboards(ctx context.Context, org string, cursor string, perPage int) ([]DashboardListItem, string, error)
	FetchDashboard(ctx context.Context, org, id string) (DashboardDetail, error)
	CreateDashboard(ctx context.Context, org string, detail DashboardDetail, allowDuplicateTitle bool) (DashboardDetail, error)
	DeleteDashboard(ctx context.Context, org, id string) error
}
