package datasource

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// TableRequestOptions carries pagination and diagnostics for a table query.
type TableRequestOptions struct {
	Limit    int
	Cursor   string
	Referrer string
}

// EventsClient is the slice of the shared monitor API a dataset adapter
// needs to execute queries. pkg/monitorapi provides the production
// implementation; transport-level retry (3 attempts on HTTP 429) lives
// there, not in adapters.
type EventsClient interface {
	EventsTable(ctx context.Context, org string, params url.Values) (EventsTableData, error)
}

// Config decouples the widget UI from the specifics of one backend query
// dataset. One implementation exists per supported dataset.
type Config interface {
	// DatasetID is the identifier sent on outbound requests.
	DatasetID() string
	// DefaultWidgetQuery is a ready-to-use template for new widgets of this
	// dataset, valid against the dataset's own field catalog.
	DefaultWidgetQuery() dashboards.WidgetQuery
	// TableFieldOptions builds the union of the static aggregate catalog and
	// the caller-supplied tag catalogs. It never mutates its inputs.
	TableFieldOptions(org dashboards.OrgContext, tags []Tag, customMeasurements []Tag) map[string]FieldValueOption
	// FilterTableOptions reports whether an option is eligible for primary
	// (non-aggregate-parameter) selection.
	FilterTableOptions(option FieldValueOption) bool
	// FilterAggregateParams reports whether an option may be used as an
	// aggregate function parameter.
	FilterAggregateParams(option FieldValueOption) bool
	// TableRequest issues the table query for one widget query and returns
	// the raw backend payload.
	TableRequest(ctx context.Context, client EventsClient, widget dashboards.Widget, query dashboards.WidgetQuery,
		org dashboards.OrgContext, filters dashboards.PageFilters, options TableRequestOptions) (EventsTableData, error)
	// TransformTable reshapes the raw payload into renderable table data.
	TransformTable(raw EventsTableData, query dashboards.WidgetQuery) TableData
	// TransformSeries reshapes a raw series payload into chartable series.
	TransformSeries(raw EventsSeriesData, query dashboards.WidgetQuery) []Series
	// SupportedDisplayTypes declares which display types this dataset can
	// currently render; the UI hides the rest.
	SupportedDisplayTypes() []dashboards.DisplayType
	// EnableEquations reports whether arithmetic-equation fields are offered.
	EnableEquations() bool
}

// Registry resolves dataset adapters by dataset identifier.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]Config
}

// NewRegistry builds a registry pre-loaded with the built-in datasets.
func NewRegistry() *Registry {
	reg := &Registry{configs: map[string]Config{}}
	_ = reg.Register(NewSpansConfig())
	return reg
}

// Register stores a dataset adapter under its dataset identifier.
func (r *Registry) Register(cfg Config) error {
	if cfg == nil {
		return fmt.Errorf("datasource: config cannot be nil")
	}
	if cfg.DatasetID() == "" {
		return fmt.Errorf("datasource: dataset id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.DatasetID()] = cfg
	return nil
}

// Lookup fetches the adapter for a dataset identifier.
func (r *Registry) Lookup(datasetID string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[datasetID]
	return cfg, ok
}

// Datasets returns every registered dataset identifier.
func (r *Registry) Datasets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	return ids
}
