package datasource

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// SpansDatasetID is the dataset identifier for the span-based event search.
const SpansDatasetID = "spans-eap"

const defaultTableLimit = 20

// spanAggregates is the static aggregate catalog for the spans dataset.
// Every function declares its accepted parameter types and whether its
// result is sortable.
var spanAggregates = []FieldValueOption{
	{Kind: KindFunction, Name: "count", Label: "count", Sortable: true},
	{Kind: KindFunction, Name: "count_unique", Label: "count_unique", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeString, TypeNumber, TypeInteger, TypeDuration}, Required: true, DefaultValue: "span.op"},
	}},
	{Kind: KindFunction, Name: "avg", Label: "avg", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeInteger, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "sum", Label: "sum", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeInteger, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "min", Label: "min", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeInteger, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "max", Label: "max", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeInteger, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "p50", Label: "p50", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "p75", Label: "p75", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "p90", Label: "p90", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "p95", Label: "p95", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "p99", Label: "p99", Sortable: true, Parameters: []AggregateParameter{
		{Name: "column", Kind: "column", DataTypes: []FieldDataType{TypeNumber, TypeDuration}, Required: true, DefaultValue: "span.duration"},
	}},
	{Kind: KindFunction, Name: "epm", Label: "epm", Sortable: true},
	{Kind: KindFunction, Name: "failure_rate", Label: "failure_rate", Sortable: true},
}

// SpansConfig is the dataset adapter for the spans event search.
type SpansConfig struct{}

// NewSpansConfig builds the spans dataset adapter.
func NewSpansConfig() *SpansConfig {
	return &SpansConfig{}
}

var _ Config = (*SpansConfig)(nil)

// DatasetID returns the outbound dataset identifier.
func (*SpansConfig) DatasetID() string {
	return SpansDatasetID
}

// DefaultWidgetQuery is the template used by "new widget" flows. The default
// aggregate is a real operation over a real field of this dataset.
func (*SpansConfig) DefaultWidgetQuery() dashboards.WidgetQuery {
	return dashboards.WidgetQuery{
		Name:       "",
		Fields:     []string{"span.op", "count(span.duration)"},
		Columns:    []string{"span.op"},
		Aggregates: []string{"count(span.duration)"},
		Conditions: "",
		OrderBy:    "-count(span.duration)",
	}
}

// TableFieldOptions builds the selectable option catalog: the static
// aggregate functions plus one option per supplied tag, keyed
// "<kind>:<key>". Inputs are never mutated and an empty tag set is fine.
func (*SpansConfig) TableFieldOptions(_ dashboards.OrgContext, tags []Tag, customMeasurements []Tag) map[string]FieldValueOption {
	options := make(map[string]FieldValueOption, len(spanAggregates)+len(tags)+len(customMeasurements))
	for _, agg := range spanAggregates {
		options[agg.Key()] = agg
	}
	for _, tag := range tags {
		options[tagOptionKey(tag)] = tagOption(tag)
	}
	for _, measurement := range customMeasurements {
		m := measurement
		if m.Kind == "" {
			m.Kind = TagKindMeasurement
		}
		options[tagOptionKey(m)] = tagOption(m)
	}
	return options
}

// FilterTableOptions keeps options for primary selection. Numeric tags are
// aggregate-parameter-only, so anything with a numeric data type is
// excluded here.
func (*SpansConfig) FilterTableOptions(option FieldValueOption) bool {
	return !option.DataType.Numeric()
}

// FilterAggregateParams keeps options usable as aggregate parameters:
// unknown-flagged values are always allowed so live data is never hidden,
// otherwise the data type must be numeric.
func (*SpansConfig) FilterAggregateParams(option FieldValueOption) bool {
	if option.Unknown {
		return true
	}
	return option.DataType.Numeric()
}

// TableRequest assembles the events query for one widget query and issues
// it through the shared client. An empty orderby omits the sort parameter
// entirely; otherwise sort is the orderby string as a single-element list.
func (c *SpansConfig) TableRequest(ctx context.Context, client EventsClient, _ dashboards.Widget, query dashboards.WidgetQuery,
	org dashboards.OrgContext, filters dashboards.PageFilters, options TableRequestOptions) (EventsTableData, error) {
	params := url.Values{}
	params.Set("dataset", c.DatasetID())
	for _, field := range query.Fields {
		params.Add("field", field)
	}
	if query.Conditions != "" {
		params.Set("query", query.Conditions)
	}
	if query.OrderBy != "" {
		params.Add("sort", query.OrderBy)
	}

	limit := options.Limit
	if limit <= 0 {
		limit = defaultTableLimit
	}
	params.Set("per_page", strconv.Itoa(limit))
	if options.Cursor != "" {
		params.Set("cursor", options.Cursor)
	}
	if options.Referrer != "" {
		params.Set("referrer", options.Referrer)
	}

	applyPageFilters(params, filters)
	return client.EventsTable(ctx, org.Slug, params)
}

// TransformTable delegates to the shared table transform.
func (*SpansConfig) TransformTable(raw EventsTableData, query dashboards.WidgetQuery) TableData {
	return TransformTable(raw, query)
}

// TransformSeries delegates to the shared series transform. The spans
// dataset does not enable series display types yet, but the contract stays
// uniform across adapters.
func (*SpansConfig) TransformSeries(raw EventsSeriesData, query dashboards.WidgetQuery) []Series {
	return TransformSeries(raw, query)
}

// SupportedDisplayTypes: the spans dataset currently renders tables only.
func (*SpansConfig) SupportedDisplayTypes() []dashboards.DisplayType {
	return []dashboards.DisplayType{dashboards.DisplayTable}
}

// EnableEquations: arithmetic-equation fields are not offered.
func (*SpansConfig) EnableEquations() bool {
	return false
}

func applyPageFilters(params url.Values, filters dashboards.PageFilters) {
	for _, project := range filters.Projects {
		params.Add("project", strconv.Itoa(project))
	}
	for _, env := range filters.Environments {
		params.Add("environment", env)
	}
	switch {
	case filters.Start != nil && filters.End != nil:
		params.Set("start", filters.Start.UTC().Format(time.RFC3339))
		params.Set("end", filters.End.UTC().Format(time.RFC3339))
		if filters.UTC {
			params.Set("utc", "true")
		}
	case filters.Period != "":
		params.Set("statsPeriod", filters.Period)
	}
}
