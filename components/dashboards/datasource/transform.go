package datasource

import (
	"sort"
	"time"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// EventsTableData is the raw table payload returned by the events endpoint.
type EventsTableData struct {
	Data []map[string]any `json:"data"`
	Meta EventsMeta       `json:"meta"`
}

// EventsMeta maps result columns to backend-reported types and units.
type EventsMeta struct {
	Fields map[string]string `json:"fields"`
	Units  map[string]string `json:"units"`
}

// EventsSeriesData is the raw series payload, one entry per series name.
type EventsSeriesData map[string]EventsSeries

// EventsSeries is a single raw series.
type EventsSeries struct {
	Order int               `json:"order"`
	Data  []EventsDataPoint `json:"data"`
}

// EventsDataPoint is one raw time bucket.
type EventsDataPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// TableColumn describes one rendered table column.
type TableColumn struct {
	Key  string
	Name string
	Type string
}

// TableData is the flat presentation shape consumed by table widgets.
type TableData struct {
	Columns []TableColumn
	Rows    []map[string]any
}

// Series is the chartable presentation shape for one series.
type Series struct {
	Name   string
	Points []SeriesPoint
}

// SeriesPoint is one chartable time bucket.
type SeriesPoint struct {
	Timestamp time.Time
	Value     float64
}

// TransformTable is the dataset-agnostic row/column shaping shared by every
// adapter. Columns follow the query's field order with aliases applied; rows
// pass through in arrival order.
func TransformTable(raw EventsTableData, query dashboards.WidgetQuery) TableData {
	columns := make([]TableColumn, len(query.Fields))
	for i, field := range query.Fields {
		columns[i] = TableColumn{
			Key:  field,
			Name: query.AliasFor(i),
			Type: raw.Meta.Fields[field],
		}
	}
	rows := make([]map[string]any, len(raw.Data))
	copy(rows, raw.Data)
	return TableData{Columns: columns, Rows: rows}
}

// TransformSeries is the shared shaping into time series, ordered by the
// backend-reported series order and then by name. Series names are prefixed
// with the query name when one is set.
func TransformSeries(raw EventsSeriesData, query dashboards.WidgetQuery) []Series {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := raw[names[i]], raw[names[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return names[i] < names[j]
	})

	out := make([]Series, 0, len(names))
	for _, name := range names {
		entry := raw[name]
		points := make([]SeriesPoint, len(entry.Data))
		for i, point := range entry.Data {
			points[i] = SeriesPoint{
				Timestamp: time.Unix(point.Timestamp, 0).UTC(),
				Value:     point.Value,
			}
		}
		seriesName := name
		if query.Name != "" {
			seriesName = query.Name + " : " + name
		}
		out = append(out, Series{Name: seriesName, Points: points})
	}
	return out
}
