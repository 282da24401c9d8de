package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-monitor/components/dashboards"
)

func TestTransformTableAppliesAliasesAndTypes(t *testing.T) {
	raw := EventsTableData{
		Data: []map[string]any{
			{"span.op": "db.query", "avg(span.duration)": 182.5},
			{"span.op": "http.client", "avg(span.duration)": 96.1},
		},
		Meta: EventsMeta{Fields: map[string]string{
			"span.op":            "string",
			"avg(span.duration)": "duration",
		}},
	}
	query := dashboards.WidgetQuery{
		Fields:       []string{"span.op", "avg(span.duration)"},
		FieldAliases: []string{"Operation", ""},
	}

	table := TransformTable(raw, query)

	require.Len(t, table.Columns, 2)
	assert.Equal(t, "span.op", table.Columns[0].Key)
	assert.Equal(t, "Operation", table.Columns[0].Name)
	assert.Equal(t, "string", table.Columns[0].Type)
	assert.Equal(t, "avg(span.duration)", table.Columns[1].Name, "empty alias falls back to the field expression")
	assert.Equal(t, "duration", table.Columns[1].Type)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "db.query", table.Rows[0]["span.op"])
}

func TestTransformTableEmptyPayload(t *testing.T) {
	table := TransformTable(EventsTableData{}, dashboards.WidgetQuery{Fields: []string{"span.op"}})
	require.Len(t, table.Columns, 1)
	assert.Empty(t, table.Columns[0].Type)
	assert.Empty(t, table.Rows)
}

func TestTransformSeriesOrdersByBackendOrder(t *testing.T) {
	raw := EventsSeriesData{
		"zeta":  {Order: 0, Data: []EventsDataPoint{{Timestamp: 1700000000, Value: 3}}},
		"alpha": {Order: 1, Data: []EventsDataPoint{{Timestamp: 1700000000, Value: 5}}},
		"beta":  {Order: 0, Data: []EventsDataPoint{{Timestamp: 1700000000, Value: 7}}},
	}

	series := TransformSeries(raw, dashboards.WidgetQuery{})

	require.Len(t, series, 3)
	assert.Equal(t, "beta", series[0].Name)
	assert.Equal(t, "zeta", series[1].Name)
	assert.Equal(t, "alpha", series[2].Name)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), series[0].Points[0].Timestamp)
}

func TestTransformSeriesPrefixesQueryName(t *testing.T) {
	raw := EventsSeriesData{
		"count()": {Order: 0, Data: nil},
	}
	series := TransformSeries(raw, dashboards.WidgetQuery{Name: "errors"})
	require.Len(t, series, 1)
	assert.Equal(t, "errors : count()", series[0].Name)
}
