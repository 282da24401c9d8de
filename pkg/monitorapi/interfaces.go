package monitorapi

import (
	"github.com/goliatone/go-monitor/components/dashboards"
	"github.com/goliatone/go-monitor/components/dashboards/datasource"
)

// EventsClient executes dataset queries against the events endpoint.
type EventsClient = datasource.EventsClient

// DashboardsClient covers dashboard CRUD scoped to an organization slug.
type DashboardsClient = dashboards.APIClient

// Client is a convenience union for services that need both surfaces.
type Client interface {
	EventsClient
	DashboardsClient
}
