package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// DuplicateDashboardInput identifies the dashboard to copy.
type DuplicateDashboardInput struct {
	Org         string `json:"org"`
	DashboardID string `json:"dashboard_id"`
}

type duplicateService interface {
	List(ctx context.Context, org, cursor string) ([]dashboards.DashboardListItem, string, error)
	Duplicate(ctx context.Context, org string, item dashboards.DashboardListItem, existing []dashboards.DashboardListItem) error
}

// DuplicateDashboardCommand wraps Service.Duplicate. The current first page
// is fetched up front so the clone title can be deduplicated against it.
type DuplicateDashboardCommand struct {
	service   duplicateService
	telemetry Telemetry
}

// NewDuplicateDashboardCommand builds a command instance.
func NewDuplicateDashboardCommand(service duplicateService, telemetry Telemetry) *DuplicateDashboardCommand {
	return &DuplicateDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DuplicateDashboardInput] = (*DuplicateDashboardCommand)(nil)

// Execute duplicates the dashboard.
func (c *DuplicateDashboardCommand) Execute(ctx context.Context, msg DuplicateDashboardInput) error {
	if c.service == nil {
		return errors.New("duplicate command requires service")
	}
	if msg.DashboardID == "" {
		return errors.New("duplicate command requires dashboard id")
	}
	existing, _, err := c.service.List(ctx, msg.Org, "")
	if err != nil {
		return err
	}
	item := dashboards.DashboardListItem{ID: msg.DashboardID}
	for _, it := range existing {
		if it.ID == msg.DashboardID {
			item = it
			break
		}
	}
	if err := c.service.Duplicate(ctx, msg.Org, item, existing); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboards.command.duplicate", map[string]any{
		"dashboard_id": msg.DashboardID,
	})
	return nil
}
