package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-monitor/components/dashboards"
)

// DeleteDashboardInput identifies the dashboard to remove.
type DeleteDashboardInput struct {
	Org         string `json:"org"`
	DashboardID string `json:"dashboard_id"`
}

type deleteService interface {
	Delete(ctx context.Context, org string, item dashboards.DashboardListItem) error
}

// DeleteDashboardCommand wraps Service.Delete.
type DeleteDashboardCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeleteDashboardCommand builds a command instance.
func NewDeleteDashboardCommand(service deleteService, telemetry Telemetry) *DeleteDashboardCommand {
	return &DeleteDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteDashboardInput] = (*DeleteDashboardCommand)(nil)

// Execute removes the dashboard.
func (c *DeleteDashboardCommand) Execute(ctx context.Context, msg DeleteDashboardInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	if msg.DashboardID == "" {
		return errors.New("delete command requires dashboard id")
	}
	if err := c.service.Delete(ctx, msg.Org, dashboards.DashboardListItem{ID: msg.DashboardID}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboards.command.delete", map[string]any{
		"dashboard_id": msg.DashboardID,
	})
	return nil
}
