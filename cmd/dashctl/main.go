package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-monitor/components/dashboards"
	"github.com/goliatone/go-monitor/components/dashboards/datasource"
	"github.com/goliatone/go-monitor/pkg/config"
	"github.com/goliatone/go-monitor/pkg/monitorapi"
)

type cli struct {
	Config string `type:"path" help:"Path to a dashctl YAML config file."`
	Org    string `help:"Organization slug (overrides config/env)."`
	Mock   bool   `help:"Run against an in-memory fixture backend."`

	List      listCmd      `cmd:"" help:"List dashboards for the organization."`
	Delete    deleteCmd    `cmd:"" help:"Delete a dashboard by id."`
	Duplicate duplicateCmd `cmd:"" help:"Duplicate a dashboard by id."`
	Query     queryCmd     `cmd:"" help:"Run a table query against a dataset."`
}

type appState struct {
	ctx      context.Context
	org      string
	cfg      *config.Config
	client   monitorapi.Client
	service  *dashboards.Service
	registry *datasource.Registry
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("Dashboard management utility for the monitor API."),
		kong.UsageOnError(),
	)
	app, err := newAppState(context.Background(), root)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(app))
}

func newAppState(ctx context.Context, root *cli) (*appState, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	org := root.Org
	if org == "" {
		org = cfg.Org
	}
	if org == "" {
		return nil, fmt.Errorf("dashctl: organization slug is required (--org or MONITOR_ORG)")
	}

	var client monitorapi.Client
	if root.Mock {
		client = monitorapi.NewMockClient(mockFixtures())
	} else {
		client, err = monitorapi.NewHTTPClient(monitorapi.Config{
			BaseURL: cfg.API.BaseURL,
			Token:   cfg.API.Token,
		})
		if err != nil {
			return nil, err
		}
	}

	service := dashboards.NewService(dashboards.Options{
		Client:    client,
		Notifier:  stderrNotifier{},
		Validator: dashboards.NewJSONSchemaValidator(),
		PerPage:   cfg.List.PerPage,
	})
	return &appState{
		ctx:      ctx,
		org:      org,
		cfg:      cfg,
		client:   client,
		service:  service,
		registry: datasource.NewRegistry(),
	}, nil
}

type listCmd struct {
	Cursor string `help:"Pagination cursor."`
}

type listRow struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Creator   string `yaml:"creator,omitempty"`
	Created   string `yaml:"created"`
	Widgets   string `yaml:"widgets"`
	CanDelete bool   `yaml:"can_delete"`
}

func (c *listCmd) Run(app *appState) error {
	view, next, err := app.service.ListView(app.ctx, app.org, c.Cursor)
	if err != nil {
		return err
	}
	if view.Empty {
		fmt.Fprintln(os.Stdout, "No dashboards found.")
		return nil
	}
	rows := make([]listRow, len(view.Cards))
	for i, card := range view.Cards {
		rows[i] = listRow{
			ID:        card.ID,
			Title:     card.Title,
			Creator:   card.Creator,
			Created:   card.CreatedAt.Format(time.RFC3339),
			Widgets:   card.WidgetCountLabel,
			CanDelete: card.CanDelete,
		}
	}
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("dashctl: encode list: %w", err)
	}
	if next != "" {
		fmt.Fprintf(os.Stdout, "# next cursor: %s\n", next)
	}
	return nil
}

type deleteCmd struct {
	ID string `required:"" help:"Dashboard id to delete."`
}

func (c *deleteCmd) Run(app *appState) error {
	return app.service.Delete(app.ctx, app.org, dashboards.DashboardListItem{ID: c.ID})
}

type duplicateCmd struct {
	ID string `required:"" help:"Dashboard id to duplicate."`
}

func (c *duplicateCmd) Run(app *appState) error {
	existing, _, err := app.service.List(app.ctx, app.org, "")
	if err != nil {
		return err
	}
	item := dashboards.DashboardListItem{ID: c.ID}
	for _, it := range existing {
		if it.ID == c.ID {
			item = it
			break
		}
	}
	return app.service.Duplicate(app.ctx, app.org, item, existing)
}

type queryCmd struct {
	Dataset    string   `default:"spans-eap" help:"Dataset identifier."`
	Field      []string `help:"Field expressions (defaults to the dataset's template)."`
	Conditions string   `help:"Filter condition string."`
	OrderBy    string   `help:"Order-by expression, e.g. -avg(span.duration)."`
	Limit      int      `default:"20" help:"Rows per page."`
	Cursor     string   `help:"Pagination cursor."`
	Period     string   `default:"14d" help:"Stats period, e.g. 24h or 14d."`
}

func (c *queryCmd) Run(app *appState) error {
	cfg, ok := app.registry.Lookup(c.Dataset)
	if !ok {
		return fmt.Errorf("dashctl: unknown dataset %q (have %v)", c.Dataset, app.registry.Datasets())
	}
	query := cfg.DefaultWidgetQuery()
	if len(c.Field) > 0 {
		query.Fields = c.Field
	}
	if c.Conditions != "" {
		query.Conditions = c.Conditions
	}
	if c.OrderBy != "" {
		query.OrderBy = c.OrderBy
	}

	raw, err := cfg.TableRequest(app.ctx, app.client,
		dashboards.Widget{DisplayType: dashboards.DisplayTable, Queries: []dashboards.WidgetQuery{query}},
		query,
		dashboards.OrgContext{Slug: app.org},
		dashboards.PageFilters{Period: c.Period},
		datasource.TableRequestOptions{
			Limit:    c.Limit,
			Cursor:   c.Cursor,
			Referrer: app.cfg.List.Referrer,
		},
	)
	if err != nil {
		return err
	}

	table := cfg.TransformTable(raw, query)
	for _, column := range table.Columns {
		fmt.Fprintf(os.Stdout, "%s\t", strcase.ToPascal(column.Name))
	}
	fmt.Fprintln(os.Stdout)
	for _, row := range table.Rows {
		for _, column := range table.Columns {
			fmt.Fprintf(os.Stdout, "%v\t", row[column.Key])
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

type stderrNotifier struct{}

func (stderrNotifier) Success(_ context.Context, message string) {
	fmt.Fprintf(os.Stderr, "✓ %s\n", message)
}

func (stderrNotifier) Error(_ context.Context, message string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", message)
}

func mockFixtures() monitorapi.MockData {
	now := time.Now().UTC()
	return monitorapi.MockData{
		Dashboards: []dashboards.DashboardDetail{
			{
				ID:        "1",
				Title:     "Frontend Errors",
				CreatedBy: dashboards.User{ID: "u1", Name: "Dana Osei"},
				CreatedAt: now.Add(-36 * time.Hour),
				Widgets: []dashboards.Widget{
					{
						ID:          "w1",
						Title:       "Slowest Operations",
						DisplayType: dashboards.DisplayTable,
						Queries: []dashboards.WidgetQuery{{
							Fields:     []string{"span.op", "avg(span.duration)"},
							Columns:    []string{"span.op"},
							Aggregates: []string{"avg(span.duration)"},
							OrderBy:    "-avg(span.duration)",
						}},
					},
				},
			},
			{
				ID:        "2",
				Title:     "API Latency",
				CreatedBy: dashboards.User{ID: "u2", Name: "Lior Katz"},
				CreatedAt: now.Add(-3 * time.Hour),
				Widgets:   []dashboards.Widget{},
			},
		},
		Events: datasource.EventsTableData{
			Data: []map[string]any{
				{"span.op": "db.query", "count(span.duration)": 1204},
				{"span.op": "http.client", "count(span.duration)": 771},
			},
			Meta: datasource.EventsMeta{Fields: map[string]string{
				"span.op":              "string",
				"count(span.duration)": "integer",
			}},
		},
	}
}
