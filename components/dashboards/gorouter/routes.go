package gorouter

import (
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-monitor/components/dashboards/commands"
	"github.com/goliatone/go-monitor/components/dashboards/httpapi"
	"github.com/goliatone/go-monitor/components/dashboards/queries"
)

// OrgResolver converts a router.Context into the organization slug scoping
// the request.
type OrgResolver func(router.Context) string

// Config wires go-router with the dashboard list API.
type Config[T any] struct {
	Router      router.Router[T]
	API         httpapi.Executor
	OrgResolver OrgResolver
	BasePath    string
	Routes      RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	List        string
	DashboardID string
	Duplicate   string
}

// Register mounts the dashboard list endpoints on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.API == nil {
		return errors.New("gorouter: api executor is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/organizations/:org"
	}
	resolveOrg := cfg.OrgResolver
	if resolveOrg == nil {
		resolveOrg = defaultOrgResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.List, router.WrapHandler(func(ctx router.Context) error {
		page, err := cfg.API.List(ctx.Context(), queries.ListInput{
			Org:    resolveOrg(ctx),
			Cursor: ctx.Query("cursor"),
		})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		if page.NextCursor != "" {
			ctx.SetHeader("X-Cursor-Next", page.NextCursor)
		}
		return ctx.JSON(http.StatusOK, page.Items)
	}))

	group.Delete(routes.DashboardID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("dashboard id is required"))
		}
		input := commands.DeleteDashboardInput{Org: resolveOrg(ctx), DashboardID: id}
		if err := cfg.API.Delete(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "deleted"})
	}))

	group.Post(routes.Duplicate, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("dashboard id is required"))
		}
		input := commands.DuplicateDashboardInput{Org: resolveOrg(ctx), DashboardID: id}
		if err := cfg.API.Duplicate(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "duplicated"})
	}))

	return nil
}

func defaultOrgResolver(ctx router.Context) string {
	if org := ctx.Param("org"); org != "" {
		return org
	}
	if org, ok := ctx.Locals("org_slug").(string); ok {
		return org
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.List == "" {
		routes.List = "/dashboards"
	}
	if routes.DashboardID == "" {
		routes.DashboardID = "/dashboards/:id"
	}
	if routes.Duplicate == "" {
		routes.Duplicate = "/dashboards/:id/duplicate"
	}
	return routes
}
