package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-monitor/components/dashboards/commands"
	"github.com/goliatone/go-monitor/components/dashboards/queries"
)

// Executor bundles the command/query surface HTTP transports invoke.
type Executor interface {
	List(ctx context.Context, input queries.ListInput) (queries.ListPage, error)
	Delete(ctx context.Context, input commands.DeleteDashboardInput) error
	Duplicate(ctx context.Context, input commands.DuplicateDashboardInput) error
}

// CommandExecutor adapts go-command commanders/queriers to the Executor
// interface.
type CommandExecutor struct {
	ListQuery    gocommand.Querier[queries.ListInput, queries.ListPage]
	DeleteCmd    gocommand.Commander[commands.DeleteDashboardInput]
	DuplicateCmd gocommand.Commander[commands.DuplicateDashboardInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) List(ctx context.Context, input queries.ListInput) (queries.ListPage, error) {
	return e.ListQuery.Query(ctx, input)
}

func (e *CommandExecutor) Delete(ctx context.Context, input commands.DeleteDashboardInput) error {
	return e.DeleteCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Duplicate(ctx context.Context, input commands.DuplicateDashboardInput) error {
	return e.DuplicateCmd.Execute(ctx, input)
}

// Handlers exposes plain net/http endpoints backed by shared commands.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandleListDashboards(w http.ResponseWriter, r *http.Request, org string) {
	page, err := h.API.List(r.Context(), queries.ListInput{
		Org:    org,
		Cursor: r.URL.Query().Get("cursor"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if page.NextCursor != "" {
		w.Header().Set("X-Cursor-Next", page.NextCursor)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page.Items)
}

func (h *Handlers) HandleDeleteDashboard(w http.ResponseWriter, r *http.Request, org, id string) {
	input := commands.DeleteDashboardInput{Org: org, DashboardID: id}
	if err := h.API.Delete(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleDuplicateDashboard(w http.ResponseWriter, r *http.Request, org, id string) {
	input := commands.DuplicateDashboardInput{Org: org, DashboardID: id}
	if err := h.API.Duplicate(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
