package monitorapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/goliatone/go-monitor/components/dashboards"
	"github.com/goliatone/go-monitor/components/dashboards/datasource"
)

const userAgent = "go-monitor REST Client"

// Rate-limited requests are retried transparently: 3 total attempts on
// HTTP 429, nothing else. Callers above this client never see a 429 unless
// retries exhaust.
const rateLimitRetries = 2

// Config configures the HTTP monitor API client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	RetryWait  time.Duration
}

// HTTPClient talks to the monitor backend via its REST endpoints.
type HTTPClient struct {
	rest *resty.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting the live API.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("monitorapi: base url is required")
	}
	rest := resty.New()
	if cfg.HTTPClient != nil {
		rest = resty.NewWithClient(cfg.HTTPClient)
	}
	rest.SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(rateLimitRetries).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			return err == nil && res != nil && res.StatusCode() == http.StatusTooManyRequests
		})
	if cfg.RetryWait > 0 {
		rest.SetRetryWaitTime(cfg.RetryWait)
	}
	if cfg.Token != "" {
		rest.SetAuthToken(cfg.Token)
	}
	return &HTTPClient{rest: rest}, nil
}

// EventsTable issues the table query and returns the raw events payload.
func (c *HTTPClient) EventsTable(ctx context.Context, org string, params url.Values) (datasource.EventsTableData, error) {
	var out datasource.EventsTableData
	res, err := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetResult(&out).
		Get(fmt.Sprintf("/organizations/%s/events/", org))
	if err := wrapError(res, err); err != nil {
		return datasource.EventsTableData{}, fmt.Errorf("monitorapi: events table: %w", err)
	}
	return out, nil
}

// ListDashboards fetches one page of dashboard summaries. The next-page
// cursor comes back in the X-Cursor-Next response header; empty means the
// last page.
func (c *HTTPClient) ListDashboards(ctx context.Context, org string, cursor string, perPage int) ([]dashboards.DashboardListItem, string, error) {
	var out []dashboards.DashboardListItem
	req := c.rest.R().SetContext(ctx).SetResult(&out)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}
	if perPage > 0 {
		req.SetQueryParam("per_page", fmt.Sprintf("%d", perPage))
	}
	res, err := req.Get(fmt.Sprintf("/organizations/%s/dashboards/", org))
	if err := wrapError(res, err); err != nil {
		return nil, "", fmt.Errorf("monitorapi: list dashboards: %w", err)
	}
	return out, res.Header().Get("X-Cursor-Next"), nil
}

// FetchDashboard retrieves the full dashboard detail, not just the summary.
func (c *HTTPClient) FetchDashboard(ctx context.Context, org, id string) (dashboards.DashboardDetail, error) {
	var out dashboards.DashboardDetail
	res, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/organizations/%s/dashboards/%s/", org, id))
	if err := wrapError(res, err); err != nil {
		return dashboards.DashboardDetail{}, fmt.Errorf("monitorapi: fetch dashboard %s: %w", id, err)
	}
	return out, nil
}

type createDashboardRequest struct {
	dashboards.DashboardDetail
	// Duplicate disables the backend's duplicate-title detection.
	Duplicate bool `json:"duplicate,omitempty"`
}

// CreateDashboard creates a dashboard. allowDuplicateTitle disables the
// backend's duplicate-title check, as the duplicate flow requires.
func (c *HTTPClient) CreateDashboard(ctx context.Context, org string, detail dashboards.DashboardDetail, allowDuplicateTitle bool) (dashboards.DashboardDetail, error) {
	var out dashboards.DashboardDetail
	res, err := c.rest.R().
		SetContext(ctx).
		SetBody(createDashboardRequest{DashboardDetail: detail, Duplicate: allowDuplicateTitle}).
		SetResult(&out).
		Post(fmt.Sprintf("/organizations/%s/dashboards/", org))
	if err := wrapError(res, err); err != nil {
		return dashboards.DashboardDetail{}, fmt.Errorf("monitorapi: create dashboard: %w", err)
	}
	return out, nil
}

// DeleteDashboard removes a dashboard by id.
func (c *HTTPClient) DeleteDashboard(ctx context.Context, org, id string) error {
	res, err := c.rest.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/organizations/%s/dashboards/%s/", org, id))
	if err := wrapError(res, err); err != nil {
		return fmt.Errorf("monitorapi: delete dashboard %s: %w", id, err)
	}
	return nil
}

func wrapError(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsError() {
		return &Error{Code: res.StatusCode(), Status: res.Status(), Detail: res.String()}
	}
	return nil
}
