package monitorapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-monitor/components/dashboards"
	"github.com/goliatone/go-monitor/components/dashboards/datasource"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(Config{
		BaseURL:   server.URL,
		Token:     "test-token",
		RetryWait: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return client, server
}

func TestEventsTableRetriesRateLimitedRequests(t *testing.T) {
	var attempts atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(datasource.EventsTableData{
			Data: []map[string]any{{"span.op": "db.query"}},
			Meta: datasource.EventsMeta{Fields: map[string]string{"span.op": "string"}},
		})
	}))

	out, err := client.EventsTable(context.Background(), "acme", url.Values{"field": []string{"span.op"}})
	if err != nil {
		t.Fatalf("EventsTable after retries: %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if len(out.Data) != 1 || out.Data[0]["span.op"] != "db.query" {
		t.Fatalf("unexpected payload %#v", out)
	}
}

func TestEventsTableGivesUpAfterThreeRateLimitedAttempts(t *testing.T) {
	var attempts atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.EventsTable(context.Background(), "acme", nil)
	if err == nil {
		t.Fatalf("expected error after exhausted retries")
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limited error, got %v", err)
	}
}

func TestEventsTableDoesNotRetryServerErrors(t *testing.T) {
	var attempts atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.EventsTable(context.Background(), "acme", nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("expected a single attempt for non-429 failures, got %d", got)
	}
}

func TestEventsTableForwardsQueryParams(t *testing.T) {
	var seen url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(datasource.EventsTableData{})
	}))

	params := url.Values{}
	params.Set("dataset", "spans-eap")
	params.Add("field", "span.op")
	params.Add("field", "count(span.duration)")
	if _, err := client.EventsTable(context.Background(), "acme", params); err != nil {
		t.Fatalf("EventsTable: %v", err)
	}
	if seen.Get("dataset") != "spans-eap" {
		t.Fatalf("expected dataset forwarded, got %#v", seen)
	}
	if len(seen["field"]) != 2 {
		t.Fatalf("expected repeated field params, got %#v", seen["field"])
	}
}

func TestListDashboardsReadsCursorHeader(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organizations/acme/dashboards/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("cursor") != "100:1:0" {
			t.Errorf("expected cursor query param, got %q", r.URL.RawQuery)
		}
		w.Header().Set("X-Cursor-Next", "100:2:0")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]dashboards.DashboardListItem{{ID: "d1", Title: "One"}})
	}))

	items, next, err := client.ListDashboards(context.Background(), "acme", "100:1:0", 25)
	if err != nil {
		t.Fatalf("ListDashboards: %v", err)
	}
	if len(items) != 1 || items[0].ID != "d1" {
		t.Fatalf("unexpected items %#v", items)
	}
	if next != "100:2:0" {
		t.Fatalf("expected next cursor from header, got %q", next)
	}
}

func TestCreateDashboardSendsDuplicateFlag(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dashboards.DashboardDetail{ID: "new-1", Title: "Copy"})
	}))

	created, err := client.CreateDashboard(context.Background(), "acme",
		dashboards.DashboardDetail{Title: "Copy"}, true)
	if err != nil {
		t.Fatalf("CreateDashboard: %v", err)
	}
	if created.ID != "new-1" {
		t.Fatalf("unexpected created dashboard %#v", created)
	}
	if body["duplicate"] != true {
		t.Fatalf("expected duplicate flag in payload, got %#v", body)
	}
	if body["title"] != "Copy" {
		t.Fatalf("expected title in payload, got %#v", body)
	}
}

func TestDeleteDashboardNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	err := client.DeleteDashboard(context.Background(), "acme", "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPClient(Config{}); err == nil {
		t.Fatalf("expected error for missing base url")
	}
}
