package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/memberdesk/internal/model"
	"github.com/tinytelemetry/memberdesk/internal/roster"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type snapshotBody struct {
	SearchTerm string `json:"search_term"`
	Records    []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"records"`
	Pager             model.Pager `json:"pager"`
	Selected          []int       `json:"selected"`
	AllOnPageSelected bool        `json:"all_on_page_selected"`
	Total             int         `json:"total"`
}

func newTestServer(t *testing.T, n int) (*roster.Engine, http.Handler) {
	t.Helper()
	engine := roster.NewEngine()
	records := make([]model.Record, n)
	for i := range records {
		role := "member"
		if (i+1)%3 == 0 {
			role = "admin"
		}
		records[i] = model.Record{
			ID:    i + 1,
			Name:  fmt.Sprintf("User %d", i+1),
			Email: fmt.Sprintf("user%d@example.com", i+1),
			Role:  role,
		}
	}
	engine.Load(records)

	srv := NewServer("", engine)
	srv.startTime = time.Now()
	return engine, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) snapshotBody {
	t.Helper()
	var body snapshotBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal snapshot: %v; body: %s", err, w.Body.String())
	}
	return body
}

func ids(body snapshotBody) []int {
	out := make([]int, len(body.Records))
	for i, r := range body.Records {
		out[i] = r.ID
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer(t, 4)

	w := do(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
	if body["record_count"] != float64(4) {
		t.Errorf("record_count = %v, want 4", body["record_count"])
	}
}

func TestSnapshotEndpoint_FirstPage(t *testing.T) {
	_, h := newTestServer(t, 12)

	w := do(t, h, http.MethodGet, "/api/records", "")
	if w.Code != http.StatusOK {
		t.Fatalf("records status = %d", w.Code)
	}
	body := decodeSnapshot(t, w)
	if len(body.Records) != 10 {
		t.Errorf("records = %d, want 10", len(body.Records))
	}
	if body.Pager.TotalPages != 2 || !body.Pager.PrevDisabled || body.Pager.NextDisabled {
		t.Errorf("pager = %+v", body.Pager)
	}
	if body.Total != 12 {
		t.Errorf("total = %d, want 12", body.Total)
	}
}

func TestPageEndpoint(t *testing.T) {
	_, h := newTestServer(t, 12)

	body := decodeSnapshot(t, do(t, h, http.MethodPut, "/api/page", `{"page": 2}`))

	if got := ids(body); fmt.Sprint(got) != "[11 12]" {
		t.Errorf("page 2 ids = %v, want [11 12]", got)
	}
	if !body.Pager.NextDisabled || !body.Pager.LastDisabled {
		t.Errorf("next/last should be disabled on page 2: %+v", body.Pager)
	}
}

func TestPageEndpoint_BadBody(t *testing.T) {
	_, h := newTestServer(t, 3)

	w := do(t, h, http.MethodPut, "/api/page", `{"page": "two"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSearchEndpoint_ResetsPage(t *testing.T) {
	engine, h := newTestServer(t, 25)
	engine.ChangePage(3)

	body := decodeSnapshot(t, do(t, h, http.MethodPut, "/api/search", `{"term": "ADMIN"}`))

	if body.Pager.Page != 1 {
		t.Errorf("page = %d, want 1", body.Pager.Page)
	}
	if body.SearchTerm != "ADMIN" {
		t.Errorf("search term = %q", body.SearchTerm)
	}
	for _, r := range body.Records {
		if r.Role != "admin" {
			t.Errorf("record %d role = %q, want admin", r.ID, r.Role)
		}
	}
	if body.Pager.TotalFiltered != 8 {
		t.Errorf("filtered = %d, want 8", body.Pager.TotalFiltered)
	}
}

func TestSearchEndpoint_EmptyTermClears(t *testing.T) {
	engine, h := newTestServer(t, 5)
	engine.SetSearchTerm("nothing matches")

	w := do(t, h, http.MethodPut, "/api/search", `{"term": ""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if got := decodeSnapshot(t, w).Pager.TotalFiltered; got != 5 {
		t.Errorf("filtered = %d, want 5", got)
	}
}

func TestSearchEndpoint_MissingTerm(t *testing.T) {
	_, h := newTestServer(t, 5)

	w := do(t, h, http.MethodPut, "/api/search", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSelectionEndpoints(t *testing.T) {
	_, h := newTestServer(t, 12)

	body := decodeSnapshot(t, do(t, h, http.MethodPost, "/api/records/3/select", ""))
	if fmt.Sprint(body.Selected) != "[3]" {
		t.Fatalf("selected = %v, want [3]", body.Selected)
	}

	body = decodeSnapshot(t, do(t, h, http.MethodPost, "/api/selection/page", ""))
	if len(body.Selected) != 10 || !body.AllOnPageSelected {
		t.Fatalf("select all: selected = %v all = %v", body.Selected, body.AllOnPageSelected)
	}

	body = decodeSnapshot(t, do(t, h, http.MethodPost, "/api/selection/page", ""))
	if len(body.Selected) != 0 || body.AllOnPageSelected {
		t.Fatalf("toggle off: selected = %v", body.Selected)
	}

	body = decodeSnapshot(t, do(t, h, http.MethodPost, "/api/selection/page", `{"ids": [1, 2]}`))
	if fmt.Sprint(body.Selected) != "[1 2]" {
		t.Fatalf("explicit ids: selected = %v", body.Selected)
	}
}

func TestSelectionPageEndpoint_UnknownLengthBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"explicit ids", `{"ids": [1, 2]}`, "[1 2]"},
		{"empty body selects page", "", "[1 2 3 4 5 6 7 8 9 10]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t, 12)

			req := httptest.NewRequest(http.MethodPost, "/api/selection/page", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.ContentLength = -1
			req.TransferEncoding = []string{"chunked"}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
			}
			if got := fmt.Sprint(decodeSnapshot(t, w).Selected); got != tt.want {
				t.Errorf("selected = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectEndpoint_InvalidID(t *testing.T) {
	_, h := newTestServer(t, 2)

	w := do(t, h, http.MethodPost, "/api/records/abc/select", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBulkDeleteEndpoint(t *testing.T) {
	engine, h := newTestServer(t, 12)
	engine.ToggleRowSelection(1)
	engine.ToggleRowSelection(12)

	w := do(t, h, http.MethodPost, "/api/records/bulk-delete", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Removed  int          `json:"removed"`
		Snapshot snapshotBody `json:"snapshot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Removed != 2 {
		t.Errorf("removed = %d, want 2", body.Removed)
	}
	if body.Snapshot.Total != 10 || len(body.Snapshot.Selected) != 0 {
		t.Errorf("snapshot = %+v", body.Snapshot)
	}
}

func TestEditEndpoint(t *testing.T) {
	engine, h := newTestServer(t, 3)

	w := do(t, h, http.MethodPatch, "/api/records/2", `{"name": "Grace Hopper"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	got := engine.Records()[1]
	if got.Name != "Grace Hopper" || got.Email != "user2@example.com" {
		t.Errorf("record = %+v", got)
	}
}

func TestEditEndpoint_Errors(t *testing.T) {
	_, h := newTestServer(t, 3)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown id", "/api/records/42", `{"name": "x"}`, http.StatusNotFound},
		{"bad id", "/api/records/x", `{"name": "x"}`, http.StatusBadRequest},
		{"empty body", "/api/records/1", `{}`, http.StatusBadRequest},
		{"non-string field", "/api/records/1", `{"name": 3}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPatch, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestDeleteEndpoint(t *testing.T) {
	engine, h := newTestServer(t, 3)
	engine.ToggleRowSelection(2)

	w := do(t, h, http.MethodDelete, "/api/records/2", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if engine.Len() != 2 {
		t.Errorf("len = %d, want 2", engine.Len())
	}
	if !engine.IsSelected(2) {
		t.Error("deleting a row does not prune the selection")
	}

	w = do(t, h, http.MethodDelete, "/api/records/2", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestServerStartStop(t *testing.T) {
	engine := roster.NewEngine()
	srv := NewServer("127.0.0.1:0", engine)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
