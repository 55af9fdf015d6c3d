package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"life-os/internal/calendar"
	"life-os/internal/database"
	"life-os/internal/services"
)

var fixedNow = time.Date(2026, time.October, 19, 6, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sm := services.NewServiceManager(database.NewMemoryStore(), time.UTC, func() time.Time { return fixedNow }, zap.NewNop())
	srv := httptest.NewServer(NewServer(sm, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCalendar(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/calendar?date=2026-10-19", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info calendar.Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, calendar.Week(14), info.Week)
	assert.Equal(t, calendar.Optimize, info.Phase)

	resp = do(t, http.MethodGet, srv.URL+"/api/calendar?date=19.10.2026", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPillars(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/pillars/2026-10-19", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Len(t, state, 6)
	assert.False(t, state["Health"])

	resp = do(t, http.MethodPut, srv.URL+"/api/pillars/2026-10-19/health", `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.True(t, state["Health"])

	resp = do(t, http.MethodGet, srv.URL+"/api/pillars/2026-10-19", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.True(t, state["Health"])

	// Other dates are independent.
	resp = do(t, http.MethodGet, srv.URL+"/api/pillars/2026-10-20", "")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.False(t, state["Health"])
}

func TestSetPillar_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "unknown pillar", path: "/api/pillars/2026-10-19/Sports", body: `{"completed":true}`},
		{name: "bad date", path: "/api/pillars/yesterday/Health", body: `{"completed":true}`},
		{name: "missing completed", path: "/api/pillars/2026-10-19/Health", body: `{}`},
		{name: "invalid json", path: "/api/pillars/2026-10-19/Health", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPut, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogs(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/logs/2026-10-19", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/api/logs/2026-10-19",
		`{"workout_done":true,"protein_met":false,"sleep_hours":6.5,"soreness_72h":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/logs/2026-10-19", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var log database.DailyLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&log))
	assert.Equal(t, "2026-10-19", log.Date)
	assert.Equal(t, calendar.Week(14), log.Week)
	assert.True(t, log.WorkoutDone)
	assert.InDelta(t, 6.5, log.SleepHours, 0.001)

	resp = do(t, http.MethodPut, srv.URL+"/api/logs/2026-10-19", `{"sleep_hours":30}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t)

	for _, day := range []string{"2026-10-15", "2026-10-16"} {
		resp := do(t, http.MethodPut, srv.URL+"/api/logs/"+day, `{"sleep_hours":5}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := do(t, http.MethodGet, srv.URL+"/api/summary?date=2026-10-16", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Summary struct {
			Week    int               `json:"week"`
			Flags   map[string]int    `json:"flags"`
			Status  map[string]string `json:"pillar_status"`
			Overall string            `json:"overall_status"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Summary.Flags["Health"])
	assert.Equal(t, "YELLOW", body.Summary.Status["Health"])
	assert.NotEmpty(t, body.Summary.Overall)
}

func TestExportPreview(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/export?date=2026-10-19", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")

	md, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Week 14 - Life OS Export"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodDelete, srv.URL+"/api/pillars/2026-10-19", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
