package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/internal/dto"
	"github.com/cardio-onc/qtwizard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	return NewHandler(content.MustQTcF().Registry,
		WithGatherer(reg),
		WithLifecycleHooks(metrics.Hooks()),
	)
}

func navigate(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, NavigateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/navigate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp NavigateResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestListSteps(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/steps", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var steps []dto.Step
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &steps))
	assert.Len(t, steps, 9)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetStep(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		path string
		code int
	}{
		{"/steps/3", http.StatusOK},
		{"/steps/9", http.StatusNotFound},
		{"/steps/-1", http.StatusNotFound},
		{"/steps/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestNavigate(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name      string
		body      string
		current   int
		committed bool
		push      bool
		suppress  bool
	}{
		{"Next", `{"current":0,"action":"next"}`, 1, true, true, false},
		{"Back At Start", `{"current":0,"action":"back"}`, 0, false, false, false},
		{"Directive Label", `{"current":2,"action":"option","label":"Proceed to Step 3"}`, 3, true, true, false},
		{"Choose", `{"current":3,"action":"choose","option":1}`, 4, true, true, false},
		{"Default Next", `{"current":4,"action":"option","label":"Mayo Clinic Modified QT Calculator."}`, 5, true, true, false},
		{"Terminal", `{"current":6,"action":"option","label":"Proceed to Step 2"}`, 6, false, false, false},
		{"Loose Whitespace", `{"current":3,"action":"option","label":" \u003c120 msec:\tProceed  to Step 6\n"}`, 6, true, true, false},
		{"Out Of Range", `{"current":2,"action":"option","label":"x: Proceed to Step 99"}`, 2, false, false, false},
		{"Replay", `{"current":8,"action":"replay","target":2}`, 2, true, false, true},
		{"Replay Without State", `{"current":8,"action":"replay"}`, 0, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := navigate(t, h, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.current, resp.Current)
			assert.Equal(t, tt.committed, resp.Committed)
			assert.Equal(t, tt.push, resp.Push)
			assert.Equal(t, tt.suppress, resp.Suppress)
			assert.Equal(t, tt.current, resp.Step.Index)
		})
	}
}

func TestNavigate_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []string{
		`{`,
		`{"current":42,"action":"next"}`,
		`{"current":0,"action":"teleport"}`,
		`{"current":3,"action":"choose"}`,
		`{"current":2,"action":"option","label":"\u001b[2JProceed to Step 3"}`,
	} {
		w, _ := navigate(t, h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestGraphAndHealth(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graph?current=2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.Contains(t, w.Body.String(), "class step2 current;")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/navigate", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)
	navigate(t, h, `{"current":0,"action":"next"}`)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", bytes.NewReader(nil)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `qtwizard_transitions_total{kind="next",outcome="committed"} 1`)
}
