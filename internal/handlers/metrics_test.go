package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gage_backend/internal/models"
	"gage_backend/internal/service"
)

func TestMetricsHandler_ListAndValidation(t *testing.T) {
	rows := []models.PlantMetric{
		{PlantID: "P1", MetricDate: testNow, EnergyKWh: 10},
		{PlantID: "P1", MetricDate: testNow.Add(-24 * time.Hour), EnergyKWh: 12},
	}
	met := &mockMetrics{rows: rows}
	r := newTestRouter(&service.Service{Authorization: newMockAuth(), Metrics: met})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/metrics?from=notatime", "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/metrics?to=31-08-2025", "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'to', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/metrics?plant=P1&from=2025-08-01&to=2025-08-31&limit=7", "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int                  `json:"count"`
		Metrics []models.PlantMetric `json:"metrics"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Metrics) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	f := met.lastFilter
	wantFrom := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if f.Plant != "P1" || f.Limit != 7 || !f.From.Equal(wantFrom) || !f.To.Equal(wantTo) {
		t.Fatalf("unexpected filter %+v", f)
	}

	// time component keeps 'to' as given
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/metrics?to=2025-08-31%2010:00:00", "valid"))
	if w.Code != http.StatusOK || !met.lastFilter.To.Equal(time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected to=%v status=%d", met.lastFilter.To, w.Code)
	}

	met.listErr = service.ErrInvalidTimeRange
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/metrics?from=2025-09-01&to=2025-08-01", "valid"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}

func TestMetricsHandler_Summary(t *testing.T) {
	met := &mockMetrics{sums: []models.PlantSummary{{PlantID: "P1", Days: 2, KWhPerTon: 1.5}}}
	r := newTestRouter(&service.Service{Authorization: newMockAuth(), Metrics: met})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/summary?plant=P1", "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("summary status=%d", w.Code)
	}
	var out struct {
		Count  int                   `json:"count"`
		Plants []models.PlantSummary `json:"plants"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 1 || out.Plants[0].KWhPerTon != 1.5 || met.lastPlant != "P1" {
		t.Fatalf("unexpected summary %+v", out)
	}

	met.sumErr = service.ErrForbidden
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/plants/summary?plant=P9", "valid"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestParseQueryTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-08-27T15:04:05Z", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27T17:04:05+02:00", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27 15:04:05", time.Date(2025, 8, 27, 15, 4, 5, 0, time.UTC), true},
		{"2025-08-27", time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), true},
		{"27/08/2025", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := parseQueryTime(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("%q: err=%v", tc.in, err)
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Fatalf("%q: got %v want %v", tc.in, got, tc.want)
		}
	}
}
