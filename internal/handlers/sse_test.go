package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSSEHandlers_KPIs(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/kpis", nil)
	rec := httptest.NewRecorder()
	h.HandleKPIs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "kpi-content") {
		t.Error("response should patch the kpi-content element")
	}
	if !strings.Contains(body, "Total Arrivals") {
		t.Error("KPI cards should include the Total Arrivals label")
	}
	// 1000 + 2000 arrivals in the fixture.
	if !strings.Contains(body, "3000") {
		t.Error("KPI cards should show the arrival total")
	}
}

func TestSSEHandlers_Arrivals(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/arrivals", nil)
	rec := httptest.NewRecorder()
	h.HandleArrivals(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "arrivalsData") {
		t.Error("response should patch the arrivalsData signal")
	}
	if !strings.Contains(body, "2023-01") {
		t.Error("signal payload should carry the monthly series")
	}
	if !strings.Contains(body, "arrivals-content") {
		t.Error("response should patch the arrivals status element")
	}
}

func TestSSEHandlers_SourceMarkets(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/source-markets", nil)
	rec := httptest.NewRecorder()
	h.HandleSourceMarkets(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "marketsData") {
		t.Error("response should patch the marketsData signal")
	}
	if !strings.Contains(body, "South Africa") {
		t.Error("signal payload should carry market labels")
	}
}

func TestSSEHandlers_Seasonality(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/seasonality", nil)
	rec := httptest.NewRecorder()
	h.HandleSeasonality(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "seasonalityData") {
		t.Error("response should patch the seasonalityData signal")
	}
	if !strings.Contains(body, "peak_month") {
		t.Error("signal payload should include the peak month")
	}
}

func TestSSEHandlers_Accommodation(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/accommodation", nil)
	rec := httptest.NewRecorder()
	h.HandleAccommodation(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "accommodation-content") {
		t.Error("response should patch the accommodation-content element")
	}
	if !strings.Contains(body, "Hotels") {
		t.Error("facility table should list the fixture facility type")
	}
	if !strings.Contains(body, "modern-table") {
		t.Error("facility table should use the dashboard table style")
	}
}

func TestSSEHandlers_Revenue(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/revenue", nil)
	rec := httptest.NewRecorder()
	h.HandleRevenue(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "revenueData") {
		t.Error("response should patch the revenueData signal")
	}
	if !strings.Contains(body, "breakdownData") {
		t.Error("response should patch the breakdownData signal")
	}
}

func TestSSEHandlers_RefreshAll(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	rec := httptest.NewRecorder()
	h.HandleRefreshAll(rec, req)

	body := rec.Body.String()
	for _, fragment := range []string{
		"kpi-content", "accommodation-content",
		"arrivalsData", "marketsData", "seasonalityData", "revenueData", "breakdownData",
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("refresh-all response missing %q", fragment)
		}
	}
}

func TestSSEHandlers_InvalidRangeFallsBack(t *testing.T) {
	h := NewSSEHandlers(testAnalytics(), testLogger())

	// A bad filter on a stream falls back to the full range instead of
	// erroring mid-SSE.
	req := httptest.NewRequest(http.MethodGet, "/sse/arrivals?from=garbage", nil)
	rec := httptest.NewRecorder()
	h.HandleArrivals(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "2023-01") {
		t.Error("fallback should serve the full series")
	}
}
