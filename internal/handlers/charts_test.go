package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kazungula-dashboard/internal/models"
	"kazungula-dashboard/internal/services"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestChartHandlers_RenderPNG(t *testing.T) {
	// Line charts need at least two points, so use a six-month fixture.
	a := services.NewAnalytics()
	a.SetData(services.Dataset{
		Arrivals: monthsOfArrivals(6),
		Accommodation: []models.AccommodationRecord{
			{FacilityType: "Hotels", Facilities: 10, TotalRooms: 400, OccupancyRate: 70, DailyRateUSD: 120},
		},
		Revenue: monthsOfRevenue(6),
	})
	h := NewChartHandlers(a, testLogger())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		url     string
	}{
		{"arrivals", h.HandleArrivalsChart, "/charts/arrivals.png"},
		{"seasonality", h.HandleSeasonalityChart, "/charts/seasonality.png"},
		{"markets", h.HandleMarketsChart, "/charts/markets.png"},
		{"revenue", h.HandleRevenueChart, "/charts/revenue.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			tt.handler(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), pngMagic) {
				t.Error("body does not start with PNG magic bytes")
			}
			if rec.Body.Len() < 1000 {
				t.Errorf("suspiciously small PNG: %d bytes", rec.Body.Len())
			}
		})
	}
}

func TestChartHandlers_EmptyRange(t *testing.T) {
	h := NewChartHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/charts/arrivals.png?from=2030-01", nil)
	rec := httptest.NewRecorder()
	h.HandleArrivalsChart(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for empty window", rec.Code)
	}
}

func TestChartHandlers_InvalidRange(t *testing.T) {
	h := NewChartHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/charts/markets.png?from=junk", nil)
	rec := httptest.NewRecorder()
	h.HandleMarketsChart(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func monthsOfArrivals(n int) []models.ArrivalRecord {
	records := make([]models.ArrivalRecord, 0, n)
	for i := 0; i < n; i++ {
		total := 1000 * (i + 1)
		records = append(records, models.ArrivalRecord{
			Month:         time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Total:         total,
			International: total * 65 / 100,
			Regional:      total * 35 / 100,
			Zambia:        total * 15 / 100,
			Zimbabwe:      total * 12 / 100,
			Botswana:      total * 8 / 100,
			SouthAfrica:   total * 25 / 100,
			Europe:        total * 20 / 100,
			NorthAmerica:  total * 12 / 100,
			Asia:          total * 8 / 100,
		})
	}
	return records
}

func monthsOfRevenue(n int) []models.RevenueRecord {
	records := make([]models.RevenueRecord, 0, n)
	for i := 0; i < n; i++ {
		total := float64(100_000 * (i + 1))
		records = append(records, models.RevenueRecord{
			Month:         time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Total:         total,
			Accommodation: total * 0.45,
			Activities:    total * 0.30,
			FoodBeverage:  total * 0.15,
			Transport:     total * 0.10,
		})
	}
	return records
}
