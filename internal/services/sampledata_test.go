package services

import (
	"testing"
	"time"
)

func TestSampleArrivals_Deterministic(t *testing.T) {
	first := SampleArrivals()
	second := SampleArrivals()

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("record %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSampleArrivals_Coverage(t *testing.T) {
	records := SampleArrivals()

	// Jan 2019 through Oct 2024 is 70 months.
	if len(records) != 70 {
		t.Fatalf("got %d months, want 70", len(records))
	}
	if !records[0].Month.Equal(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first month = %v, want 2019-01", records[0].Month)
	}
	if !records[len(records)-1].Month.Equal(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last month = %v, want 2024-10", records[len(records)-1].Month)
	}

	for i, rec := range records {
		if rec.Total < 1000 {
			t.Errorf("month %v total %d below floor", rec.Month, rec.Total)
		}
		if rec.International+rec.Regional > rec.Total {
			t.Errorf("month %v intl+regional %d exceeds total %d",
				rec.Month, rec.International+rec.Regional, rec.Total)
		}

		marketSum := 0
		for _, count := range rec.MarketCounts() {
			marketSum += count
		}
		if marketSum > rec.Total {
			t.Errorf("month %v market sum %d exceeds total %d", rec.Month, marketSum, rec.Total)
		}

		if i > 0 && !records[i-1].Month.Before(rec.Month) {
			t.Errorf("months not strictly increasing at index %d", i)
		}
	}
}

func TestSampleArrivals_PandemicDip(t *testing.T) {
	records := SampleArrivals()

	var before, during int
	for _, rec := range records {
		switch {
		case rec.Month.Year() == 2019:
			before += rec.Total
		case rec.Month.Year() == 2020 && rec.Month.Month() >= time.March,
			rec.Month.Year() == 2021:
			during += rec.Total
		}
	}

	avgBefore := before / 12
	avgDuring := during / 22
	if avgDuring >= avgBefore/2 {
		t.Errorf("pandemic average %d not clearly below pre-pandemic average %d", avgDuring, avgBefore)
	}
}

func TestSampleRevenue(t *testing.T) {
	records := SampleRevenue()
	if len(records) != 70 {
		t.Fatalf("got %d months, want 70", len(records))
	}

	for _, rec := range records {
		if rec.Total <= 0 {
			t.Errorf("month %v revenue %f not positive", rec.Month, rec.Total)
		}
		parts := rec.Accommodation + rec.Activities + rec.FoodBeverage + rec.Transport
		if diff := parts - rec.Total; diff > 1 || diff < -1 {
			t.Errorf("month %v categories sum to %f, total %f", rec.Month, parts, rec.Total)
		}
	}
}

func TestSampleAccommodation(t *testing.T) {
	records := SampleAccommodation()
	if len(records) != 5 {
		t.Fatalf("got %d facility types, want 5", len(records))
	}

	for _, rec := range records {
		if rec.OccupancyRate < 0 || rec.OccupancyRate > 100 {
			t.Errorf("%s occupancy %f out of [0,100]", rec.FacilityType, rec.OccupancyRate)
		}
		if rec.TotalRooms <= 0 || rec.Facilities <= 0 || rec.DailyRateUSD <= 0 {
			t.Errorf("%s has non-positive supply fields: %+v", rec.FacilityType, rec)
		}
	}
}
