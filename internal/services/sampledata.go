package services

import (
	"math"
	"math/rand"
	"time"

	"kazungula-dashboard/internal/models"
)

// Sample data covers Jan 2019 through Oct 2024, matching the published
// coverage period of the border-post statistics.
var (
	sampleStart = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

	pandemicStart = time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	pandemicEnd   = time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)
)

const (
	sampleSeed = 42

	baseArrivals     = 15000
	arrivalsTrend    = 5000
	arrivalsSeasonal = 5000
	arrivalsNoise    = 1000
	minArrivals      = 1000

	baseRevenue     = 2_500_000
	revenueTrend    = 800_000
	revenueSeasonal = 800_000

	// Demand collapse during travel restrictions.
	pandemicArrivalsFactor = 0.3
	pandemicRevenueFactor  = 0.25
)

// Fixed source-market splits used by the generator. International and
// regional shares are 65/35.
var marketSplits = map[string]float64{
	"zambia":        0.15,
	"zimbabwe":      0.12,
	"botswana":      0.08,
	"south_africa":  0.25,
	"europe":        0.20,
	"north_america": 0.12,
	"asia":          0.08,
}

func sampleMonths() []time.Time {
	var months []time.Time
	for m := sampleStart; !m.After(sampleEnd); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func inPandemic(m time.Time) bool {
	return !m.Before(pandemicStart) && !m.After(pandemicEnd)
}

// SampleArrivals generates the deterministic arrivals series: base level
// plus linear trend, sinusoidal seasonality and seeded noise, damped during
// the pandemic window and floored at minArrivals.
func SampleArrivals() []models.ArrivalRecord {
	months := sampleMonths()
	rng := rand.New(rand.NewSource(sampleSeed))
	n := len(months)

	records := make([]models.ArrivalRecord, 0, n)
	for i, m := range months {
		frac := float64(i) / float64(n-1)
		trend := arrivalsTrend * frac
		seasonal := arrivalsSeasonal * math.Sin(frac*5*2*math.Pi)
		noise := rng.NormFloat64() * arrivalsNoise

		arrivals := baseArrivals + trend + seasonal + noise
		if inPandemic(m) {
			arrivals *= pandemicArrivalsFactor
		}
		if arrivals < minArrivals {
			arrivals = minArrivals
		}

		records = append(records, models.ArrivalRecord{
			Month:         m,
			Total:         int(arrivals),
			International: int(arrivals * 0.65),
			Regional:      int(arrivals * 0.35),
			Zambia:        int(arrivals * marketSplits["zambia"]),
			Zimbabwe:      int(arrivals * marketSplits["zimbabwe"]),
			Botswana:      int(arrivals * marketSplits["botswana"]),
			SouthAfrica:   int(arrivals * marketSplits["south_africa"]),
			Europe:        int(arrivals * marketSplits["europe"]),
			NorthAmerica:  int(arrivals * marketSplits["north_america"]),
			Asia:          int(arrivals * marketSplits["asia"]),
		})
	}
	return records
}

// SampleRevenue generates the deterministic monthly revenue series with the
// same shape as arrivals but no noise term.
func SampleRevenue() []models.RevenueRecord {
	months := sampleMonths()
	n := len(months)

	records := make([]models.RevenueRecord, 0, n)
	for i, m := range months {
		frac := float64(i) / float64(n-1)
		revenue := baseRevenue + revenueTrend*frac + revenueSeasonal*math.Sin(frac*5*2*math.Pi)
		if inPandemic(m) {
			revenue *= pandemicRevenueFactor
		}

		records = append(records, models.RevenueRecord{
			Month:         m,
			Total:         revenue,
			Accommodation: revenue * 0.45,
			Activities:    revenue * 0.30,
			FoodBeverage:  revenue * 0.15,
			Transport:     revenue * 0.10,
		})
	}
	return records
}

// SampleAccommodation returns the static facility survey used when no
// accommodation CSV is supplied.
func SampleAccommodation() []models.AccommodationRecord {
	return []models.AccommodationRecord{
		{FacilityType: "Hotels", Facilities: 12, TotalRooms: 450, OccupancyRate: 68, DailyRateUSD: 120},
		{FacilityType: "Lodges", Facilities: 18, TotalRooms: 280, OccupancyRate: 72, DailyRateUSD: 180},
		{FacilityType: "Guest Houses", Facilities: 25, TotalRooms: 180, OccupancyRate: 55, DailyRateUSD: 45},
		{FacilityType: "Camping Sites", Facilities: 8, TotalRooms: 150, OccupancyRate: 45, DailyRateUSD: 25},
		{FacilityType: "Backpackers", Facilities: 6, TotalRooms: 80, OccupancyRate: 62, DailyRateUSD: 30},
	}
}
