package models

import "time"

// Canonical source-market keys, in the order they appear in the arrivals
// CSV template and in dashboard legends.
var SourceMarkets = []string{
	"south_africa",
	"europe",
	"zambia",
	"zimbabwe",
	"north_america",
	"botswana",
	"asia",
}

// MarketLabels maps source-market keys to display names.
var MarketLabels = map[string]string{
	"south_africa":  "South Africa",
	"europe":        "Europe",
	"zambia":        "Zambia (Domestic)",
	"zimbabwe":      "Zimbabwe",
	"north_america": "North America",
	"botswana":      "Botswana",
	"asia":          "Asia",
}

// ArrivalRecord is one month of visitor arrivals, keyed by the first day
// of the month.
type ArrivalRecord struct {
	Month         time.Time
	Total         int
	International int
	Regional      int
	Zambia        int
	Zimbabwe      int
	Botswana      int
	SouthAfrica   int
	Europe        int
	NorthAmerica  int
	Asia          int
}

// MarketCounts returns the per-market arrivals keyed by source-market key.
func (r ArrivalRecord) MarketCounts() map[string]int {
	return map[string]int{
		"south_africa":  r.SouthAfrica,
		"europe":        r.Europe,
		"zambia":        r.Zambia,
		"zimbabwe":      r.Zimbabwe,
		"north_america": r.NorthAmerica,
		"botswana":      r.Botswana,
		"asia":          r.Asia,
	}
}

// AccommodationRecord is the supply-side summary for one facility type.
type AccommodationRecord struct {
	FacilityType  string  `json:"facility_type"`
	Facilities    int     `json:"number_of_facilities"`
	TotalRooms    int     `json:"total_rooms"`
	OccupancyRate float64 `json:"average_occupancy_rate"`
	DailyRateUSD  float64 `json:"average_rate_usd"`
}

// RevenueRecord is one month of tourism revenue split by category.
type RevenueRecord struct {
	Month         time.Time
	Total         float64
	Accommodation float64
	Activities    float64
	FoodBeverage  float64
	Transport     float64
}

type KPISummary struct {
	TotalArrivals      int     `json:"total_arrivals"`
	AvgMonthlyArrivals float64 `json:"avg_monthly_arrivals"`
	TotalRevenueUSD    float64 `json:"total_revenue_usd"`
	AvgOccupancyRate   float64 `json:"avg_occupancy_rate"`
	TotalRooms         int     `json:"total_rooms"`
	Facilities         int     `json:"facilities"`
	YoYGrowthPct       float64 `json:"yoy_growth_pct"`
	AvgMonthlyGrowth   float64 `json:"avg_monthly_growth_pct"`
	InternationalPct   float64 `json:"international_share_pct"`
	PeakMonth          string  `json:"peak_month"`
}

type MarketShare struct {
	Market   string  `json:"market"`
	Arrivals int     `json:"arrivals"`
	SharePct float64 `json:"share_pct"`
}

type MonthlyArrivals struct {
	Month         string `json:"month"`
	Total         int    `json:"total"`
	International int    `json:"international"`
	Regional      int    `json:"regional"`
}

type SeasonalityBucket struct {
	Month       string  `json:"month"`
	AvgArrivals float64 `json:"avg_arrivals"`
}

type Seasonality struct {
	Buckets   []SeasonalityBucket `json:"buckets"`
	PeakMonth string              `json:"peak_month"`
	LowMonth  string              `json:"low_month"`
	Index     float64             `json:"seasonality_index"`
}

type CapacityAnalysis struct {
	TotalRooms           int     `json:"total_rooms"`
	AvgOccupancyRate     float64 `json:"avg_occupancy_rate"`
	UnutilizedRoomNights float64 `json:"unutilized_rooms_per_night"`
	RevPAR               float64 `json:"revpar_usd"`
	TargetOccupancyRate  float64 `json:"target_occupancy_rate,omitempty"`
	AdditionalRevenueUSD float64 `json:"additional_revenue_potential_usd,omitempty"`
}

type MonthlyRevenue struct {
	Month         string  `json:"month"`
	Total         float64 `json:"total_usd"`
	Accommodation float64 `json:"accommodation_usd"`
	Activities    float64 `json:"activities_usd"`
}

type RevenueBreakdown struct {
	Category   string  `json:"category"`
	RevenueUSD float64 `json:"revenue_usd"`
	SharePct   float64 `json:"share_pct"`
}

type EconomicImpact struct {
	DirectRevenueUSD  float64 `json:"direct_revenue_usd"`
	IndirectImpactUSD float64 `json:"indirect_impact_usd"`
	TotalImpactUSD    float64 `json:"total_impact_usd"`
	JobsSupported     float64 `json:"jobs_supported"`
	Multiplier        float64 `json:"multiplier"`
}

// ROIInput is the investor calculator input. Bounds match the form limits
// on the dashboard.
type ROIInput struct {
	InvestmentUSD float64 `json:"investment_usd"`
	OccupancyPct  float64 `json:"occupancy_pct"`
	DailyRateUSD  float64 `json:"daily_rate_usd"`
}

type ROIEstimate struct {
	RoomsEstimate     float64 `json:"rooms_estimate"`
	AnnualRevenueUSD  float64 `json:"annual_revenue_usd"`
	OperatingCostsUSD float64 `json:"operating_costs_usd"`
	NetProfitUSD      float64 `json:"net_profit_usd"`
	PaybackYears      float64 `json:"payback_years,omitempty"`
	AnnualROIPct      float64 `json:"annual_roi_pct,omitempty"`
}
