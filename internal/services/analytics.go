package services

import (
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"kazungula-dashboard/internal/config"
	"kazungula-dashboard/internal/models"
)

const (
	cacheVersion = "v2"

	// Typical tourism multiplier for developing regions.
	economicMultiplier = 2.3
	revenuePerJobUSD   = 50000

	// ROI calculator assumptions: flat build cost per room and operating
	// cost share of revenue.
	costPerRoomUSD     = 40000
	operatingCostShare = 0.65

	targetOccupancyPct = 80
)

// DataSourceCSV and DataSourceSample mark where each dataset came from.
const (
	DataSourceCSV    = "csv"
	DataSourceSample = "sample"
)

// Dataset is the full in-memory state: three tabular inputs plus
// provenance. It is held for the life of the process and gob-cached
// between restarts.
type Dataset struct {
	Arrivals      []models.ArrivalRecord
	Accommodation []models.AccommodationRecord
	Revenue       []models.RevenueRecord
	Sources       map[string]string
	LoadedAt      time.Time
}

// DateRange is an inclusive month window. Zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return fmt.Errorf("range start %s is after end %s",
			r.From.Format("2006-01"), r.To.Format("2006-01"))
	}
	return nil
}

func (r DateRange) contains(m time.Time) bool {
	if !r.From.IsZero() && m.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && m.After(r.To) {
		return false
	}
	return true
}

type Analytics struct {
	mu     sync.RWMutex
	ds     *Dataset
	cfg    config.DataConfig
	logger *slog.Logger
}

func NewAnalytics() *Analytics {
	return &Analytics{
		ds:     &Dataset{Sources: map[string]string{}},
		logger: slog.Default(),
	}
}

// SetData replaces the dataset directly, bypassing file loading.
func (a *Analytics) SetData(ds Dataset) {
	sortDataset(&ds)
	if ds.Sources == nil {
		ds.Sources = map[string]string{}
	}
	ds.LoadedAt = time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.ds = &ds
}

// Load reads the three datasets, falling back to generated sample data for
// any file that does not exist. The parsed dataset is cached as a gob
// snapshot and reused while it is newer than the inputs.
func (a *Analytics) Load(ctx context.Context, cfg config.DataConfig) error {
	a.cfg = cfg

	if cached, err := a.loadFromCache(cfg); err == nil && cacheFresh(cfg, cached) {
		a.mu.Lock()
		a.ds = cached
		a.mu.Unlock()
		a.logger.Info("loaded dataset from cache",
			"arrival_months", len(cached.Arrivals),
			"loaded_at", cached.LoadedAt)
		return nil
	}

	start := time.Now()
	ds := &Dataset{Sources: make(map[string]string, 3)}

	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, source, err := a.loadArrivals(cfg.ArrivalsCSV)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Arrivals = records
		ds.Sources["arrivals"] = source
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, source, err := a.loadAccommodation(cfg.AccommodationCSV)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Accommodation = records
		ds.Sources["accommodation"] = source
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		records, source, err := a.loadRevenue(cfg.RevenueCSV)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Revenue = records
		ds.Sources["revenue"] = source
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	sortDataset(ds)
	ds.LoadedAt = time.Now()

	a.mu.Lock()
	a.ds = ds
	a.mu.Unlock()

	if err := a.saveToCache(cfg, ds); err != nil {
		a.logger.Warn("failed to save dataset cache", "error", err)
	}

	a.logger.Info("datasets loaded",
		"arrival_months", len(ds.Arrivals),
		"facility_types", len(ds.Accommodation),
		"revenue_months", len(ds.Revenue),
		"sources", ds.Sources,
		"duration", time.Since(start))
	return nil
}

func (a *Analytics) loadArrivals(path string) ([]models.ArrivalRecord, string, error) {
	file, err := os.Open(path)
	if path == "" || os.IsNotExist(err) {
		a.logger.Warn("arrivals CSV not found, using sample data", "path", path)
		return SampleArrivals(), DataSourceSample, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("open arrivals: %w", err)
	}
	defer file.Close()

	records, skipped, err := ParseArrivalsCSV(file)
	if err != nil {
		return nil, "", fmt.Errorf("parse arrivals: %w", err)
	}
	if skipped > 0 {
		a.logger.Warn("skipped malformed arrival rows", "path", path, "skipped", skipped)
	}
	return records, DataSourceCSV, nil
}

func (a *Analytics) loadAccommodation(path string) ([]models.AccommodationRecord, string, error) {
	file, err := os.Open(path)
	if path == "" || os.IsNotExist(err) {
		a.logger.Warn("accommodation CSV not found, using sample data", "path", path)
		return SampleAccommodation(), DataSourceSample, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("open accommodation: %w", err)
	}
	defer file.Close()

	records, skipped, err := ParseAccommodationCSV(file)
	if err != nil {
		return nil, "", fmt.Errorf("parse accommodation: %w", err)
	}
	if skipped > 0 {
		a.logger.Warn("skipped malformed accommodation rows", "path", path, "skipped", skipped)
	}
	return records, DataSourceCSV, nil
}

func (a *Analytics) loadRevenue(path string) ([]models.RevenueRecord, string, error) {
	file, err := os.Open(path)
	if path == "" || os.IsNotExist(err) {
		a.logger.Warn("revenue CSV not found, using sample data", "path", path)
		return SampleRevenue(), DataSourceSample, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("open revenue: %w", err)
	}
	defer file.Close()

	records, skipped, err := ParseRevenueCSV(file)
	if err != nil {
		return nil, "", fmt.Errorf("parse revenue: %w", err)
	}
	if skipped > 0 {
		a.logger.Warn("skipped malformed revenue rows", "path", path, "skipped", skipped)
	}
	return records, DataSourceCSV, nil
}

func sortDataset(ds *Dataset) {
	slices.SortFunc(ds.Arrivals, func(x, y models.ArrivalRecord) int {
		return x.Month.Compare(y.Month)
	})
	slices.SortFunc(ds.Revenue, func(x, y models.RevenueRecord) int {
		return x.Month.Compare(y.Month)
	})
}

// Cache management

func cacheFilename(cfg config.DataConfig) string {
	key := strings.Join([]string{cfg.ArrivalsCSV, cfg.AccommodationCSV, cfg.RevenueCSV}, "-")
	key = strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return fmt.Sprintf("%s/%s_%s.gob", cfg.CacheDir, key, cacheVersion)
}

func cacheFresh(cfg config.DataConfig, cached *Dataset) bool {
	for _, path := range []string{cfg.ArrivalsCSV, cfg.AccommodationCSV, cfg.RevenueCSV} {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(cached.LoadedAt) {
			return false
		}
	}
	return true
}

func (a *Analytics) saveToCache(cfg config.DataConfig, ds *Dataset) error {
	if cfg.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(cacheFilename(cfg))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(ds)
}

func (a *Analytics) loadFromCache(cfg config.DataConfig) (*Dataset, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("caching disabled")
	}
	file, err := os.Open(cacheFilename(cfg))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ds Dataset
	if err := gob.NewDecoder(file).Decode(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Query methods. Every series or aggregate accepts an optional month window.

func (a *Analytics) filteredArrivals(r DateRange) []models.ArrivalRecord {
	var out []models.ArrivalRecord
	for _, rec := range a.ds.Arrivals {
		if r.contains(rec.Month) {
			out = append(out, rec)
		}
	}
	return out
}

func (a *Analytics) filteredRevenue(r DateRange) []models.RevenueRecord {
	var out []models.RevenueRecord
	for _, rec := range a.ds.Revenue {
		if r.contains(rec.Month) {
			out = append(out, rec)
		}
	}
	return out
}

// KPIs computes the headline card numbers over the given window.
func (a *Analytics) KPIs(r DateRange) models.KPISummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	arrivals := a.filteredArrivals(r)
	revenue := a.filteredRevenue(r)

	kpi := models.KPISummary{}

	var intlSum int
	var peak models.ArrivalRecord
	for _, rec := range arrivals {
		kpi.TotalArrivals += rec.Total
		intlSum += rec.International
		if rec.Total > peak.Total {
			peak = rec
		}
	}
	if n := len(arrivals); n > 0 {
		kpi.AvgMonthlyArrivals = float64(kpi.TotalArrivals) / float64(n)
		kpi.PeakMonth = peak.Month.Format("January 2006")
	}
	if kpi.TotalArrivals > 0 {
		kpi.InternationalPct = float64(intlSum) / float64(kpi.TotalArrivals) * 100
	}
	kpi.YoYGrowthPct = yoyGrowth(arrivals)
	kpi.AvgMonthlyGrowth = avgMonthlyGrowth(arrivals)

	for _, rec := range revenue {
		kpi.TotalRevenueUSD += rec.Total
	}

	var occSum float64
	for _, acc := range a.ds.Accommodation {
		kpi.TotalRooms += acc.TotalRooms
		kpi.Facilities += acc.Facilities
		occSum += acc.OccupancyRate
	}
	if n := len(a.ds.Accommodation); n > 0 {
		kpi.AvgOccupancyRate = occSum / float64(n)
	}

	return kpi
}

// yoyGrowth compares the trailing 12 months against the 12 before them.
// Windows shorter than 24 months report zero growth.
func yoyGrowth(arrivals []models.ArrivalRecord) float64 {
	n := len(arrivals)
	if n < 24 {
		return 0
	}
	var recent, previous int
	for _, rec := range arrivals[n-12:] {
		recent += rec.Total
	}
	for _, rec := range arrivals[n-24 : n-12] {
		previous += rec.Total
	}
	if previous == 0 {
		return 0
	}
	return float64(recent-previous) / float64(previous) * 100
}

func avgMonthlyGrowth(arrivals []models.ArrivalRecord) float64 {
	var sum float64
	count := 0
	for i := 1; i < len(arrivals); i++ {
		prev := arrivals[i-1].Total
		if prev == 0 {
			continue
		}
		sum += float64(arrivals[i].Total-prev) / float64(prev) * 100
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ArrivalSeries returns the filtered monthly arrivals series.
func (a *Analytics) ArrivalSeries(r DateRange) []models.MonthlyArrivals {
	a.mu.RLock()
	defer a.mu.RUnlock()

	arrivals := a.filteredArrivals(r)
	out := make([]models.MonthlyArrivals, 0, len(arrivals))
	for _, rec := range arrivals {
		out = append(out, models.MonthlyArrivals{
			Month:         rec.Month.Format("2006-01"),
			Total:         rec.Total,
			International: rec.International,
			Regional:      rec.Regional,
		})
	}
	return out
}

// SourceMarkets totals arrivals per origin market over the window, with
// percentage shares, sorted by volume.
func (a *Analytics) SourceMarkets(r DateRange) []models.MarketShare {
	a.mu.RLock()
	defer a.mu.RUnlock()

	totals := make(map[string]int, len(models.SourceMarkets))
	for _, rec := range a.filteredArrivals(r) {
		for market, count := range rec.MarketCounts() {
			totals[market] += count
		}
	}

	var sum int
	for _, v := range totals {
		sum += v
	}

	out := make([]models.MarketShare, 0, len(models.SourceMarkets))
	for _, market := range models.SourceMarkets {
		share := models.MarketShare{
			Market:   models.MarketLabels[market],
			Arrivals: totals[market],
		}
		if sum > 0 {
			share.SharePct = float64(totals[market]) / float64(sum) * 100
		}
		out = append(out, share)
	}

	slices.SortFunc(out, func(x, y models.MarketShare) int {
		return y.Arrivals - x.Arrivals
	})
	return out
}

// Seasonality averages arrivals per calendar month over the window.
func (a *Analytics) Seasonality(r DateRange) models.Seasonality {
	a.mu.RLock()
	defer a.mu.RUnlock()

	sums := make(map[time.Month]int)
	counts := make(map[time.Month]int)
	for _, rec := range a.filteredArrivals(r) {
		m := rec.Month.Month()
		sums[m] += rec.Total
		counts[m]++
	}

	result := models.Seasonality{}
	var peakAvg, lowAvg float64
	for m := time.January; m <= time.December; m++ {
		if counts[m] == 0 {
			continue
		}
		avg := float64(sums[m]) / float64(counts[m])
		result.Buckets = append(result.Buckets, models.SeasonalityBucket{
			Month:       m.String(),
			AvgArrivals: avg,
		})
		if result.PeakMonth == "" || avg > peakAvg {
			result.PeakMonth, peakAvg = m.String(), avg
		}
		if result.LowMonth == "" || avg < lowAvg {
			result.LowMonth, lowAvg = m.String(), avg
		}
	}
	if lowAvg > 0 {
		result.Index = peakAvg / lowAvg
	}
	return result
}

// Accommodation returns the facility survey rows.
func (a *Analytics) Accommodation() []models.AccommodationRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.ds.Accommodation)
}

// Capacity derives room supply utilization and RevPAR over the window.
func (a *Analytics) Capacity(r DateRange) models.CapacityAnalysis {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := models.CapacityAnalysis{}

	var occSum float64
	for _, acc := range a.ds.Accommodation {
		result.TotalRooms += acc.TotalRooms
		occSum += acc.OccupancyRate
	}
	if n := len(a.ds.Accommodation); n > 0 {
		result.AvgOccupancyRate = occSum / float64(n)
	}
	result.UnutilizedRoomNights = float64(result.TotalRooms) * (100 - result.AvgOccupancyRate) / 100

	revenue := a.filteredRevenue(r)
	var accomRevenue float64
	for _, rec := range revenue {
		accomRevenue += rec.Accommodation
	}
	if result.TotalRooms > 0 && len(revenue) > 0 {
		result.RevPAR = accomRevenue / (float64(result.TotalRooms) * float64(len(revenue)))
	}

	if result.AvgOccupancyRate > 0 && result.AvgOccupancyRate < targetOccupancyPct {
		result.TargetOccupancyRate = targetOccupancyPct
		result.AdditionalRevenueUSD = accomRevenue*(targetOccupancyPct/result.AvgOccupancyRate) - accomRevenue
	}
	return result
}

// RevenueSeries returns the filtered monthly revenue series.
func (a *Analytics) RevenueSeries(r DateRange) []models.MonthlyRevenue {
	a.mu.RLock()
	defer a.mu.RUnlock()

	revenue := a.filteredRevenue(r)
	out := make([]models.MonthlyRevenue, 0, len(revenue))
	for _, rec := range revenue {
		out = append(out, models.MonthlyRevenue{
			Month:         rec.Month.Format("2006-01"),
			Total:         rec.Total,
			Accommodation: rec.Accommodation,
			Activities:    rec.Activities,
		})
	}
	return out
}

// RevenueBreakdown totals the four revenue categories over the window.
func (a *Analytics) RevenueBreakdown(r DateRange) []models.RevenueBreakdown {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var accommodation, activities, food, transport float64
	for _, rec := range a.filteredRevenue(r) {
		accommodation += rec.Accommodation
		activities += rec.Activities
		food += rec.FoodBeverage
		transport += rec.Transport
	}
	total := accommodation + activities + food + transport

	out := []models.RevenueBreakdown{
		{Category: "Accommodation", RevenueUSD: accommodation},
		{Category: "Activities", RevenueUSD: activities},
		{Category: "Food & Beverage", RevenueUSD: food},
		{Category: "Transport", RevenueUSD: transport},
	}
	if total > 0 {
		for i := range out {
			out[i].SharePct = out[i].RevenueUSD / total * 100
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RevenueUSD > out[j].RevenueUSD
	})
	return out
}

// EconomicImpact applies the regional tourism multiplier to direct revenue.
func (a *Analytics) EconomicImpact(r DateRange) models.EconomicImpact {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var direct float64
	for _, rec := range a.filteredRevenue(r) {
		direct += rec.Total
	}

	return models.EconomicImpact{
		DirectRevenueUSD:  direct,
		IndirectImpactUSD: direct * (economicMultiplier - 1),
		TotalImpactUSD:    direct * economicMultiplier,
		JobsSupported:     direct * economicMultiplier / revenuePerJobUSD,
		Multiplier:        economicMultiplier,
	}
}

// ValidateROIInput enforces the calculator form bounds.
func ValidateROIInput(in models.ROIInput) error {
	if in.InvestmentUSD < 100_000 || in.InvestmentUSD > 10_000_000 {
		return fmt.Errorf("investment must be between 100000 and 10000000 USD, got %.0f", in.InvestmentUSD)
	}
	if in.OccupancyPct < 30 || in.OccupancyPct > 90 {
		return fmt.Errorf("occupancy must be between 30%% and 90%%, got %.0f", in.OccupancyPct)
	}
	if in.DailyRateUSD < 50 || in.DailyRateUSD > 500 {
		return fmt.Errorf("daily rate must be between 50 and 500 USD, got %.0f", in.DailyRateUSD)
	}
	return nil
}

// EstimateROI runs the simplified payback model: rooms are costed at a flat
// build rate and operating costs take a fixed share of revenue. Payback and
// annual ROI are omitted when the model yields no profit.
func EstimateROI(in models.ROIInput) models.ROIEstimate {
	rooms := in.InvestmentUSD / costPerRoomUSD
	annualRevenue := rooms * 365 * (in.OccupancyPct / 100) * in.DailyRateUSD
	costs := annualRevenue * operatingCostShare
	net := annualRevenue - costs

	est := models.ROIEstimate{
		RoomsEstimate:     rooms,
		AnnualRevenueUSD:  annualRevenue,
		OperatingCostsUSD: costs,
		NetProfitUSD:      net,
	}
	if net > 0 {
		est.PaybackYears = in.InvestmentUSD / net
		est.AnnualROIPct = net / in.InvestmentUSD * 100
	}
	return est
}

// Stats reports dataset shape and provenance for the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"arrival_months": len(a.ds.Arrivals),
		"facility_types": len(a.ds.Accommodation),
		"revenue_months": len(a.ds.Revenue),
		"sources":        a.ds.Sources,
		"loaded_at":      a.ds.LoadedAt,
	}
}
