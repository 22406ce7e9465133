package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"kazungula-dashboard/internal/errors"
	"kazungula-dashboard/internal/models"
	"kazungula-dashboard/internal/observability"
	"kazungula-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

// Defaults for the ROI calculator form.
const (
	defaultInvestmentUSD = 2_000_000
	defaultOccupancyPct  = 65
	defaultDailyRateUSD  = 150
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// parseDateRange reads the optional from/to month filters (YYYY-MM,
// inclusive) used by every series endpoint.
func parseDateRange(r *http.Request) (services.DateRange, error) {
	var dr services.DateRange
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			return dr, errors.BadRequestWrap(err, "invalid 'from' month, expected YYYY-MM")
		}
		dr.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			return dr, errors.BadRequestWrap(err, "invalid 'to' month, expected YYYY-MM")
		}
		dr.To = t
	}
	if err := dr.Validate(); err != nil {
		return dr, errors.ValidationWrap(err, "invalid date range")
	}
	return dr, nil
}

func (h *APIHandlers) writeRangeError(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.KPIs(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleArrivals(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.ArrivalSeries(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSourceMarkets(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.SourceMarkets(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSeasonality(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.Seasonality(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleAccommodation(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.Accommodation(), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleCapacity(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.Capacity(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleRevenue returns the monthly series together with the category
// breakdown, since the revenue panel renders both.
func (h *APIHandlers) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	payload := map[string]any{
		"series":    h.analytics.RevenueSeries(dr),
		"breakdown": h.analytics.RevenueBreakdown(dr),
	}
	errors.WriteSuccessWithHeaders(w, payload, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleImpact(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeRangeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.EconomicImpact(dr), map[string]string{
		"Cache-Control": cacheControl,
	})
}

// HandleROI evaluates the investor payback calculator. Missing parameters
// take the form defaults; out-of-range values are rejected.
func (h *APIHandlers) HandleROI(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	in := models.ROIInput{
		InvestmentUSD: defaultInvestmentUSD,
		OccupancyPct:  defaultOccupancyPct,
		DailyRateUSD:  defaultDailyRateUSD,
	}

	q := r.URL.Query()
	params := []struct {
		name string
		dst  *float64
	}{
		{"investment", &in.InvestmentUSD},
		{"occupancy", &in.OccupancyPct},
		{"rate", &in.DailyRateUSD},
	}
	for _, p := range params {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errors.WriteError(w, h.logger,
				errors.BadRequestWrap(err, "parameter '"+p.name+"' must be numeric"), requestID)
			return
		}
		*p.dst = f
	}

	if err := services.ValidateROIInput(in); err != nil {
		errors.WriteError(w, h.logger, errors.ValidationWrap(err, "invalid calculator input"), requestID)
		return
	}

	errors.WriteSuccess(w, services.EstimateROI(in))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.1.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
