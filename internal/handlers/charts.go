package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"kazungula-dashboard/internal/errors"
	"kazungula-dashboard/internal/observability"
	"kazungula-dashboard/internal/services"
)

const (
	chartWidth  = 900
	chartHeight = 400
)

// ChartHandlers renders dashboard panels as standalone PNGs, used for
// iframe embeds and the exported report.
type ChartHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewChartHandlers(analytics *services.Analytics, logger *slog.Logger) *ChartHandlers {
	return &ChartHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *ChartHandlers) writePNG(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	requestID := observability.GetRequestID(r.Context())

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.logger.Error("chart render failed", "path", r.URL.Path, "error", err)
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "chart rendering failed"), requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cacheControl)
	w.Write(buf.Bytes())
}

// HandleArrivalsChart draws the total/international/regional arrivals lines.
func (h *ChartHandlers) HandleArrivalsChart(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	series := h.analytics.ArrivalSeries(dr)
	if len(series) < 2 {
		errors.WriteError(w, h.logger,
			errors.NotFound("not enough arrival data in range"), observability.GetRequestID(r.Context()))
		return
	}

	months := make([]time.Time, 0, len(series))
	totals := make([]float64, 0, len(series))
	intl := make([]float64, 0, len(series))
	regional := make([]float64, 0, len(series))
	for _, m := range series {
		t, err := time.Parse("2006-01", m.Month)
		if err != nil {
			continue
		}
		months = append(months, t)
		totals = append(totals, float64(m.Total))
		intl = append(intl, float64(m.International))
		regional = append(regional, float64(m.Regional))
	}

	graph := chart.Chart{
		Title:  "Tourist Arrivals Over Time",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Arrivals"},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Total", XValues: months, YValues: totals},
			chart.TimeSeries{Name: "International", XValues: months, YValues: intl},
			chart.TimeSeries{Name: "Regional (SADC)", XValues: months, YValues: regional},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	h.writePNG(w, r, func(buf *bytes.Buffer) error {
		return graph.Render(chart.PNG, buf)
	})
}

// HandleSeasonalityChart draws average arrivals per calendar month.
func (h *ChartHandlers) HandleSeasonalityChart(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	seasonality := h.analytics.Seasonality(dr)
	if len(seasonality.Buckets) == 0 {
		errors.WriteError(w, h.logger,
			errors.NotFound("no arrival data in range"), observability.GetRequestID(r.Context()))
		return
	}

	bars := make([]chart.Value, 0, len(seasonality.Buckets))
	for _, b := range seasonality.Buckets {
		bars = append(bars, chart.Value{
			Label: b.Month[:3],
			Value: b.AvgArrivals,
		})
	}

	graph := chart.BarChart{
		Title:    "Average Monthly Arrivals (Seasonality)",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
	}

	h.writePNG(w, r, func(buf *bytes.Buffer) error {
		return graph.Render(chart.PNG, buf)
	})
}

// HandleMarketsChart draws the source-market share pie.
func (h *ChartHandlers) HandleMarketsChart(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	markets := h.analytics.SourceMarkets(dr)
	values := make([]chart.Value, 0, len(markets))
	for _, m := range markets {
		if m.Arrivals == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: m.Market,
			Value: float64(m.Arrivals),
		})
	}
	if len(values) == 0 {
		errors.WriteError(w, h.logger,
			errors.NotFound("no arrival data in range"), observability.GetRequestID(r.Context()))
		return
	}

	graph := chart.PieChart{
		Title:  "Visitor Source Markets",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}

	h.writePNG(w, r, func(buf *bytes.Buffer) error {
		return graph.Render(chart.PNG, buf)
	})
}

// HandleRevenueChart draws total and accommodation revenue lines.
func (h *ChartHandlers) HandleRevenueChart(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	series := h.analytics.RevenueSeries(dr)
	if len(series) < 2 {
		errors.WriteError(w, h.logger,
			errors.NotFound("not enough revenue data in range"), observability.GetRequestID(r.Context()))
		return
	}

	months := make([]time.Time, 0, len(series))
	totals := make([]float64, 0, len(series))
	accommodation := make([]float64, 0, len(series))
	activities := make([]float64, 0, len(series))
	for _, m := range series {
		t, err := time.Parse("2006-01", m.Month)
		if err != nil {
			continue
		}
		months = append(months, t)
		totals = append(totals, m.Total)
		accommodation = append(accommodation, m.Accommodation)
		activities = append(activities, m.Activities)
	}

	graph := chart.Chart{
		Title:  "Tourism Revenue Trends (USD)",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Month"},
		YAxis:  chart.YAxis{Name: "Revenue (USD)"},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Total Revenue", XValues: months, YValues: totals},
			chart.TimeSeries{Name: "Accommodation", XValues: months, YValues: accommodation},
			chart.TimeSeries{Name: "Activities & Tours", XValues: months, YValues: activities},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	h.writePNG(w, r, func(buf *bytes.Buffer) error {
		return graph.Render(chart.PNG, buf)
	})
}
