package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"kazungula-dashboard/internal/services"
)

var kpiCardsTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-content" class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total Arrivals</span><span class="kpi-value">{{printf "%d" .TotalArrivals}}</span><span class="kpi-delta">{{printf "%+.1f" .YoYGrowthPct}}% YoY</span></div>
<div class="kpi-card"><span class="kpi-label">Avg Monthly Arrivals</span><span class="kpi-value">{{printf "%.0f" .AvgMonthlyArrivals}}</span></div>
<div class="kpi-card"><span class="kpi-label">Total Revenue (USD)</span><span class="kpi-value">${{printf "%.2f" .RevenueMillions}}M</span></div>
<div class="kpi-card"><span class="kpi-label">Avg Occupancy Rate</span><span class="kpi-value">{{printf "%.1f" .AvgOccupancyRate}}%</span></div>
<div class="kpi-card"><span class="kpi-label">Total Rooms</span><span class="kpi-value">{{printf "%d" .TotalRooms}}</span><span class="kpi-delta">{{printf "%d" .Facilities}} facilities</span></div>
</div>`))

var facilityTableTemplate = template.Must(template.New("facilityTable").Parse(`
<div id="accommodation-content">
<table class="modern-table">
<thead><tr><th>Facility Type</th><th>Facilities</th><th>Rooms</th><th>Occupancy</th><th>Avg Rate</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.FacilityType}}</td>
<td>{{.Facilities}}</td>
<td>{{.TotalRooms}}</td>
<td><strong>{{printf "%.1f" .OccupancyRate}}%</strong></td>
<td>${{printf "%.0f" .DailyRateUSD}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

type kpiView struct {
	TotalArrivals      int
	AvgMonthlyArrivals float64
	RevenueMillions    float64
	AvgOccupancyRate   float64
	TotalRooms         int
	Facilities         int
	YoYGrowthPct       float64
}

func (h *SSEHandlers) renderKPICards(dr services.DateRange) (string, error) {
	kpi := h.analytics.KPIs(dr)
	view := kpiView{
		TotalArrivals:      kpi.TotalArrivals,
		AvgMonthlyArrivals: kpi.AvgMonthlyArrivals,
		RevenueMillions:    kpi.TotalRevenueUSD / 1e6,
		AvgOccupancyRate:   kpi.AvgOccupancyRate,
		TotalRooms:         kpi.TotalRooms,
		Facilities:         kpi.Facilities,
		YoYGrowthPct:       kpi.YoYGrowthPct,
	}

	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, view)
	return buf.String(), err
}

func (h *SSEHandlers) renderFacilityTable() (string, error) {
	var buf strings.Builder
	err := facilityTableTemplate.Execute(&buf, h.analytics.Accommodation())
	return buf.String(), err
}

func (h *SSEHandlers) rangeFromRequest(r *http.Request) services.DateRange {
	dr, err := parseDateRange(r)
	if err != nil {
		// SSE loads fall back to the full range rather than erroring the
		// stream; the JSON API is where bad filters get rejected.
		h.logger.Warn("ignoring invalid date range on SSE request", "error", err)
		return services.DateRange{}
	}
	return dr
}

func (h *SSEHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderKPICards(h.rangeFromRequest(r))
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleArrivals(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.ArrivalSeries(h.rangeFromRequest(r))
	jsonData, err := json.Marshal(map[string]any{
		"arrivalsData": data,
	})
	if err != nil {
		h.logger.Error("marshal arrivals data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="arrivals-content">Arrivals chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleSourceMarkets(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.SourceMarkets(h.rangeFromRequest(r))
	jsonData, err := json.Marshal(map[string]any{
		"marketsData": data,
	})
	if err != nil {
		h.logger.Error("marshal markets data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="markets-content">Source market chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleSeasonality(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.Seasonality(h.rangeFromRequest(r))
	jsonData, err := json.Marshal(map[string]any{
		"seasonalityData": data,
	})
	if err != nil {
		h.logger.Error("marshal seasonality data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="seasonality-content">Seasonality chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleAccommodation(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	html, err := h.renderFacilityTable()
	if err != nil {
		h.logger.Error("render facility table", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	dr := h.rangeFromRequest(r)
	jsonData, err := json.Marshal(map[string]any{
		"revenueData":   h.analytics.RevenueSeries(dr),
		"breakdownData": h.analytics.RevenueBreakdown(dr),
	})
	if err != nil {
		h.logger.Error("marshal revenue data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="revenue-content">Revenue chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll repatches every panel in a single stream.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	dr := h.rangeFromRequest(r)

	kpiHTML, err := h.renderKPICards(dr)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(kpiHTML)

	facilityHTML, err := h.renderFacilityTable()
	if err != nil {
		h.logger.Error("render facility table", "error", err)
		return
	}
	sse.PatchElements(facilityHTML)

	allSignals, err := json.Marshal(map[string]any{
		"arrivalsData":    h.analytics.ArrivalSeries(dr),
		"marketsData":     h.analytics.SourceMarkets(dr),
		"seasonalityData": h.analytics.Seasonality(dr),
		"revenueData":     h.analytics.RevenueSeries(dr),
		"breakdownData":   h.analytics.RevenueBreakdown(dr),
	})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
