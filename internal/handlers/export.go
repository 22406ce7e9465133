package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"kazungula-dashboard/internal/errors"
	"kazungula-dashboard/internal/observability"
	"kazungula-dashboard/internal/services"
)

// ExportHandlers builds the downloadable investor report workbook.
type ExportHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewExportHandlers(analytics *services.Analytics, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleExport streams an XLSX workbook with Summary, Arrivals,
// Accommodation and Revenue sheets over the requested window.
func (h *ExportHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	dr, err := parseDateRange(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	workbook, err := h.buildWorkbook(dr)
	if err != nil {
		h.logger.Error("build export workbook", "error", err, "request_id", requestID)
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "report export failed"), requestID)
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("kazungula-tourism-report-%s.xlsx", uuid.NewString())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := workbook.WriteTo(w); err != nil {
		h.logger.Error("stream export workbook", "error", err, "request_id", requestID)
	}
}

func (h *ExportHandlers) buildWorkbook(dr services.DateRange) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	if err := h.writeSummarySheet(f, dr); err != nil {
		return nil, err
	}
	if err := h.writeArrivalsSheet(f, dr); err != nil {
		return nil, err
	}
	if err := h.writeAccommodationSheet(f); err != nil {
		return nil, err
	}
	if err := h.writeRevenueSheet(f, dr); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func (h *ExportHandlers) writeSummarySheet(f *excelize.File, dr services.DateRange) error {
	kpi := h.analytics.KPIs(dr)
	capacity := h.analytics.Capacity(dr)
	impact := h.analytics.EconomicImpact(dr)

	rows := [][]any{
		{"Metric", "Value"},
		{"Total Arrivals", kpi.TotalArrivals},
		{"Avg Monthly Arrivals", kpi.AvgMonthlyArrivals},
		{"Total Revenue (USD)", kpi.TotalRevenueUSD},
		{"YoY Growth (%)", kpi.YoYGrowthPct},
		{"International Share (%)", kpi.InternationalPct},
		{"Peak Month", kpi.PeakMonth},
		{"Total Rooms", kpi.TotalRooms},
		{"Facilities", kpi.Facilities},
		{"Avg Occupancy Rate (%)", kpi.AvgOccupancyRate},
		{"Unutilized Rooms/Night", capacity.UnutilizedRoomNights},
		{"RevPAR (USD)", capacity.RevPAR},
		{"Direct Tourism Revenue (USD)", impact.DirectRevenueUSD},
		{"Indirect Economic Impact (USD)", impact.IndirectImpactUSD},
		{"Total Economic Impact (USD)", impact.TotalImpactUSD},
		{"Jobs Supported (est.)", impact.JobsSupported},
	}

	for i, row := range rows {
		if err := writeRow(f, "Summary", i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExportHandlers) writeArrivalsSheet(f *excelize.File, dr services.DateRange) error {
	if _, err := f.NewSheet("Arrivals"); err != nil {
		return err
	}

	if err := writeRow(f, "Arrivals", 1, []any{"Month", "Total", "International", "Regional"}); err != nil {
		return err
	}
	for i, m := range h.analytics.ArrivalSeries(dr) {
		row := []any{m.Month, m.Total, m.International, m.Regional}
		if err := writeRow(f, "Arrivals", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExportHandlers) writeAccommodationSheet(f *excelize.File) error {
	if _, err := f.NewSheet("Accommodation"); err != nil {
		return err
	}

	header := []any{"Facility Type", "Facilities", "Total Rooms", "Avg Occupancy (%)", "Avg Rate (USD)"}
	if err := writeRow(f, "Accommodation", 1, header); err != nil {
		return err
	}
	for i, a := range h.analytics.Accommodation() {
		row := []any{a.FacilityType, a.Facilities, a.TotalRooms, a.OccupancyRate, a.DailyRateUSD}
		if err := writeRow(f, "Accommodation", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExportHandlers) writeRevenueSheet(f *excelize.File, dr services.DateRange) error {
	if _, err := f.NewSheet("Revenue"); err != nil {
		return err
	}

	if err := writeRow(f, "Revenue", 1, []any{"Month", "Total (USD)", "Accommodation (USD)", "Activities (USD)"}); err != nil {
		return err
	}
	for i, m := range h.analytics.RevenueSeries(dr) {
		row := []any{m.Month, m.Total, m.Accommodation, m.Activities}
		if err := writeRow(f, "Revenue", i+2, row); err != nil {
			return err
		}
	}
	return nil
}
