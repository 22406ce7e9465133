package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"kazungula-dashboard/internal/models"
)

// Column templates for the three input files. Headers are matched after
// snake-casing, so "Total Arrivals" and "total_arrivals" both work.
var (
	arrivalsColumns = []string{
		"date", "total_arrivals", "international", "regional",
		"zambia", "zimbabwe", "botswana", "south_africa",
		"europe", "north_america", "asia",
	}
	accommodationColumns = []string{
		"facility_type", "number_of_facilities", "total_rooms",
		"average_occupancy_rate", "average_rate_usd",
	}
	revenueColumns = []string{
		"date", "total_revenue_usd", "accommodation", "activities",
		"food_beverage", "transport",
	}
)

func toSnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// headerIndex maps the wanted column names to their positions in the CSV
// header. All wanted columns must be present.
func headerIndex(header, wanted []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[toSnakeCase(h)] = i
	}

	idx := make(map[string]int, len(wanted))
	for _, col := range wanted {
		i, ok := pos[col]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
		idx[col] = i
	}
	return idx, nil
}

// parseMonth accepts YYYY-MM or YYYY-MM-DD and normalizes to the first day
// of the month.
func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func intField(row []string, idx map[string]int, col string) (int, error) {
	v := strings.TrimSpace(row[idx[col]])
	if v == "" {
		return 0, nil
	}
	// Arrivals exports sometimes carry decimals.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return int(f), nil
}

func floatField(row []string, idx map[string]int, col string) (float64, error) {
	v := strings.TrimSpace(row[idx[col]])
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return f, nil
}

// ParseArrivalsCSV reads the arrivals template. Malformed rows are skipped;
// the skip count is returned for logging.
func ParseArrivalsCSV(r io.Reader) ([]models.ArrivalRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, arrivalsColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("arrivals header: %w", err)
	}

	var records []models.ArrivalRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec, err := parseArrivalRow(row, idx)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid arrival rows")
	}
	return records, skipped, nil
}

func parseArrivalRow(row []string, idx map[string]int) (models.ArrivalRecord, error) {
	if len(row) < len(idx) {
		return models.ArrivalRecord{}, fmt.Errorf("short row")
	}

	month, err := parseMonth(row[idx["date"]])
	if err != nil {
		return models.ArrivalRecord{}, err
	}

	rec := models.ArrivalRecord{Month: month}
	fields := []struct {
		col string
		dst *int
	}{
		{"total_arrivals", &rec.Total},
		{"international", &rec.International},
		{"regional", &rec.Regional},
		{"zambia", &rec.Zambia},
		{"zimbabwe", &rec.Zimbabwe},
		{"botswana", &rec.Botswana},
		{"south_africa", &rec.SouthAfrica},
		{"europe", &rec.Europe},
		{"north_america", &rec.NorthAmerica},
		{"asia", &rec.Asia},
	}
	for _, f := range fields {
		v, err := intField(row, idx, f.col)
		if err != nil {
			return models.ArrivalRecord{}, err
		}
		*f.dst = v
	}
	return rec, nil
}

// ParseAccommodationCSV reads the facility survey template.
func ParseAccommodationCSV(r io.Reader) ([]models.AccommodationRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, accommodationColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("accommodation header: %w", err)
	}

	var records []models.AccommodationRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) < len(idx) {
			skipped++
			continue
		}

		facilities, err1 := intField(row, idx, "number_of_facilities")
		rooms, err2 := intField(row, idx, "total_rooms")
		occupancy, err3 := floatField(row, idx, "average_occupancy_rate")
		rate, err4 := floatField(row, idx, "average_rate_usd")
		facilityType := strings.TrimSpace(row[idx["facility_type"]])

		if facilityType == "" || err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			skipped++
			continue
		}

		records = append(records, models.AccommodationRecord{
			FacilityType:  facilityType,
			Facilities:    facilities,
			TotalRooms:    rooms,
			OccupancyRate: occupancy,
			DailyRateUSD:  rate,
		})
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid accommodation rows")
	}
	return records, skipped, nil
}

// ParseRevenueCSV reads the revenue template.
func ParseRevenueCSV(r io.Reader) ([]models.RevenueRecord, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	idx, err := headerIndex(header, revenueColumns)
	if err != nil {
		return nil, 0, fmt.Errorf("revenue header: %w", err)
	}

	var records []models.RevenueRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) < len(idx) {
			skipped++
			continue
		}

		month, errM := parseMonth(row[idx["date"]])
		total, err1 := floatField(row, idx, "total_revenue_usd")
		accommodation, err2 := floatField(row, idx, "accommodation")
		activities, err3 := floatField(row, idx, "activities")
		food, err4 := floatField(row, idx, "food_beverage")
		transport, err5 := floatField(row, idx, "transport")

		if errM != nil || err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			skipped++
			continue
		}

		records = append(records, models.RevenueRecord{
			Month:         month,
			Total:         total,
			Accommodation: accommodation,
			Activities:    activities,
			FoodBeverage:  food,
			Transport:     transport,
		})
	}

	if len(records) == 0 {
		return nil, skipped, fmt.Errorf("no valid revenue rows")
	}
	return records, skipped, nil
}
