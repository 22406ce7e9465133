package services

import (
	"strings"
	"testing"
	"time"
)

const arrivalsHeader = "date,total_arrivals,international,regional,zambia,zimbabwe,botswana,south_africa,europe,north_america,asia"

func TestParseArrivalsCSV(t *testing.T) {
	csv := arrivalsHeader + "\n" +
		"2023-01,1000,650,350,150,120,80,250,200,120,80\n" +
		"2023-02-01,2000,1300,700,300,240,160,500,400,240,160\n"

	records, skipped, err := ParseArrivalsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseArrivalsCSV() error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	want := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !records[0].Month.Equal(want) {
		t.Errorf("month = %v, want %v", records[0].Month, want)
	}
	if records[0].Total != 1000 || records[0].SouthAfrica != 250 {
		t.Errorf("unexpected record: %+v", records[0])
	}
	// Full dates normalize to the first of the month.
	if !records[1].Month.Equal(time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("YYYY-MM-DD month = %v, want 2023-02-01", records[1].Month)
	}
}

func TestParseArrivalsCSV_HeaderVariants(t *testing.T) {
	// Human-edited headers arrive with mixed case and spaces.
	csv := "Date,Total Arrivals,International,Regional,Zambia,Zimbabwe,Botswana,South Africa,Europe,North America,Asia\n" +
		"2023-01,1000,650,350,150,120,80,250,200,120,80\n"

	records, _, err := ParseArrivalsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseArrivalsCSV() with spaced headers error: %v", err)
	}
	if len(records) != 1 || records[0].Total != 1000 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestParseArrivalsCSV_SkipsMalformedRows(t *testing.T) {
	csv := arrivalsHeader + "\n" +
		"2023-01,1000,650,350,150,120,80,250,200,120,80\n" +
		"not-a-date,1000,650,350,150,120,80,250,200,120,80\n" +
		"2023-03,abc,650,350,150,120,80,250,200,120,80\n" +
		"2023-04\n"

	records, skipped, err := ParseArrivalsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseArrivalsCSV() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
}

func TestParseArrivalsCSV_MissingColumn(t *testing.T) {
	csv := "date,total_arrivals\n2023-01,1000\n"

	_, _, err := ParseArrivalsCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing column") {
		t.Errorf("error = %v, want missing column", err)
	}
}

func TestParseArrivalsCSV_NoValidRows(t *testing.T) {
	csv := arrivalsHeader + "\nbad,row,with,garbage,x,x,x,x,x,x,x\n"

	_, skipped, err := ParseArrivalsCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error when every row is malformed")
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestParseAccommodationCSV(t *testing.T) {
	csv := "facility_type,number_of_facilities,total_rooms,average_occupancy_rate,average_rate_usd\n" +
		"Hotels,12,450,68.5,120\n" +
		"Lodges,18,280,72,180\n" +
		",5,100,50,80\n"

	records, skipped, err := ParseAccommodationCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseAccommodationCSV() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (blank facility type)", skipped)
	}
	if records[0].FacilityType != "Hotels" || records[0].OccupancyRate != 68.5 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestParseRevenueCSV(t *testing.T) {
	csv := "date,total_revenue_usd,accommodation,activities,food_beverage,transport\n" +
		"2023-01,100000,45000,30000,15000,10000\n" +
		"2023-02,200000,90000,60000,30000,20000\n"

	records, skipped, err := ParseRevenueCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseRevenueCSV() error: %v", err)
	}
	if skipped != 0 || len(records) != 2 {
		t.Fatalf("got %d records (%d skipped), want 2 (0 skipped)", len(records), skipped)
	}
	if records[1].Total != 200000 || records[1].Transport != 20000 {
		t.Errorf("unexpected record: %+v", records[1])
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2023-05", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), false},
		{"2023-05-17", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), false},
		{" 2023-05 ", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC), false},
		{"05/2023", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := parseMonth(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("parseMonth(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
