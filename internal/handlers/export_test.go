package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportHandlers_Workbook(t *testing.T) {
	h := NewExportHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/export.xlsx", nil)
	rec := httptest.NewRecorder()
	h.HandleExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q, want xlsx", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "kazungula-tourism-report-") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	want := []string{"Summary", "Arrivals", "Accommodation", "Revenue"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet[%d] = %q, want %q", i, sheets[i], name)
		}
	}

	cell, err := wb.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatalf("read summary cell: %v", err)
	}
	// Fixture total arrivals.
	if cell != "3000" {
		t.Errorf("Summary!B2 = %q, want 3000", cell)
	}

	rows, err := wb.GetRows("Arrivals")
	if err != nil {
		t.Fatalf("read arrivals sheet: %v", err)
	}
	// Header plus two fixture months.
	if len(rows) != 3 {
		t.Errorf("arrivals rows = %d, want 3", len(rows))
	}
}

func TestExportHandlers_DateFilter(t *testing.T) {
	h := NewExportHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/export.xlsx?from=2023-02", nil)
	rec := httptest.NewRecorder()
	h.HandleExport(rec, req)

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Arrivals")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("filtered arrivals rows = %d, want header plus one month", len(rows))
	}
}

func TestExportHandlers_InvalidRange(t *testing.T) {
	h := NewExportHandlers(testAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/export.xlsx?from=bad", nil)
	rec := httptest.NewRecorder()
	h.HandleExport(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
