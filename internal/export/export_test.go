package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"budgetboard/internal/core"
)

func TestWriteOverviewCSV(t *testing.T) {
	rows := []core.OverviewRow{
		{
			Project: "atrium", Records: 2, ExactCount: 1, TotalExact: 100_00,
			EstimatedCount: 1, TotalEstimated: 50_00, TotalConservative: 80_00, TotalWorstCase: 120_00,
		},
	}

	var buf bytes.Buffer
	if err := WriteOverviewCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	parsed, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("got %d lines, want header plus 1", len(parsed))
	}
	if parsed[0][0] != "Project" || parsed[0][7] != "Total Worst Case" {
		t.Errorf("header = %v", parsed[0])
	}
	want := []string{"atrium", "2", "1", "100.00", "1", "50.00", "80.00", "120.00"}
	for i, v := range want {
		if parsed[1][i] != v {
			t.Errorf("column %d = %q, want %q", i, parsed[1][i], v)
		}
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	date, _ := core.ParseExpenseDate("2026-02-01")
	records := []core.Record{
		{
			ID: 1, Project: "garden", Title: "fence", Date: date,
			Exact: &core.Money{Cents: 300_00}, Priority: 2, Status: core.StatusApproved,
		},
		{
			ID: 2, Project: "roof", Title: "tiles, assorted",
			Estimated: &core.Money{Cents: 10_00}, Conservative: &core.Money{Cents: 20_00},
			WorstCase: &core.Money{Cents: 30_00}, Priority: 5, Status: core.StatusNotAssigned,
		},
	}

	var buf bytes.Buffer
	if err := WriteRecordsCSV(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	parsed, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("got %d lines", len(parsed))
	}
	first := parsed[1]
	if first[0] != "1" || first[4] != "2026-02-01" || first[5] != "300.00" || first[6] != "" {
		t.Errorf("first row = %v", first)
	}
	second := parsed[2]
	if second[1] != "roof" || second[5] != "" || second[8] != "30.00" || second[10] != "not_assigned" {
		t.Errorf("second row = %v", second)
	}
	// Commas in titles must survive the round trip.
	if second[2] != "tiles, assorted" {
		t.Errorf("title = %q", second[2])
	}
}

func TestWriteOverviewCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOverviewCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty overview should emit only the header, got %d lines", len(lines))
	}
}
