package google

import (
	"context"
	"testing"

	"budgetboard/internal/core"
)

func TestOverviewValues(t *testing.T) {
	rows := []core.OverviewRow{
		{
			Project: "atrium", Records: 3, ExactCount: 1, TotalExact: 100_00,
			EstimatedCount: 2, TotalEstimated: 80_00, TotalConservative: 120_00, TotalWorstCase: 200_00,
		},
		{Project: "garden", Records: 1, EstimatedCount: 1, TotalWorstCase: 50_00},
	}

	values := overviewValues(rows)
	if len(values) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(values))
	}
	if values[0][0] != "Project" || values[0][7] != "Total Worst Case" {
		t.Errorf("header = %v", values[0])
	}
	atrium := values[1]
	if atrium[0] != "atrium" || atrium[1] != 3 || atrium[3] != 100.0 || atrium[7] != 200.0 {
		t.Errorf("atrium row = %v", atrium)
	}
	garden := values[2]
	if garden[0] != "garden" || garden[2] != 0 || garden[7] != 50.0 {
		t.Errorf("garden row = %v", garden)
	}
}

func TestOverviewValuesEmpty(t *testing.T) {
	values := overviewValues(nil)
	if len(values) != 1 {
		t.Fatalf("empty overview should still write the header, got %d rows", len(values))
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("expected error without spreadsheet id")
	}
}
