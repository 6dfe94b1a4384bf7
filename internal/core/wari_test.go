package core

import (
	"math"
	"testing"
)

func TestWariByProject(t *testing.T) {
	wari := WariByProject(boardRecords())
	// alpha: 0.5*50 + 0.3*80 + 0.2*120 = 73, exact entry contributes 0.
	if math.Abs(wari["alpha"]-73_00) > 1e-9 {
		t.Errorf("wari[alpha] = %f, want 7300", wari["alpha"])
	}
	// beta: 0.5*30 + 0.3*40 + 0.2*50 = 37.
	if math.Abs(wari["beta"]-37_00) > 1e-9 {
		t.Errorf("wari[beta] = %f, want 3700", wari["beta"])
	}
}

func TestWariExactOnlyRecordIsZero(t *testing.T) {
	if got := exact("a", 999_99).Wari(); got != 0 {
		t.Errorf("exact record wari = %f, want 0", got)
	}
}

// The indicator is linear, so the project total must equal the weighted
// combination of the per-field project sums.
func TestWariLinearity(t *testing.T) {
	records := boardRecords()
	wari := WariByProject(records)
	est := SumByProject(records, FieldEstimated)
	cons := SumByProject(records, FieldConservative)
	worst := SumByProject(records, FieldWorstCase)
	for project := range wari {
		want := 0.5*float64(est[project]) + 0.3*float64(cons[project]) + 0.2*float64(worst[project])
		if math.Abs(wari[project]-want) > 1e-9 {
			t.Errorf("wari[%s] = %f, want %f", project, wari[project], want)
		}
	}
}
