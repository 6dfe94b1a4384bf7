package core

import (
	"math"
	"testing"
)

// Two projects as they typically look on the board: alpha holds an exact
// entry of 100 plus an estimate of 50/80/120, beta a single estimate of
// 30/40/50.
func boardRecords() []Record {
	a1 := exact("alpha", 100_00)
	a1.ID = 1
	a2 := estimated("alpha", 50_00, 80_00, 120_00)
	a2.ID = 2
	b1 := estimated("beta", 30_00, 40_00, 50_00)
	b1.ID = 3
	return []Record{a1, a2, b1}
}

func TestSumByProject(t *testing.T) {
	sums := SumByProject(boardRecords(), FieldWorstCase)
	if sums["alpha"] != 120_00 {
		t.Errorf("alpha worst case = %d, want 12000", sums["alpha"])
	}
	if sums["beta"] != 50_00 {
		t.Errorf("beta worst case = %d, want 5000", sums["beta"])
	}
}

func TestCompleteSumByProject(t *testing.T) {
	sums := CompleteSumByProject(boardRecords(), FieldWorstCase)
	if sums["alpha"] != 220_00 {
		t.Errorf("alpha complete worst case = %d, want 22000", sums["alpha"])
	}
	if sums["beta"] != 50_00 {
		t.Errorf("beta complete worst case = %d, want 5000", sums["beta"])
	}
}

// The complete sum over all projects must equal total exact plus total
// estimate, regardless of how records are distributed.
func TestCompleteSumConservation(t *testing.T) {
	records := boardRecords()
	for _, f := range EstimateFields() {
		var complete, exactTotal, fieldTotal int64
		for _, v := range CompleteSumByProject(records, f) {
			complete += v
		}
		for _, r := range records {
			exactTotal += r.Amount(FieldExact)
			fieldTotal += r.Amount(f)
		}
		if complete != exactTotal+fieldTotal {
			t.Errorf("%s: complete total %d != exact %d + field %d", f, complete, exactTotal, fieldTotal)
		}
	}
}

func TestShares(t *testing.T) {
	shares := Shares(map[string]int64{"alpha": 220_00, "beta": 50_00, "gamma": 0})
	var total float64
	for _, s := range shares {
		total += s
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("shares sum to %f, want 100", total)
	}
	if math.Abs(shares["alpha"]-220.0/270.0*100) > 1e-9 {
		t.Errorf("alpha share = %f", shares["alpha"])
	}
	if shares["gamma"] != 0 {
		t.Errorf("zero sum should have zero share, got %f", shares["gamma"])
	}
}

func TestSharesZeroTotal(t *testing.T) {
	shares := Shares(map[string]int64{"alpha": 0, "beta": 0})
	for p, s := range shares {
		if s != 0 {
			t.Errorf("share of %s = %f, want 0 on zero total", p, s)
		}
	}
}

func TestDenseRank(t *testing.T) {
	ranks := DenseRank(map[string]int64{"a": 300, "b": 200, "c": 200, "d": 100})
	want := map[string]int{"a": 1, "b": 2, "c": 2, "d": 3}
	for p, r := range want {
		if ranks[p] != r {
			t.Errorf("rank[%s] = %d, want %d", p, ranks[p], r)
		}
	}
}

func TestDenseRankHasNoGaps(t *testing.T) {
	ranks := DenseRank(map[string]int64{"a": 9, "b": 9, "c": 5, "d": 5, "e": 1})
	seen := make(map[int]bool)
	max := 0
	for _, r := range ranks {
		seen[r] = true
		if r > max {
			max = r
		}
	}
	for i := 1; i <= max; i++ {
		if !seen[i] {
			t.Errorf("rank %d missing, ranks must be dense", i)
		}
	}
	if max != 3 {
		t.Errorf("max rank = %d, want 3 distinct values", max)
	}
}

func TestOrderByRank(t *testing.T) {
	got := OrderByRank(boardRecords(), FieldWorstCase)
	// alpha outranks beta; within alpha the estimate record has the
	// larger complete worst case (100+120 vs 100).
	if got[0].ID != 2 || got[1].ID != 1 || got[2].ID != 3 {
		t.Errorf("got order %d,%d,%d, want 2,1,3", got[0].ID, got[1].ID, got[2].ID)
	}
}
