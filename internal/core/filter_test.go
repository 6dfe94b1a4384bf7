package core

import (
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	a := exact("alpha", 1000)
	a.ID = 1
	a.Priority = 5
	b := estimated("beta", 100, 200, 300)
	b.ID = 2
	b.Date, _ = ParseExpenseDate("2026-06-01")
	c := estimated("gamma", 10, 20, 30)
	c.ID = 3
	c.Priority = 1
	c.Date, _ = ParseExpenseDate("unknown")
	return []Record{a, b, c}
}

func projects(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Project
	}
	return out
}

func TestFilterRecordsPermissiveKeepsEverything(t *testing.T) {
	in := sampleRecords()
	got := FilterRecords(in, EveryRecord())
	if len(got) != len(in) {
		t.Fatalf("got %d records, want %d", len(got), len(in))
	}
}

func TestFilterRecordsByProject(t *testing.T) {
	f := EveryRecord()
	f.Projects = []string{"alpha", "gamma"}
	got := projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"alpha", "gamma"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilterRecordsByDateClass(t *testing.T) {
	f := EveryRecord()
	f.WithoutDate = false
	got := projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"beta", "gamma"}) {
		t.Errorf("got %v", got)
	}

	f = EveryRecord()
	f.UnknownDate, f.WithoutDate = false, false
	got = projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"beta"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilterRecordsAllDateClassesOffShowsNothing(t *testing.T) {
	f := EveryRecord()
	f.WithoutDate, f.UnknownDate, f.Dated = false, false, false
	if got := FilterRecords(sampleRecords(), f); len(got) != 0 {
		t.Errorf("expected empty result, got %v", projects(got))
	}
}

func TestFilterRecordsByAmountKind(t *testing.T) {
	f := EveryRecord()
	f.Estimated = false
	got := projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Errorf("exact only: got %v", got)
	}

	f = EveryRecord()
	f.Exact = false
	got = projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"beta", "gamma"}) {
		t.Errorf("estimated only: got %v", got)
	}

	f = EveryRecord()
	f.Exact, f.Estimated = false, false
	if got := FilterRecords(sampleRecords(), f); len(got) != 0 {
		t.Errorf("neither kind: expected empty result, got %v", projects(got))
	}
}

func TestFilterRecordsZeroExactCountsAsEstimated(t *testing.T) {
	zero := exact("zero", 0)
	f := EveryRecord()
	f.Exact = false
	if got := FilterRecords([]Record{zero}, f); len(got) != 1 {
		t.Error("zero exact amount should pass the estimated kind")
	}
}

func TestFilterRecordsByPriority(t *testing.T) {
	f := EveryRecord()
	f.Priorities = []int{5, 1}
	got := projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"alpha", "gamma"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilterRecordsGroupsConjoin(t *testing.T) {
	f := EveryRecord()
	f.Projects = []string{"beta", "gamma"}
	f.Priorities = []int{1}
	got := projects(FilterRecords(sampleRecords(), f))
	if !reflect.DeepEqual(got, []string{"gamma"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilterRecordsIsIdempotent(t *testing.T) {
	f := EveryRecord()
	f.Projects = []string{"alpha", "beta"}
	once := FilterRecords(sampleRecords(), f)
	twice := FilterRecords(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Error("filtering an already filtered result must not change it")
	}
}
