package http

import (
	"errors"
	"net/url"
	"testing"

	"budgetboard/internal/core"
)

func TestParseFilterDefaultsToEverything(t *testing.T) {
	f := parseFilter(url.Values{})
	if !f.WithoutDate || !f.UnknownDate || !f.Dated || !f.Exact || !f.Estimated {
		t.Errorf("plain page load should show everything, got %+v", f)
	}
	if len(f.Projects) != 0 || len(f.Priorities) != 0 {
		t.Errorf("no project or priority restriction expected, got %+v", f)
	}
}

func TestParseFilterSubmittedForm(t *testing.T) {
	query := url.Values{
		"filtered": {"1"},
		"dated":    {"1"},
		"exact":    {"1"},
		"project":  {"atrium", "garden"},
		"priority": {"3", "5"},
	}
	f := parseFilter(query)

	if !f.Dated || f.UnknownDate || f.WithoutDate {
		t.Errorf("date toggles wrong: %+v", f)
	}
	if !f.Exact || f.Estimated {
		t.Errorf("amount toggles wrong: %+v", f)
	}
	if len(f.Projects) != 2 || f.Projects[0] != "atrium" {
		t.Errorf("projects = %v", f.Projects)
	}
	if len(f.Priorities) != 2 || f.Priorities[1] != 5 {
		t.Errorf("priorities = %v", f.Priorities)
	}
}

func TestParseFilterSubmittedWithNoTogglesShowsNothing(t *testing.T) {
	f := parseFilter(url.Values{"filtered": {"1"}})
	if f.Dated || f.UnknownDate || f.WithoutDate || f.Exact || f.Estimated {
		t.Errorf("unchecked toggles must stay off, got %+v", f)
	}
}

func TestParseRecordForm(t *testing.T) {
	form := url.Values{
		"project":      {" atrium "},
		"title":        {"scaffolding"},
		"description":  {"east wall"},
		"expense_date": {"unknown"},
		"priority":     {"2"},
		"estimated":    {"10"},
		"conservative": {"20,5"},
		"worst_case":   {"30"},
	}
	r, err := parseRecordForm(form)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Project != "atrium" || r.Title != "scaffolding" {
		t.Errorf("text fields = %q %q", r.Project, r.Title)
	}
	if r.Date.Class != core.DateUnknown {
		t.Errorf("date class = %v", r.Date.Class)
	}
	if r.Priority != 2 {
		t.Errorf("priority = %d", r.Priority)
	}
	if r.Exact != nil {
		t.Error("exact should be nil")
	}
	if r.Conservative == nil || r.Conservative.Cents != 20_50 {
		t.Errorf("conservative = %+v", r.Conservative)
	}
	if r.Status != core.StatusNotAssigned {
		t.Errorf("status = %q", r.Status)
	}
}

func TestParseRecordFormDefaultsPriority(t *testing.T) {
	r, err := parseRecordForm(url.Values{"title": {"t"}, "project": {"p"}, "exact_amount": {"1"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Priority != 3 {
		t.Errorf("priority = %d, want default 3", r.Priority)
	}
}

func TestParseRecordFormRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"bad date", url.Values{"expense_date": {"next week"}}},
		{"bad priority", url.Values{"priority": {"high"}}},
		{"bad money", url.Values{"exact_amount": {"-5"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRecordForm(tt.form); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParseRecordID(t *testing.T) {
	if _, err := parseRecordID(url.Values{"id": {"0"}}); err == nil {
		t.Error("zero id should fail")
	}
	if _, err := parseRecordID(url.Values{"id": {"abc"}}); err == nil {
		t.Error("non-numeric id should fail")
	}
	id, err := parseRecordID(url.Values{"id": {"17"}})
	if err != nil || id != 17 {
		t.Errorf("id = %d, err = %v", id, err)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  hi\x00there "); got != "hithere" {
		t.Errorf("sanitizeInput = %q", got)
	}
}

func TestIsValidationError(t *testing.T) {
	if !isValidationError(core.ErrEmptyTitle) {
		t.Error("ErrEmptyTitle should be a validation error")
	}
	if isValidationError(errors.New("disk full")) {
		t.Error("arbitrary errors are not validation errors")
	}
}
