package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"budgetboard/internal/core"
)

// parseFilter maps query values onto a record filter. Checkbox groups
// only arrive when the filter form was submitted, which the form marks
// with filtered=1; a plain page load shows everything.
func parseFilter(query url.Values) core.Filter {
	if query.Get("filtered") == "" {
		f := core.EveryRecord()
		return f
	}

	f := core.Filter{
		WithoutDate: hasToggle(query, "no_date"),
		UnknownDate: hasToggle(query, "unknown_date"),
		Dated:       hasToggle(query, "dated"),
		Exact:       hasToggle(query, "exact"),
		Estimated:   hasToggle(query, "estimated"),
	}

	for _, p := range query["project"] {
		if p = strings.TrimSpace(p); p != "" {
			f.Projects = append(f.Projects, p)
		}
	}
	for _, v := range query["priority"] {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			f.Priorities = append(f.Priorities, n)
		}
	}
	return f
}

func hasToggle(query url.Values, key string) bool {
	switch query.Get(key) {
	case "1", "on", "true":
		return true
	}
	return false
}

// parseRecordForm builds a record from submitted form values. Semantic
// validation stays in Record.Validate; this only rejects unparseable
// input.
func parseRecordForm(form url.Values) (core.Record, error) {
	record := core.Record{
		Project:     sanitizeInput(form.Get("project")),
		Title:       sanitizeInput(form.Get("title")),
		Description: sanitizeInput(form.Get("description")),
		Priority:    3,
		Status:      core.StatusNotAssigned,
	}

	date, err := core.ParseExpenseDate(strings.TrimSpace(form.Get("expense_date")))
	if err != nil {
		return core.Record{}, fmt.Errorf("expense date: %w", err)
	}
	record.Date = date

	if v := strings.TrimSpace(form.Get("priority")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return core.Record{}, fmt.Errorf("priority %q: %w", v, core.ErrInvalidPriority)
		}
		record.Priority = p
	}

	for _, amount := range []struct {
		key  string
		dest **core.Money
	}{
		{"exact_amount", &record.Exact},
		{"estimated", &record.Estimated},
		{"conservative", &record.Conservative},
		{"worst_case", &record.WorstCase},
	} {
		m, err := core.ParseOptionalMoney(strings.TrimSpace(form.Get(amount.key)))
		if err != nil {
			return core.Record{}, fmt.Errorf("%s: %w", amount.key, err)
		}
		*amount.dest = m
	}

	return record, nil
}

// parseRecordID reads a positive record id from a form value.
func parseRecordID(form url.Values) (int64, error) {
	raw := strings.TrimSpace(form.Get("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", raw)
	}
	return id, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatFloatCents(v float64) string {
	return core.FormatCents(int64(v + 0.5))
}
