package kvstore

import (
	"fmt"
	"strconv"

	"budgetboard/internal/core"
)

// Attribute names match the relational column names, so the two backends
// stay interchangeable at the data level.
const (
	attrProject      = "project"
	attrTitle        = "title"
	attrDescription  = "description"
	attrExpenseDate  = "expense_date"
	attrExactAmount  = "exact_amount"
	attrEstimated    = "estimated"
	attrConservative = "conservative"
	attrWorstCase    = "worst_case"
	attrPriority     = "priority"
	attrStatus       = "status"
)

func encodeAttrs(r core.Record) map[string]string {
	attrs := map[string]string{
		attrProject:     r.Project,
		attrTitle:       r.Title,
		attrDescription: r.Description,
		attrPriority:    strconv.Itoa(r.Priority),
		attrStatus:      string(r.Status),
	}
	if r.Date.Class != core.DateNone {
		attrs[attrExpenseDate] = r.Date.String()
	}
	for name, m := range map[string]*core.Money{
		attrExactAmount:  r.Exact,
		attrEstimated:    r.Estimated,
		attrConservative: r.Conservative,
		attrWorstCase:    r.WorstCase,
	} {
		if m != nil {
			attrs[name] = strconv.FormatInt(m.Cents, 10)
		}
	}
	return attrs
}

// decodeAttrs coerces a stringly-typed attribute bag into the canonical
// record. Absent attributes map to nil, malformed numerics are an error
// rather than a silent zero so a corrupt snapshot surfaces immediately.
func decodeAttrs(id int64, attrs map[string]string) (core.Record, error) {
	rec := core.Record{
		ID:          id,
		Project:     attrs[attrProject],
		Title:       attrs[attrTitle],
		Description: attrs[attrDescription],
		Status:      core.Status(attrs[attrStatus]),
	}

	if raw, ok := attrs[attrPriority]; ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return core.Record{}, fmt.Errorf("record %d: invalid priority %q", id, raw)
		}
		rec.Priority = p
	}

	if raw, ok := attrs[attrExpenseDate]; ok {
		d, err := core.ParseExpenseDate(raw)
		if err != nil {
			return core.Record{}, fmt.Errorf("record %d: %w", id, err)
		}
		rec.Date = d
	}

	var err error
	if rec.Exact, err = moneyAttr(id, attrs, attrExactAmount); err != nil {
		return core.Record{}, err
	}
	if rec.Estimated, err = moneyAttr(id, attrs, attrEstimated); err != nil {
		return core.Record{}, err
	}
	if rec.Conservative, err = moneyAttr(id, attrs, attrConservative); err != nil {
		return core.Record{}, err
	}
	if rec.WorstCase, err = moneyAttr(id, attrs, attrWorstCase); err != nil {
		return core.Record{}, err
	}
	return rec, nil
}

func moneyAttr(id int64, attrs map[string]string, name string) (*core.Money, error) {
	raw, ok := attrs[name]
	if !ok || raw == "" {
		return nil, nil
	}
	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("record %d: invalid %s %q", id, name, raw)
	}
	return &core.Money{Cents: cents}, nil
}
