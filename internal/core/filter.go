package core

import "slices"

// Filter is the conjunction of four independent groups. Within a group the
// enabled conditions union; a record must pass every group.
//
// The set-valued groups (Projects, Priorities) treat an empty selection as
// "no filtering". The toggle groups are the opposite: disabling every date
// class or every amount kind deliberately yields an empty result, because
// each record belongs to exactly one class of each.
type Filter struct {
	Projects []string

	WithoutDate bool
	UnknownDate bool
	Dated       bool

	Exact     bool
	Estimated bool

	Priorities []int
}

// EveryRecord is the permissive filter: all toggles on, no set restrictions.
func EveryRecord() Filter {
	return Filter{
		WithoutDate: true,
		UnknownDate: true,
		Dated:       true,
		Exact:       true,
		Estimated:   true,
	}
}

func (f Filter) matches(r Record) bool {
	if len(f.Projects) > 0 && !slices.Contains(f.Projects, r.Project) {
		return false
	}
	switch r.Date.Class {
	case DateNone:
		if !f.WithoutDate {
			return false
		}
	case DateUnknown:
		if !f.UnknownDate {
			return false
		}
	case DateKnown:
		if !f.Dated {
			return false
		}
	}
	if r.IsExact() {
		if !f.Exact {
			return false
		}
	} else if !f.Estimated {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, r.Priority) {
		return false
	}
	return true
}

// FilterRecords returns the records matching the filter, preserving order.
// The input is never modified and applying the same filter twice yields the
// same result.
func FilterRecords(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
