package core

import "errors"

const (
	FieldExact        Field = "exact_amount"
	FieldEstimated    Field = "estimated"
	FieldConservative Field = "conservative"
	FieldWorstCase    Field = "worst_case"
)

// Field names one of the four monetary columns of a record.
type Field string

var ErrUnknownField = errors.New("unknown amount field")

// Fields lists the estimate fields that have a "complete" variant.
func EstimateFields() []Field {
	return []Field{FieldEstimated, FieldConservative, FieldWorstCase}
}

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldExact, FieldEstimated, FieldConservative, FieldWorstCase:
		return Field(s), nil
	}
	return "", ErrUnknownField
}

// Amount returns the value of the given field in cents, treating a missing
// field as zero so that aggregation never branches on presence.
func (r Record) Amount(f Field) int64 {
	var m *Money
	switch f {
	case FieldExact:
		m = r.Exact
	case FieldEstimated:
		m = r.Estimated
	case FieldConservative:
		m = r.Conservative
	case FieldWorstCase:
		m = r.WorstCase
	}
	if m == nil {
		return 0
	}
	return m.Cents
}

// CompleteAmount is the field value plus the exact amount. Exact-only
// records contribute through the exact column, estimate-only records
// through the estimate column, so the complete sum covers both kinds.
func (r Record) CompleteAmount(f Field) int64 {
	if f == FieldExact {
		return r.Amount(FieldExact)
	}
	return r.Amount(FieldExact) + r.Amount(f)
}
