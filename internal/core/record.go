package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusNotAssigned Status = "not_assigned"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

const (
	DateNone DateClass = iota
	DateUnknown
	DateKnown
)

type (
	// Status is the review state of a record. Every status can move to
	// every other status; there is no terminal state.
	Status string

	// DateClass distinguishes records with no expected date, an explicitly
	// unknown one, and a concrete calendar date.
	DateClass int

	// ExpenseDate is the three-state expected payment date. Value is an
	// ISO date string and is only meaningful when Class is DateKnown.
	ExpenseDate struct {
		Class DateClass
		Value string
	}

	Money struct {
		Cents int64
	}

	// Record is a single budget entry. It carries either an exact amount
	// or a three-point estimate (estimated, conservative, worst case);
	// nil means the field was not provided.
	Record struct {
		ID           int64
		Project      string
		Title        string
		Description  string
		Date         ExpenseDate
		Exact        *Money
		Estimated    *Money
		Conservative *Money
		WorstCase    *Money
		Priority     int
		Status       Status
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyProject    = errors.New("empty project")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDate     = errors.New("invalid expense date")
	ErrAmountRequired  = errors.New("either an exact amount or a full estimate is required")
	ErrAmountConflict  = errors.New("exact amount and estimate are mutually exclusive")
)

// Statuses lists all valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotAssigned, StatusApproved, StatusRejected}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotAssigned, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

func (s Status) Validate() error {
	_, err := ParseStatus(string(s))
	return err
}

// ParseExpenseDate maps a raw date field to its three-state form.
// Empty means no date, the literal "unknown" is preserved as-is, anything
// else must be an ISO calendar date.
func ParseExpenseDate(s string) (ExpenseDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExpenseDate{Class: DateNone}, nil
	}
	if strings.EqualFold(s, "unknown") {
		return ExpenseDate{Class: DateUnknown}, nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ExpenseDate{}, ErrInvalidDate
	}
	return ExpenseDate{Class: DateKnown, Value: s}, nil
}

func (d ExpenseDate) String() string {
	switch d.Class {
	case DateUnknown:
		return "unknown"
	case DateKnown:
		return d.Value
	}
	return ""
}

// sortValue orders concrete dates chronologically, then "unknown",
// then records without a date.
func (d ExpenseDate) sortValue() string {
	switch d.Class {
	case DateKnown:
		return d.Value
	case DateUnknown:
		return "unknown"
	}
	return "~"
}

func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// IsExact reports whether the record counts as an exact entry. A zero
// exact amount counts as estimated, matching how the overview buckets
// entries.
func (r Record) IsExact() bool {
	return r.Exact != nil && r.Exact.Cents > 0
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(r.Project) == "" {
		return ErrEmptyProject
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	for _, m := range []*Money{r.Exact, r.Estimated, r.Conservative, r.WorstCase} {
		if m != nil && m.Cents < 0 {
			return ErrInvalidAmount
		}
	}
	hasEstimate := r.Estimated != nil || r.Conservative != nil || r.WorstCase != nil
	fullEstimate := r.Estimated != nil && r.Conservative != nil && r.WorstCase != nil
	if r.Exact != nil && hasEstimate {
		return ErrAmountConflict
	}
	if r.Exact == nil && !fullEstimate {
		return ErrAmountRequired
	}
	return nil
}
