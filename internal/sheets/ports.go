// Package sheets defines the outbound report port. The worker talks to
// spreadsheets only through it, so tests swap in a fake writer.
package sheets

import (
	"context"

	"budgetboard/internal/core"
)

// ReportWriter publishes the overview report to an external spreadsheet.
// It replaces the previous report wholesale; the overview is always
// recomputed from the full record snapshot.
type ReportWriter interface {
	// WriteOverview writes one row per project and returns a reference
	// to the written range.
	WriteOverview(ctx context.Context, rows []core.OverviewRow) (string, error)
}
