// Package export renders report tables as CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"budgetboard/internal/core"
)

const base10 = 10

// WriteOverviewCSV writes the overview report, one row per project.
func WriteOverviewCSV(w io.Writer, rows []core.OverviewRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Project", "Registered Expenses", "Exact Expenses", "Total Exact",
		"Estimated Expenses", "Total Estimated", "Total Conservative", "Total Worst Case",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Project,
			strconv.Itoa(row.Records),
			strconv.Itoa(row.ExactCount),
			core.FormatCents(row.TotalExact),
			strconv.Itoa(row.EstimatedCount),
			core.FormatCents(row.TotalEstimated),
			core.FormatCents(row.TotalConservative),
			core.FormatCents(row.TotalWorstCase),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", row.Project, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes the raw record list with the persistence field
// names as headers.
func WriteRecordsCSV(w io.Writer, records []core.Record) error {
	cw := csv.NewWriter(w)

	header := []string{
		"id", "project", "title", "description", "expense_date",
		"exact_amount", "estimated", "conservative", "worst_case",
		"priority", "status",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, base10),
			r.Project,
			r.Title,
			r.Description,
			r.Date.String(),
			moneyField(r.Exact),
			moneyField(r.Estimated),
			moneyField(r.Conservative),
			moneyField(r.WorstCase),
			strconv.Itoa(r.Priority),
			string(r.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func moneyField(m *core.Money) string {
	if m == nil {
		return ""
	}
	return core.FormatCents(m.Cents)
}
