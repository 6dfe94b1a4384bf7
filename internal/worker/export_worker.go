// Package worker rebuilds the overview report from the record store and
// pushes it to the spreadsheet whenever a change or export message
// arrives, plus on a timer as a backstop for lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetboard/internal/amqp"
	"budgetboard/internal/core"
	"budgetboard/internal/sheets"
	"budgetboard/internal/store"
)

// ExportWorker consumes export messages and publishes overview reports.
type ExportWorker struct {
	store  store.RecordStore
	writer sheets.ReportWriter
}

func NewExportWorker(recordStore store.RecordStore, writer sheets.ReportWriter) *ExportWorker {
	return &ExportWorker{store: recordStore, writer: writer}
}

// HandleExportMessage processes a single export message from AMQP. The
// message only says why an export is due; the report is always derived
// from the current snapshot.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"reason", msg.Reason,
		"record_id", msg.RecordID,
		"action", msg.Action)

	return w.export(ctx, msg.Reason)
}

// RunPeriodicExport re-exports on the given interval until the context
// ends. This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) RunPeriodicExport(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic export", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.export(ctx, amqp.ReasonPeriodic); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

// StartupExport pushes one report at worker start so the spreadsheet is
// current even after downtime.
func (w *ExportWorker) StartupExport(ctx context.Context) error {
	return w.export(ctx, "startup")
}

func (w *ExportWorker) export(ctx context.Context, reason string) error {
	records, err := w.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	rows := core.BuildOverview(records)
	ref, err := w.writer.WriteOverview(ctx, rows)
	if err != nil {
		return fmt.Errorf("write overview: %w", err)
	}

	slog.InfoContext(ctx, "Overview exported",
		"reason", reason,
		"records", len(records),
		"projects", len(rows),
		"ref", ref)
	return nil
}
