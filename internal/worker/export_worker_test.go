package worker

import (
	"context"
	"errors"
	"testing"

	"budgetboard/internal/amqp"
	"budgetboard/internal/core"
	"budgetboard/internal/kvstore"
)

type fakeWriter struct {
	written [][]core.OverviewRow
	err     error
}

func (f *fakeWriter) WriteOverview(_ context.Context, rows []core.OverviewRow) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.written = append(f.written, rows)
	return "Overview!A1:H2", nil
}

func seededStore(t *testing.T) *kvstore.Store {
	t.Helper()
	kv := kvstore.New()
	ctx := context.Background()
	records := []core.Record{
		{Project: "atrium", Title: "a", Exact: &core.Money{Cents: 100_00}, Priority: 1, Status: core.StatusNotAssigned},
		{Project: "garden", Title: "b", Estimated: &core.Money{Cents: 10_00},
			Conservative: &core.Money{Cents: 20_00}, WorstCase: &core.Money{Cents: 30_00},
			Priority: 2, Status: core.StatusApproved},
	}
	for _, r := range records {
		if _, err := kv.Insert(ctx, r); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return kv
}

func TestHandleExportMessage(t *testing.T) {
	writer := &fakeWriter{}
	w := NewExportWorker(seededStore(t), writer)

	msg := amqp.NewRecordChangedMessage(1, amqp.ActionCreated)
	if err := w.HandleExportMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(writer.written) != 1 {
		t.Fatalf("got %d writes", len(writer.written))
	}
	rows := writer.written[0]
	if len(rows) != 2 || rows[0].Project != "atrium" || rows[1].Project != "garden" {
		t.Errorf("rows = %+v", rows)
	}
	if rows[0].TotalExact != 100_00 || rows[1].TotalWorstCase != 30_00 {
		t.Errorf("totals wrong: %+v", rows)
	}
}

func TestHandleExportMessagePropagatesWriterError(t *testing.T) {
	w := NewExportWorker(seededStore(t), &fakeWriter{err: errors.New("quota exceeded")})
	err := w.HandleExportMessage(context.Background(), amqp.NewManualExportMessage("alice"))
	if err == nil {
		t.Error("writer failure should surface so the message is requeued")
	}
}

func TestStartupExport(t *testing.T) {
	writer := &fakeWriter{}
	w := NewExportWorker(kvstore.New(), writer)
	if err := w.StartupExport(context.Background()); err != nil {
		t.Fatalf("startup export: %v", err)
	}
	if len(writer.written) != 1 || len(writer.written[0]) != 0 {
		t.Errorf("empty store should still export an empty overview, got %+v", writer.written)
	}
}
