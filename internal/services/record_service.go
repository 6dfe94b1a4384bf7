// Package services orchestrates record writes: persist to the store
// first, then notify the export pipeline. Messaging is best-effort, a
// broker outage never fails the user's action.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetboard/internal/amqp"
	"budgetboard/internal/core"
	"budgetboard/internal/store"
)

// ExportPublisher is the slice of the AMQP client the service needs.
type ExportPublisher interface {
	PublishExport(ctx context.Context, msg *amqp.ExportMessage) error
	Close() error
}

// RecordService coordinates the record store and the export queue.
type RecordService struct {
	store     store.RecordStore
	publisher ExportPublisher
}

func NewRecordService(recordStore store.RecordStore, publisher ExportPublisher) *RecordService {
	return &RecordService{store: recordStore, publisher: publisher}
}

// Create validates and persists a record, then publishes a change message.
func (s *RecordService) Create(ctx context.Context, r core.Record) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("save record: %w", err)
	}

	s.publish(ctx, amqp.NewRecordChangedMessage(id, amqp.ActionCreated))
	return id, nil
}

// SetStatus moves a record to the given status. Any status can be set
// from any other.
func (s *RecordService) SetStatus(ctx context.Context, id int64, status core.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewRecordChangedMessage(id, amqp.ActionStatusChanged))
	return nil
}

// Delete removes a record permanently.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewRecordChangedMessage(id, amqp.ActionDeleted))
	return nil
}

// RequestExport enqueues a user-triggered report export.
func (s *RecordService) RequestExport(ctx context.Context, requestedBy string) error {
	if s.publisher == nil {
		return fmt.Errorf("export queue not configured")
	}
	return s.publisher.PublishExport(ctx, amqp.NewManualExportMessage(requestedBy))
}

func (s *RecordService) publish(ctx context.Context, msg *amqp.ExportMessage) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Export publisher not available, skipping message",
			"reason", msg.Reason, "record_id", msg.RecordID)
		return
	}
	if err := s.publisher.PublishExport(ctx, msg); err != nil {
		// The record is already persisted, the periodic export catches up.
		slog.ErrorContext(ctx, "Failed to publish export message",
			"reason", msg.Reason, "record_id", msg.RecordID, "error", err)
	}
}

// Close releases the publisher connection.
func (s *RecordService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
