// Package store defines the port every record backend implements. The
// aggregation engine only ever sees the canonical core.Record; each
// backend normalizes its own representation before handing records over.
package store

import (
	"context"
	"errors"

	"budgetboard/internal/core"
)

// ErrNotFound is returned when an id does not exist in the backend.
// Callers report it to the user, they never treat it as a failure of the
// store itself.
var ErrNotFound = errors.New("record not found")

// RecordStore is the full record collection. Reads always return the
// complete snapshot; views are recomputed from it on every interaction.
type RecordStore interface {
	FetchAll(ctx context.Context) ([]core.Record, error)
	GetByID(ctx context.Context, id int64) (core.Record, error)
	Insert(ctx context.Context, r core.Record) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status core.Status) error
	DeleteByID(ctx context.Context, id int64) error
}
