package backend

import (
	"context"

	"budgetboard/internal/store"
)

const (
	SQLiteBackend BackendType = "sqlite"
	KVBackend     BackendType = "kv"
	MemoryBackend BackendType = "memory"
)

// BackendType selects where records live: a relational SQLite file, a
// file-backed key-value store, or a throwaway in-memory store.
type BackendType string

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, KVBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult contains the store instance and optional cleanup function.
type BackendResult struct {
	Store   store.RecordStore
	Cleanup CleanupFunc
}

// Factory creates record stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// KV specific
	DataDirectory string
}
