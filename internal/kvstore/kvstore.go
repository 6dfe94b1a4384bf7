// Package kvstore is the key-value backend: every record is a bag of
// string attributes keyed by id. Nothing downstream ever sees the raw
// attributes; decode coerces them into the canonical core.Record once,
// at the boundary, so the aggregation math stays backend-agnostic.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"budgetboard/internal/core"
	"budgetboard/internal/store"
)

const snapshotFile = "records.json"

type Store struct {
	mu     sync.Mutex
	items  map[int64]map[string]string
	nextID int64
	path   string // empty for a purely in-memory store
}

// New returns an in-memory store, used by tests and as a scratch backend.
func New() *Store {
	return &Store{items: make(map[int64]map[string]string), nextID: 1}
}

// Open loads the snapshot from the data directory, creating it when
// missing. Every write persists the full snapshot back to disk.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := New()
	s.path = filepath.Join(dataDir, snapshotFile)

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for key, attrs := range snap.Items {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid record key %q: %w", key, err)
		}
		s.items[id] = attrs
	}
	s.nextID = snap.NextID
	if s.nextID < 1 {
		s.nextID = 1
	}
	return s, nil
}

type snapshot struct {
	NextID int64                        `json:"next_id"`
	Items  map[string]map[string]string `json:"items"`
}

func (s *Store) FetchAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records := make([]core.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := decodeAttrs(id, s.items[id])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs, ok := s.items[id]
	if !ok {
		return core.Record{}, store.ErrNotFound
	}
	return decodeAttrs(id, attrs)
}

func (s *Store) Insert(_ context.Context, r core.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.items[id] = encodeAttrs(r)
	if err := s.persistLocked(); err != nil {
		delete(s.items, id)
		return 0, err
	}
	return id, nil
}

func (s *Store) UpdateStatus(_ context.Context, id int64, status core.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs, ok := s.items[id]
	if !ok {
		return store.ErrNotFound
	}
	prev := attrs["status"]
	attrs["status"] = string(status)
	if err := s.persistLocked(); err != nil {
		attrs["status"] = prev
		return err
	}
	return nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs, ok := s.items[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	if err := s.persistLocked(); err != nil {
		s.items[id] = attrs
		return err
	}
	return nil
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	snap := snapshot{NextID: s.nextID, Items: make(map[string]map[string]string, len(s.items))}
	for id, attrs := range s.items {
		snap.Items[strconv.FormatInt(id, 10)] = attrs
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
