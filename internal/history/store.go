package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

const (
	// StorageKey is the key the serialized history lives under.
	StorageKey = "quill_history"

	DefaultCapacity = 10
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recoverable storage problems.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is a bounded list of entries, newest first, persisted as one JSON
// array. Reads of a corrupted value yield an empty history.
type Store struct {
	kv       KV
	capacity int
	logger   *slog.Logger

	mu sync.Mutex
}

// NewStore returns a store over kv. capacity <= 0 means DefaultCapacity.
func NewStore(kv KV, capacity int, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		kv:       kv,
		capacity: capacity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Capacity() int {
	return s.capacity
}

// Load returns the persisted entries, newest first.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]Entry, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("history is corrupted, starting empty", "key", StorageKey, "error", err)
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	return entries, nil
}

// Append prepends e, drops anything beyond capacity, persists and returns
// the new snapshot.
func (s *Store) Append(ctx context.Context, e Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]Entry, 0, min(len(current)+1, s.capacity))
	next = append(next, e)
	for _, old := range current {
		if len(next) == s.capacity {
			break
		}
		next = append(next, old)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, raw); err != nil {
		return nil, err
	}

	s.logger.Debug("history entry saved", "id", e.ID, "size", len(next))
	return next, nil
}

// Get finds an entry by ID.
func (s *Store) Get(ctx context.Context, id string) (Entry, bool, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, StorageKey)
}
