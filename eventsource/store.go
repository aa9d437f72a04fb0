package eventsource

import (
	"context"
	"sync"
)

// Store is an append-only event log partitioned into streams.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of the
	// last event already in the stream (-1 for a new stream); a mismatch
	// fails with ErrVersionConflict. Returns the new head version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events of a stream from the given version onward.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-process Store, primarily for tests and demos.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream with optimistic concurrency.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrStoreClosed
	}

	existing := s.streams[stream]
	head := len(existing) - 1
	if head != expectedVersion {
		return 0, ErrVersionConflict
	}

	for i, e := range events {
		copied := *e
		copied.Stream = stream
		copied.Version = expectedVersion + 1 + i
		existing = append(existing, &copied)
	}
	s.streams[stream] = existing
	return len(existing) - 1, nil
}

// Read returns events from a stream starting at fromVersion.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	events := s.streams[stream]
	var out []*Event
	for _, e := range events {
		if e.Version >= fromVersion {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
