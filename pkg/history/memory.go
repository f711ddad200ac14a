package history

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStorage keeps records in memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*Record // oldest first
	closed  bool
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Store(ctx context.Context, record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return NewStorageError("memory", "store", ErrClosed)
	}
	cp := *record
	i, _ := slices.BinarySearchFunc(m.records, cp.RecordedAt, func(r *Record, t time.Time) int {
		if r.RecordedAt.After(t) {
			return 1
		}
		return -1
	})
	m.records = slices.Insert(m.records, i, &cp)
	return nil
}

func (m *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, NewStorageError("memory", "query", ErrClosed)
	}

	var out []*Record
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if !query.Matches(r) {
			continue
		}
		cp := *r
		out = append(out, &cp)
		if query != nil && query.Limit > 0 && len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, NewStorageError("memory", "count", ErrClosed)
	}

	var n int64
	for _, r := range m.records {
		if query.Matches(r) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, NewStorageError("memory", "delete", ErrClosed)
	}

	before := len(m.records)
	m.records = slices.DeleteFunc(m.records, func(r *Record) bool {
		return r.RecordedAt.Before(cutoff)
	})
	return int64(before - len(m.records)), nil
}

func (m *MemoryStorage) Trim(ctx context.Context, keep int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, NewStorageError("memory", "trim", ErrClosed)
	}

	excess := int64(len(m.records)) - max(keep, 0)
	if excess <= 0 {
		return 0, nil
	}
	m.records = slices.Delete(m.records, 0, int(excess))
	return excess, nil
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.records = nil
	return nil
}
