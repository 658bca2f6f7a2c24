package cache

import (
	"context"
	"sync"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// MemoryHistory is a bounded in-process run history
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []entities.HistoryEntry
	limit   int
}

// NewMemoryHistory creates a history that keeps the latest limit entries
func NewMemoryHistory(limit int) *MemoryHistory {
	if limit <= 0 {
		limit = 1
	}
	return &MemoryHistory{
		entries: make([]entities.HistoryEntry, 0, limit),
		limit:   limit,
	}
}

// Append stores an entry, dropping the oldest one when full
func (mh *MemoryHistory) Append(_ context.Context, entry entities.HistoryEntry) error {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	if len(mh.entries) == mh.limit {
		copy(mh.entries, mh.entries[1:])
		mh.entries = mh.entries[:len(mh.entries)-1]
	}
	mh.entries = append(mh.entries, entry)
	return nil
}

// Recent returns up to n entries, newest first
func (mh *MemoryHistory) Recent(_ context.Context, n int) ([]entities.HistoryEntry, error) {
	mh.mu.RLock()
	defer mh.mu.RUnlock()

	out := make([]entities.HistoryEntry, 0, max(0, min(n, len(mh.entries))))
	for i := len(mh.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, mh.entries[i])
	}
	return out, nil
}
