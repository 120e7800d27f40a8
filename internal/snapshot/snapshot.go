// Package snapshot holds the most recent job batch pushed to the relay service.
package snapshot

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// Snapshot is an immutable view of one save_jobs payload.
type Snapshot struct {
	Payload    json.RawMessage
	Jobs       int
	ReceivedAt time.Time
}

// Store keeps a single Snapshot per process. Replace swaps the whole value,
// so readers see either the previous payload or the new one, never a mix.
type Store struct {
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Replace stores a copy of payload as the latest snapshot. Last writer wins.
func (s *Store) Replace(payload []byte, jobs int) *Snapshot {
	snap := &Snapshot{
		Payload:    append(json.RawMessage(nil), payload...),
		Jobs:       jobs,
		ReceivedAt: s.now().UTC(),
	}
	s.current.Store(snap)
	return snap
}

// Load returns the latest snapshot, or nil if none was received since start.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}
