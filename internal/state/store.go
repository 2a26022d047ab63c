package state

import (
	"sync"

	"github.com/8endit/city-ops/internal/domain"
)

// Store is the single process-wide event record. One instance is created at
// startup and injected into every handler; Fiber runs handlers on multiple
// goroutines, so reads and writes go through an RWMutex.
type Store struct {
	mu sync.RWMutex

	eventActive bool
	eventType   domain.EventType
	severity    int
	focusNodeID *string
}

// NewStore returns a store in the neutral clear state
func NewStore() *Store {
	return &Store{
		eventType: domain.EventClear,
		severity:  1,
	}
}

// Update applies an already-validated event request and returns the new
// snapshot. Clearing always resets severity to 1, even when the request
// carries one; an active update without severity keeps the prior value.
// Identical inputs produce identical states.
func (s *Store) Update(req domain.EventUpdateRequest) domain.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := req.Type != domain.EventClear
	s.eventActive = active
	if active {
		s.eventType = req.Type
		if req.Severity != nil {
			s.severity = *req.Severity
		}
	} else {
		s.eventType = domain.EventClear
		s.severity = 1
	}

	if req.NodeID != nil {
		id := *req.NodeID
		s.focusNodeID = &id
	} else {
		s.focusNodeID = nil
	}

	return s.snapshotLocked()
}

// Snapshot returns a read-only copy of the current state
func (s *Store) Snapshot() domain.StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.StateSnapshot {
	snap := domain.StateSnapshot{
		EventActive: s.eventActive,
		EventType:   s.eventType,
		Severity:    s.severity,
	}
	if s.focusNodeID != nil {
		id := *s.focusNodeID
		snap.FocusNodeID = &id
	}
	return snap
}
