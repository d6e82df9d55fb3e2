package api

import (
	"sync"

	"statuswatch/types"
)

// IncidentStore keeps a bounded window of the most recently emitted
// incidents for the read API. It implements the watcher's Sink.
type IncidentStore struct {
	mu        sync.Mutex
	limit     int
	incidents []types.Incident
}

// NewIncidentStore creates a store holding at most limit incidents.
func NewIncidentStore(limit int) *IncidentStore {
	if limit <= 0 {
		limit = 100
	}
	return &IncidentStore{limit: limit}
}

// Emit records an incident, evicting the oldest beyond the bound.
func (s *IncidentStore) Emit(inc types.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = append(s.incidents, inc)
	if len(s.incidents) > s.limit {
		s.incidents = s.incidents[len(s.incidents)-s.limit:]
	}
}

// Recent returns stored incidents newest first.
func (s *IncidentStore) Recent() []types.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Incident, len(s.incidents))
	for i, inc := range s.incidents {
		out[len(s.incidents)-1-i] = inc
	}
	return out
}
