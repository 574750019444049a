// Package memory provides in-memory storage adapters for plotline.
// The running process holds all timeline state for the session.
package memory

import (
	"sort"
	"sync"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
// It keeps events in a slice whose order is the exposed order: ascending
// by timestamp, undated events last, stable across re-sorts.
type EventStore struct {
	mu     sync.RWMutex
	events []domain.TimelineEvent
	index  map[string]int
}

// NewEventStore creates a new empty in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		index: make(map[string]int),
	}
}

// Add inserts a new event and re-sorts the collection.
func (s *EventStore) Add(event domain.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[event.ID]; ok {
		return domain.ErrDuplicateID
	}
	s.events = append(s.events, event)
	s.sortLocked()
	return nil
}

// Update merges the given fields into the matching event, then re-sorts.
func (s *EventStore) Update(id string, update driven.EventUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.ErrNotFound
	}

	ev := &s.events[i]
	if update.Title != nil {
		ev.Title = *update.Title
	}
	if update.Year != nil {
		ev.Year = *update.Year
	}
	if update.Description != nil {
		ev.Description = *update.Description
	}
	switch {
	case update.ClearTimestamp:
		ev.Timestamp = nil
	case update.Timestamp != nil:
		ts := *update.Timestamp
		ev.Timestamp = &ts
	}
	if update.DateConfirmed != nil {
		ev.DateConfirmed = *update.DateConfirmed
	}
	if update.Position != nil {
		pos := *update.Position
		ev.Position = &pos
	}

	s.sortLocked()
	return nil
}

// Delete removes the event. Absent ids are a no-op.
func (s *EventStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.reindexLocked()
}

// Reorder replaces the collection wholesale, bypassing the automatic sort.
func (s *EventStore) Reorder(events []domain.TimelineEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make([]domain.TimelineEvent, len(events))
	copy(s.events, events)
	s.reindexLocked()
}

// Clear empties the collection.
func (s *EventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	s.index = make(map[string]int)
}

// List returns a snapshot copy of the events in exposed order.
func (s *EventStore) List() []domain.TimelineEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TimelineEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Get returns a copy of the event with the given id.
func (s *EventStore) Get(id string) (domain.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.TimelineEvent{}, domain.ErrNotFound
	}
	return s.events[i], nil
}

// Len returns the number of events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// sortLocked re-sorts events by timestamp. The sort is stable so ties and
// undated events preserve their prior relative order. Positions are never
// touched: chronological order and spatial placement are decoupled.
func (s *EventStore) sortLocked() {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Before(&s.events[j])
	})
	s.reindexLocked()
}

// reindexLocked rebuilds the id index after any order change.
func (s *EventStore) reindexLocked() {
	s.index = make(map[string]int, len(s.events))
	for i := range s.events {
		s.index[s.events[i].ID] = i
	}
}
