package driven

import (
	"time"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
)

// EventUpdate carries a partial set of fields to merge into an event.
// Nil pointer fields are left untouched. ClearTimestamp removes the
// timestamp; it wins over Timestamp when both are set.
type EventUpdate struct {
	Title          *string
	Year           *string
	Description    *string
	Timestamp      *time.Time
	ClearTimestamp bool
	DateConfirmed  *bool
	Position       *domain.Position
}

// EventStore owns the canonical ordered collection of timeline events.
// All operations are synchronous and perform no I/O. The exposed order is
// always ascending by timestamp, with undated events after dated ones and
// ties keeping their prior relative order - except after Reorder, which
// installs a caller-supplied order wholesale.
type EventStore interface {
	// Add inserts a new event and re-sorts the collection.
	// Returns domain.ErrDuplicateID if the id is already present.
	Add(event domain.TimelineEvent) error

	// Update merges the given fields into the event with the given id,
	// then re-sorts (the timestamp may have changed). Returns
	// domain.ErrNotFound if the id is absent; callers handling
	// asynchronous results treat that as a no-op.
	Update(id string, update EventUpdate) error

	// Delete removes the event. Absent ids are a no-op.
	Delete(id string)

	// Reorder replaces the collection with the given sequence, bypassing
	// the automatic sort. This is the explicit manual-ordering override;
	// use Add/Update when timestamp ordering should hold.
	Reorder(events []domain.TimelineEvent)

	// Clear empties the collection.
	Clear()

	// List returns a snapshot copy of the events in exposed order.
	List() []domain.TimelineEvent

	// Get returns a copy of the event with the given id, or
	// domain.ErrNotFound.
	Get(id string) (domain.TimelineEvent, error)

	// Len returns the number of events.
	Len() int
}
