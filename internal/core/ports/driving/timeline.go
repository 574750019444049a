package driving

import (
	"context"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
)

// TimelineService is the single writer of timeline state. Adapters read
// snapshots via Events and issue mutation requests back through it.
type TimelineService interface {
	// CreateEvent synchronously inserts a provisional event for the given
	// description (placeholder title, no date) at the next grid position,
	// and returns it. The interaction loop never blocks on inference.
	CreateEvent(description string) (domain.TimelineEvent, error)

	// CreateEventAt is CreateEvent with an explicit canvas position.
	CreateEventAt(description string, pos domain.Position) (domain.TimelineEvent, error)

	// ResolveEvent runs title/year inference for the event's description
	// and applies the result as one atomic update. If the event was
	// deleted while inference was in flight the result is discarded.
	ResolveEvent(ctx context.Context, id string) error

	// SetYear sets an explicit year on an event, deriving its timestamp
	// and confirming the date. Returns domain.ErrInvalidYear if the year
	// does not match the accepted 4-digit pattern; no mutation occurs.
	SetYear(id, year string) error

	// UpdateEvent merges partial fields into an event. Year changes are
	// routed through the same validation as SetYear by callers that edit
	// the year field.
	UpdateEvent(id string, update driven.EventUpdate) error

	// AddAdjacent creates a provisional event offset horizontally from
	// the event with the given id and returns it.
	AddAdjacent(id string) (domain.TimelineEvent, error)

	// DeleteEvent removes an event. Absent ids are a no-op.
	DeleteEvent(id string)

	// Reorder replaces the collection with a caller-supplied sequence,
	// bypassing timestamp ordering.
	Reorder(events []domain.TimelineEvent)

	// Clear removes all events.
	Clear()

	// Events returns a snapshot of the events in exposed order.
	Events() []domain.TimelineEvent

	// Board returns the current board metadata.
	Board() domain.Board

	// RenameBoard sets the board title.
	RenameBoard(title string) error
}
