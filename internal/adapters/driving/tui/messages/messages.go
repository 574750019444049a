// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
)

// EventCreated signals a provisional event was inserted.
type EventCreated struct {
	Event domain.TimelineEvent
	Err   error
}

// EventResolved signals title/year inference finished for an event.
// The store already holds the outcome; listeners refresh their snapshot.
type EventResolved struct {
	ID  string
	Err error
}

// EventUpdated signals an event mutation (title, year, description,
// position) was applied.
type EventUpdated struct {
	ID  string
	Err error
}

// EventDeleted signals an event was removed.
type EventDeleted struct {
	ID string
}

// EventSelected signals the canvas selection changed. ID is empty when the
// selection was cleared.
type EventSelected struct {
	ID string
}

// YearRequested asks the chat panel to prompt for a year for the given
// event, typically after inference could not determine one.
type YearRequested struct {
	ID    string
	Title string
}

// BoardRenamed signals the board title changed.
type BoardRenamed struct {
	Title string
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// StatusCleared resets any transient status message.
type StatusCleared struct{}
