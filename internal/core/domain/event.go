package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PlaceholderTitle is shown on a provisional event until inference resolves.
const PlaceholderTitle = "Generating..."

// FallbackTitleLength bounds the locally derived title when inference fails.
const FallbackTitleLength = 50

// yearPattern matches a user-enterable 4-digit year (1900-2099).
var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

// Position is a point in canvas-space.
// It is the sole source of truth for where an event renders, independent
// of chronological order.
type Position struct {
	X float64
	Y float64
}

// TimelineEvent is the canonical unit of a timeline.
type TimelineEvent struct {
	// ID is the unique identifier, assigned at creation, immutable.
	ID string

	// Year is the display year. Empty until resolved; the user may later
	// edit it freely, so it is not guaranteed numeric.
	Year string

	// Title is the display title. Starts as PlaceholderTitle until
	// inference completes.
	Title string

	// Description is the original free-text input.
	Description string

	// Timestamp orders the event chronologically. Nil means the date is
	// unknown; such events sort after all dated ones. Never used for
	// canvas placement.
	Timestamp *time.Time

	// DateConfirmed is true once a year has been set, by inference or by
	// explicit user entry.
	DateConfirmed bool

	// Position is the canvas placement, if the event has one.
	Position *Position
}

// NewProvisionalEvent creates an event in its provisional state: empty
// year, placeholder title, no timestamp, date unconfirmed. Creation is
// synchronous so the interaction loop never waits on inference.
func NewProvisionalEvent(id, description string, pos Position) TimelineEvent {
	return TimelineEvent{
		ID:          id,
		Title:       PlaceholderTitle,
		Description: description,
		Position:    &pos,
	}
}

// ValidYear reports whether year is a 4-digit year accepted for explicit
// user entry.
func ValidYear(year string) bool {
	return yearPattern.MatchString(year)
}

// TimestampForYear derives the ordering instant for a bare year:
// January 1 of that year at midnight, local time.
func TimestampForYear(year string) (time.Time, error) {
	if !ValidYear(year) {
		return time.Time{}, ErrInvalidYear
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, ErrInvalidYear
	}
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local), nil
}

// FallbackTitle derives a display title from a description when inference
// is unavailable: the description itself, or its first FallbackTitleLength
// characters with an ellipsis marker when longer.
func FallbackTitle(description string) string {
	description = strings.TrimSpace(description)
	runes := []rune(description)
	if len(runes) <= FallbackTitleLength {
		return description
	}
	return string(runes[:FallbackTitleLength]) + "..."
}

// Before reports whether e orders strictly before other. Events without a
// timestamp order after all events that have one; two undated events have
// no defined order between them (stable sorting preserves prior order).
func (e *TimelineEvent) Before(other *TimelineEvent) bool {
	if e.Timestamp == nil {
		return false
	}
	if other.Timestamp == nil {
		return true
	}
	return e.Timestamp.Before(*other.Timestamp)
}

// NeedsDate reports whether the event should be visually marked as waiting
// for a date.
func (e *TimelineEvent) NeedsDate() bool {
	return !e.DateConfirmed
}
