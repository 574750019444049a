package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// Ensure TimelineService implements the interface.
var _ driving.TimelineService = (*TimelineService)(nil)

// Grid layout for auto-placed events: four columns, wrapping downwards.
const (
	gridOriginX   = 400.0
	gridOriginY   = 300.0
	gridStepX     = 200.0
	gridStepY     = 180.0
	gridColumns   = 4
	adjacentShift = 200.0
)

// TimelineService owns all timeline mutations. Event creation is
// synchronous and cheap; inference runs afterwards via ResolveEvent and
// lands as a single atomic update.
type TimelineService struct {
	store     driven.EventStore
	inference *InferenceService

	mu      sync.RWMutex
	board   domain.Board
	created int // counts auto-placed events for grid layout
}

// NewTimelineService creates a timeline service over the given store.
// inference may be nil; events then resolve to local fallbacks.
func NewTimelineService(store driven.EventStore, inference *InferenceService) *TimelineService {
	return &TimelineService{
		store:     store,
		inference: inference,
		board:     domain.NewBoard(),
	}
}

// CreateEvent inserts a provisional event at the next grid position.
func (s *TimelineService) CreateEvent(description string) (domain.TimelineEvent, error) {
	s.mu.Lock()
	pos := s.nextGridPositionLocked()
	s.created++
	s.mu.Unlock()

	return s.createAt(description, pos)
}

// CreateEventAt inserts a provisional event at an explicit position.
func (s *TimelineService) CreateEventAt(description string, pos domain.Position) (domain.TimelineEvent, error) {
	return s.createAt(description, pos)
}

func (s *TimelineService) createAt(description string, pos domain.Position) (domain.TimelineEvent, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return domain.TimelineEvent{}, domain.ErrEmptyDescription
	}

	event := domain.NewProvisionalEvent(uuid.New().String(), description, pos)
	if err := s.store.Add(event); err != nil {
		return domain.TimelineEvent{}, fmt.Errorf("failed to add event: %w", err)
	}
	logger.Debug("Created provisional event %s at (%.0f, %.0f)", event.ID, pos.X, pos.Y)
	return event, nil
}

// ResolveEvent runs inference for the event's description and applies the
// outcome in one update. An event deleted mid-flight is a silent no-op.
func (s *TimelineService) ResolveEvent(ctx context.Context, id string) error {
	event, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	var result TitleYear
	if s.inference != nil {
		result = s.inference.InferTitleYear(ctx, event.Description)
	} else {
		result = TitleYear{Title: domain.FallbackTitle(event.Description)}
	}

	update := driven.EventUpdate{Title: &result.Title}
	if result.Year != nil && result.Timestamp != nil {
		confirmed := true
		update.Year = result.Year
		update.Timestamp = result.Timestamp
		update.DateConfirmed = &confirmed
	}

	if err := s.store.Update(id, update); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Event %s deleted during inference, discarding result", id)
			return nil
		}
		return fmt.Errorf("failed to apply inference result: %w", err)
	}
	return nil
}

// SetYear sets an explicit year, deriving the ordering timestamp and
// confirming the date. Invalid years leave the event untouched.
func (s *TimelineService) SetYear(id, year string) error {
	year = strings.TrimSpace(year)
	ts, err := domain.TimestampForYear(year)
	if err != nil {
		return err
	}

	confirmed := true
	return s.store.Update(id, driven.EventUpdate{
		Year:          &year,
		Timestamp:     &ts,
		DateConfirmed: &confirmed,
	})
}

// UpdateEvent merges partial fields into an event.
func (s *TimelineService) UpdateEvent(id string, update driven.EventUpdate) error {
	return s.store.Update(id, update)
}

// AddAdjacent creates a provisional event offset to the right of the
// event with the given id.
func (s *TimelineService) AddAdjacent(id string) (domain.TimelineEvent, error) {
	base, err := s.store.Get(id)
	if err != nil {
		return domain.TimelineEvent{}, err
	}

	pos := domain.Position{X: adjacentShift, Y: 0}
	if base.Position != nil {
		pos = domain.Position{X: base.Position.X + adjacentShift, Y: base.Position.Y}
	}
	return s.createAt("New event", pos)
}

// DeleteEvent removes an event. Absent ids are a no-op.
func (s *TimelineService) DeleteEvent(id string) {
	s.store.Delete(id)
}

// Reorder replaces the collection with a caller-supplied sequence.
func (s *TimelineService) Reorder(events []domain.TimelineEvent) {
	s.store.Reorder(events)
}

// Clear removes all events and resets the grid cursor.
func (s *TimelineService) Clear() {
	s.store.Clear()

	s.mu.Lock()
	s.created = 0
	s.mu.Unlock()
}

// Events returns a snapshot of the events in exposed order.
func (s *TimelineService) Events() []domain.TimelineEvent {
	return s.store.List()
}

// Board returns the current board metadata.
func (s *TimelineService) Board() domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// RenameBoard sets the board title.
func (s *TimelineService) RenameBoard(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Rename(title)
}

// nextGridPositionLocked computes where the next auto-placed event goes:
// left to right across gridColumns columns, then down a row.
func (s *TimelineService) nextGridPositionLocked() domain.Position {
	col := s.created % gridColumns
	row := s.created / gridColumns
	return domain.Position{
		X: gridOriginX + float64(col)*gridStepX,
		Y: gridOriginY + float64(row)*gridStepY,
	}
}
