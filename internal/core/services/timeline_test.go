package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/storage/memory"
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
)

func newTestTimeline(llm driven.LLMService) (*TimelineService, *memory.EventStore) {
	store := memory.NewEventStore()
	var inference *InferenceService
	if llm != nil {
		inference = newTestInference(llm)
	}
	return NewTimelineService(store, inference), store
}

func TestTimelineService_CreateEvent(t *testing.T) {
	svc, store := newTestTimeline(nil)

	event, err := svc.CreateEvent("The wall came down")
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.PlaceholderTitle, event.Title)
	assert.Equal(t, "The wall came down", event.Description)
	assert.Empty(t, event.Year)
	assert.Nil(t, event.Timestamp)
	assert.False(t, event.DateConfirmed)
	assert.Equal(t, 1, store.Len())
}

func TestTimelineService_CreateEvent_EmptyDescription(t *testing.T) {
	svc, store := newTestTimeline(nil)

	_, err := svc.CreateEvent("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)
	assert.Zero(t, store.Len())
}

func TestTimelineService_CreateEvent_GridPlacement(t *testing.T) {
	svc, _ := newTestTimeline(nil)

	var positions []domain.Position
	for i := 0; i < 5; i++ {
		ev, err := svc.CreateEvent("event")
		require.NoError(t, err)
		require.NotNil(t, ev.Position)
		positions = append(positions, *ev.Position)
	}

	// Four columns across, then wrap to the next row.
	assert.Equal(t, domain.Position{X: 400, Y: 300}, positions[0])
	assert.Equal(t, domain.Position{X: 600, Y: 300}, positions[1])
	assert.Equal(t, domain.Position{X: 1000, Y: 300}, positions[3])
	assert.Equal(t, domain.Position{X: 400, Y: 480}, positions[4])
}

func TestTimelineService_CreateEventAt(t *testing.T) {
	svc, _ := newTestTimeline(nil)

	event, err := svc.CreateEventAt("dropped here", domain.Position{X: 50, Y: 75})
	require.NoError(t, err)

	require.NotNil(t, event.Position)
	assert.Equal(t, 50.0, event.Position.X)
	assert.Equal(t, 75.0, event.Position.Y)
}

func TestTimelineService_ResolveEvent_AppliesInference(t *testing.T) {
	llm := &stubLLM{response: `{"title": "Berlin Wall Falls", "year": "1989"}`}
	svc, store := newTestTimeline(llm)

	event, err := svc.CreateEvent("The Berlin Wall came down")
	require.NoError(t, err)

	require.NoError(t, svc.ResolveEvent(context.Background(), event.ID))

	resolved, err := store.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berlin Wall Falls", resolved.Title)
	assert.Equal(t, "1989", resolved.Year)
	require.NotNil(t, resolved.Timestamp)
	assert.True(t, resolved.DateConfirmed)
	// Description survives resolution untouched.
	assert.Equal(t, "The Berlin Wall came down", resolved.Description)
}

func TestTimelineService_ResolveEvent_FallbackOnLLMError(t *testing.T) {
	llm := &stubLLM{err: context.DeadlineExceeded}
	svc, store := newTestTimeline(llm)

	long := strings.Repeat("x", 60)
	event, err := svc.CreateEvent(long)
	require.NoError(t, err)

	require.NoError(t, svc.ResolveEvent(context.Background(), event.ID))

	resolved, err := store.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 50)+"...", resolved.Title)
	assert.Empty(t, resolved.Year)
	assert.False(t, resolved.DateConfirmed)
}

func TestTimelineService_ResolveEvent_DeletedMidFlight(t *testing.T) {
	llm := &stubLLM{response: `{"title": "Ghost", "year": "2000"}`}
	svc, store := newTestTimeline(llm)

	event, err := svc.CreateEvent("soon to vanish")
	require.NoError(t, err)
	svc.DeleteEvent(event.ID)

	// No error, no resurrection.
	require.NoError(t, svc.ResolveEvent(context.Background(), event.ID))
	assert.Zero(t, store.Len())
}

func TestTimelineService_ResolveEvent_NoInferenceService(t *testing.T) {
	svc, store := newTestTimeline(nil)

	event, err := svc.CreateEvent("a plain event")
	require.NoError(t, err)

	require.NoError(t, svc.ResolveEvent(context.Background(), event.ID))

	resolved, err := store.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "a plain event", resolved.Title)
}

func TestTimelineService_SetYear(t *testing.T) {
	svc, store := newTestTimeline(nil)

	event, err := svc.CreateEvent("dated later")
	require.NoError(t, err)

	require.NoError(t, svc.SetYear(event.ID, "1969"))

	updated, err := store.Get(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "1969", updated.Year)
	require.NotNil(t, updated.Timestamp)
	assert.Equal(t, 1969, updated.Timestamp.Year())
	assert.True(t, updated.DateConfirmed)
}

func TestTimelineService_SetYear_Invalid(t *testing.T) {
	svc, store := newTestTimeline(nil)

	event, err := svc.CreateEvent("stays undated")
	require.NoError(t, err)

	for _, year := range []string{"", "abcd", "199", "2100", "1899"} {
		assert.ErrorIs(t, svc.SetYear(event.ID, year), domain.ErrInvalidYear, "year %q", year)
	}

	unchanged, err := store.Get(event.ID)
	require.NoError(t, err)
	assert.Empty(t, unchanged.Year)
	assert.Nil(t, unchanged.Timestamp)
	assert.False(t, unchanged.DateConfirmed)
}

func TestTimelineService_SetYear_NotFound(t *testing.T) {
	svc, _ := newTestTimeline(nil)
	assert.ErrorIs(t, svc.SetYear("absent", "1999"), domain.ErrNotFound)
}

func TestTimelineService_AddAdjacent(t *testing.T) {
	svc, _ := newTestTimeline(nil)

	base, err := svc.CreateEventAt("anchor", domain.Position{X: 120, Y: 340})
	require.NoError(t, err)

	added, err := svc.AddAdjacent(base.ID)
	require.NoError(t, err)

	require.NotNil(t, added.Position)
	assert.Equal(t, 320.0, added.Position.X)
	assert.Equal(t, 340.0, added.Position.Y)
	assert.Equal(t, domain.PlaceholderTitle, added.Title)
}

func TestTimelineService_AddAdjacent_NotFound(t *testing.T) {
	svc, _ := newTestTimeline(nil)
	_, err := svc.AddAdjacent("absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimelineService_Clear_ResetsGrid(t *testing.T) {
	svc, _ := newTestTimeline(nil)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateEvent("event")
		require.NoError(t, err)
	}
	svc.Clear()
	assert.Empty(t, svc.Events())

	ev, err := svc.CreateEvent("fresh start")
	require.NoError(t, err)
	require.NotNil(t, ev.Position)
	assert.Equal(t, domain.Position{X: 400, Y: 300}, *ev.Position)
}

func TestTimelineService_Board_Rename(t *testing.T) {
	svc, _ := newTestTimeline(nil)

	assert.Equal(t, domain.DefaultBoardTitle, svc.Board().Title)

	require.NoError(t, svc.RenameBoard("  My Timeline  "))
	assert.Equal(t, "My Timeline", svc.Board().Title)

	assert.ErrorIs(t, svc.RenameBoard("   "), domain.ErrInvalidInput)
	assert.Equal(t, "My Timeline", svc.Board().Title)

	require.NoError(t, svc.RenameBoard(strings.Repeat("T", 80)))
	assert.Equal(t, strings.Repeat("T", domain.MaxBoardTitleLength), svc.Board().Title)
}
