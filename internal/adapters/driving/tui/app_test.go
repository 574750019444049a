package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/storage/memory"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/messages"
	"github.com/plotline-labs/plotline-cli/internal/core/services"
)

func newTestApp(t *testing.T) (*App, *services.TimelineService) {
	t.Helper()
	inference := services.NewInferenceService(nil, nil)
	timeline := services.NewTimelineService(memory.NewEventStore(), inference)
	app, err := NewApp(NewPorts(timeline, nil))
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, timeline
}

func TestNewApp_RequiresTimelineService(t *testing.T) {
	_, err := NewApp(NewPorts(nil, nil))
	assert.ErrorIs(t, err, ErrMissingTimelineService)
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	timeline := services.NewTimelineService(memory.NewEventStore(), nil)
	app, err := NewApp(NewPorts(timeline, nil))
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Contains(t, app.View(), "Loading")

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	assert.True(t, app.Ready())
}

func TestApp_EventCreatedSchedulesResolve(t *testing.T) {
	app, timeline := newTestApp(t)
	event, err := timeline.CreateEvent("Moon landing in 1969")
	require.NoError(t, err)

	model, cmd := app.Update(messages.EventCreated{Event: event})
	app = model.(*App)
	require.NotNil(t, cmd)

	resolved, ok := cmd().(messages.EventResolved)
	require.True(t, ok)
	assert.Equal(t, event.ID, resolved.ID)
}

func TestApp_ResolveWithoutYearPromptsChat(t *testing.T) {
	app, timeline := newTestApp(t)
	event, err := timeline.CreateEvent("something undatable")
	require.NoError(t, err)

	// Mark inference as finished. Heuristics found no year, so the
	// event still needs a date and the chat should ask for one.
	require.NoError(t, timeline.ResolveEvent(t.Context(), event.ID))
	model, _ := app.Update(messages.EventResolved{ID: event.ID})
	app = model.(*App)

	assert.Equal(t, event.ID, app.Chat().AwaitingYearFor())
}

func TestApp_ResolveWithYearDoesNotPrompt(t *testing.T) {
	app, timeline := newTestApp(t)
	event, err := timeline.CreateEvent("We moved house in 2019")
	require.NoError(t, err)

	require.NoError(t, timeline.ResolveEvent(t.Context(), event.ID))
	model, _ := app.Update(messages.EventResolved{ID: event.ID})
	app = model.(*App)

	assert.Empty(t, app.Chat().AwaitingYearFor())
}

func TestApp_TabSwitchesFocus(t *testing.T) {
	app, _ := newTestApp(t)
	assert.True(t, app.Chat().Focused())

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.False(t, app.Chat().Focused())

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.True(t, app.Chat().Focused())
}

func TestApp_CtrlJTogglesChatAndDropsFocus(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	app = model.(*App)
	assert.True(t, app.Chat().Minimised())
	assert.False(t, app.Chat().Focused())
}

func TestApp_RenameBoardFlow(t *testing.T) {
	app, timeline := newTestApp(t)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	app = model.(*App)
	require.True(t, app.editingTitle)

	app.titleInput.SetValue("Family History")
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	assert.False(t, app.editingTitle)
	assert.Equal(t, "Family History", timeline.Board().Title)
}

func TestApp_RenameBoardEscapeKeepsOldTitle(t *testing.T) {
	app, timeline := newTestApp(t)
	before := timeline.Board().Title

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	app = model.(*App)
	app.titleInput.SetValue("discarded")
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.False(t, app.editingTitle)
	assert.Equal(t, before, timeline.Board().Title)
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewShowsBoardTitleAndStatus(t *testing.T) {
	app, timeline := newTestApp(t)
	require.NoError(t, timeline.RenameBoard("Space Race"))

	view := app.View()
	assert.Contains(t, view, "Space Race")
	assert.Contains(t, view, "zoom 100%")
}

func TestApp_ErrorOccurredShowsInStatusBar(t *testing.T) {
	app, _ := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: assert.AnError})
	app = model.(*App)
	assert.Contains(t, app.View(), assert.AnError.Error())
}
