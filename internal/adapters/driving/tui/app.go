package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/components/canvas"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/components/chat"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/components/status"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/keymap"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/messages"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/styles"
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// headerHeight is the board title row.
const headerHeight = 1

// statusHeight is the status bar row.
const statusHeight = 1

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// canvas is the event board component.
	canvas *canvas.Model

	// chat is the conversational input panel.
	chat *chat.Panel

	// statusBar shows mode, zoom, and event count.
	statusBar *status.Bar

	// focusChat tracks whether keyboard input goes to the chat panel.
	focusChat bool

	// editingTitle tracks whether the board title is being edited.
	editingTitle bool

	// titleInput edits the board title.
	titleInput textinput.Model

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	keys := keymap.DefaultKeyMap()

	ti := textinput.New()
	ti.CharLimit = domain.MaxBoardTitleLength
	ti.Width = 40

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keys:       keys,
		canvas:     canvas.New(ports.Timeline, s, keys),
		chat:       chat.New(ports.Timeline, s),
		statusBar:  status.NewBar(s, keys),
		focusChat:  true,
		titleInput: ti,
	}, nil
}

// WithContext sets the context used for inference calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	a.canvas.Refresh()
	a.syncStatus()
	return tea.Batch(a.chat.Init(), a.canvas.Init())
}

// Update routes messages through the Elm loop.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case tea.MouseMsg:
		// The canvas starts below the header row.
		msg.Y -= headerHeight
		var cmd tea.Cmd
		a.canvas, cmd = a.canvas.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.EventCreated:
		return a.onEventCreated(msg)

	case messages.EventResolved:
		return a.onEventResolved(msg)

	case messages.EventUpdated, messages.EventDeleted, messages.EventSelected:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.canvas, cmd = a.canvas.Update(msg)
		cmds = append(cmds, cmd)
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
		a.syncStatus()
		return a, tea.Batch(cmds...)

	case messages.BoardRenamed:
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error(), true)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetMessage(msg.Err.Error(), true)
		logger.Warn("TUI error: %v", msg.Err)
		return a, nil

	case messages.StatusCleared:
		a.statusBar.ClearMessage()
		return a, nil
	}

	return a, nil
}

// updateKeys routes keyboard input by focus.
func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.editingTitle {
		return a.updateTitleEdit(msg)
	}

	// In-place field editing swallows everything else.
	if a.canvas.Mode() == canvas.ModeEditing {
		var cmd tea.Cmd
		a.canvas, cmd = a.canvas.Update(msg)
		a.syncStatus()
		return a, cmd
	}

	switch {
	case keymap.Matches(k, a.keys.RenameBoard):
		a.editingTitle = true
		a.titleInput.SetValue(a.ports.Timeline.Board().Title)
		a.titleInput.CursorEnd()
		return a, a.titleInput.Focus()

	case keymap.Matches(k, a.keys.ToggleChat):
		a.chat.ToggleMinimised()
		if a.chat.Minimised() && a.focusChat {
			a.focusChat = false
			a.chat.Blur()
		}
		a.layout()
		return a, nil

	case keymap.Matches(k, a.keys.FocusSwitch):
		a.focusChat = !a.focusChat && !a.chat.Minimised()
		if a.focusChat {
			return a, a.chat.Focus()
		}
		a.chat.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	if a.focusChat {
		a.chat, cmd = a.chat.Update(msg)
	} else {
		a.canvas, cmd = a.canvas.Update(msg)
	}
	a.syncStatus()
	return a, cmd
}

// updateTitleEdit handles the board title editor.
func (a *App) updateTitleEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := a.titleInput.Value()
		a.editingTitle = false
		a.titleInput.Blur()
		if err := a.ports.Timeline.RenameBoard(title); err != nil {
			a.statusBar.SetMessage("board title cannot be empty", true)
		}
		return a, nil
	case "esc":
		a.editingTitle = false
		a.titleInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.titleInput, cmd = a.titleInput.Update(msg)
	return a, cmd
}

// onEventCreated refreshes views and starts async title/year inference.
func (a *App) onEventCreated(msg messages.EventCreated) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.statusBar.SetMessage(msg.Err.Error(), true)
		return a, nil
	}

	a.canvas.Refresh()
	a.syncStatus()
	return a, a.resolveCmd(msg.Event.ID)
}

// onEventResolved refreshes views and prompts for a year when inference
// could not determine one.
func (a *App) onEventResolved(msg messages.EventResolved) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.canvas, cmd = a.canvas.Update(msg)
	cmds = append(cmds, cmd)
	a.chat, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	a.syncStatus()

	if event := a.findEvent(msg.ID); event != nil && event.NeedsDate() {
		req := messages.YearRequested{ID: event.ID, Title: event.Title}
		a.chat, _ = a.chat.Update(req)
	}
	return a, tea.Batch(cmds...)
}

// resolveCmd runs inference for an event off the interaction loop.
func (a *App) resolveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Timeline.ResolveEvent(a.ctx, id)
		return messages.EventResolved{ID: id, Err: err}
	}
}

func (a *App) findEvent(id string) *domain.TimelineEvent {
	events := a.ports.Timeline.Events()
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

// layout recomputes component sizes from the terminal dimensions.
func (a *App) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	a.chat.SetWidth(a.width)
	a.statusBar.SetWidth(a.width)

	canvasHeight := a.height - headerHeight - statusHeight - a.chat.Height()
	if canvasHeight < 3 {
		canvasHeight = 3
	}
	a.canvas.SetSize(a.width, canvasHeight)
}

// syncStatus mirrors canvas state into the status bar.
func (a *App) syncStatus() {
	a.statusBar.SetMode(a.canvas.Mode().String())
	a.statusBar.SetZoomLabel(a.canvas.ZoomLabel())
	a.statusBar.SetEventCount(len(a.ports.Timeline.Events()))
	if m := a.canvas.ErrMsg(); m != "" {
		a.statusBar.SetMessage(m, true)
	} else if a.statusBar.Message() != "" && a.err == nil {
		a.statusBar.ClearMessage()
	}
}

// View renders the full application.
func (a *App) View() string {
	if !a.ready {
		return "Loading plotline..."
	}

	var b strings.Builder
	b.WriteString(a.viewHeader())
	b.WriteString("\n")
	b.WriteString(a.canvas.View())
	b.WriteString("\n")
	b.WriteString(a.chat.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

// viewHeader renders the board title row.
func (a *App) viewHeader() string {
	if a.editingTitle {
		return a.styles.Title.Render("Board: ") + a.titleInput.View()
	}
	return a.styles.Title.Render(a.ports.Timeline.Board().Title)
}

// Run starts the Bubbletea program with mouse support enabled.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready reports whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions. Useful for testing.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}

// Canvas exposes the canvas component. Useful for testing.
func (a *App) Canvas() *canvas.Model {
	return a.canvas
}

// Chat exposes the chat panel. Useful for testing.
func (a *App) Chat() *chat.Panel {
	return a.chat
}
