// Package canvas renders the pannable, zoomable event board and owns all
// pointer interaction with it.
package canvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/keymap"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/messages"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/styles"
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// Mode is the interaction state of the canvas.
type Mode int

const (
	// ModeIdle means no pointer interaction is in progress.
	ModeIdle Mode = iota

	// ModePanning means a drag on empty canvas is moving the viewport.
	ModePanning

	// ModeDragging means a drag is moving an event card.
	ModeDragging

	// ModeEditing means a field of an event is being edited in place.
	ModeEditing
)

// String returns the mode name shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModeDragging:
		return "dragging"
	case ModeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Field identifies which event field is being edited.
type Field int

const (
	FieldNone Field = iota
	FieldTitle
	FieldYear
	FieldDescription
)

// Event cards occupy a fixed rectangle in canvas units; hit testing and
// dragging use these bounds so pointer behaviour is independent of how
// coarsely the card renders in terminal cells.
const (
	cardCanvasWidth  = 180.0
	cardCanvasHeight = 110.0
)

// Terminal cells per screen unit. Screen units come out of the viewport
// transform; these factors map them onto the character grid.
const (
	cellsPerUnitX = 0.15
	cellsPerUnitY = 0.055
)

// doubleClickWindow is the maximum gap between two clicks on the same
// event for the second to open the editor.
const doubleClickWindow = 400 * time.Millisecond

// Keyboard panning step in screen units.
const keyPanStep = 40.0

// Model is the canvas component.
type Model struct {
	timeline driving.TimelineService
	styles   *styles.Styles
	keys     *keymap.KeyMap

	viewport domain.Viewport
	events   []domain.TimelineEvent

	width  int
	height int

	mode       Mode
	selectedID string

	// Drag state.
	dragID     string
	dragMoved  bool
	grabDX     float64 // canvas-unit offset between grab point and card origin
	grabDY     float64
	panAnchorX float64 // canvas point held under the cursor while panning
	panAnchorY float64

	// Double-click tracking.
	lastClickID string
	lastClickAt time.Time

	// In-place editing.
	editField Field
	editID    string
	input     textinput.Model
	area      textarea.Model

	errMsg string
}

// New creates a canvas over the given timeline service.
func New(timeline driving.TimelineService, s *styles.Styles, keys *keymap.KeyMap) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if keys == nil {
		keys = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 30

	ta := textarea.New()
	ta.CharLimit = 2000
	ta.SetWidth(40)
	ta.SetHeight(4)

	return &Model{
		timeline: timeline,
		styles:   s,
		keys:     keys,
		viewport: domain.NewViewport(),
		width:    80,
		height:   24,
		input:    ti,
		area:     ta,
	}
}

// SetSize sets the canvas dimensions in terminal cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetEvents replaces the rendered snapshot.
func (m *Model) SetEvents(events []domain.TimelineEvent) {
	m.events = events
	if m.selectedID != "" && m.findEvent(m.selectedID) == nil {
		m.selectedID = ""
	}
}

// Refresh pulls a fresh snapshot from the timeline service.
func (m *Model) Refresh() {
	m.SetEvents(m.timeline.Events())
}

// Mode returns the current interaction mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SelectedID returns the id of the selected event, or "".
func (m *Model) SelectedID() string {
	return m.selectedID
}

// Viewport returns the current view transform.
func (m *Model) Viewport() domain.Viewport {
	return m.viewport
}

// EditingField returns which field is being edited, if any.
func (m *Model) EditingField() Field {
	return m.editField
}

// ErrMsg returns the transient error message, if any.
func (m *Model) ErrMsg() string {
	return m.errMsg
}

// Init initialises the canvas.
func (m *Model) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Update handles canvas messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if m.mode == ModeEditing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	case messages.EventResolved, messages.EventUpdated, messages.EventCreated, messages.EventDeleted:
		m.Refresh()
	}
	return m, nil
}

// updateMouse drives the pointer state machine.
func (m *Model) updateMouse(msg tea.MouseMsg) (*Model, tea.Cmd) {
	// Editing swallows pointer input; a click elsewhere commits first. A
	// rejected commit keeps the editor open, so the press is consumed
	// rather than starting a pan or drag underneath it.
	if m.mode == ModeEditing && msg.Action == tea.MouseActionPress {
		return m, m.commitEdit()
	}

	sx, sy := m.cellToScreen(msg.X, msg.Y)
	cx, cy := m.viewport.ScreenToCanvas(sx, sy)

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.zoomAt(sx, sy, true)
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.zoomAt(sx, sy, false)
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return m.pointerDown(cx, cy)

	case msg.Action == tea.MouseActionMotion:
		return m.pointerMove(msg.X, msg.Y, sx, sy, cx, cy)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return m.pointerUp()
	}
	return m, nil
}

// pointerDown begins a drag on a card or a pan on empty canvas. Pressing
// empty canvas also clears the current selection.
func (m *Model) pointerDown(cx, cy float64) (*Model, tea.Cmd) {
	hit := m.hitTest(cx, cy)
	if hit == nil {
		m.mode = ModePanning
		m.panAnchorX = cx
		m.panAnchorY = cy
		m.lastClickID = ""
		var cmd tea.Cmd
		if m.selectedID != "" {
			m.selectedID = ""
			cmd = func() tea.Msg { return messages.EventSelected{} }
		}
		return m, cmd
	}

	// Second click on the same card within the window opens the editor
	// for the field row under the pointer: title on the upper half of the
	// card, year on the lower.
	if hit.ID == m.lastClickID && time.Since(m.lastClickAt) < doubleClickWindow {
		m.selectedID = hit.ID
		m.lastClickID = ""
		field := FieldTitle
		if hit.Position != nil && cy-hit.Position.Y >= cardCanvasHeight/2 {
			field = FieldYear
		}
		m.startEdit(hit.ID, field)
		return m, nil
	}
	m.lastClickID = hit.ID
	m.lastClickAt = time.Now()

	m.mode = ModeDragging
	m.dragID = hit.ID
	m.dragMoved = false
	if hit.Position != nil {
		m.grabDX = cx - hit.Position.X
		m.grabDY = cy - hit.Position.Y
	} else {
		m.grabDX, m.grabDY = 0, 0
	}
	return m, nil
}

// pointerMove continues a drag or pan. Motion outside the canvas bounds
// terminates the gesture, leaving a dragged card at its last position.
func (m *Model) pointerMove(cellX, cellY int, sx, sy, cx, cy float64) (*Model, tea.Cmd) {
	outside := cellX < 0 || cellY < 0 || cellX >= m.width || cellY >= m.height

	switch m.mode {
	case ModeDragging:
		if outside {
			return m.pointerUp()
		}
		m.dragMoved = true
		pos := domain.Position{X: cx - m.grabDX, Y: cy - m.grabDY}
		if err := m.timeline.UpdateEvent(m.dragID, driven.EventUpdate{Position: &pos}); err != nil {
			logger.Debug("Drag update failed: %v", err)
		}
		m.Refresh()
		return m, nil

	case ModePanning:
		if outside {
			return m.pointerUp()
		}
		m.viewport = m.viewport.PanTo(sx, sy, m.panAnchorX, m.panAnchorY)
		return m, nil
	}
	return m, nil
}

// pointerUp ends a drag. A press-release without movement is a click,
// which selects the card.
func (m *Model) pointerUp() (*Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == ModeDragging {
		if !m.dragMoved {
			m.selectedID = m.dragID
			id := m.dragID
			cmd = func() tea.Msg { return messages.EventSelected{ID: id} }
		}
		m.dragID = ""
	}
	if m.mode == ModeDragging || m.mode == ModePanning {
		m.mode = ModeIdle
	}
	return m, cmd
}

// zoomAt changes zoom one step, keeping the canvas point under the cursor
// fixed.
func (m *Model) zoomAt(sx, sy float64, in bool) {
	cx, cy := m.viewport.ScreenToCanvas(sx, sy)
	if in {
		m.viewport = m.viewport.ZoomIn()
	} else {
		m.viewport = m.viewport.ZoomOut()
	}
	m.viewport = m.viewport.PanTo(sx, sy, cx, cy)
}

// centreScreen is the screen-unit coordinate of the canvas midpoint,
// used as the anchor for keyboard zooming.
func (m *Model) centreScreen() (float64, float64) {
	return m.cellToScreen(m.width/2, m.height/2)
}

// updateKeys handles keyboard input while not editing.
func (m *Model) updateKeys(msg tea.KeyMsg) (*Model, tea.Cmd) {
	m.errMsg = ""
	k := msg.String()

	switch {
	case keymap.Matches(k, m.keys.ZoomIn):
		sx, sy := m.centreScreen()
		m.zoomAt(sx, sy, true)

	case keymap.Matches(k, m.keys.ZoomOut):
		sx, sy := m.centreScreen()
		m.zoomAt(sx, sy, false)

	case keymap.Matches(k, m.keys.ResetZoom):
		m.viewport = m.viewport.ResetZoom()

	case keymap.Matches(k, m.keys.PanLeft):
		m.panBy(-keyPanStep, 0)
	case keymap.Matches(k, m.keys.PanRight):
		m.panBy(keyPanStep, 0)
	case keymap.Matches(k, m.keys.PanUp):
		m.panBy(0, -keyPanStep)
	case keymap.Matches(k, m.keys.PanDown):
		m.panBy(0, keyPanStep)

	case keymap.Matches(k, m.keys.Cancel):
		m.selectedID = ""
		return m, func() tea.Msg { return messages.EventSelected{} }

	case keymap.Matches(k, m.keys.Delete):
		if m.selectedID != "" {
			id := m.selectedID
			m.timeline.DeleteEvent(id)
			m.selectedID = ""
			m.Refresh()
			return m, func() tea.Msg { return messages.EventDeleted{ID: id} }
		}

	case keymap.Matches(k, m.keys.AddAdjacent):
		if m.selectedID != "" {
			event, err := m.timeline.AddAdjacent(m.selectedID)
			if err != nil {
				return m, func() tea.Msg { return messages.ErrorOccurred{Err: err} }
			}
			m.Refresh()
			m.selectedID = event.ID
			return m, func() tea.Msg { return messages.EventCreated{Event: event} }
		}

	case keymap.Matches(k, m.keys.EditTitle):
		if m.selectedID != "" {
			m.startEdit(m.selectedID, FieldTitle)
		}
	case keymap.Matches(k, m.keys.EditYear):
		if m.selectedID != "" {
			m.startEdit(m.selectedID, FieldYear)
		}
	case keymap.Matches(k, m.keys.EditDescription):
		if m.selectedID != "" {
			m.startEdit(m.selectedID, FieldDescription)
		}
	}
	return m, nil
}

// panBy shifts the viewport by a screen-unit delta.
func (m *Model) panBy(dsx, dsy float64) {
	// Moving the view right means the offset shrinks.
	m.viewport.OffsetX -= dsx / m.viewport.Zoom
	m.viewport.OffsetY -= dsy / m.viewport.Zoom
}

// startEdit opens the in-place editor for the given field.
func (m *Model) startEdit(id string, field Field) {
	event := m.findEvent(id)
	if event == nil {
		return
	}

	m.mode = ModeEditing
	m.editID = id
	m.editField = field
	m.errMsg = ""

	switch field {
	case FieldTitle:
		m.input.SetValue(event.Title)
		m.input.CursorEnd()
		m.input.Focus()
	case FieldYear:
		m.input.SetValue(event.Year)
		m.input.CursorEnd()
		m.input.Focus()
	case FieldDescription:
		m.area.SetValue(event.Description)
		m.area.Focus()
	}
}

// updateEditing handles keyboard input while a field editor is open.
func (m *Model) updateEditing(msg tea.KeyMsg) (*Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, m.keys.Cancel) {
		m.cancelEdit()
		return m, nil
	}

	// Enter commits single-line fields; in the description textarea it
	// inserts a newline and ctrl+s commits instead.
	commit := false
	switch m.editField {
	case FieldTitle, FieldYear:
		commit = k == "enter"
	case FieldDescription:
		commit = k == "ctrl+s"
	}
	if commit {
		cmd := m.commitEdit()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.editField == FieldDescription {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// commitEdit applies the editor value. An invalid year keeps the editor
// open with an error message so the user can correct it in place.
func (m *Model) commitEdit() tea.Cmd {
	id := m.editID

	switch m.editField {
	case FieldTitle:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			title = domain.FallbackTitle(m.currentDescription(id))
		}
		if err := m.timeline.UpdateEvent(id, driven.EventUpdate{Title: &title}); err != nil {
			m.errMsg = err.Error()
		}

	case FieldYear:
		year := strings.TrimSpace(m.input.Value())
		if year != "" {
			if err := m.timeline.SetYear(id, year); err != nil {
				m.errMsg = "enter a 4-digit year (1900-2099)"
				return nil // Stay in the editor.
			}
		}

	case FieldDescription:
		desc := m.area.Value()
		if strings.TrimSpace(desc) != "" {
			if err := m.timeline.UpdateEvent(id, driven.EventUpdate{Description: &desc}); err != nil {
				m.errMsg = err.Error()
			}
		}
	}

	m.closeEditor()
	m.Refresh()
	return func() tea.Msg { return messages.EventUpdated{ID: id} }
}

// cancelEdit discards the editor value.
func (m *Model) cancelEdit() {
	m.closeEditor()
}

func (m *Model) closeEditor() {
	m.mode = ModeIdle
	m.editField = FieldNone
	m.editID = ""
	m.errMsg = ""
	m.input.Blur()
	m.input.SetValue("")
	m.area.Blur()
	m.area.SetValue("")
}

func (m *Model) currentDescription(id string) string {
	if ev := m.findEvent(id); ev != nil {
		return ev.Description
	}
	return ""
}

// hitTest returns the topmost event whose card contains the canvas point.
// Later events render on top, so the slice is scanned in reverse.
func (m *Model) hitTest(cx, cy float64) *domain.TimelineEvent {
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		if ev.Position == nil {
			continue
		}
		if cx >= ev.Position.X && cx < ev.Position.X+cardCanvasWidth &&
			cy >= ev.Position.Y && cy < ev.Position.Y+cardCanvasHeight {
			return &m.events[i]
		}
	}
	return nil
}

func (m *Model) findEvent(id string) *domain.TimelineEvent {
	for i := range m.events {
		if m.events[i].ID == id {
			return &m.events[i]
		}
	}
	return nil
}

// cellToScreen converts a terminal cell coordinate to screen units.
func (m *Model) cellToScreen(col, row int) (float64, float64) {
	return float64(col) / cellsPerUnitX, float64(row) / cellsPerUnitY
}

// screenToCell converts screen units to a terminal cell coordinate.
func screenToCell(sx, sy float64) (int, int) {
	return int(sx * cellsPerUnitX), int(sy * cellsPerUnitY)
}

// View renders the canvas into a fixed-size cell grid.
func (m *Model) View() string {
	grid := newCellGrid(m.width, m.height)

	if len(m.events) == 0 {
		msg := "Type a description below to add your first event"
		grid.writeString((m.width-len(msg))/2, m.height/2, msg)
		return grid.String()
	}

	for i := range m.events {
		m.renderCard(grid, &m.events[i])
	}

	if m.errMsg != "" {
		grid.writeString(1, m.height-1, "! "+m.errMsg)
	}
	return grid.String()
}

// renderCard draws one event card onto the grid.
func (m *Model) renderCard(grid *cellGrid, ev *domain.TimelineEvent) {
	if ev.Position == nil {
		return
	}

	sx, sy := m.viewport.CanvasToScreen(ev.Position.X, ev.Position.Y)
	col, row := screenToCell(sx, sy)

	cw := int(cardCanvasWidth * cellsPerUnitX * m.viewport.Zoom)
	if cw < 12 {
		cw = 12
	}
	if cw > 40 {
		cw = 40
	}
	ch := 4

	selected := ev.ID == m.selectedID
	grid.drawBox(col, row, cw, ch, selected)

	title := ev.Title
	year := ev.Year
	if m.mode == ModeEditing && m.editID == ev.ID {
		switch m.editField {
		case FieldTitle:
			title = m.input.Value() + "▏"
		case FieldYear:
			year = m.input.Value() + "▏"
		}
	}
	if year == "" {
		if ev.NeedsDate() {
			year = "(when?)"
		}
	}

	grid.writeClipped(col+1, row+1, cw-2, title)
	grid.writeClipped(col+1, row+2, cw-2, year)
}

// cellGrid is a plain-rune compositing surface for the canvas.
type cellGrid struct {
	width  int
	height int
	cells  [][]rune
}

func newCellGrid(width, height int) *cellGrid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]rune, height)
	for i := range cells {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &cellGrid{width: width, height: height, cells: cells}
}

func (g *cellGrid) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return
	}
	g.cells[row][col] = r
}

func (g *cellGrid) writeString(col, row int, s string) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r)
	}
}

func (g *cellGrid) writeClipped(col, row, maxWidth int, s string) {
	runes := []rune(s)
	if maxWidth >= 0 && len(runes) > maxWidth {
		runes = runes[:maxWidth]
	}
	for i, r := range runes {
		g.set(col+i, row, r)
	}
}

// drawBox draws a card border. Selected cards get a double border.
func (g *cellGrid) drawBox(col, row, width, height int, selected bool) {
	h, v := '─', '│'
	tl, tr, bl, br := '╭', '╮', '╰', '╯'
	if selected {
		h, v = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}

	// Clear the interior so overlapping cards stack visibly.
	for r := row; r < row+height; r++ {
		for c := col; c < col+width; c++ {
			g.set(c, r, ' ')
		}
	}

	for c := col + 1; c < col+width-1; c++ {
		g.set(c, row, h)
		g.set(c, row+height-1, h)
	}
	for r := row + 1; r < row+height-1; r++ {
		g.set(col, r, v)
		g.set(col+width-1, r, v)
	}
	g.set(col, row, tl)
	g.set(col+width-1, row, tr)
	g.set(col, row+height-1, bl)
	g.set(col+width-1, row+height-1, br)
}

func (g *cellGrid) String() string {
	rows := make([]string, g.height)
	for i, row := range g.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}

// ZoomLabel formats the zoom level for the status bar.
func (m *Model) ZoomLabel() string {
	return fmt.Sprintf("%d%%", int(m.viewport.Zoom*100))
}
