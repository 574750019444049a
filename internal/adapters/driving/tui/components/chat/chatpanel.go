// Package chat provides the conversational input panel: free-text event
// descriptions go in, and prompts for missing years come back.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/messages"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/styles"
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
)

// scrollbackLimit bounds the retained chat history.
const scrollbackLimit = 50

// visibleLines is how many history lines the expanded panel shows.
const visibleLines = 4

// Panel is the chat input component.
type Panel struct {
	timeline driving.TimelineService
	styles   *styles.Styles

	input      textinput.Model
	history    []string
	minimised  bool
	width      int

	// Year affordance: when set, a bare 4-digit year in the input is
	// applied to this event instead of creating a new one.
	pendingYearID    string
	pendingYearTitle string
}

// New creates a chat panel over the given timeline service.
func New(timeline driving.TimelineService, s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Describe an event... (e.g. \"We moved to Lisbon in 2019\")"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return &Panel{
		timeline: timeline,
		styles:   s,
		input:    ti,
		width:    80,
	}
}

// Init initialises the panel.
func (p *Panel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles panel messages.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return p.submit()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd

	case messages.YearRequested:
		p.pendingYearID = msg.ID
		p.pendingYearTitle = msg.Title
		p.log(fmt.Sprintf("When did %q happen? Type a 4-digit year, or describe the next event.", msg.Title))

	case messages.EventResolved:
		if msg.Err != nil {
			p.log("Couldn't reach the model; kept a title from your description.")
		}
	}
	return p, nil
}

// submit handles Enter: a bare year answers the pending year prompt,
// anything else becomes a new event.
func (p *Panel) submit() (*Panel, tea.Cmd) {
	text := strings.TrimSpace(p.input.Value())
	if text == "" {
		return p, nil
	}
	p.input.SetValue("")

	if p.pendingYearID != "" && domain.ValidYear(text) {
		id := p.pendingYearID
		title := p.pendingYearTitle
		p.pendingYearID = ""
		p.pendingYearTitle = ""

		if err := p.timeline.SetYear(id, text); err != nil {
			p.log(fmt.Sprintf("Couldn't set that year: %v", err))
			return p, nil
		}
		p.log(fmt.Sprintf("Dated %q to %s.", title, text))
		return p, func() tea.Msg { return messages.EventUpdated{ID: id} }
	}

	event, err := p.timeline.CreateEvent(text)
	if err != nil {
		p.log(fmt.Sprintf("Couldn't add that: %v", err))
		return p, nil
	}
	p.log("Added: " + domain.FallbackTitle(text))
	return p, func() tea.Msg { return messages.EventCreated{Event: event} }
}

// log appends a line to the scrollback.
func (p *Panel) log(line string) {
	p.history = append(p.history, line)
	if len(p.history) > scrollbackLimit {
		p.history = p.history[len(p.history)-scrollbackLimit:]
	}
}

// ToggleMinimised collapses or restores the panel.
func (p *Panel) ToggleMinimised() {
	p.minimised = !p.minimised
}

// Minimised reports whether the panel is collapsed.
func (p *Panel) Minimised() bool {
	return p.minimised
}

// AwaitingYearFor returns the id of the event waiting for a year, or "".
func (p *Panel) AwaitingYearFor() string {
	return p.pendingYearID
}

// History returns the scrollback lines.
func (p *Panel) History() []string {
	return p.history
}

// Focus focuses the input.
func (p *Panel) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes focus from the input.
func (p *Panel) Blur() {
	p.input.Blur()
}

// Focused reports whether the input has focus.
func (p *Panel) Focused() bool {
	return p.input.Focused()
}

// SetWidth sets the panel width.
func (p *Panel) SetWidth(width int) {
	p.width = width
	inputWidth := width - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.input.Width = inputWidth
}

// Height returns the rendered height in lines.
func (p *Panel) Height() int {
	if p.minimised {
		return 1
	}
	return visibleLines + 3 // history + input border
}

// View renders the panel.
func (p *Panel) View() string {
	if p.minimised {
		return p.styles.Muted.Render("chat hidden (ctrl+j to restore)")
	}

	var b strings.Builder
	start := len(p.history) - visibleLines
	if start < 0 {
		start = 0
	}
	for i := start; i < len(p.history); i++ {
		b.WriteString(p.styles.Muted.Render(p.history[i]))
		b.WriteString("\n")
	}
	for i := len(p.history); i < visibleLines; i++ {
		b.WriteString("\n")
	}
	b.WriteString(p.styles.InputField.Render(p.input.View()))
	return b.String()
}
