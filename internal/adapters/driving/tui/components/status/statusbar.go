// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/keymap"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui/styles"
)

// Bar displays interaction mode, zoom level, event count, and hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	mode       string
	zoomLabel  string
	eventCount int
	message    string
	isError    bool
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:    s,
		keymap:    km,
		mode:      "idle",
		zoomLabel: "100%",
		width:     80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders mode, zoom, and count, or a transient message.
func (b *Bar) renderLeft() string {
	if b.message != "" {
		if b.isError {
			return b.styles.Error.Render(b.message)
		}
		return b.styles.Normal.Render(b.message)
	}

	events := "events"
	if b.eventCount == 1 {
		events = "event"
	}
	return b.styles.Normal.Render(
		fmt.Sprintf("%s · zoom %s · %d %s", b.mode, b.zoomLabel, b.eventCount, events),
	)
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	bindings := b.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, bind := range bindings {
		h := bind.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetMode sets the displayed interaction mode.
func (b *Bar) SetMode(mode string) {
	b.mode = mode
}

// SetZoomLabel sets the displayed zoom level.
func (b *Bar) SetZoomLabel(label string) {
	b.zoomLabel = label
}

// SetEventCount sets the displayed event count.
func (b *Bar) SetEventCount(count int) {
	b.eventCount = count
}

// SetMessage shows a transient message in place of the mode summary.
func (b *Bar) SetMessage(message string, isError bool) {
	b.message = message
	b.isError = isError
}

// ClearMessage restores the mode summary.
func (b *Bar) ClearMessage() {
	b.message = ""
	b.isError = false
}

// Message returns the current transient message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
