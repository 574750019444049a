// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Cancel cancels the current edit or deselects.
	Cancel key.Binding

	// Submit confirms an input.
	Submit key.Binding

	// ZoomIn zooms the canvas in.
	ZoomIn key.Binding

	// ZoomOut zooms the canvas out.
	ZoomOut key.Binding

	// ResetZoom restores the default zoom level.
	ResetZoom key.Binding

	// PanLeft, PanRight, PanUp, PanDown pan the canvas via keyboard.
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding

	// Delete removes the selected event.
	Delete key.Binding

	// AddAdjacent inserts a new event beside the selected one.
	AddAdjacent key.Binding

	// EditTitle starts editing the selected event's title.
	EditTitle key.Binding

	// EditYear starts editing the selected event's year.
	EditYear key.Binding

	// EditDescription starts editing the selected event's description.
	EditDescription key.Binding

	// RenameBoard starts editing the board title.
	RenameBoard key.Binding

	// ToggleChat minimises or restores the chat panel.
	ToggleChat key.Binding

	// FocusSwitch moves focus between the chat input and the canvas.
	FocusSwitch key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		ResetZoom: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "pan down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace", "x"),
			key.WithHelp("del/x", "delete event"),
		),
		AddAdjacent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add beside"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "edit title"),
		),
		EditYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "edit year"),
		),
		EditDescription: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "edit description"),
		),
		RenameBoard: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "rename board"),
		),
		ToggleChat: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "toggle chat"),
		),
		FocusSwitch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch focus"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSwitch, k.Help, k.Quit}
}

// CanvasHelp returns keybindings shown while the canvas has focus.
func (k *KeyMap) CanvasHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.AddAdjacent, k.Delete, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown},
		{k.ZoomIn, k.ZoomOut, k.ResetZoom},
		{k.EditTitle, k.EditYear, k.EditDescription, k.AddAdjacent, k.Delete},
		{k.RenameBoard, k.ToggleChat, k.FocusSwitch},
		{k.Cancel, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
