// Package tui provides the interactive timeline canvas for plotline.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Timeline owns all timeline state and mutations.
	Timeline driving.TimelineService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(timeline driving.TimelineService, settings driving.SettingsService) *Ports {
	return &Ports{
		Timeline: timeline,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Timeline == nil {
		return ErrMissingTimelineService
	}
	return nil
}
