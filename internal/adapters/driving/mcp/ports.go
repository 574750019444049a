package mcp

import (
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Timeline is the event collection being authored.
	Timeline driving.TimelineService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Timeline == nil {
		return ErrMissingTimelineService
	}
	return nil
}
