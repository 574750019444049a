// Package mcp provides an MCP (Model Context Protocol) server adapter for
// plotline. It lets AI assistants read and edit the same in-session
// timeline the TUI operates on.
package mcp

import "errors"

// ErrMissingTimelineService is returned when the timeline service is not provided.
var ErrMissingTimelineService = errors.New("mcp: timeline service is required")
