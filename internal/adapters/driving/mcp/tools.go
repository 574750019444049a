package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
)

// AddInput is the input schema for the timeline_add tool.
type AddInput struct {
	Description string `json:"description" jsonschema:"free-text description of the event"`
	Year        string `json:"year,omitempty" jsonschema:"explicit 4-digit year (1900-2099); inferred from the description when omitted"`
}

// SetYearInput is the input schema for the timeline_set_year tool.
type SetYearInput struct {
	ID   string `json:"id" jsonschema:"id of the event to date"`
	Year string `json:"year" jsonschema:"4-digit year (1900-2099)"`
}

// RemoveInput is the input schema for the timeline_remove tool.
type RemoveInput struct {
	ID string `json:"id" jsonschema:"id of the event to remove"`
}

// ListInput is the input schema for the timeline_list tool.
type ListInput struct{}

// EventOutput represents a single timeline event.
type EventOutput struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Year          string  `json:"year,omitempty"`
	DateConfirmed bool    `json:"date_confirmed"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// ListOutput is the output schema for the timeline_list tool.
type ListOutput struct {
	BoardTitle string        `json:"board_title"`
	Events     []EventOutput `json:"events"`
	Count      int           `json:"count"`
}

// RemoveOutput is the output schema for the timeline_remove tool.
type RemoveOutput struct {
	ID string `json:"id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timeline_add",
		Description: "Add an event to the timeline from a free-text description",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timeline_list",
		Description: "List all timeline events in chronological order",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timeline_set_year",
		Description: "Set an explicit year on a timeline event",
	}, s.handleSetYear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "timeline_remove",
		Description: "Remove an event from the timeline",
	}, s.handleRemove)
}

// handleAdd creates an event and resolves its title and year before
// answering, so the caller sees the final state.
func (s *Server) handleAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddInput,
) (*mcp.CallToolResult, EventOutput, error) {
	event, err := s.ports.Timeline.CreateEvent(input.Description)
	if err != nil {
		return nil, EventOutput{}, err
	}

	if err := s.ports.Timeline.ResolveEvent(ctx, event.ID); err != nil {
		return nil, EventOutput{}, fmt.Errorf("resolving event: %w", err)
	}

	if input.Year != "" {
		if err := s.ports.Timeline.SetYear(event.ID, input.Year); err != nil {
			return nil, EventOutput{}, err
		}
	}

	resolved := s.findEvent(event.ID)
	if resolved == nil {
		return nil, EventOutput{}, fmt.Errorf("event %s vanished during resolution", event.ID)
	}
	return nil, eventOutput(*resolved), nil
}

// handleList returns all events in exposed order.
func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	events := s.ports.Timeline.Events()

	output := ListOutput{
		BoardTitle: s.ports.Timeline.Board().Title,
		Events:     make([]EventOutput, len(events)),
		Count:      len(events),
	}
	for i := range events {
		output.Events[i] = eventOutput(events[i])
	}
	return nil, output, nil
}

// handleSetYear dates an existing event.
func (s *Server) handleSetYear(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SetYearInput,
) (*mcp.CallToolResult, EventOutput, error) {
	if err := s.ports.Timeline.SetYear(input.ID, input.Year); err != nil {
		return nil, EventOutput{}, err
	}

	event := s.findEvent(input.ID)
	if event == nil {
		return nil, EventOutput{}, fmt.Errorf("event %s not found", input.ID)
	}
	return nil, eventOutput(*event), nil
}

// handleRemove deletes an event. Removing an absent id is a no-op.
func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RemoveInput,
) (*mcp.CallToolResult, RemoveOutput, error) {
	s.ports.Timeline.DeleteEvent(input.ID)
	return nil, RemoveOutput{ID: input.ID}, nil
}

func (s *Server) findEvent(id string) *domain.TimelineEvent {
	events := s.ports.Timeline.Events()
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

func eventOutput(e domain.TimelineEvent) EventOutput {
	return EventOutput{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Year:          e.Year,
		DateConfirmed: e.DateConfirmed,
		X:             e.Position.X,
		Y:             e.Position.Y,
	}
}
