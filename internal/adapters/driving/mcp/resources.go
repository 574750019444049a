package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for plotline resources.
const uriScheme = "plotline://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the whole board.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "board",
		Name:        "board",
		Description: "The current timeline board with all events in chronological order",
		MIMEType:    "application/json",
	}, s.handleBoardResource)
}

// handleBoardResource returns the board title and event list.
func (s *Server) handleBoardResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	events := s.ports.Timeline.Events()

	board := struct {
		Title  string        `json:"title"`
		Events []EventOutput `json:"events"`
	}{
		Title:  s.ports.Timeline.Board().Title,
		Events: make([]EventOutput, len(events)),
	}
	for i := range events {
		board.Events[i] = eventOutput(events[i])
	}

	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling board: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
