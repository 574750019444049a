package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
)

func TestServer_handleAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and resolves an event", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddInput{Description: "We moved to Lisbon in 2019"}
		_, output, err := server.handleAdd(ctx, nil, input)

		require.NoError(t, err)
		assert.NotEmpty(t, output.ID)
		assert.Equal(t, "We moved to Lisbon in 2019", output.Description)
		assert.Equal(t, "2019", output.Year)
		assert.True(t, output.DateConfirmed)
	})

	t.Run("explicit year wins over inference", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddInput{Description: "Something from 1990, roughly", Year: "1991"}
		_, output, err := server.handleAdd(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "1991", output.Year)
	})

	t.Run("empty description returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		_, _, err := server.handleAdd(ctx, nil, AddInput{Description: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
	})

	t.Run("invalid explicit year returns error", func(t *testing.T) {
		server, _ := newTestServer(t)

		input := AddInput{Description: "an event", Year: "banana"}
		_, _, err := server.handleAdd(ctx, nil, input)
		assert.ErrorIs(t, err, domain.ErrInvalidYear)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()
	server, timeline := newTestServer(t)

	_, _, err := server.handleAdd(ctx, nil, AddInput{Description: "First thing, 1969"})
	require.NoError(t, err)
	_, _, err = server.handleAdd(ctx, nil, AddInput{Description: "Earlier thing, 1957"})
	require.NoError(t, err)

	_, output, err := server.handleList(ctx, nil, ListInput{})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Count)
	assert.Equal(t, timeline.Board().Title, output.BoardTitle)
	// Chronological order, not insertion order.
	assert.Equal(t, "1957", output.Events[0].Year)
	assert.Equal(t, "1969", output.Events[1].Year)
}

func TestServer_handleSetYear(t *testing.T) {
	ctx := context.Background()

	t.Run("dates an undated event", func(t *testing.T) {
		server, timeline := newTestServer(t)
		event, err := timeline.CreateEvent("an undatable thing")
		require.NoError(t, err)

		input := SetYearInput{ID: event.ID, Year: "1987"}
		_, output, err := server.handleSetYear(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "1987", output.Year)
		assert.True(t, output.DateConfirmed)
	})

	t.Run("invalid year returns error without mutation", func(t *testing.T) {
		server, timeline := newTestServer(t)
		event, err := timeline.CreateEvent("an undatable thing")
		require.NoError(t, err)

		input := SetYearInput{ID: event.ID, Year: "199"}
		_, _, err = server.handleSetYear(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidYear)
		assert.Empty(t, timeline.Events()[0].Year)
	})
}

func TestServer_handleRemove(t *testing.T) {
	ctx := context.Background()
	server, timeline := newTestServer(t)

	event, err := timeline.CreateEvent("short-lived")
	require.NoError(t, err)

	_, _, err = server.handleRemove(ctx, nil, RemoveInput{ID: event.ID})
	require.NoError(t, err)
	assert.Empty(t, timeline.Events())

	// Removing an unknown id is a no-op, not an error.
	_, _, err = server.handleRemove(ctx, nil, RemoveInput{ID: "nope"})
	assert.NoError(t, err)
}

func TestServer_handleBoardResource(t *testing.T) {
	ctx := context.Background()
	server, timeline := newTestServer(t)
	require.NoError(t, timeline.RenameBoard("Space Race"))

	_, _, err := server.handleAdd(ctx, nil, AddInput{Description: "Sputnik launched in 1957"})
	require.NoError(t, err)

	req := &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uriScheme + "board"},
	}
	result, err := server.handleBoardResource(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "Space Race")
	assert.Contains(t, result.Contents[0].Text, "1957")
}
