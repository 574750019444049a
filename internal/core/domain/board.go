package domain

import "strings"

// DefaultBoardTitle names a board until the user renames it.
const DefaultBoardTitle = "Untitled timeline"

// MaxBoardTitleLength bounds the board title length.
const MaxBoardTitleLength = 50

// Board holds the per-session timeline metadata. Event data lives in the
// event store; the board carries everything else shown in the header.
type Board struct {
	// Title is the display name of the timeline.
	Title string
}

// NewBoard returns a board with the default title.
func NewBoard() Board {
	return Board{Title: DefaultBoardTitle}
}

// Rename sets the board title. Empty or whitespace-only titles are
// rejected; longer titles are truncated to MaxBoardTitleLength.
func (b *Board) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidInput
	}
	runes := []rune(title)
	if len(runes) > MaxBoardTitleLength {
		title = string(runes[:MaxBoardTitleLength])
	}
	b.Title = title
	return nil
}
