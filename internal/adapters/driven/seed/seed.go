// Package seed loads initial board content from YAML files.
// Seed files are a convenience for starting a session with events already
// on the canvas; the running process remains the only store of state.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
)

// Event is one seeded timeline event.
type Event struct {
	// Description is the free-text event description (required).
	Description string `yaml:"description"`

	// Title overrides the inferred title when set.
	Title string `yaml:"title,omitempty"`

	// Year sets an explicit 4-digit year when set.
	Year string `yaml:"year,omitempty"`

	// Position places the event on the canvas when set.
	Position *Point `yaml:"position,omitempty"`
}

// Point is a canvas coordinate in a seed file.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Board is the top-level seed file structure.
type Board struct {
	// Title names the board.
	Title string `yaml:"title,omitempty"`

	// Events are created in file order.
	Events []Event `yaml:"events"`
}

// Load reads and validates a seed file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates seed file content.
func Parse(data []byte) (*Board, error) {
	var board Board
	if err := yaml.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	for i, ev := range board.Events {
		if strings.TrimSpace(ev.Description) == "" {
			return nil, fmt.Errorf("seed event %d: description is required", i+1)
		}
		if ev.Year != "" && !domain.ValidYear(ev.Year) {
			return nil, fmt.Errorf("seed event %d: invalid year %q", i+1, ev.Year)
		}
	}
	return &board, nil
}
