package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/seed"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/tui"
	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// TUIConfig holds the services the TUI command operates on.
type TUIConfig struct {
	TimelineService driving.TimelineService
	SettingsService driving.SettingsService
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// seedPath is the optional seed file loaded before the TUI starts.
var seedPath string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive timeline canvas",
	Long: `Launch the interactive terminal user interface for plotline.

Type a description into the chat panel and press Enter to add an event.
The title and year are inferred in the background; events missing a year
show "(when?)" until you supply one.

Controls:
  mouse drag on a card  - Move the event
  mouse drag on canvas  - Pan the view
  scroll wheel          - Zoom at the cursor
  double-click a card   - Edit its title in place
  +/-, 0                - Zoom in/out, reset
  tab                   - Switch focus between chat and canvas
  ctrl+t                - Rename the board
  ctrl+c                - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringVar(&seedPath, "seed", "", "YAML file of initial events")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if tuiConfig == nil || tuiConfig.TimelineService == nil {
		return fmt.Errorf("timeline service not configured")
	}

	if seedPath != "" {
		if err := loadSeed(cmd.Context(), tuiConfig.TimelineService, seedPath); err != nil {
			return err
		}
	}

	app, err := tui.NewApp(tui.NewPorts(tuiConfig.TimelineService, tuiConfig.SettingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// loadSeed populates the timeline from a seed file before the TUI starts.
func loadSeed(ctx context.Context, timeline driving.TimelineService, path string) error {
	board, err := seed.Load(path)
	if err != nil {
		return fmt.Errorf("loading seed: %w", err)
	}

	if board.Title != "" {
		if err := timeline.RenameBoard(board.Title); err != nil {
			return fmt.Errorf("seed board title: %w", err)
		}
	}

	for i, ev := range board.Events {
		var created domain.TimelineEvent
		if ev.Position != nil {
			created, err = timeline.CreateEventAt(ev.Description, domain.Position{
				X: ev.Position.X,
				Y: ev.Position.Y,
			})
		} else {
			created, err = timeline.CreateEvent(ev.Description)
		}
		if err != nil {
			return fmt.Errorf("seed event %d: %w", i+1, err)
		}

		// Resolve before applying overrides so an explicit title or year
		// in the file wins over the inferred one.
		if err := timeline.ResolveEvent(ctx, created.ID); err != nil {
			return fmt.Errorf("seed event %d: %w", i+1, err)
		}

		if ev.Title != "" {
			title := ev.Title
			if err := timeline.UpdateEvent(created.ID, driven.EventUpdate{Title: &title}); err != nil {
				return fmt.Errorf("seed event %d: %w", i+1, err)
			}
		}
		if ev.Year != "" {
			if err := timeline.SetYear(created.ID, ev.Year); err != nil {
				return fmt.Errorf("seed event %d: %w", i+1, err)
			}
		}
	}

	logger.Info("Seeded %d event(s) from %s", len(board.Events), path)
	return nil
}
