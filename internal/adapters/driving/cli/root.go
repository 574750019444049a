// Package cli implements the plotline command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging to stderr.
var verbose bool

// configDir overrides the default ~/.plotline configuration directory.
var configDir string

// rootCmd is the base command. Running plotline with no subcommand
// launches the TUI.
var rootCmd = &cobra.Command{
	Use:   "plotline",
	Short: "Author timelines from natural-language event descriptions",
	Long: `Plotline turns free-text descriptions of events into a visual timeline.

Type "We moved to Lisbon in 2019" and plotline infers a concise title and
a year, places the event on a pannable, zoomable canvas, and keeps the
collection ordered by time. Events can be dragged, edited in place, and
dated after the fact.

Run with no arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if setupFunc != nil {
			return setupFunc()
		}
		return nil
	},
	RunE: runTUI,
}

// setupFunc wires services once flags are parsed; set by main.
var setupFunc func() error

// OnSetup registers a function run after flag parsing and before any
// command. Main uses it to build services against the resolved config
// directory.
func OnSetup(fn func() error) {
	setupFunc = fn
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.plotline)")
}

// ConfigDir returns the configuration directory override, or "" for the
// default. Evaluated by main after flag parsing.
func ConfigDir() string {
	return configDir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}
