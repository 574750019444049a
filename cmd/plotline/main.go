// Command plotline is an interactive timeline-authoring tool. Free-text
// event descriptions become titled, dated cards on a pannable, zoomable
// canvas.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/ai"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/config/file"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driven/storage/memory"
	"github.com/plotline-labs/plotline-cli/internal/adapters/driving/cli"
	"github.com/plotline-labs/plotline-cli/internal/core/services"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.OnSetup(setup)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup builds the service graph once flags are parsed.
func setup() error {
	configStore, err := file.NewConfigStore(cli.ConfigDir())
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// A missing or unreachable provider is not fatal; inference degrades
	// to local fallbacks.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, using local fallbacks: %v", err)
		llm = nil
	}

	promptDir := ""
	if dir := cli.ConfigDir(); dir != "" {
		promptDir = filepath.Join(dir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("initialising prompt store: %w", err)
	}
	go func() {
		if err := prompts.Watch(context.Background()); err != nil {
			logger.Warn("Prompt watch stopped: %v", err)
		}
	}()

	inference := services.NewInferenceService(llm, prompts)
	timeline := services.NewTimelineService(memory.NewEventStore(), inference)
	if settings.BoardTitle != "" {
		if err := timeline.RenameBoard(settings.BoardTitle); err != nil {
			return fmt.Errorf("applying board title: %w", err)
		}
	}

	cli.SetSettingsService(settingsService)
	cli.SetTUIConfig(&cli.TUIConfig{
		TimelineService: timeline,
		SettingsService: settingsService,
	})
	return nil
}
