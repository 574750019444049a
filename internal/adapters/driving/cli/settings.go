package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driving"
)

// settingsService is the injected settings service.
var settingsService driving.SettingsService

// SetSettingsService sets the settings service used by the CLI.
func SetSettingsService(service driving.SettingsService) {
	settingsService = service
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the inference provider and board defaults.

Without a configured provider, plotline still works: titles fall back to
a truncation of the description and years come from local date heuristics.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var (
	settingsLLMModel   string
	settingsLLMAPIKey  string
	settingsLLMBaseURL string
)

var settingsLLMCmd = &cobra.Command{
	Use:   "llm [provider]",
	Short: "Configure the inference provider",
	Long: `Set the LLM provider used for title and year inference.

Available providers:
  ollama    - Local Ollama instance (no API key required)
  openai    - OpenAI cloud API
  anthropic - Anthropic cloud API
  groq      - Groq cloud API (OpenAI-compatible)

Examples:
  plotline settings llm ollama
  plotline settings llm groq --api-key gsk_...
  plotline settings llm openai --model gpt-4o-mini --api-key sk-...`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLLM,
}

func init() {
	settingsLLMCmd.Flags().StringVar(&settingsLLMModel, "model", "", "model identifier (provider default when empty)")
	settingsLLMCmd.Flags().StringVar(&settingsLLMAPIKey, "api-key", "", "API key for cloud providers")
	settingsLLMCmd.Flags().StringVar(&settingsLLMBaseURL, "base-url", "", "override the provider endpoint")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Inference]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (local fallbacks apply)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Board]")
	cmd.Printf("  Default title: %s\n", settings.BoardTitle)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'plotline settings llm <provider>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if err := settingsService.SetLLMProvider(provider, settingsLLMModel, settingsLLMAPIKey); err != nil {
		return fmt.Errorf("failed to configure provider: %w", err)
	}

	if settingsLLMBaseURL != "" {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.LLM.BaseURL = settingsLLMBaseURL
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	cmd.Printf("Inference provider set to %s.\n", provider.Description())
	return nil
}

// maskAPIKey hides all but the first and last few characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
