package driving

import "github.com/plotline-labs/plotline-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves the current settings, falling back to defaults for
	// anything unconfigured.
	Get() (*domain.AppSettings, error)

	// Save persists the given settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the inference provider, applying the
	// provider's default model when model is empty.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the configured settings are usable.
	Validate() error
}
