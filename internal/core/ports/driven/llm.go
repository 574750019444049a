package driven

import "context"

// Prompt names for the PromptStore.
const (
	// PromptTitleGen generates a concise event title (and optional year)
	// from a free-text description.
	PromptTitleGen = "title_gen"
)

// GenerateOptions configures a single text generation call.
type GenerateOptions struct {
	// MaxTokens bounds the completion length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero uses the provider default.
	Temperature float64

	// StopWords terminate generation early.
	StopWords []string
}

// ChatMessage is a single message in a chat exchange.
type ChatMessage struct {
	// Role is "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures a chat completion call.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// LLMService is a text-completion backend used for title/year inference.
type LLMService interface {
	// Generate produces a completion for a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn exchange.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the model identifier in use.
	ModelName() string

	// Ping validates the service is reachable without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// PromptStore loads user-customisable prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads.
	Reload()
}
