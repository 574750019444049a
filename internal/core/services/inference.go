package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
	"github.com/plotline-labs/plotline-cli/internal/logger"
)

// inferenceTimeout bounds a single title/year inference call.
const inferenceTimeout = 30 * time.Second

// TitleYear is the outcome of resolving an event description: a concise
// title, and a year when one could be determined.
type TitleYear struct {
	// Title is never empty; on failure it falls back to a truncation of
	// the description.
	Title string

	// Year is nil when neither the model nor the local heuristics could
	// find one.
	Year *string

	// Timestamp is the derived ordering instant, set whenever Year is.
	Timestamp *time.Time
}

// InferenceService turns free-text event descriptions into titles and
// years. It degrades gracefully: any LLM failure yields a local fallback
// rather than an error, so callers never have to handle inference faults.
type InferenceService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	limiter *rate.Limiter
}

// NewInferenceService creates an inference service over the given LLM
// backend. Either dependency may be nil; the service then answers with
// local fallbacks only. Calls are rate limited to protect hosted
// providers from bursts of rapid event creation.
func NewInferenceService(llm driven.LLMService, prompts driven.PromptStore) *InferenceService {
	return &InferenceService{
		llm:     llm,
		prompts: prompts,
		limiter: rate.NewLimiter(rate.Every(time.Second/2), 4),
	}
}

// InferTitleYear resolves a description into a TitleYear. It never
// returns an error: on any failure the title falls back to a truncated
// description and the year is left to the local date heuristics.
func (s *InferenceService) InferTitleYear(ctx context.Context, description string) TitleYear {
	description = strings.TrimSpace(description)

	result, ok := s.askModel(ctx, description)
	if !ok {
		result = TitleYear{Title: domain.FallbackTitle(description)}
	}

	// The heuristic parser supplements a missing year regardless of
	// which path produced the title.
	if result.Year == nil {
		if d := ParseDate(description); d != nil {
			year := d.Year
			ts := d.Timestamp
			result.Year = &year
			result.Timestamp = &ts
		}
	}
	return result
}

// askModel runs the LLM call. Returns ok=false on any failure.
func (s *InferenceService) askModel(ctx context.Context, description string) (TitleYear, bool) {
	if s.llm == nil || s.prompts == nil || description == "" {
		return TitleYear{}, false
	}

	template, err := s.prompts.Load(driven.PromptTitleGen)
	if err != nil {
		logger.Warn("Prompt load failed: %v", err)
		return TitleYear{}, false
	}
	prompt := strings.ReplaceAll(template, "{{description}}", description)

	ctx, cancel := context.WithTimeout(ctx, inferenceTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		logger.Warn("Inference rate limit wait aborted: %v", err)
		return TitleYear{}, false
	}

	logger.Debug("Inference request via %s", s.llm.ModelName())
	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   120,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Inference failed, using local fallback: %v", err)
		return TitleYear{}, false
	}

	result, ok := parseInferenceResponse(raw)
	if !ok {
		logger.Warn("Unparseable inference response, using local fallback")
	}
	return result, ok
}

// inferencePayload is the structured response shape the prompt asks for.
type inferencePayload struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

// parseInferenceResponse accepts either a JSON object {"title","year"} or
// a plain-text title. Years that fail validation are discarded rather
// than propagated.
func parseInferenceResponse(raw string) (TitleYear, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TitleYear{}, false
	}

	var payload inferencePayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		title := strings.TrimSpace(payload.Title)
		if title == "" {
			return TitleYear{}, false
		}
		out := TitleYear{Title: title}
		year := strings.TrimSpace(payload.Year)
		if domain.ValidYear(year) {
			ts, err := domain.TimestampForYear(year)
			if err == nil {
				out.Year = &year
				out.Timestamp = &ts
			}
		}
		return out, true
	}

	// Plain-text title. Models occasionally wrap it in quotes.
	title := strings.Trim(raw, `"`)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return TitleYear{}, false
	}
	return TitleYear{Title: title}, true
}
