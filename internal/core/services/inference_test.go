package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotline-labs/plotline-cli/internal/core/domain"
	"github.com/plotline-labs/plotline-cli/internal/core/ports/driven"
)

// stubLLM returns a canned response or error.
type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) ModelName() string           { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error { return s.err }
func (s *stubLLM) Close() error                { return nil }

// stubPrompts serves a single template for every name.
type stubPrompts struct {
	template string
	err      error
}

func (s *stubPrompts) Load(_ string) (string, error) { return s.template, s.err }
func (s *stubPrompts) Reload()                       {}

func newTestInference(llm driven.LLMService) *InferenceService {
	return NewInferenceService(llm, &stubPrompts{template: "Title for: {{description}}"})
}

func TestInferenceService_InferTitleYear_JSONResponse(t *testing.T) {
	llm := &stubLLM{response: `{"title": "Moon Landing", "year": "1969"}`}
	svc := newTestInference(llm)

	result := svc.InferTitleYear(context.Background(), "Apollo 11 landed on the moon")

	assert.Equal(t, "Moon Landing", result.Title)
	require.NotNil(t, result.Year)
	assert.Equal(t, "1969", *result.Year)
	require.NotNil(t, result.Timestamp)
	assert.Equal(t, time.Date(1969, time.January, 1, 0, 0, 0, 0, time.Local), *result.Timestamp)
}

func TestInferenceService_InferTitleYear_PlainTextResponse(t *testing.T) {
	llm := &stubLLM{response: "A Concise Title\n"}
	svc := newTestInference(llm)

	result := svc.InferTitleYear(context.Background(), "something happened once")

	assert.Equal(t, "A Concise Title", result.Title)
	assert.Nil(t, result.Year)
}

func TestInferenceService_InferTitleYear_FencedJSON(t *testing.T) {
	llm := &stubLLM{response: "```json\n{\"title\": \"Fenced\", \"year\": \"2001\"}\n```"}
	svc := newTestInference(llm)

	result := svc.InferTitleYear(context.Background(), "desc")

	assert.Equal(t, "Fenced", result.Title)
	require.NotNil(t, result.Year)
	assert.Equal(t, "2001", *result.Year)
}

func TestInferenceService_InferTitleYear_InvalidYearDiscarded(t *testing.T) {
	llm := &stubLLM{response: `{"title": "Ancient History", "year": "476"}`}
	svc := newTestInference(llm)

	result := svc.InferTitleYear(context.Background(), "fall of the western empire")

	assert.Equal(t, "Ancient History", result.Title)
	assert.Nil(t, result.Year)
}

func TestInferenceService_InferTitleYear_LLMErrorFallsBack(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection refused")}
	svc := newTestInference(llm)

	long := strings.Repeat("A", 80)
	result := svc.InferTitleYear(context.Background(), long)

	assert.Equal(t, strings.Repeat("A", domain.FallbackTitleLength)+"...", result.Title)
	assert.Nil(t, result.Year)
}

func TestInferenceService_InferTitleYear_NilLLMFallsBack(t *testing.T) {
	svc := NewInferenceService(nil, nil)

	result := svc.InferTitleYear(context.Background(), "short description")

	assert.Equal(t, "short description", result.Title)
}

func TestInferenceService_InferTitleYear_HeuristicSupplementsYear(t *testing.T) {
	// Model answers with a title but no year; the text carries one.
	llm := &stubLLM{response: `{"title": "Company Founded", "year": ""}`}
	svc := newTestInference(llm)

	result := svc.InferTitleYear(context.Background(), "We founded the company in March 2021")

	assert.Equal(t, "Company Founded", result.Title)
	require.NotNil(t, result.Year)
	assert.Equal(t, "2021", *result.Year)
	require.NotNil(t, result.Timestamp)
	assert.Equal(t, time.March, result.Timestamp.Month())
}

func TestInferenceService_InferTitleYear_PromptSubstitution(t *testing.T) {
	llm := &stubLLM{response: "ok"}
	svc := newTestInference(llm)

	svc.InferTitleYear(context.Background(), "the description text")

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "the description text")
	assert.NotContains(t, llm.prompts[0], "{{description}}")
}
