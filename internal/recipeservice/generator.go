package recipeservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Gemini is reached through its OpenAI compatible endpoint.
const (
	DefaultGeminiURL   = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultGeminiModel = "gemini-1.5-flash"
)

var (
	ErrUnknownProvider = errors.New("unknown AI provider")
	ErrEmptyResponse   = errors.New("provider returned no content")
)

// Generator returns the raw text a provider produced for prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeneratorConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// GenerationError wraps a provider failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recipe generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Details describes the failure without the transport error text, which may
// carry request URLs.
func (e *GenerationError) Details() string {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
	)

	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "the recipe provider did not answer in time"
	case errors.Is(e.Err, ErrEmptyResponse):
		return "the recipe provider returned an empty answer"
	case errors.As(e.Err, &apiErr):
		return fmt.Sprintf("the recipe provider rejected the request with status %d", apiErr.HTTPStatusCode)
	case errors.As(e.Err, &reqErr):
		return fmt.Sprintf("the recipe provider rejected the request with status %d", reqErr.HTTPStatusCode)
	default:
		return "the recipe provider could not be reached"
	}
}

func NewGenerator(cfg GeneratorConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		model, baseURL := cfg.Model, cfg.BaseURL
		if model == "" {
			model = DefaultGeminiModel
		}
		if baseURL == "" {
			baseURL = DefaultGeminiURL
		}
		return NewOpenAIGenerator(cfg.APIKey, model, baseURL), nil
	case "openai":
		return NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
