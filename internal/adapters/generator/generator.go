package generator

import (
	"bookrater/internal/core/port"
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey       = errors.New("missing API key")
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// Options holds the settings of every supported provider; New picks the relevant ones.
type Options struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	OpenRouterAPIKey string
	OpenRouterModel  string
}

// New builds the RatingGenerator for provider.
func New(ctx context.Context, provider string, opts Options) (port.RatingGenerator, error) {
	switch provider {
	case GeminiProvider, "":
		return NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel, opts.GeminiBaseURL)
	case OpenRouterProvider:
		return NewOpenRouter(opts.OpenRouterAPIKey, opts.OpenRouterModel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}
