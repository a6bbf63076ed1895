package port

import (
	"bookrater/internal/core/domain"
	"context"
)

type RatingGenerator interface {
	// GenerateFromImage sends the prompt text and its inline image to the model in a single user message.
	GenerateFromImage(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error)
	// Model returns the model the generator talks to.
	Model() domain.Model
}

type BookRater interface {
	Rate(ctx context.Context, imageURL string) (domain.Rating, error)
}
