package service

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/port"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Rater asks a generative model for the second-hand value of the book shown on an image.
type Rater struct {
	downloader port.ImageDownloader
	converter  port.ImageConverter
	generator  port.RatingGenerator
	prompt     string
	ids        uuid.Generator
}

// NewRater wires the rating pipeline. An empty prompt uses domain.RatingPrompt.
func NewRater(downloader port.ImageDownloader, converter port.ImageConverter, generator port.RatingGenerator,
	prompt string) *Rater {
	if strings.TrimSpace(prompt) == "" {
		prompt = domain.RatingPrompt
	}

	return &Rater{
		downloader: downloader,
		converter:  converter,
		generator:  generator,
		prompt:     prompt,
		ids:        uuid.DefaultGenerator,
	}
}

// Rate downloads the image on imageURL, converts it to JPEG and returns the trimmed reply of the model.
// A failure is always a *domain.RatingError.
func (r *Rater) Rate(ctx context.Context, imageURL string) (domain.Rating, error) {
	requestID := r.newRequestID()
	l := log.With().
		Str("requestId", requestID).
		Str("imageURL", domain.RedactURL(imageURL)).
		Str("model", r.generator.Model().Identifier).
		Logger()

	l.Info().Msg("rating book image")

	image, err := r.loadImage(ctx, imageURL)
	if err != nil {
		l.Warn().Err(err).Msg("image processing failed")
		return domain.Rating{}, domain.NewImageError(err)
	}

	l.Debug().Int("jpegBytes", len(image.Data)).Msg("image ready")

	resp, err := r.generator.GenerateFromImage(ctx, domain.Prompt{Prompt: r.prompt, Image: image})
	if err != nil {
		l.Warn().Err(err).Msg("content generation failed")
		return domain.Rating{}, domain.NewGenerationError(err)
	}

	rating := domain.Rating{
		Text:      strings.TrimSpace(resp.Response),
		Model:     resp.Metadata.Model,
		RequestID: requestID,
	}

	l.Info().
		Str("rating", rating.Text).
		Int("totalTokens", resp.Metadata.TotalTokens).
		Msg("book rated")

	return rating, nil
}

// GetBookRating returns the rating text, or the message of the failure prefixed with
// "Error processing image: " or "Error generating content: ".
func (r *Rater) GetBookRating(ctx context.Context, imageURL string) string {
	rating, err := r.Rate(ctx, imageURL)
	if err != nil {
		return err.Error()
	}

	return rating.Text
}

func (r *Rater) loadImage(ctx context.Context, imageURL string) (domain.InlineImage, error) {
	if strings.TrimSpace(imageURL) == "" {
		return domain.InlineImage{}, domain.ErrEmptyImageURL
	}

	data, err := r.downloader.Download(ctx, imageURL)
	if err != nil {
		return domain.InlineImage{}, err
	}

	return r.converter.ToJPEG(ctx, data)
}

var localRequestIDs atomic.Uint64

// newRequestID falls back to a process-local counter when the random source fails.
func (r *Rater) newRequestID() string {
	id, err := r.ids.NewV4()
	if err != nil {
		local := fmt.Sprintf("local-%d", localRequestIDs.Add(1))
		log.Warn().Err(err).Str("requestId", local).Msg("could not generate request ID, using local counter")
		return local
	}

	return id.String()
}

// RatingErrorKind returns the kind of a failed rating, or zero when err is not a rating failure.
func RatingErrorKind(err error) domain.ErrorKind {
	var rErr *domain.RatingError
	if errors.As(err, &rErr) {
		return rErr.Kind
	}

	return 0
}
