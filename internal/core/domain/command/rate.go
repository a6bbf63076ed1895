package command

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/port"
	"bookrater/internal/core/service"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mvdan/xurls"
	"github.com/rs/zerolog/log"
)

var errMissingImage = errors.New("usage: /rate <image url>, or send a book photo with /rate as caption")

type Rate struct {
	rater      port.BookRater
	textSender port.TextSender
	auth       service.Authorizer
	track      service.Tracker
	command    string
}

func NewRate(rater port.BookRater,
	textSender port.TextSender,
	auth service.Authorizer,
	track service.Tracker,
	command string) *Rate {
	return &Rate{rater: rater,
		textSender: textSender,
		auth:       auth,
		track:      track,
		command:    command}
}

func (r *Rate) GetCommand() string {
	return r.command
}

func (r *Rate) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	imageURL := findImageURL(message)

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("imageURL", domain.RedactURL(imageURL)).
		Str("command", r.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !r.auth.IsAuthorized(ctx, message.ChatID) {
		l.Debug().Msg("not authorized")
		return nil
	}

	if imageURL == "" {
		_ = r.textSender.NotifyAndReturnError(ctx, errMissingImage, message)
		return nil
	}

	if !r.track.Reserve(ctx, message.ChatID) {
		l.Debug().Msg("daily rating limit reached")
		return nil
	}

	go r.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	rating, err := r.rater.Rate(ctx, imageURL)
	if err != nil {
		// only ratings that reached the model count against the limit
		if service.RatingErrorKind(err) == domain.ImageProcessing {
			r.track.Release(message.ChatID)
		}
		return r.textSender.NotifyAndReturnError(ctx, err, message)
	}

	_, err = r.textSender.SendMessageReply(ctx, message, FormatRating(rating))
	if err != nil {
		return fmt.Errorf("failed to send rating: %w", err)
	}

	return nil
}

// FormatRating renders a rating for chat. Replies that are not a plain 1-10 score are shown verbatim.
func FormatRating(rating domain.Rating) string {
	if score, ok := rating.Score(); ok {
		return fmt.Sprintf("Book rating: %d/%d", score, domain.MaxScore)
	}

	return "Book rating: " + rating.Text
}

// findImageURL prefers an explicit http(s) URL argument over an attached photo.
func findImageURL(message *domain.Message) string {
	for _, found := range xurls.Strict.FindAllString(ParseCommandArgs(message.Text), -1) {
		lower := strings.ToLower(found)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return found
		}
	}

	return message.ImageURL
}
