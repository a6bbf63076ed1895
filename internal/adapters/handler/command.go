package handler

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/domain/command"
	"bookrater/internal/core/port"
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// FileResolver turns Telegram file IDs into download URLs.
type FileResolver interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Command struct {
	commandRegistry port.CommandRegistry
	timeout         time.Duration
	files           FileResolver
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, timeout: timeout}
}

// WithFileResolver overrides the bot passed to Handle for photo lookups.
func (c *Command) WithFileResolver(files FileResolver) *Command {
	c.files = files
	return c
}

func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		log.Debug().Msg("update without message")
		return
	}

	msg := update.Message
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	log.Debug().Str("message", text).Msg("received command")

	cmd := command.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	files := c.files
	if files == nil && b != nil {
		files = b
	}

	var replyToMessageID int
	if msg.ReplyToMessage != nil {
		replyToMessageID = msg.ReplyToMessage.ID
	}

	message := &domain.Message{
		ID:               msg.ID,
		ChatID:           msg.Chat.ID,
		Text:             text,
		Username:         getUserNameFromMessage(msg.From),
		ReplyToMessageID: &replyToMessageID,
	}

	go func() {
		message.ImageURL = getOptionalImage(context.WithoutCancel(ctx), files, msg)

		err := commandHandler.Respond(context.Background(), c.timeout, message)
		if err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

func getOptionalImage(ctx context.Context, files FileResolver, msg *models.Message) string {
	fileID := findImageFileID(msg)
	if fileID == "" && msg.ReplyToMessage != nil {
		fileID = findImageFileID(msg.ReplyToMessage)
	}

	if fileID == "" || files == nil {
		return ""
	}

	f, err := files.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Error().Err(err).Msg("error getting file from telegram api")
		return ""
	}

	return files.FileDownloadLink(f)
}

func findImageFileID(msg *models.Message) string {
	if len(msg.Photo) > 0 {
		return findLargestImage(msg.Photo)
	}

	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID
	}

	return ""
}

// maxSize keeps photos below the size Telegram lets bots download.
const maxSize = 20 << 20

// findLargestImage returns the biggest photo a bot may download, or "" when every size is too large.
// Photos of unknown size are only used when no known size fits; the download cap still applies to them.
func findLargestImage(photos []models.PhotoSize) string {
	best := -1
	for i, photo := range photos {
		if photo.FileSize > maxSize {
			continue
		}
		if best < 0 || betterPhoto(photo, photos[best]) {
			best = i
		}
	}

	if best < 0 {
		return ""
	}

	return photos[best].FileID
}

func betterPhoto(a, b models.PhotoSize) bool {
	if (a.FileSize > 0) != (b.FileSize > 0) {
		return a.FileSize > 0
	}

	return a.Width*a.Height > b.Width*b.Height
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
