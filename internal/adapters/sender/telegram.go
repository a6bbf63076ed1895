package sender

import (
	"bookrater/internal/core/domain"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	TelegramMessageLimit    = 4096
	ChatActionRepeatSeconds = 5
)

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// SendMessageReply sends text as a reply to message, split into chunks of at most TelegramMessageLimit bytes.
// It returns the ID of the last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var lastID int

	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   chunk,
		}
		if message.ID != 0 {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			}
		}

		msg, err := s.bot.SendMessage(ctx, params)
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message")
			return lastID, err
		}
		if msg != nil {
			lastID = msg.ID
		}
	}

	return lastID, nil
}

// NotifyAndReturnError replies with the error text and returns err, or the send failure if the reply fails.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	_, sendErr := s.SendMessageReply(ctx, message, err.Error())
	if sendErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, sendErr)
	}

	return err
}

func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatID", chatID).Msg("starting action routine")

	ticker := time.NewTicker(ChatActionRepeatSeconds * time.Second)
	defer ticker.Stop()

	for {
		log.Debug().Int64("chatID", chatID).Msg("transmitting action")
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatAction(action),
		})
		if err != nil {
			log.Err(err).Msg("error sending chat action")
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}

func chunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}

	return append(chunks, text)
}
