package command

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/port"
	"bookrater/internal/core/service"
	"context"
	"fmt"
	"time"
)

type Usage struct {
	tracker service.Tracker
	sender  port.TextSender
	command string
}

func NewUsage(tracker service.Tracker, ts port.TextSender, command string) *Usage {
	return &Usage{
		tracker: tracker,
		sender:  ts,
		command: command,
	}
}

func (u *Usage) GetCommand() string {
	return u.command
}

const usageMessage = "Books rated today within ChatID %d: %d."

func (u *Usage) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	_, err := u.sender.SendMessageReply(ctx, message, fmt.Sprintf(usageMessage,
		message.ChatID, u.tracker.GetCount(message.ChatID)))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
