package command

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/port"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Help struct {
	registry port.CommandRegistry
	sender   port.TextSender
	command  string
}

func NewHelp(registry port.CommandRegistry, sender port.TextSender, command string) *Help {
	return &Help{registry: registry, sender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

const helpMessage = "Send a book photo with /rate as caption, reply /rate to a photo, or use /rate <image url>. " +
	"I will rate its second-hand value from 1 to 10.\n\nCommands: %s"

func (h *Help) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	commands := h.registry.ListCommands()
	slices.Sort(commands)

	_, err := h.sender.SendMessageReply(ctx, message, fmt.Sprintf(helpMessage, strings.Join(commands, ", ")))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
