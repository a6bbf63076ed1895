package sender

import (
	"bookrater/internal/core/domain"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *MockBot) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func TestTelegramSender_SendMessageReply(t *testing.T) {
	longText := strings.Repeat("x", TelegramMessageLimit+10)

	tests := []struct {
		name      string
		text      string
		wantCalls int
		wantID    int
		setupMock func(mb *MockBot)
		wantErr   bool
	}{
		{
			name:      "single message",
			text:      "Book rating: 7/10",
			wantCalls: 1,
			wantID:    123,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return params.Text == "Book rating: 7/10" && params.ReplyParameters.MessageID == 42
				})).
					Return(&models.Message{ID: 123}, nil).
					Once()
			},
			wantErr: false,
		},
		{
			name:      "message chunked in two",
			text:      longText,
			wantCalls: 2,
			wantID:    456,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
					return len(params.Text) <= TelegramMessageLimit
				})).
					Return(&models.Message{ID: 456}, nil).
					Twice()
			},
			wantErr: false,
		},
		{
			name:      "send fails on first",
			text:      "fail",
			wantCalls: 1,
			setupMock: func(mb *MockBot) {
				mb.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("fail")).Once()
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			msg := &domain.Message{
				ID:     42,
				ChatID: 1001,
			}

			tc.setupMock(mb)
			id, err := sender.SendMessageReply(t.Context(), msg, tc.text)

			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantID, id)
			}
			mb.AssertNumberOfCalls(t, "SendMessage", tc.wantCalls)
			mb.AssertExpectations(t)
		})
	}
}

func TestTelegramSender_SendMessageWithoutReply(t *testing.T) {
	mb := new(MockBot)
	mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
		return params.ReplyParameters == nil && params.ChatID == int64(5)
	})).Return(&models.Message{ID: 1}, nil).Once()

	_, err := NewTelegram(mb).SendMessageReply(t.Context(), &domain.Message{ChatID: 5}, "not authorized")
	require.NoError(t, err)
	mb.AssertExpectations(t)
}

func TestTelegramSender_NotifyAndReturnError(t *testing.T) {
	tests := []struct {
		name          string
		sendMsgRetErr error
		originalErr   error
		wantErr       error
	}{
		{
			name:          "send ok",
			sendMsgRetErr: nil,
			originalErr:   domain.NewImageError(errors.New("bad")),
		},
		{
			name:          "send fails",
			sendMsgRetErr: errors.New("sendfail"),
			originalErr:   errors.New("original"),
			wantErr:       domain.ErrSendingReplyFailed,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mb := new(MockBot)
			sender := NewTelegram(mb)

			msg := &domain.Message{ID: 55, ChatID: 88}
			mb.On("SendMessage", mock.Anything, mock.MatchedBy(func(params *bot.SendMessageParams) bool {
				return params.Text == tc.originalErr.Error()
			})).Return(&models.Message{ID: 101}, tc.sendMsgRetErr)

			err := sender.NotifyAndReturnError(t.Context(), tc.originalErr, msg)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.Equal(t, tc.originalErr, err)
			}
			mb.AssertExpectations(t)
		})
	}
}

func TestSendChatAction_StopsOnContextCancel(t *testing.T) {
	mb := new(MockBot)
	sender := NewTelegram(mb)

	ctx, cancel := context.WithCancel(t.Context())
	chatID := int64(12345)

	mb.On("SendChatAction", mock.Anything, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatAction(domain.Typing),
	}).Return(true, nil)

	done := make(chan struct{})
	go func() {
		sender.SendChatAction(ctx, chatID, domain.Typing)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("chat action routine did not stop")
	}

	mb.AssertNumberOfCalls(t, "SendChatAction", 1)
}

func TestSendChatAction_StopsOnError(t *testing.T) {
	mb := new(MockBot)
	mb.On("SendChatAction", mock.Anything, mock.Anything).Return(false, errors.New("fail")).Once()

	NewTelegram(mb).SendChatAction(t.Context(), 1, domain.Typing)

	mb.AssertExpectations(t)
}

func Test_chunkText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "short", text: "abc", limit: 5, want: []string{"abc"}},
		{name: "exact", text: "abcde", limit: 5, want: []string{"abcde"}},
		{name: "split", text: "abcdefg", limit: 3, want: []string{"abc", "def", "g"}},
		{name: "keeps runes whole", text: "aéb", limit: 2, want: []string{"a", "é", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, chunkText(tc.text, tc.limit))
		})
	}
}
