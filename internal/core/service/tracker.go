package service

import (
	"bookrater/internal/core/domain"
	"bookrater/internal/core/port"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Tracker interface {
	Reserve(ctx context.Context, chatID int64) bool
	Release(chatID int64)
	GetCount(chatID int64) int
}

// UsageTracker counts ratings per chat and resets the counts at local midnight.
type UsageTracker struct {
	chats      map[int64]int
	dailyLimit int
	mutex      *sync.Mutex
	sender     port.TextSender
}

// NewUsageTracker starts the daily reset routine, which stops with ctx. A dailyLimit of zero disables the limit.
func NewUsageTracker(ctx context.Context, sender port.TextSender, dailyLimit int) *UsageTracker {
	ut := &UsageTracker{
		chats:      make(map[int64]int),
		sender:     sender,
		dailyLimit: dailyLimit,
		mutex:      &sync.Mutex{},
	}

	go ut.ResetDailyLimit(ctx)

	return ut
}

// Release gives back a slot taken by Reserve for a rating that never reached the model.
func (t *UsageTracker) Release(chatID int64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.chats[chatID] > 0 {
		t.chats[chatID]--
	}
}

func (t *UsageTracker) GetCount(chatID int64) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.chats[chatID]
}

const overLimit = "You have used all %d book ratings for today. Limit will reset in %s."

// Reserve counts a rating for chatID if the daily limit allows it. Over the limit the chat is
// told when the limit resets and false is returned.
func (t *UsageTracker) Reserve(ctx context.Context, chatID int64) bool {
	t.mutex.Lock()
	allowed := t.dailyLimit <= 0 || t.chats[chatID] < t.dailyLimit
	if allowed {
		t.chats[chatID]++
	}
	t.mutex.Unlock()

	if !allowed {
		_, err := t.sender.SendMessageReply(ctx,
			&domain.Message{ChatID: chatID},
			fmt.Sprintf(overLimit, t.dailyLimit, time.Until(getNextResetTime()).Truncate(time.Second)))
		if err != nil {
			log.Warn().Err(err).Msg("failed to send daily limit exceeded warning")
		}
		return false
	}

	return true
}

func (t *UsageTracker) ResetDailyLimit(ctx context.Context) {
	reset := getNextResetTime()

	for {
		log.Debug().Time("reset", reset).Msg("running reset timer")
		select {
		case <-time.After(time.Until(reset)):
			log.Debug().Msg("resetting daily limit")
			t.mutex.Lock()
			t.chats = make(map[int64]int)
			t.mutex.Unlock()
			time.Sleep(time.Second)
			reset = getNextResetTime()
		case <-ctx.Done():
			log.Debug().Msg("stopping daily limit reset")
			return
		}
	}
}

func getNextResetTime() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
