package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
	"github.com/omarshaarawi/fantasyfeed/internal/repository/memory"
)

func command(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 42},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func TestStatusCommand(t *testing.T) {
	repo := memory.NewRepository()
	h := NewHandler(repo, time.UTC)

	msg := h.HandleCommand(command("/status"))
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "No sync has run yet.", msg.Text)

	finished := time.Date(2025, time.December, 14, 18, 30, 5, 0, time.UTC)
	repo.SaveStatus(models.SyncStatus{Phase: models.PhaseBackfill, Weeks: []int{1, 2, 3}, Matchups: 18, FinishedAt: finished})
	repo.SaveStatus(models.SyncStatus{Phase: models.PhaseLive, Weeks: []int{15}, Matchups: 6,
		FailedLeagues: []string{"Dynasty"}, CommitError: "deadline exceeded", FinishedAt: finished})

	msg = h.HandleCommand(command("/STATUS"))
	assert.Contains(t, msg.Text, "⚠️ live sync (week 15)")
	assert.Contains(t, msg.Text, "Matchups: 6")
	assert.Contains(t, msg.Text, "Finished: Sun 6:30:05 PM")
	assert.Contains(t, msg.Text, "Failed leagues: Dynasty")
	assert.Contains(t, msg.Text, "Commit error: deadline exceeded")

	msg = h.HandleCommand(command("/backfill"))
	assert.Contains(t, msg.Text, "✅ backfill sync (weeks 1-3)")
	assert.Contains(t, msg.Text, "Matchups: 18")
}

func TestUnknownCommand(t *testing.T) {
	h := NewHandler(memory.NewRepository(), nil)
	assert.Contains(t, h.HandleCommand(command("/scores")).Text, "Unknown command")
	assert.Contains(t, h.HandleCommand(command("/help")).Text, "/status")
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNotify(t *testing.T) {
	sender := &fakeSender{}
	bot := &TelegramBot{sender: sender, chatID: 42}

	require.NoError(t, bot.Notify(context.Background(), "commit failed"))
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "commit failed", msg.Text)

	sender.err = errors.New("forbidden")
	assert.Error(t, bot.Notify(context.Background(), "again"))

	assert.Error(t, (&TelegramBot{sender: sender}).Notify(context.Background(), "no chat"))
}
