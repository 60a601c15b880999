package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
)

type StatusSource interface {
	LastStatus() (models.SyncStatus, bool)
	StatusFor(phase models.SyncPhase) (models.SyncStatus, bool)
}

type Handler struct {
	statuses StatusSource
	location *time.Location
}

func NewHandler(statuses StatusSource, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{statuses: statuses, location: location}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())

	switch command {
	case "start":
		msg.Text = "Fantasy feed is syncing. Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/status - Last sync pass\n/backfill - Result of the startup backfill"
	case "status":
		msg.Text = h.statusText(h.statuses.LastStatus())
	case "backfill":
		msg.Text = h.statusText(h.statuses.StatusFor(models.PhaseBackfill))
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) statusText(status models.SyncStatus, ok bool) string {
	if !ok {
		return "No sync has run yet."
	}

	var sb strings.Builder
	icon := "✅"
	if !status.OK() {
		icon = "⚠️"
	}
	sb.WriteString(fmt.Sprintf("%s %s sync %s\n", icon, status.Phase, weeksLabel(status.Weeks)))
	sb.WriteString(fmt.Sprintf("Matchups: %d\n", status.Matchups))
	sb.WriteString(fmt.Sprintf("Finished: %s\n", status.FinishedAt.In(h.location).Format("Mon 3:04:05 PM")))

	if len(status.FailedLeagues) > 0 {
		sb.WriteString(fmt.Sprintf("Failed leagues: %s\n", strings.Join(status.FailedLeagues, ", ")))
	}
	if status.CommitError != "" {
		sb.WriteString(fmt.Sprintf("Commit error: %s\n", status.CommitError))
	}
	if status.Error != "" {
		sb.WriteString(fmt.Sprintf("Error: %s\n", status.Error))
	}
	return sb.String()
}

func weeksLabel(weeks []int) string {
	switch len(weeks) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("(week %d)", weeks[0])
	default:
		return fmt.Sprintf("(weeks %d-%d)", weeks[0], weeks[len(weeks)-1])
	}
}
