package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tracker/internal/models"
)

// handleRecordCallback processes the day selection for /record
func (b *Bot) handleRecordCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	mode := strings.TrimPrefix(query.Data, "record:")

	switch mode {
	case "today", "yesterday":
		state.Data["mode"] = mode
		state.Step = 2
		b.reply(query.Message.Chat.ID, "Please enter the number of pages read:")
	case "lastpage":
		state.Data["mode"] = mode
		state.Step = 2
		b.reply(query.Message.Chat.ID, "Please enter the page you stopped on:")
	}
}

// handleBeginCallback processes the start date selection for /begin
func (b *Bot) handleBeginCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	data := strings.TrimPrefix(query.Data, "begin:")

	// Handle custom date option
	if data == "custom" {
		state.Data["awaiting_custom_date"] = true
		b.reply(query.Message.Chat.ID, "📝 Please enter the date in format DD.MM.YYYY\n\nExample: 15.01.2024")
		return
	}

	var date models.Date
	switch data {
	case "today":
		date = models.Today()
	case "yesterday":
		date = models.Yesterday()
	default:
		return
	}

	b.beginOn(ctx, query.Message.Chat.ID, date)
	state.Step = -1
}

// handleCompleteCallback processes the confirmation for /complete
func (b *Bot) handleCompleteCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	data := strings.TrimPrefix(query.Data, "complete:")

	switch data {
	case "today":
		b.completeOn(ctx, query.Message.Chat.ID, models.Today())
		state.Step = -1
	case "custom":
		state.Data["awaiting_custom_date"] = true
		b.reply(query.Message.Chat.ID, "📝 Please enter the date in format DD.MM.YYYY\n\nExample: 15.01.2024")
	case "cancel":
		b.reply(query.Message.Chat.ID, "Cancelled.")
		state.Step = -1
	}
}
