package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tracker/internal/models"
)

// handleConversation processes multi-step conversations
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	userID := message.From.ID

	switch state.Command {
	case "add":
		b.handleAddConversation(ctx, message, state)
	case "record":
		b.handleRecordConversation(ctx, message, state)
	case "begin":
		b.handleBeginConversation(ctx, message, state)
	case "complete":
		b.handleCompleteConversation(ctx, message, state)
	}

	// Clean up completed conversations
	if state.Step == -1 {
		delete(b.states, userID)
	}
}

// handleAddConversation handles the add material multi-step process:
// title, then author, then page count
func (b *Bot) handleAddConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for the title
		title := strings.TrimSpace(message.Text)
		if title == "" {
			b.reply(message.Chat.ID, "The title must not be empty. Please enter the title:")
			return
		}

		state.Data["title"] = title
		state.Step = 2
		b.reply(message.Chat.ID, "Please enter the author:")

	case 2: // Waiting for the author
		author := strings.TrimSpace(message.Text)
		if author == "" {
			b.reply(message.Chat.ID, "The author must not be empty. Please enter the author:")
			return
		}

		state.Data["author"] = author
		state.Step = 3
		b.reply(message.Chat.ID, "Please enter the number of pages:")

	case 3: // Waiting for the page count
		pages, err := strconv.Atoi(strings.TrimSpace(message.Text))
		if err != nil || pages <= 0 {
			b.reply(message.Chat.ID, "Please enter a positive number of pages:")
			return
		}

		title := state.Data["title"].(string)
		author := state.Data["author"].(string)

		material, err := b.svc.AddMaterial(ctx, title, author, pages)
		if err != nil {
			b.reply(message.Chat.ID, fmt.Sprintf("Error adding material: %v", err))
		} else {
			text := fmt.Sprintf("Added to the queue!\n\nid=%d «%s» by %s, pages: %d",
				material.ID, material.Title, material.Author, material.Pages)
			b.reply(message.Chat.ID, text)
		}

		state.Step = -1 // Mark conversation as complete
	}
}

// handleRecordConversation handles the record pages multi-step process.
// The day is picked via inline keyboard first; the text step receives the
// page count (or, in last-page mode, the page the reader stopped on).
func (b *Bot) handleRecordConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1:
		// The day has not been picked yet, ignore text input
		return

	case 2: // Waiting for the count
		count, err := strconv.Atoi(strings.TrimSpace(message.Text))
		if err != nil || count < 0 {
			b.reply(message.Chat.ID, "Please enter a non-negative number:")
			return
		}

		mode := state.Data["mode"].(string)
		switch mode {
		case "today":
			err = b.svc.Record(ctx, count)
			if err == nil {
				b.reply(message.Chat.ID, fmt.Sprintf("Logged %s for today ✅", b.render.Inflect().Pages(count)))
			}
		case "yesterday":
			err = b.svc.RecordYesterday(ctx, count)
			if err == nil {
				b.reply(message.Chat.ID, fmt.Sprintf("Logged %s for yesterday ✅", b.render.Inflect().Pages(count)))
			}
		case "lastpage":
			var pages int
			pages, err = b.svc.RecordLastPage(ctx, count)
			if err == nil {
				b.reply(message.Chat.ID, fmt.Sprintf("Logged %s for today (stopped on page %d) ✅",
					b.render.Inflect().Pages(pages), count))
			}
		}
		if err != nil {
			b.reply(message.Chat.ID, fmt.Sprintf("Error recording pages: %v", err))
		}

		state.Step = -1 // Mark conversation as complete
	}
}

// handleBeginConversation handles the custom date step of /begin
func (b *Bot) handleBeginConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for custom date input
		if _, ok := state.Data["awaiting_custom_date"]; !ok {
			// Not awaiting custom date, ignore text input
			return
		}

		date, ok := b.parseConversationDate(message)
		if !ok {
			return
		}
		delete(state.Data, "awaiting_custom_date")

		b.beginOn(ctx, message.Chat.ID, date)
		state.Step = -1
	}
}

// handleCompleteConversation handles the custom date step of /complete
func (b *Bot) handleCompleteConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for custom date input
		if _, ok := state.Data["awaiting_custom_date"]; !ok {
			// Not awaiting custom date, ignore text input
			return
		}

		date, ok := b.parseConversationDate(message)
		if !ok {
			return
		}
		delete(state.Data, "awaiting_custom_date")

		b.completeOn(ctx, message.Chat.ID, date)
		state.Step = -1
	}
}

// parseConversationDate reads a user-typed date, accepting the word
// "today" as a shortcut. On bad input it prompts again and reports false.
func (b *Bot) parseConversationDate(message *tgbotapi.Message) (models.Date, bool) {
	text := strings.TrimSpace(message.Text)
	if strings.EqualFold(text, "today") {
		return models.Today(), true
	}

	date, err := models.ParseDate(text)
	if err != nil {
		b.reply(message.Chat.ID, "❌ Invalid date format. Please use DD.MM.YYYY\n\nExample: 15.01.2024")
		return models.Date{}, false
	}
	return date, true
}

// beginOn starts the head material on the given date and reports the result
func (b *Bot) beginOn(ctx context.Context, chatID int64, date models.Date) {
	material, err := b.svc.BeginActive(ctx, date)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error starting material: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Started reading «%s» on %s 📖", material.Title, date))
}

// completeOn completes the head material on the given date and reports the
// result, including the material that moved up, if any
func (b *Bot) completeOn(ctx context.Context, chatID int64, date models.Date) {
	material, err := b.svc.CompleteActive(ctx, date)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error completing material: %v", err))
		return
	}

	text := fmt.Sprintf("«%s» completed on %s 🎉", material.Title, date)
	if next, ok := b.svc.Head(); ok {
		text += fmt.Sprintf("\nNext up: «%s», starting %s", next.Title, next.StartDate)
	}
	b.reply(chatID, text)
}
