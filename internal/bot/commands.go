package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleStart shows welcome message and available commands
func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := `Welcome to the Reading Tracker Bot! 📚

Available commands:
/queue - Show the reading queue with its schedule
/processed - Show completed materials
/log - Show the reading log
/total - Show total pages read
/stats - View reading statistics
/notes - Show reading notes
/add - Add a material to the queue
/begin - Start reading the next material
/record - Log pages read
/complete - Complete the current material
/cancel - Cancel the current action`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleQueue shows the queue with its projected schedule
func (b *Bot) handleQueue(message *tgbotapi.Message) {
	schedule, err := b.svc.Projection()
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
		b.sendMessage(msg)
		return
	}

	text := fmt.Sprintf("📚 Reading queue (%s):\n\n", b.render.Inflect().Materials(len(schedule))) +
		b.render.Queue(schedule)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleProcessed shows the completed materials
func (b *Bot) handleProcessed(message *tgbotapi.Message) {
	text := "✅ Processed materials:\n\n" + b.render.Processed(b.svc.Processed())
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleLog shows the reading log
func (b *Bot) handleLog(message *tgbotapi.Message) {
	text := "📅 Reading log:\n\n" + b.render.Log(b.svc.Entries(), b.svc.Average(), b.svc.DailyGoal())
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleTotal shows the all-time page count and the daily goal
func (b *Bot) handleTotal(message *tgbotapi.Message) {
	text := fmt.Sprintf("📖 %s\nDaily goal: %d pages",
		b.render.Total(b.svc.Total()), b.svc.DailyGoal())
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleStats shows the reading statistics block
func (b *Bot) handleStats(message *tgbotapi.Message) {
	stats, ok := b.svc.Stats()
	if !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Nothing has been logged yet. Use /record first.")
		b.sendMessage(msg)
		return
	}

	text := "📊 Reading statistics:\n\n" + b.render.Stats(stats)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleNotes shows all notes grouped by material
func (b *Bot) handleNotes(message *tgbotapi.Message) {
	notes := b.svc.Notes()
	if len(notes) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "No notes yet.")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("📝 Notes:\n")
	lastMaterialID := 0
	for _, note := range notes {
		if note.MaterialID != lastMaterialID {
			title := fmt.Sprintf("material %d", note.MaterialID)
			if material, err := b.svc.MaterialByID(note.MaterialID); err == nil {
				title = fmt.Sprintf("«%s»", material.Title)
			}
			text.WriteString(fmt.Sprintf("\n%s\n", title))
			lastMaterialID = note.MaterialID
		}
		text.WriteString(b.render.Note(note))
		text.WriteString("\n")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	b.sendMessage(msg)
}

// handleAddStart initiates the add material conversation
func (b *Bot) handleAddStart(message *tgbotapi.Message) {
	userID := message.From.ID
	b.states[userID] = &ConversationState{
		Command: "add",
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Please enter the title:")
	b.sendMessage(msg)
}

// handleBeginStart initiates the begin reading conversation
func (b *Bot) handleBeginStart(message *tgbotapi.Message) {
	userID := message.From.ID

	head, ok := b.svc.Head()
	if !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "The queue is empty. Add a material first with /add")
		b.sendMessage(msg)
		return
	}
	if head.IsStarted() {
		text := fmt.Sprintf("«%s» is already being read since %s", head.Title, head.StartDate)
		msg := tgbotapi.NewMessage(message.Chat.ID, text)
		b.sendMessage(msg)
		return
	}

	b.states[userID] = &ConversationState{
		Command: "begin",
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	// Show date selection with inline keyboard
	text := fmt.Sprintf("📅 Start reading «%s» from:", head.Title)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📆 Today", "begin:today"),
			tgbotapi.NewInlineKeyboardButtonData("⏮ Yesterday", "begin:yesterday"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Custom date", "begin:custom"),
		),
	)
	msg.ReplyMarkup = keyboard
	b.sendMessage(msg)
}

// handleRecordStart initiates the record pages conversation
func (b *Bot) handleRecordStart(message *tgbotapi.Message) {
	userID := message.From.ID
	b.states[userID] = &ConversationState{
		Command: "record",
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	// Show date selection with inline keyboard
	msg := tgbotapi.NewMessage(message.Chat.ID, "📅 Log reading for:")

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📆 Today", "record:today"),
			tgbotapi.NewInlineKeyboardButtonData("⏮ Yesterday", "record:yesterday"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 By last page read", "record:lastpage"),
		),
	)
	msg.ReplyMarkup = keyboard
	b.sendMessage(msg)
}

// handleCompleteStart initiates the complete material conversation
func (b *Bot) handleCompleteStart(message *tgbotapi.Message) {
	userID := message.From.ID

	active, ok := b.svc.Active()
	if !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Nothing is being read right now. Use /begin to start the next material.")
		b.sendMessage(msg)
		return
	}

	b.states[userID] = &ConversationState{
		Command: "complete",
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	text := fmt.Sprintf("Complete «%s» (started %s)?", active.Title, active.StartDate)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Completed today", "complete:today"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Custom date", "complete:custom"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "complete:cancel"),
		),
	)
	msg.ReplyMarkup = keyboard
	b.sendMessage(msg)
}

// handleCancel aborts the current conversation
func (b *Bot) handleCancel(message *tgbotapi.Message) {
	userID := message.From.ID
	if _, ok := b.states[userID]; ok {
		delete(b.states, userID)
		b.reply(message.Chat.ID, "Cancelled.")
		return
	}
	b.reply(message.Chat.ID, "Nothing to cancel.")
}
