package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"life-os/internal/pillars"
	"life-os/internal/services"
	"life-os/internal/utils"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	services *services.ServiceManager
	handlers map[string]func(*tgbotapi.Message)
	logger   *zap.Logger
}

func NewBot(token string, chatID int64, serviceManager *services.ServiceManager, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      botAPI,
		chatID:   chatID,
		services: serviceManager,
		handlers: make(map[string]func(*tgbotapi.Message)),
		logger:   logger.Named("telegram"),
	}

	bot.registerHandlers()
	bot.logger.Info("bot initialized", zap.String("username", botAPI.Self.UserName))
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.handlers["/start"] = b.handleStart
	b.handlers["/help"] = b.handleStart
	b.handlers["/today"] = b.handleToday
	b.handlers["/done"] = b.handleDone
	b.handlers["/undo"] = b.handleUndo
	b.handlers["/log"] = b.handleLog
	b.handlers["/week"] = b.handleWeek
	b.handlers["/decide"] = b.handleDecide
	b.handlers["/export"] = b.handleExport
	b.handlers["/folder"] = b.handleFolder
	b.handlers["/checklist"] = b.handleChecklist
}

func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) sendWithKeyboard(text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = keyboard
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("send message", zap.Error(err))
	}
}

// editWithKeyboard replaces an existing message in place after a button press.
func (b *Bot) editWithKeyboard(messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(b.chatID, messageID, text, keyboard)
	edit.ParseMode = "HTML"
	if _, err := b.bot.Send(edit); err != nil {
		b.logger.Warn("edit message", zap.Int("message_id", messageID), zap.Error(err))
	}
}

// pillarKeyboard has one toggle button per pillar, two per row.
func pillarKeyboard(state pillars.State) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, p := range pillars.List() {
		label := fmt.Sprintf("%s %s", utils.DoneMark(state[p]), p)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackToggle+string(p)))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func checklistKeyboard(p pillars.Pillar, done map[string]bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range pillars.Checklists[p] {
		label := fmt.Sprintf("%s %s", utils.DoneMark(done[item.ID]), item.Label)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, itemCallback(p, item.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.Chat.ID != b.chatID {
		b.logger.Warn("message from unknown chat", zap.Int64("chat_id", update.Message.Chat.ID))
		return
	}

	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return
	}

	command := strings.Fields(text)[0]
	// Commands may be addressed as /week@botname in group chats.
	command, _, _ = strings.Cut(command, "@")

	if handler, exists := b.handlers[command]; exists {
		b.logger.Debug("command", zap.String("command", command))
		handler(msg)
		return
	}
	b.SendMessageOrLogError("❌ Unknown command. Use /help")
}

func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "✅")); err != nil {
			b.logger.Warn("answer callback", zap.Error(err))
		}
	}()

	if callback.Message == nil || callback.Message.Chat.ID != b.chatID {
		return
	}

	data := callback.Data
	b.logger.Debug("callback", zap.String("data", data))

	switch {
	case strings.HasPrefix(data, callbackToggle):
		b.handleToggle(strings.TrimPrefix(data, callbackToggle), callback.Message.MessageID)
	case strings.HasPrefix(data, callbackItem):
		p, id, err := parseItemCallback(data)
		if err != nil {
			b.SendMessageOrLogError("❌ Could not process request")
			return
		}
		b.handleItem(p, id, callback.Message.MessageID)
	}
}
