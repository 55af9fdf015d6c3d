package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"life-os/internal/export"
	"life-os/internal/pillars"
	"life-os/internal/services"
	"life-os/internal/utils"
)

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.SendMessageOrLogError(helpText)
}

func (b *Bot) todayText(state pillars.State) string {
	cal := b.services.Calendar
	today := cal.Today()
	return fmt.Sprintf("📅 <b>%s</b>\n%s\n%s\n\n%s",
		cal.Key(today),
		cal.Info(today).Label(),
		utils.GetTimezoneInfo(cal.Location(), cal.Now()),
		services.FormatPillarBoard(state))
}

func (b *Bot) handleToday(msg *tgbotapi.Message) {
	ctx := context.Background()
	state, err := b.services.Pillars.Get(ctx, b.services.Calendar.Key(b.services.Calendar.Today()))
	if err != nil {
		b.logger.Error("load pillars", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not load today's pillars")
		return
	}
	b.sendWithKeyboard(b.todayText(state), pillarKeyboard(state))
}

func (b *Bot) setPillar(msg *tgbotapi.Message, done bool) {
	name := commandArgs(msg.Text)
	if name == "" {
		b.SendMessageOrLogError("❌ Format: /done [pillar] or /undo [pillar]")
		return
	}

	ctx := context.Background()
	date := b.services.Calendar.Key(b.services.Calendar.Today())
	state, err := b.services.Pillars.Set(ctx, date, pillars.Pillar(name), done)
	if errors.Is(err, pillars.ErrUnknownPillar) {
		b.SendMessageOrLogError("❌ Unknown pillar. Use: Health, Career, Mind, Relationships, Finance, Environment")
		return
	}
	if err != nil {
		b.logger.Error("save pillar", zap.String("pillar", name), zap.Error(err))
		b.SendMessageOrLogError("❌ Could not save pillar")
		return
	}
	b.SendMessageOrLogError(services.FormatPillarBoard(state))
}

func (b *Bot) handleDone(msg *tgbotapi.Message) { b.setPillar(msg, true) }
func (b *Bot) handleUndo(msg *tgbotapi.Message) { b.setPillar(msg, false) }

func (b *Bot) handleToggle(name string, messageID int) {
	ctx := context.Background()
	date := b.services.Calendar.Key(b.services.Calendar.Today())

	state, err := b.services.Pillars.Toggle(ctx, date, pillars.Pillar(name))
	if err != nil {
		b.logger.Error("toggle pillar", zap.String("pillar", name), zap.Error(err))
		b.SendMessageOrLogError("❌ Could not update pillar")
		return
	}
	b.editWithKeyboard(messageID, b.todayText(state), pillarKeyboard(state))
}

func (b *Bot) handleChecklist(msg *tgbotapi.Message) {
	p, err := pillars.Parse(commandArgs(msg.Text))
	if err != nil {
		b.SendMessageOrLogError("❌ Format: /checklist [pillar]")
		return
	}

	date := b.services.Calendar.Key(b.services.Calendar.Today())
	details, err := b.services.Details.Get(context.Background(), date)
	if err != nil {
		b.logger.Error("load details", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not load checklist")
		return
	}
	b.sendWithKeyboard(fmt.Sprintf("%s <b>%s</b> checklist", utils.GetPillarEmoji(string(p)), p),
		checklistKeyboard(p, details[p]))
}

func (b *Bot) handleItem(p pillars.Pillar, itemID string, messageID int) {
	ctx := context.Background()
	date := b.services.Calendar.Key(b.services.Calendar.Today())

	current, err := b.services.Details.Get(ctx, date)
	if err != nil {
		b.logger.Error("load details", zap.Error(err))
		return
	}
	details, err := b.services.Details.SetItem(ctx, date, p, itemID, !current[p][itemID])
	if err != nil {
		b.logger.Error("save checklist item", zap.String("item", itemID), zap.Error(err))
		b.SendMessageOrLogError("❌ Could not update checklist")
		return
	}
	b.editWithKeyboard(messageID, fmt.Sprintf("%s <b>%s</b> checklist", utils.GetPillarEmoji(string(p)), p),
		checklistKeyboard(p, details[p]))
}

func (b *Bot) handleLog(msg *tgbotapi.Message) {
	entry, err := parseLogArgs(commandArgs(msg.Text))
	if err != nil {
		b.SendMessageOrLogError("❌ " + err.Error() + "\nFormat: /log workout=1 protein=1 sleep=7.5 soreness=0")
		return
	}

	log, err := b.services.Logs.Record(context.Background(), b.services.Calendar.Today(), entry)
	if err != nil {
		b.logger.Error("save log", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not save log")
		return
	}

	b.SendMessageOrLogError(fmt.Sprintf(
		"✅ Log saved for %s (week %d)\n\n"+
			"🏋️ Workout: %s\n"+
			"🥩 Protein: %s\n"+
			"😴 Sleep: %.1f h\n"+
			"🤕 Soreness >72h: %s",
		log.Date, log.Week,
		utils.DoneMark(log.WorkoutDone),
		utils.DoneMark(log.ProteinMet),
		log.SleepHours,
		utils.DoneMark(log.Soreness72h),
	))
}

func (b *Bot) handleWeek(msg *tgbotapi.Message) {
	report, err := b.services.Summary.Weekly(context.Background(), b.services.Calendar.Today())
	if err != nil {
		b.logger.Error("weekly summary", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not build the weekly summary")
		return
	}
	b.SendMessageOrLogError(services.FormatWeekly(report))
}

func (b *Bot) handleDecide(msg *tgbotapi.Message) {
	decision, err := parseDecisionArgs(commandArgs(msg.Text))
	if err != nil {
		b.SendMessageOrLogError("❌ Format: /decide training=Deload nutrition=Maintenance optional=Sleep_first")
		return
	}
	if err := b.services.Summary.SaveDecision(context.Background(), b.services.Calendar.Today(), decision); err != nil {
		b.logger.Error("save decision", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not save decision")
		return
	}
	b.SendMessageOrLogError("✅ Decision recorded for this week")
}

func (b *Bot) handleFolder(msg *tgbotapi.Message) {
	ctx := context.Background()
	folder := commandArgs(msg.Text)
	if folder == "" {
		current, err := b.services.Export.Folder(ctx)
		if err != nil {
			b.logger.Error("load export folder", zap.Error(err))
			b.SendMessageOrLogError("❌ Could not load export folder")
			return
		}
		last, err := b.services.Export.LastExport(ctx)
		if err != nil {
			b.logger.Warn("load last export", zap.Error(err))
		}
		b.SendMessageOrLogError(services.FormatFolderStatus(current, last))
		return
	}

	if err := b.services.Export.SetFolder(ctx, folder); err != nil {
		b.logger.Error("set export folder", zap.Error(err))
		b.SendMessageOrLogError("❌ Could not set export folder")
		return
	}
	b.SendMessageOrLogError("✅ Export folder set: " + strings.TrimSpace(folder))
}

func (b *Bot) handleExport(msg *tgbotapi.Message) {
	res, err := b.services.Export.RunNow(context.Background(), b.services.Calendar.Today())
	if errors.Is(err, export.ErrNoFolder) {
		b.SendMessageOrLogError("📁 No export folder set. Use: /folder [path]")
		return
	}
	if err != nil {
		b.SendMessageOrLogError("❌ Export failed: " + err.Error())
		return
	}
	b.SendMessageOrLogError(services.FormatExportResult(res))
}
