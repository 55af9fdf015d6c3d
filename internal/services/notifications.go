package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"life-os/internal/database"
	"life-os/internal/export"
	"life-os/internal/pillars"
	"life-os/internal/rules"
	"life-os/internal/utils"
)

// NotificationSender delivers HTML-formatted messages to the user.
type NotificationSender interface {
	SendMessage(text string) error
}

type NotificationService struct {
	sender   NotificationSender
	services *ServiceManager
	logger   *zap.Logger
}

func NewNotificationService(sender NotificationSender, sm *ServiceManager, logger *zap.Logger) *NotificationService {
	return &NotificationService{sender: sender, services: sm, logger: logger}
}

func (ns *NotificationService) send(kind, text string) {
	if err := ns.sender.SendMessage(text); err != nil {
		ns.logger.Error("notification failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	ns.logger.Debug("notification sent", zap.String("kind", kind))
}

// FormatPillarBoard renders the day's pillar state as HTML lines.
func FormatPillarBoard(state pillars.State) string {
	var b strings.Builder
	for _, p := range pillars.List() {
		fmt.Fprintf(&b, "%s %s %s\n", utils.DoneMark(state[p]), utils.GetPillarEmoji(string(p)), p)
	}
	fmt.Fprintf(&b, "\n%d/%d done", state.Done(), len(pillars.List()))
	return b.String()
}

// FormatWeekly renders a weekly report as HTML.
func FormatWeekly(r *WeeklyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 <b>%s</b>\n\n", r.Calendar.Label())
	fmt.Fprintf(&b, "Logged days: %d\n\n", len(r.Logs))
	for _, p := range rules.Pillars {
		s := r.Summary.PillarStatus[p]
		fmt.Fprintf(&b, "%s <b>%s</b>: %s (%d)\n", s.Icon(), p, s, r.Summary.Flags[p])
	}
	fmt.Fprintf(&b, "\n<b>Overall:</b> %s %s\n", r.Summary.Overall.Icon(), r.Summary.Overall)
	fmt.Fprintf(&b, "💡 %s", r.Summary.Recommendation)
	return b.String()
}

// FormatExportResult describes an export outcome.
func FormatExportResult(res export.Result) string {
	if !res.Exported {
		return "📁 Export skipped: " + res.Reason
	}
	return fmt.Sprintf("📁 Exported <b>%s</b>\n%s", res.Record.Filename, res.Record.Path)
}

// FormatFolderStatus describes the export folder and the last export written to it.
func FormatFolderStatus(folder string, last *database.ExportRecord) string {
	if folder == "" {
		return "📁 No export folder set. Use: /folder [path]"
	}
	text := "📁 Export folder: " + folder
	if last == nil {
		return text + "\nNo export yet"
	}
	return fmt.Sprintf("%s\nLast export: <b>%s</b> (%s)", text, last.Filename, last.Timestamp.Format("2006-01-02 15:04"))
}

// SendPillarReminder sends today's calendar header and pillar board.
func (ns *NotificationService) SendPillarReminder() {
	ctx := context.Background()
	today := ns.services.Calendar.Today()

	state, err := ns.services.Pillars.Get(ctx, ns.services.Calendar.Key(today))
	if err != nil {
		ns.logger.Error("load pillars", zap.Error(err))
		return
	}

	info := ns.services.Calendar.Info(today)
	ns.send("pillars", fmt.Sprintf("🌅 <b>%s</b>\n%s\n\n%s",
		today.Format("Mon 2006-01-02"), info.Label(), FormatPillarBoard(state)))
}

// SendLogReminder nudges the user when today's training log is missing.
func (ns *NotificationService) SendLogReminder() {
	ctx := context.Background()
	_, err := ns.services.Logs.Get(ctx, ns.services.Calendar.Today())
	if err == nil {
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		ns.logger.Error("load today's log", zap.Error(err))
		return
	}
	ns.send("log", "📝 No training log for today yet.\n"+
		"Use: /log workout=1 protein=1 sleep=7.5 soreness=0")
}

func (ns *NotificationService) SendWeeklySummary() {
	report, err := ns.services.Summary.Weekly(context.Background(), ns.services.Calendar.Today())
	if err != nil {
		ns.logger.Error("weekly summary", zap.Error(err))
		return
	}
	ns.send("weekly", FormatWeekly(report))
}

// RunScheduledExport runs the daily export and reports a successful write.
func (ns *NotificationService) RunScheduledExport() {
	res, err := ns.services.Export.RunScheduled(context.Background())
	if err != nil {
		ns.send("export", "❌ Export failed: "+err.Error())
		return
	}
	if res.Exported {
		ns.send("export", FormatExportResult(res))
	}
}
