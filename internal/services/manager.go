package services

import (
	"time"

	"go.uber.org/zap"

	"life-os/internal/database"
	"life-os/internal/export"
	"life-os/internal/pillars"
)

type ServiceManager struct {
	Calendar     *CalendarService
	Logs         *LogService
	Summary      *SummaryService
	Export       *ExportService
	Pillars      *pillars.Tracker
	Details      *pillars.DetailsTracker
	Notification *NotificationService
	logger       *zap.Logger
}

func NewServiceManager(store database.Store, loc *time.Location, now func() time.Time, logger *zap.Logger) *ServiceManager {
	repo := database.NewRepository(store)
	cal := NewCalendarService(loc, now)
	logs := NewLogService(repo, cal)
	summary := NewSummaryService(logs, repo, cal)

	return &ServiceManager{
		Calendar:     cal,
		Logs:         logs,
		Summary:      summary,
		Export:       NewExportService(export.NewComposer(store, logger), summary, cal, logger),
		Pillars:      pillars.NewTracker(store),
		Details:      pillars.NewDetailsTracker(store),
		Notification: nil,
		logger:       logger,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm, sm.logger)
}
