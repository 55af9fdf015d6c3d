package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"life-os/internal/database"
	"life-os/internal/export"
)

type ExportService struct {
	composer *export.Composer
	summary  *SummaryService
	calendar *CalendarService
	logger   *zap.Logger
}

func NewExportService(composer *export.Composer, summary *SummaryService, cal *CalendarService, logger *zap.Logger) *ExportService {
	return &ExportService{composer: composer, summary: summary, calendar: cal, logger: logger}
}

// Report assembles the export input for the week containing date.
func (es *ExportService) Report(ctx context.Context, date time.Time) (export.Report, error) {
	weekly, err := es.summary.Weekly(ctx, date)
	if err != nil {
		return export.Report{}, err
	}
	return export.Report{
		Week:        weekly.Calendar.Week,
		Phase:       weekly.Calendar.Phase,
		Logs:        weekly.Logs,
		Decision:    weekly.Decision,
		GeneratedAt: es.calendar.Now(),
	}, nil
}

// Preview renders the Markdown for date without writing anything.
func (es *ExportService) Preview(ctx context.Context, date time.Time) (string, error) {
	r, err := es.Report(ctx, date)
	if err != nil {
		return "", err
	}
	return export.Render(r), nil
}

// RunScheduled exports the current week if no export ran today.
func (es *ExportService) RunScheduled(ctx context.Context) (export.Result, error) {
	return es.run(ctx, es.calendar.Today(), false)
}

// RunNow exports the week containing date, ignoring the daily gate.
func (es *ExportService) RunNow(ctx context.Context, date time.Time) (export.Result, error) {
	return es.run(ctx, date, true)
}

func (es *ExportService) run(ctx context.Context, date time.Time, force bool) (export.Result, error) {
	r, err := es.Report(ctx, date)
	if err != nil {
		return export.Result{}, err
	}
	res, err := es.composer.Run(ctx, r, force)
	if err != nil {
		es.logger.Error("export failed", zap.Error(err), zap.Int("week", int(r.Week)))
		return res, err
	}
	if !res.Exported {
		es.logger.Debug("export skipped", zap.String("reason", res.Reason))
	}
	return res, nil
}

func (es *ExportService) SetFolder(ctx context.Context, folder string) error {
	return es.composer.SetFolder(ctx, folder)
}

func (es *ExportService) Folder(ctx context.Context) (string, error) {
	return es.composer.Folder(ctx)
}

// LastExport returns the most recent export record, or nil if none ran yet.
func (es *ExportService) LastExport(ctx context.Context) (*database.ExportRecord, error) {
	return es.composer.LastExport(ctx)
}
