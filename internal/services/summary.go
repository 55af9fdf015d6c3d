package services

import (
	"context"
	"time"

	"life-os/internal/calendar"
	"life-os/internal/database"
	"life-os/internal/rules"
)

// WeeklyReport combines the calendar state and rules summary for one week.
type WeeklyReport struct {
	Calendar calendar.Info       `json:"calendar"`
	Summary  rules.WeeklySummary `json:"summary"`
	Logs     []database.DailyLog `json:"logs"`
	Decision database.Decision   `json:"decision"`
}

type SummaryService struct {
	logs       *LogService
	repository *database.Repository
	calendar   *CalendarService
}

func NewSummaryService(logs *LogService, repo *database.Repository, cal *CalendarService) *SummaryService {
	return &SummaryService{logs: logs, repository: repo, calendar: cal}
}

func (ss *SummaryService) Weekly(ctx context.Context, date time.Time) (*WeeklyReport, error) {
	info := ss.calendar.Info(date)

	logs, err := ss.logs.Week(ctx, date)
	if err != nil {
		return nil, err
	}
	decision, err := ss.repository.GetDecision(ctx, ss.calendar.Normalize(date))
	if err != nil {
		return nil, err
	}

	return &WeeklyReport{
		Calendar: info,
		Summary:  rules.Summarize(info.Week, database.RulesLogs(logs)),
		Logs:     logs,
		Decision: decision,
	}, nil
}

func (ss *SummaryService) SaveDecision(ctx context.Context, date time.Time, d database.Decision) error {
	return ss.repository.SaveDecision(ctx, ss.calendar.Normalize(date), d)
}
