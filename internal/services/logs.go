package services

import (
	"context"
	"time"

	"life-os/internal/calendar"
	"life-os/internal/database"
)

// LogEntry is the user-supplied part of a daily log.
type LogEntry struct {
	WorkoutDone bool    `json:"workout_done"`
	ProteinMet  bool    `json:"protein_met"`
	SleepHours  float64 `json:"sleep_hours"`
	Soreness72h bool    `json:"soreness_72h"`
}

type LogService struct {
	repository *database.Repository
	calendar   *CalendarService
}

func NewLogService(repo *database.Repository, cal *CalendarService) *LogService {
	return &LogService{repository: repo, calendar: cal}
}

// Record stores entry for date, stamping the date key and cycle week.
func (ls *LogService) Record(ctx context.Context, date time.Time, entry LogEntry) (database.DailyLog, error) {
	log := database.DailyLog{
		Date:        ls.calendar.Key(date),
		Week:        calendar.WeekForDate(ls.calendar.Normalize(date)),
		WorkoutDone: entry.WorkoutDone,
		ProteinMet:  entry.ProteinMet,
		SleepHours:  entry.SleepHours,
		Soreness72h: entry.Soreness72h,
	}
	if err := ls.repository.SaveLog(ctx, log); err != nil {
		return database.DailyLog{}, err
	}
	return log, nil
}

func (ls *LogService) Get(ctx context.Context, date time.Time) (*database.DailyLog, error) {
	return ls.repository.GetLog(ctx, ls.calendar.Key(date))
}

// Week returns the logs recorded in the seven-day block containing date.
func (ls *LogService) Week(ctx context.Context, date time.Time) ([]database.DailyLog, error) {
	return ls.repository.LogsForDates(ctx, calendar.WeekDates(ls.calendar.Normalize(date)))
}
