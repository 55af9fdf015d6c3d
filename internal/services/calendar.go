package services

import (
	"time"

	"life-os/internal/calendar"
	"life-os/internal/database"
)

// CalendarService pins the pure calendar to the user's location and clock.
type CalendarService struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendarService(loc *time.Location, now func() time.Time) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarService{loc: loc, now: now}
}

// Today is the current date at midnight in the user's location.
func (cs *CalendarService) Today() time.Time {
	return cs.Normalize(cs.now())
}

// Now is the current instant in the user's location.
func (cs *CalendarService) Now() time.Time {
	return cs.now().In(cs.loc)
}

// Normalize converts t into the user's location and truncates it to midnight.
func (cs *CalendarService) Normalize(t time.Time) time.Time {
	t = t.In(cs.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, cs.loc)
}

// Parse reads a YYYY-MM-DD date in the user's location. An empty string means today.
func (cs *CalendarService) Parse(date string) (time.Time, error) {
	if date == "" {
		return cs.Today(), nil
	}
	return time.ParseInLocation(database.DateLayout, date, cs.loc)
}

func (cs *CalendarService) Key(t time.Time) string {
	return cs.Normalize(t).Format(database.DateLayout)
}

func (cs *CalendarService) Info(t time.Time) calendar.Info {
	return calendar.InfoForDate(cs.Normalize(t))
}

func (cs *CalendarService) Location() *time.Location {
	return cs.loc
}
